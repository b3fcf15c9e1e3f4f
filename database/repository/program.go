// database/repository/program.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coachly/database"
	"coachly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ProgramRepository defines read access to programs for context resolution.
type ProgramRepository interface {
	GetByID(id string) (*models.Program, error)
}

// MongoProgramRepo implements ProgramRepository using MongoDB.
type MongoProgramRepo struct {
	coll *mongo.Collection
}

func NewMongoProgramRepo() ProgramRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("programs")
	return &MongoProgramRepo{coll: coll}
}

func (r *MongoProgramRepo) GetByID(id string) (*models.Program, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var program models.Program
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&program)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("program %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch program %s: %w", id, err)
	}
	return &program, nil
}
