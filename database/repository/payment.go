// database/repository/payment.go
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

// PaymentRepository defines read access to payments for context resolution.
type PaymentRepository interface {
	GetByID(id string) (*models.Payment, error)
	GetByBookingID(bookingID string) (*models.Payment, error)
}

// MongoPaymentRepo implements PaymentRepository using MongoDB.
type MongoPaymentRepo struct {
	coll *mongo.Collection
}

func NewMongoPaymentRepo() PaymentRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("payments")
	return &MongoPaymentRepo{coll: coll}
}

func (r *MongoPaymentRepo) GetByID(id string) (*models.Payment, error) {
	return r.findOne(bson.M{"id": id}, id)
}

func (r *MongoPaymentRepo) GetByBookingID(bookingID string) (*models.Payment, error) {
	return r.findOne(bson.M{"booking_id": bookingID}, bookingID)
}

func (r *MongoPaymentRepo) findOne(filter bson.M, ref string) (*models.Payment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var payment models.Payment
	err := r.coll.FindOne(ctx, filter).Decode(&payment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("payment %s: %w", ref, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment %s: %w", ref, err)
	}
	return &payment, nil
}
