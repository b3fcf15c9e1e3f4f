// File: database/repository/notification/notificationMongoCrud.go
package notificationRepo

import (
	"errors"
	"fmt"
	"time"

	"coachly/database/repository"
	"coachly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new notification document.
func (r *MongoNotificationRepo) Create(n *models.Notification) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	n.CreatedAt = now
	n.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, n)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// GetByID retrieves a notification by its unique ID.
func (r *MongoNotificationRepo) GetByID(id string) (*models.Notification, error) {
	return r.findOne(bson.M{"id": id})
}

// GetOwned retrieves a notification by ID scoped to its recipient.
func (r *MongoNotificationRepo) GetOwned(id, recipient string) (*models.Notification, error) {
	return r.findOne(bson.M{"id": id, "recipient": recipient})
}

func (r *MongoNotificationRepo) findOne(filter bson.M) (*models.Notification, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var n models.Notification
	err := r.coll.FindOne(ctx, filter).Decode(&n)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("notification: %w", repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notification: %w", err)
	}
	return &n, nil
}

// FindRecentByTypeAndRef returns the newest notification of the given type
// referencing refValue in metadata.<refField>, created at or after since.
func (r *MongoNotificationRepo) FindRecentByTypeAndRef(notifType, refField, refValue string, since time.Time) (*models.Notification, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"type":                  notifType,
		"metadata." + refField:  refValue,
		"createdAt":             bson.M{"$gte": since},
	}

	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	var n models.Notification
	err := r.coll.FindOne(ctx, filter, opts).Decode(&n)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("notification: %w", repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query recent notifications: %w", err)
	}
	return &n, nil
}

// AppendDeliveryRecord pushes a per-channel delivery outcome and bumps the
// attempt counters.
func (r *MongoNotificationRepo) AppendDeliveryRecord(id string, rec models.DeliveryRecord) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	update := bson.M{
		"$push": bson.M{"delivery.records": rec},
		"$inc":  bson.M{"delivery.attempts": 1},
		"$set":  bson.M{"delivery.lastAttempt": now, "updatedAt": now},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to record delivery for notification %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("notification %s: %w", id, repository.ErrNotFound)
	}
	return nil
}
