// File: database/repository/notification/notificationMongoQueries.go
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

// List returns a page of the recipient's notifications in the requested
// lifecycle bucket, newest first, together with the bucket's total count.
func (r *MongoNotificationRepo) List(recipient string, opts ListOptions) ([]models.Notification, int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	status := opts.Status
	if status == "" {
		status = models.NotificationStatusActive
	}
	filter := bson.M{"recipient": recipient, "status": status}
	if opts.Unread != nil {
		filter["isRead"] = !*opts.Unread
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	page := opts.Page
	if page < 1 {
		page = 1
	}
	perPage := opts.PerPage
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page - 1) * perPage).
		SetLimit(perPage)

	cursor, err := r.coll.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.Notification
	if err := cursor.All(ctx, &results); err != nil {
		return nil, 0, fmt.Errorf("failed to decode notifications: %w", err)
	}
	return results, total, nil
}

// UnreadCount counts the recipient's unread active notifications.
func (r *MongoNotificationRepo) UnreadCount(recipient string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{
		"recipient": recipient,
		"status":    models.NotificationStatusActive,
		"isRead":    false,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// findOneAndUpdate applies update to the recipient's notification matching
// filter and returns the updated document.
func (r *MongoNotificationRepo) findOneAndUpdate(filter, update bson.M) (*models.Notification, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var n models.Notification
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&n)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("notification: %w", repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update notification: %w", err)
	}
	return &n, nil
}

// MarkRead sets the read flag on any non-terminal notification.
func (r *MongoNotificationRepo) MarkRead(id, recipient string) (*models.Notification, error) {
	now := time.Now()
	return r.findOneAndUpdate(
		bson.M{"id": id, "recipient": recipient, "status": bson.M{"$ne": models.NotificationStatusDeleted}},
		bson.M{"$set": bson.M{"isRead": true, "readAt": now, "updatedAt": now}},
	)
}

// MarkReadBatch marks many notifications read; atomic per item, reports the
// modified count.
func (r *MongoNotificationRepo) MarkReadBatch(ids []string, recipient string) (int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	now := time.Now()
	result, err := r.coll.UpdateMany(ctx,
		bson.M{
			"id":        bson.M{"$in": ids},
			"recipient": recipient,
			"status":    bson.M{"$ne": models.NotificationStatusDeleted},
			"isRead":    false,
		},
		bson.M{"$set": bson.M{"isRead": true, "readAt": now, "updatedAt": now}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to batch-mark notifications read: %w", err)
	}
	return result.ModifiedCount, nil
}

// Trash moves an active or archived notification into the trash and stamps
// its retention deadline.
func (r *MongoNotificationRepo) Trash(id, recipient string) (*models.Notification, error) {
	now := time.Now()
	expires := now.Add(models.TrashRetention)
	return r.findOneAndUpdate(
		bson.M{"id": id, "recipient": recipient, "status": bson.M{"$in": []string{
			models.NotificationStatusActive, models.NotificationStatusArchived,
		}}},
		bson.M{"$set": bson.M{
			"status":    models.NotificationStatusTrash,
			"trashedAt": now,
			"expiresAt": expires,
			"updatedAt": now,
		}},
	)
}

// TrashBatch trashes many notifications; atomic per item.
func (r *MongoNotificationRepo) TrashBatch(ids []string, recipient string) (int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	now := time.Now()
	expires := now.Add(models.TrashRetention)
	result, err := r.coll.UpdateMany(ctx,
		bson.M{
			"id":        bson.M{"$in": ids},
			"recipient": recipient,
			"status": bson.M{"$in": []string{
				models.NotificationStatusActive, models.NotificationStatusArchived,
			}},
		},
		bson.M{"$set": bson.M{
			"status":    models.NotificationStatusTrash,
			"trashedAt": now,
			"expiresAt": expires,
			"updatedAt": now,
		}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to batch-trash notifications: %w", err)
	}
	return result.ModifiedCount, nil
}

// Restore moves a trashed notification back to active and clears its
// retention deadline.
func (r *MongoNotificationRepo) Restore(id, recipient string) (*models.Notification, error) {
	now := time.Now()
	return r.findOneAndUpdate(
		bson.M{"id": id, "recipient": recipient, "status": models.NotificationStatusTrash},
		bson.M{
			"$set":   bson.M{"status": models.NotificationStatusActive, "restoredAt": now, "updatedAt": now},
			"$unset": bson.M{"trashedAt": "", "expiresAt": ""},
		},
	)
}

// Archive moves an active notification to archived.
func (r *MongoNotificationRepo) Archive(id, recipient string) (*models.Notification, error) {
	now := time.Now()
	return r.findOneAndUpdate(
		bson.M{"id": id, "recipient": recipient, "status": models.NotificationStatusActive},
		bson.M{"$set": bson.M{"status": models.NotificationStatusArchived, "updatedAt": now}},
	)
}

// Activate moves an archived notification back to active.
func (r *MongoNotificationRepo) Activate(id, recipient string) (*models.Notification, error) {
	now := time.Now()
	return r.findOneAndUpdate(
		bson.M{"id": id, "recipient": recipient, "status": models.NotificationStatusArchived},
		bson.M{"$set": bson.M{"status": models.NotificationStatusActive, "updatedAt": now}},
	)
}

// MarkActioned moves an active or archived notification to actioned.
// Idempotence for already-actioned notifications is handled by the service.
func (r *MongoNotificationRepo) MarkActioned(id, recipient string) (*models.Notification, error) {
	now := time.Now()
	return r.findOneAndUpdate(
		bson.M{"id": id, "recipient": recipient, "status": bson.M{"$in": []string{
			models.NotificationStatusActive, models.NotificationStatusArchived,
		}}},
		bson.M{"$set": bson.M{
			"status":     models.NotificationStatusActioned,
			"actionedAt": now,
			"updatedAt":  now,
		}},
	)
}

// EmptyTrash flips all of the recipient's trashed notifications to deleted.
func (r *MongoNotificationRepo) EmptyTrash(recipient string) (int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	now := time.Now()
	result, err := r.coll.UpdateMany(ctx,
		bson.M{"recipient": recipient, "status": models.NotificationStatusTrash},
		bson.M{
			"$set":   bson.M{"status": models.NotificationStatusDeleted, "deletedAt": now, "updatedAt": now},
			"$unset": bson.M{"expiresAt": ""},
		},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to empty trash: %w", err)
	}
	return result.ModifiedCount, nil
}

// SweepExpiredTrash flips expired trash to deleted across all recipients.
func (r *MongoNotificationRepo) SweepExpiredTrash(now time.Time) (int64, error) {
	ctx, cancel := newContext(30 * time.Second)
	defer cancel()

	result, err := r.coll.UpdateMany(ctx,
		bson.M{
			"status":    models.NotificationStatusTrash,
			"expiresAt": bson.M{"$lte": now},
		},
		bson.M{
			"$set":   bson.M{"status": models.NotificationStatusDeleted, "deletedAt": now, "updatedAt": now},
			"$unset": bson.M{"expiresAt": ""},
		},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep expired trash: %w", err)
	}
	return result.ModifiedCount, nil
}
