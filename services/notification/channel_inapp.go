package notification

import (
	"context"

	"coachly/models"

	"go.uber.org/zap"
)

// Realtime event names consumed by the notification tray.
const (
	EventNotification            = "notification"
	EventInvalidateNotifications = "invalidate_notifications"
	EventStatusChanged           = "notification_status_changed"
	EventRead                    = "notification_read"
	EventReadBatch               = "notification_read_batch"
	EventStatusUpdated           = "notification_status_updated"
)

// RealtimeNotifier pushes events to a user's private realtime channel.
// Implementations report ErrNoConnection-style failures as nil: an absent
// transport is not an error, the notification stays durably queryable.
type RealtimeNotifier interface {
	EmitToUser(userID, event string, payload any) error
}

// InAppChannel delivers the persisted notification over the realtime
// transport. Persistence already happened in the dispatcher; push here is a
// latency optimization, not the delivery guarantee.
type InAppChannel struct {
	Realtime RealtimeNotifier
	Logger   *zap.Logger
}

func (ch *InAppChannel) Name() string {
	return models.ChannelInApp
}

func (ch *InAppChannel) Deliver(ctx context.Context, n *models.Notification, c Context) error {
	if ch.Realtime == nil {
		return nil
	}

	payload := map[string]any{
		"notification": n,
	}
	if c.Kind != ContextNone {
		payload["context"] = c.CoreFields()
	}
	if err := ch.Realtime.EmitToUser(n.Recipient, EventNotification, payload); err != nil {
		return err
	}

	// Side signal so a connected client refetches instead of trusting a
	// potentially stale push payload.
	if err := ch.Realtime.EmitToUser(n.Recipient, EventInvalidateNotifications, nil); err != nil && ch.Logger != nil {
		ch.Logger.Warn("invalidate signal failed",
			zap.String("notification", n.ID),
			zap.Error(err))
	}
	return nil
}
