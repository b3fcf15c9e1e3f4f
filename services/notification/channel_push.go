package notification

import (
	"context"
	"fmt"

	"coachly/database/repository"
	"coachly/models"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// PushSender sends one FCM message. Narrow so tests can fake it; the
// production implementation wraps utils.FCMClient.
type PushSender interface {
	Send(ctx context.Context, msg *messaging.Message) (string, error)
}

// PushChannel delivers a best-effort FCM push. A recipient without a
// registered device token is a silent skip, not an error.
type PushChannel struct {
	Users  repository.UserRepository
	Sender PushSender
	Logger *zap.Logger
}

func (ch *PushChannel) Name() string {
	return models.ChannelPush
}

func (ch *PushChannel) Deliver(ctx context.Context, n *models.Notification, c Context) error {
	if ch.Sender == nil {
		return nil
	}

	user, err := ch.Users.GetByID(n.Recipient)
	if err != nil {
		return fmt.Errorf("push: could not find user %s: %w", n.Recipient, err)
	}
	if user.FCMToken == "" {
		return nil
	}

	data := map[string]string{
		"notificationId": n.ID,
		"type":           n.Type,
		"category":       n.Category,
	}
	if n.Metadata.BookingID != "" {
		data["bookingId"] = n.Metadata.BookingID
	}
	if n.Metadata.ProgramID != "" {
		data["programId"] = n.Metadata.ProgramID
	}

	msg := &messaging.Message{
		Token: user.FCMToken,
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Message,
		},
		Data: data,
	}
	if n.Priority == PriorityHigh {
		msg.Android = &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		}
		msg.APNS = &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		}
	}

	response, err := ch.Sender.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("push: failed to send FCM message: %w", err)
	}
	if ch.Logger != nil {
		ch.Logger.Debug("push delivered",
			zap.String("notification", n.ID),
			zap.String("fcmResponse", response))
	}
	return nil
}

// FCMSender adapts the firebase messaging client to PushSender.
type FCMSender struct {
	Client *messaging.Client
}

func (s *FCMSender) Send(ctx context.Context, msg *messaging.Message) (string, error) {
	return s.Client.Send(ctx, msg)
}
