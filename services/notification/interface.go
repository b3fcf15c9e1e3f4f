package notification

import (
	notificationRepo "coachly/database/repository/notification"
	"coachly/models"

	"go.uber.org/zap"
)

// NotificationService exposes the user-facing lifecycle of persisted
// notifications. Every operation is scoped to the acting recipient and
// touches only that recipient's own notifications.
type NotificationService interface {
	List(recipient string, opts notificationRepo.ListOptions) ([]models.Notification, int64, error)
	UnreadCount(recipient string) (int64, error)
	MarkRead(recipient, id string) (*models.Notification, error)
	MarkReadBatch(recipient string, ids []string) (int64, error)
	UpdateStatus(recipient, id, status string) (*models.Notification, error)
	MarkActioned(recipient, id string) (*models.Notification, error)
	TrashBatch(recipient string, ids []string) (int64, error)
	EmptyTrash(recipient string) (int64, error)
	SweepExpiredTrash() (int64, error)
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Repo     notificationRepo.NotificationRepository
	Realtime RealtimeNotifier
	Logger   *zap.Logger
}

func (s *DefaultNotificationService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.L()
}
