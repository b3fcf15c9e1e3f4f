package notification

import (
	"fmt"
	"time"

	notificationRepo "coachly/database/repository/notification"
	"coachly/models"

	"go.uber.org/zap"
)

// List returns a page of the recipient's notifications.
func (s *DefaultNotificationService) List(recipient string, opts notificationRepo.ListOptions) ([]models.Notification, int64, error) {
	return s.Repo.List(recipient, opts)
}

// UnreadCount returns the recipient's unread active notification count.
func (s *DefaultNotificationService) UnreadCount(recipient string) (int64, error) {
	return s.Repo.UnreadCount(recipient)
}

// MarkRead flags one notification as read and emits the read event.
func (s *DefaultNotificationService) MarkRead(recipient, id string) (*models.Notification, error) {
	n, err := s.Repo.MarkRead(id, recipient)
	if err != nil {
		return nil, err
	}
	s.emit(recipient, EventRead, map[string]any{
		"id":        n.ID,
		"isRead":    true,
		"timestamp": n.UpdatedAt,
	})
	return n, nil
}

// MarkReadBatch flags many notifications read; atomic per item, returns the
// modified count.
func (s *DefaultNotificationService) MarkReadBatch(recipient string, ids []string) (int64, error) {
	count, err := s.Repo.MarkReadBatch(ids, recipient)
	if err != nil {
		return 0, err
	}
	s.emit(recipient, EventReadBatch, map[string]any{
		"ids":       ids,
		"modified":  count,
		"timestamp": time.Now(),
	})
	return count, nil
}

// UpdateStatus moves a notification between the user-drivable lifecycle
// buckets: active, archived, trash. Restoring from trash is requested as
// status "active".
func (s *DefaultNotificationService) UpdateStatus(recipient, id, status string) (*models.Notification, error) {
	var (
		n   *models.Notification
		err error
	)
	switch status {
	case models.NotificationStatusTrash:
		n, err = s.Repo.Trash(id, recipient)
	case models.NotificationStatusArchived:
		n, err = s.Repo.Archive(id, recipient)
	case models.NotificationStatusActive:
		current, getErr := s.Repo.GetOwned(id, recipient)
		if getErr != nil {
			return nil, getErr
		}
		if current.Status == models.NotificationStatusTrash {
			n, err = s.Repo.Restore(id, recipient)
		} else {
			n, err = s.Repo.Activate(id, recipient)
		}
	default:
		return nil, NewValidationError(fmt.Sprintf("unsupported status %q", status))
	}
	if err != nil {
		return nil, err
	}

	s.emit(recipient, EventStatusChanged, map[string]any{
		"id":        n.ID,
		"status":    n.Status,
		"timestamp": n.UpdatedAt,
	})
	return n, nil
}

// MarkActioned records that the recipient completed the requested action.
// Idempotent: re-invoking on an already-actioned notification is a no-op.
func (s *DefaultNotificationService) MarkActioned(recipient, id string) (*models.Notification, error) {
	current, err := s.Repo.GetOwned(id, recipient)
	if err != nil {
		return nil, err
	}
	if current.Status == models.NotificationStatusActioned {
		return current, nil
	}

	n, err := s.Repo.MarkActioned(id, recipient)
	if err != nil {
		return nil, err
	}
	s.emit(recipient, EventStatusUpdated, map[string]any{
		"id":        n.ID,
		"status":    n.Status,
		"timestamp": n.UpdatedAt,
	})
	return n, nil
}

// TrashBatch trashes many notifications; atomic per item.
func (s *DefaultNotificationService) TrashBatch(recipient string, ids []string) (int64, error) {
	count, err := s.Repo.TrashBatch(ids, recipient)
	if err != nil {
		return 0, err
	}
	s.emit(recipient, EventStatusChanged, map[string]any{
		"ids":       ids,
		"status":    models.NotificationStatusTrash,
		"modified":  count,
		"timestamp": time.Now(),
	})
	return count, nil
}

// EmptyTrash terminally deletes everything in the recipient's trash.
func (s *DefaultNotificationService) EmptyTrash(recipient string) (int64, error) {
	count, err := s.Repo.EmptyTrash(recipient)
	if err != nil {
		return 0, err
	}
	s.emit(recipient, EventStatusChanged, map[string]any{
		"status":    models.NotificationStatusDeleted,
		"modified":  count,
		"timestamp": time.Now(),
	})
	return count, nil
}

// SweepExpiredTrash runs the retention pass, flipping expired trash to the
// terminal deleted status.
func (s *DefaultNotificationService) SweepExpiredTrash() (int64, error) {
	count, err := s.Repo.SweepExpiredTrash(time.Now())
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.logger().Info("retention sweep completed", zap.Int64("deleted", count))
	}
	return count, nil
}

// emit pushes a realtime event to the recipient, tolerating an absent or
// failing transport.
func (s *DefaultNotificationService) emit(recipient, event string, payload any) {
	if s.Realtime == nil {
		return
	}
	if err := s.Realtime.EmitToUser(recipient, event, payload); err != nil {
		s.logger().Debug("realtime emit failed",
			zap.String("event", event),
			zap.Error(err))
	}
}
