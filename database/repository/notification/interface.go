// File: database/repository/notification/interface.go
package notificationRepo

import (
	"time"

	"coachly/models"
)

// ListOptions controls notification list queries. Status selects the
// lifecycle bucket ("active", "archived", "trash"); Unread narrows to
// unread items when non-nil.
type ListOptions struct {
	Status  string
	Unread  *bool
	Page    int64
	PerPage int64
}

// NotificationRepository defines data access for the notification store.
// All mutating lifecycle methods operate only on the given recipient's own
// notifications.
type NotificationRepository interface {
	Create(n *models.Notification) error
	GetByID(id string) (*models.Notification, error)
	GetOwned(id, recipient string) (*models.Notification, error)
	List(recipient string, opts ListOptions) ([]models.Notification, int64, error)
	UnreadCount(recipient string) (int64, error)

	// FindRecentByTypeAndRef returns the newest notification of the given
	// type whose metadata reference field equals refValue and which was
	// created at or after since. Used for duplicate suppression.
	FindRecentByTypeAndRef(notifType, refField, refValue string, since time.Time) (*models.Notification, error)

	MarkRead(id, recipient string) (*models.Notification, error)
	MarkReadBatch(ids []string, recipient string) (int64, error)
	Trash(id, recipient string) (*models.Notification, error)
	Restore(id, recipient string) (*models.Notification, error)
	Archive(id, recipient string) (*models.Notification, error)
	Activate(id, recipient string) (*models.Notification, error)
	MarkActioned(id, recipient string) (*models.Notification, error)
	TrashBatch(ids []string, recipient string) (int64, error)
	EmptyTrash(recipient string) (int64, error)

	// SweepExpiredTrash flips trashed notifications whose expiresAt has
	// passed into the terminal deleted status. Returns the number swept.
	SweepExpiredTrash(now time.Time) (int64, error)

	AppendDeliveryRecord(id string, rec models.DeliveryRecord) error
}
