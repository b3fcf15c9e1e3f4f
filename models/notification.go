package models

import "time"

// Notification lifecycle statuses.
const (
	NotificationStatusActive   = "active"
	NotificationStatusArchived = "archived"
	NotificationStatusTrash    = "trash"
	NotificationStatusDeleted  = "deleted"
	NotificationStatusActioned = "actioned"
)

// Delivery channels.
const (
	ChannelInApp = "in_app"
	ChannelEmail = "email"
	ChannelPush  = "push"
)

// Per-channel delivery statuses.
const (
	DeliveryStatusPending   = "pending"
	DeliveryStatusSent      = "sent"
	DeliveryStatusFailed    = "failed"
	DeliveryStatusDelivered = "delivered"
	DeliveryStatusRead      = "read"
)

// TrashRetention is how long a trashed notification is kept before the
// retention sweep marks it deleted.
const TrashRetention = 30 * 24 * time.Hour

// NotificationAction describes an affordance a client may render (e.g. a
// "Pay now" button) together with the endpoint it should hit.
type NotificationAction struct {
	Type     string         `bson:"type" json:"type"`
	Label    string         `bson:"label" json:"label"`
	Endpoint string         `bson:"endpoint,omitempty" json:"endpoint,omitempty"`
	Data     map[string]any `bson:"data,omitempty" json:"data,omitempty"`
}

// DeliveryRecord tracks the outcome of one channel attempt.
type DeliveryRecord struct {
	Channel   string    `bson:"channel" json:"channel"`
	Status    string    `bson:"status" json:"status"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
	Error     string    `bson:"error,omitempty" json:"error,omitempty"`
}

// DeliveryInfo aggregates delivery bookkeeping for a notification.
type DeliveryInfo struct {
	Attempts    int              `bson:"attempts" json:"attempts"`
	MaxAttempts int              `bson:"maxAttempts" json:"maxAttempts"`
	LastAttempt *time.Time       `bson:"lastAttempt,omitempty" json:"lastAttempt,omitempty"`
	Records     []DeliveryRecord `bson:"records,omitempty" json:"records,omitempty"`
}

// NotificationMetadata carries at most one primary context reference plus
// free-form additional data.
type NotificationMetadata struct {
	BookingID      string         `bson:"bookingId,omitempty" json:"bookingId,omitempty"`
	LiveSessionID  string         `bson:"liveSessionId,omitempty" json:"liveSessionId,omitempty"`
	ProgramID      string         `bson:"programId,omitempty" json:"programId,omitempty"`
	PaymentID      string         `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	AdditionalData map[string]any `bson:"additionalData,omitempty" json:"additionalData,omitempty"`
}

// Notification is the persisted unit of delivery and of user-facing state.
// Field names are part of the contract with the notification tray; do not
// rename without a migration.
type Notification struct {
	ID        string `bson:"id" json:"id"`
	Recipient string `bson:"recipient" json:"recipient"`
	Sender    string `bson:"sender,omitempty" json:"sender,omitempty"`

	Type     string `bson:"type" json:"type"`
	SubType  string `bson:"subType,omitempty" json:"subType,omitempty"`
	Category string `bson:"category" json:"category"`
	Priority string `bson:"priority" json:"priority"`

	// Title and Message are either literal text or localization keys.
	Title   string         `bson:"title" json:"title"`
	Message string         `bson:"message" json:"message"`
	Data    map[string]any `bson:"data,omitempty" json:"data,omitempty"`

	Metadata NotificationMetadata `bson:"metadata,omitempty" json:"metadata,omitempty"`
	Actions  []NotificationAction `bson:"actions,omitempty" json:"actions,omitempty"`
	Channels []string             `bson:"channels" json:"channels"`
	Delivery DeliveryInfo         `bson:"delivery" json:"delivery"`

	Status     string     `bson:"status" json:"status"`
	IsRead     bool       `bson:"isRead" json:"isRead"`
	ReadAt     *time.Time `bson:"readAt,omitempty" json:"readAt,omitempty"`
	TrashedAt  *time.Time `bson:"trashedAt,omitempty" json:"trashedAt,omitempty"`
	RestoredAt *time.Time `bson:"restoredAt,omitempty" json:"restoredAt,omitempty"`
	DeletedAt  *time.Time `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
	ActionedAt *time.Time `bson:"actionedAt,omitempty" json:"actionedAt,omitempty"`
	ExpiresAt  *time.Time `bson:"expiresAt,omitempty" json:"expiresAt,omitempty"`

	GroupID    string `bson:"groupId,omitempty" json:"groupId,omitempty"`
	GroupOrder int    `bson:"groupOrder,omitempty" json:"groupOrder,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Terminal reports whether the notification has reached a terminal status.
func (n *Notification) Terminal() bool {
	return n.Status == NotificationStatusDeleted
}
