package models

import "time"

// NotificationPrefs holds a user's email notification toggles. The master
// toggle gates everything except mandatory types; category toggles gate one
// notification category each. A category missing from the map counts as
// enabled.
type NotificationPrefs struct {
	EmailEnabled bool            `bson:"email_enabled" json:"email_enabled"`
	Categories   map[string]bool `bson:"categories,omitempty" json:"categories,omitempty"`
}

// User represents a platform account (client or coach).
type User struct {
	ID       string `bson:"id" json:"id"`
	Name     string `bson:"name" json:"name"`
	Email    string `bson:"email" json:"email"`
	Role     string `bson:"role" json:"role"` // "client" or "coach"
	Language string `bson:"language,omitempty" json:"language,omitempty"`
	FCMToken string `bson:"fcm_token,omitempty" json:"fcm_token,omitempty"`

	NotificationPrefs NotificationPrefs `bson:"notification_prefs" json:"notification_prefs"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
