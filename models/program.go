package models

import "time"

// Program is a multi-session coaching program a coach publishes and clients
// enroll in.
type Program struct {
	ID        string    `bson:"id" json:"id"`
	CoachID   string    `bson:"coach_id" json:"coach_id"`
	Title     string    `bson:"title" json:"title"`
	Status    string    `bson:"status" json:"status"` // "draft", "published", "archived"
	Price     float64   `bson:"price" json:"price"`
	Currency  string    `bson:"currency" json:"currency"`
	StartDate time.Time `bson:"start_date,omitempty" json:"start_date,omitempty"`
	Sessions  int       `bson:"sessions,omitempty" json:"sessions,omitempty"`
	CoachName string    `bson:"coach_name,omitempty" json:"coach_name,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
