package models

import "time"

// Booking statuses as produced by the booking domain service.
const (
	BookingStatusRequested         = "requested"
	BookingStatusConfirmed         = "confirmed"
	BookingStatusRescheduled       = "rescheduled"
	BookingStatusCancelledByClient = "cancelled_by_client"
	BookingStatusCancelledByCoach  = "cancelled_by_coach"
	BookingStatusCompleted         = "completed"
)

// Booking represents a coaching session booking between a client and a coach.
type Booking struct {
	ID         string    `bson:"id" json:"id"`
	CoachID    string    `bson:"coach_id" json:"coach_id"`       // Coach who was booked (may be empty for webinar waitlists)
	UserID     string    `bson:"user_id" json:"user_id"`         // Client who made the booking
	ProgramID  string    `bson:"program_id,omitempty" json:"program_id,omitempty"`
	Status     string    `bson:"status" json:"status"`           // e.g. "requested", "confirmed"
	Start      time.Time `bson:"start" json:"start"`             // Session start
	End        time.Time `bson:"end" json:"end"`                 // Session end
	IsWebinar  bool      `bson:"is_webinar,omitempty" json:"is_webinar,omitempty"`
	Capacity   int       `bson:"capacity,omitempty" json:"capacity,omitempty"`   // Webinar seat cap
	Attendees  int       `bson:"attendees,omitempty" json:"attendees,omitempty"` // Current webinar enrollment
	TotalPrice float64   `bson:"total_price" json:"total_price"`
	Currency   string    `bson:"currency" json:"currency"`

	// Denormalized display names so the renderer never refetches users.
	CoachName  string `bson:"coach_name,omitempty" json:"coach_name,omitempty"`
	ClientName string `bson:"client_name,omitempty" json:"client_name,omitempty"`

	// PaymentStatus mirrors the linked payment ("pending", "paid", "failed").
	PaymentStatus string `bson:"payment_status,omitempty" json:"payment_status,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
