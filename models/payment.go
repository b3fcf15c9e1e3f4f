package models

import "time"

// Payment statuses.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// Payment is a payment record linked to a booking or a program enrollment.
type Payment struct {
	ID            string    `bson:"id" json:"id"`
	UserID        string    `bson:"user_id" json:"user_id"`
	CoachID       string    `bson:"coach_id,omitempty" json:"coach_id,omitempty"`
	BookingID     string    `bson:"booking_id,omitempty" json:"booking_id,omitempty"`
	ProgramID     string    `bson:"program_id,omitempty" json:"program_id,omitempty"`
	Amount        float64   `bson:"amount" json:"amount"`
	AmountInCents int64     `bson:"amount_in_cents,omitempty" json:"amount_in_cents,omitempty"`
	Currency      string    `bson:"currency" json:"currency"`
	Status        string    `bson:"status" json:"status"`
	Method        string    `bson:"method,omitempty" json:"method,omitempty"` // "card", "wallet"
	PaymentIntent string    `bson:"payment_intent,omitempty" json:"payment_intent,omitempty"`
	Error         string    `bson:"error,omitempty" json:"error,omitempty"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}
