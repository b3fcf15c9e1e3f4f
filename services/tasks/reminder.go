package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TypeReminderSend = "reminder:send"

// ReminderPayload schedules a session_reminder dispatch shortly before a
// booked session starts.
type ReminderPayload struct {
	BookingID string `json:"bookingId"`
	Recipient string `json:"recipient"`
	Role      string `json:"role"` // "client" or "coach"
	LeadTime  string `json:"leadTime"`
}

// NewReminderTask builds a reminder task that fires at the given time.
func NewReminderTask(payload ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeReminderSend, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}
