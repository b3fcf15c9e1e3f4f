package tasks

import (
	"encoding/json"
	"fmt"

	"coachly/services/notification"

	"github.com/hibiken/asynq"
)

const TypeEmailSend = "email:send"

// NewEmailTask builds the asynq task carrying an email job for the async
// mail worker.
func NewEmailTask(job notification.EmailJob) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(job)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeEmailSend, b)
	opts := []asynq.Option{asynq.MaxRetry(5), asynq.Queue("default")}

	return task, opts, nil
}

// AsynqEmailEnqueuer implements notification.EmailJobEnqueuer on an asynq
// client.
type AsynqEmailEnqueuer struct {
	Client *asynq.Client
}

func (e *AsynqEmailEnqueuer) Enqueue(job notification.EmailJob) error {
	task, opts, err := NewEmailTask(job)
	if err != nil {
		return fmt.Errorf("failed to build email task: %w", err)
	}
	if _, err := e.Client.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue email task: %w", err)
	}
	return nil
}
