package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"coachly/config"
	"coachly/services/notification"
	"coachly/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Mailer performs the actual email delivery. Implementations own retry and
// provider specifics (Mailjet in production); the worker just hands jobs
// over.
type Mailer interface {
	Send(ctx context.Context, job notification.EmailJob) error
}

// LoggingMailer logs jobs instead of delivering them. Used outside
// production where no Mailjet credentials are configured.
type LoggingMailer struct {
	Logger *zap.Logger
}

func (m *LoggingMailer) Send(ctx context.Context, job notification.EmailJob) error {
	m.Logger.Info("email job (delivery disabled)",
		zap.String("type", job.NotificationType),
		zap.String("recipient", job.RecipientEmail),
		zap.Int64("template", job.MailjetTemplateID))
	return nil
}

// InitNotificationWorker runs the async worker in background. It consumes
// email send jobs and scheduled session reminders.
func InitNotificationWorker(mailer Mailer, dispatcher *notification.Dispatcher) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisEmailQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeEmailSend, handleEmailTask(mailer))
	mux.HandleFunc(tasks.TypeReminderSend, handleReminderTask(dispatcher))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[NotificationWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[NotificationWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[NotificationWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleEmailTask(mailer Mailer) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var job notification.EmailJob
		if err := json.Unmarshal(task.Payload(), &job); err != nil {
			log.Printf("[EmailHandler] invalid payload: %v", err)
			return err
		}
		// Returning the error hands retry/backoff to asynq: the email
		// channel's contract is at-least-once.
		return mailer.Send(ctx, job)
	}
}

func handleReminderTask(dispatcher *notification.Dispatcher) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		cfg := notification.SendConfig{
			Type:      notification.TypeSessionReminder,
			Recipient: p.Recipient,
			SubType:   p.Role,
			Metadata: map[string]any{
				"bookingId": p.BookingID,
				"leadTime":  p.LeadTime,
			},
		}
		if _, err := dispatcher.Send(ctx, cfg, nil); err != nil {
			log.Printf("[ReminderHandler] failed to dispatch reminder: %v", err)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisEmailQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[NotificationWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
