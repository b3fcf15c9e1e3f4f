package notification

import (
	"context"
	"encoding/json"
	"time"

	"coachly/database/repository"
	"coachly/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// EmailJob is the contract with the async mail worker. Delivery and retry
// are the worker's responsibility; this channel only enqueues.
type EmailJob struct {
	NotificationType  string         `json:"notificationType"`
	RecipientEmail    string         `json:"recipientEmail"`
	Language          string         `json:"language"`
	TemplateData      map[string]any `json:"templateData"`
	MailjetTemplateID int64          `json:"mailjetTemplateId"`
}

// EmailJobEnqueuer enqueues a send job on the async email worker.
type EmailJobEnqueuer interface {
	Enqueue(job EmailJob) error
}

// emailTemplates maps notification types to mailjet template ids. Email is
// opt-in per type: a type missing here is silently skipped.
var emailTemplates = map[string]int64{
	TypeBookingRequested:         5201110,
	TypeBookingConfirmed:         5201112,
	TypeBookingRescheduled:       5201114,
	TypeBookingCancelledByClient: 5201116,
	TypeBookingCancelledByCoach:  5201117,
	TypeBookingCompleted:         5201119,
	TypeWebinarConfirmed:         5201121,
	TypeWebinarFull:              5201122,
	TypeWebinarCancelled:         5201123,
	TypePaymentReceived:          5201130,
	TypePaymentFailed:            5201131,
	TypeRefundIssued:             5201132,
	TypePayoutSent:               5201133,
	TypeProgramPublished:         5201140,
	TypeProgramEnrollment:        5201141,
	TypeResourceShared:           5201145,
	TypeReviewReceived:           5201150,
	TypeProfileApproved:          5201160,
	TypeProfileRejected:          5201161,
	TypeWelcome:                  5201170,
	TypeEmailVerification:        5201171,
	TypePasswordReset:            5201172,
	TypeAccountWarning:           5201173,
	TypeAccountSuspended:         5201174,
}

// mandatoryEmailTypes bypass user preference checks entirely.
var mandatoryEmailTypes = map[string]bool{
	TypeEmailVerification: true,
	TypePasswordReset:     true,
	TypeAccountSuspended:  true,
}

const prefsCacheTTL = 5 * time.Minute

// EmailChannel resolves a template, applies the recipient's notification
// preferences and enqueues an asynchronous send job. It never blocks on
// actual SMTP/API delivery.
type EmailChannel struct {
	Users    repository.UserRepository
	Enqueuer EmailJobEnqueuer
	Cache    *redis.Client
	Logger   *zap.Logger
}

func (ch *EmailChannel) Name() string {
	return models.ChannelEmail
}

func (ch *EmailChannel) Deliver(ctx context.Context, n *models.Notification, c Context) error {
	templateID, ok := emailTemplates[n.Type]
	if !ok {
		// Email is opt-in per type.
		return nil
	}

	user, err := ch.loadUser(ctx, n.Recipient)
	if err != nil {
		return err
	}
	if user.Email == "" {
		return nil
	}

	if !mandatoryEmailTypes[n.Type] && !emailAllowed(user, n.Category) {
		if ch.Logger != nil {
			ch.Logger.Debug("email suppressed by user preferences",
				zap.String("notification", n.ID),
				zap.String("category", n.Category))
		}
		return nil
	}

	job := EmailJob{
		NotificationType:  n.Type,
		RecipientEmail:    user.Email,
		Language:          languageOrDefault(user.Language),
		TemplateData:      templateData(n),
		MailjetTemplateID: templateID,
	}
	return ch.Enqueuer.Enqueue(job)
}

// emailAllowed checks the master toggle and the per-category toggle. A
// category missing from the map counts as enabled.
func emailAllowed(user *models.User, category string) bool {
	prefs := user.NotificationPrefs
	if !prefs.EmailEnabled {
		return false
	}
	if enabled, ok := prefs.Categories[category]; ok && !enabled {
		return false
	}
	return true
}

func languageOrDefault(lang string) string {
	if lang == "" {
		return "en"
	}
	return lang
}

// templateData merges the rendered content with the metadata the templates
// interpolate.
func templateData(n *models.Notification) map[string]any {
	data := map[string]any{
		"title":   n.Title,
		"message": n.Message,
	}
	for k, v := range n.Data {
		data[k] = v
	}
	if n.Metadata.BookingID != "" {
		data["bookingId"] = n.Metadata.BookingID
	}
	if n.Metadata.ProgramID != "" {
		data["programId"] = n.Metadata.ProgramID
	}
	for k, v := range n.Metadata.AdditionalData {
		if _, exists := data[k]; !exists {
			data[k] = v
		}
	}
	return data
}

// loadUser fetches the recipient, serving repeat lookups from the redis
// cache for a few minutes.
func (ch *EmailChannel) loadUser(ctx context.Context, userID string) (*models.User, error) {
	cacheKey := "notifprefs:" + userID

	if ch.Cache != nil {
		if raw, err := ch.Cache.Get(ctx, cacheKey).Result(); err == nil {
			var user models.User
			if jsonErr := json.Unmarshal([]byte(raw), &user); jsonErr == nil {
				return &user, nil
			}
		}
	}

	user, err := ch.Users.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if ch.Cache != nil {
		if raw, err := json.Marshal(user); err == nil {
			ch.Cache.Set(ctx, cacheKey, raw, prefsCacheTTL)
		}
	}
	return user, nil
}
