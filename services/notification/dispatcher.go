package notification

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"coachly/database/repository"
	notificationRepo "coachly/database/repository/notification"
	"coachly/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DedupWindow is the span within which a repeat send of a
// suppression-sensitive type for the same context is dropped as a duplicate.
const DedupWindow = 5 * time.Minute

// dedupTypes are idempotency-sensitive: upstream at-least-once retries must
// not produce duplicate user-facing notifications.
var dedupTypes = map[string]bool{
	TypePaymentReceived: true,
	TypeRefundIssued:    true,
}

// SendConfig is the dispatcher entry-point payload, produced by domain
// services (directly or via the status transition mapper).
type SendConfig struct {
	Type           string
	Recipient      string
	Sender         string
	SubType        string
	Category       string
	Priority       string
	Channels       []string
	RequiresAction *bool
	ValidActions   []string
	Metadata       map[string]any
	GroupID        string
	GroupOrder     int
}

// Channel delivers an already-persisted notification over one transport.
// Implementations must be independently fallible: an error is recorded and
// logged by the dispatcher, never propagated to the caller.
type Channel interface {
	Name() string
	Deliver(ctx context.Context, n *models.Notification, c Context) error
}

// Dispatcher orchestrates recipient resolution, duplicate suppression,
// context resolution, content generation, persistence and channel fanout.
type Dispatcher struct {
	Repo     notificationRepo.NotificationRepository
	Resolver *ContextResolver
	Channels []Channel
	Logger   *zap.Logger
}

// Send creates and delivers one notification. It returns the persisted
// notification, or nil when the send was suppressed as a duplicate. Fatal
// errors (ConfigurationError, ContextResolutionError,
// ContentGenerationError, ValidationError, persistence failure) abort the
// send; channel failures do not.
func (dp *Dispatcher) Send(ctx context.Context, cfg SendConfig, contextArg any) (*models.Notification, error) {
	logger := dp.Logger
	if logger == nil {
		logger = zap.L()
	}

	info, known := LookupType(cfg.Type)
	if !known {
		logger.Warn("notification type not in registry, using conservative default",
			zap.String("type", cfg.Type))
	}

	// Context is resolved lazily: the recipient fallback chain may need it
	// before the pipeline's own resolution step.
	var (
		resolved   Context
		resolveErr error
		once       sync.Once
	)
	resolve := func() (Context, error) {
		once.Do(func() {
			resolved, resolveErr = dp.Resolver.Resolve(cfg.Type, cfg.Metadata, contextArg)
		})
		return resolved, resolveErr
	}

	// 1. Recipient resolution. The fallback chain is sender, then the
	// context's client, then the context's coach. No silent fallback to a
	// fixed identity: failing to resolve is a hard error.
	recipient := cfg.Recipient
	if recipient == "" {
		recipient = cfg.Sender
	}
	if recipient == "" {
		if c, err := resolve(); err == nil {
			recipient = c.UserID()
			if recipient == "" {
				recipient = c.CoachID()
			}
		}
	}
	if recipient == "" {
		return nil, NewConfigurationError(fmt.Sprintf("no recipient resolvable for type %s", cfg.Type))
	}

	// 2. Duplicate suppression for idempotency-sensitive types.
	if dedupTypes[cfg.Type] {
		refField, refValue := dedupRef(cfg.Metadata)
		if refValue != "" {
			existing, err := dp.Repo.FindRecentByTypeAndRef(cfg.Type, refField, refValue, time.Now().Add(-DedupWindow))
			if err == nil && existing != nil {
				logger.Info("suppressing duplicate notification",
					zap.String("type", cfg.Type),
					zap.String(refField, refValue),
					zap.String("existing", existing.ID))
				return nil, nil
			}
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				logger.Warn("dedup lookup failed, proceeding with send", zap.Error(err))
			}
		}
	}

	// 3. Context resolution.
	resolvedCtx, err := resolve()
	if err != nil {
		return nil, err
	}

	// 4. Content generation.
	descriptor := dp.descriptorFromConfig(cfg, info, recipient)
	content, err := Render(descriptor, resolvedCtx)
	if err != nil {
		return nil, err
	}

	// 5. Persistence.
	n, err := dp.buildNotification(cfg, info, descriptor, content)
	if err != nil {
		return nil, err
	}
	if err := dp.Repo.Create(n); err != nil {
		return nil, fmt.Errorf("persisting notification: %w", err)
	}

	// 6. Fanout. Channels are fully independent; a failure in one neither
	// prevents nor rolls back the others, and never fails the send.
	dp.fanout(ctx, n, resolvedCtx, logger)

	return n, nil
}

// SendForBookingStatus runs the status transition mapper and dispatches the
// resulting descriptor set. Per-descriptor failures are logged and do not
// stop the remaining sends.
func (dp *Dispatcher) SendForBookingStatus(ctx context.Context, status string, booking *models.Booking, extra map[string]any) []*models.Notification {
	logger := dp.Logger
	if logger == nil {
		logger = zap.L()
	}

	var sent []*models.Notification
	for _, d := range DescriptorsForBookingStatus(status, booking, extra) {
		cfg := SendConfig{
			Type:      d.Type,
			Recipient: d.Recipient,
			Category:  d.Category,
			Priority:  d.Priority,
			Channels:  d.Channels,
			Metadata:  d.Metadata,
			SubType:   d.RecipientRole,
		}
		n, err := dp.Send(ctx, cfg, booking)
		if err != nil {
			logger.Error("booking status notification failed",
				zap.String("status", status),
				zap.String("type", d.Type),
				zap.String("recipient", d.Recipient),
				zap.Error(err))
			continue
		}
		if n != nil {
			sent = append(sent, n)
		}
	}
	return sent
}

func (dp *Dispatcher) descriptorFromConfig(cfg SendConfig, info TypeInfo, recipient string) Descriptor {
	channels := cfg.Channels
	if len(channels) == 0 {
		channels = info.DefaultChannels
	}
	requiresAction := info.RequiresAction
	if cfg.RequiresAction != nil {
		requiresAction = *cfg.RequiresAction
	}
	return Descriptor{
		Type:           cfg.Type,
		Recipient:      recipient,
		RecipientRole:  cfg.SubType,
		Priority:       firstNonEmpty(cfg.Priority, info.Priority),
		Category:       firstNonEmpty(cfg.Category, info.Category),
		Channels:       channels,
		RequiresAction: requiresAction,
		ValidActions:   cfg.ValidActions,
		Metadata:       cfg.Metadata,
	}
}

func (dp *Dispatcher) buildNotification(cfg SendConfig, info TypeInfo, d Descriptor, content Content) (*models.Notification, error) {
	if d.Recipient == "" || content.Title == "" || content.Message == "" {
		return nil, NewValidationError("notification requires recipient, title and message")
	}

	n := &models.Notification{
		ID:        uuid.New().String(),
		Recipient: d.Recipient,
		Sender:    cfg.Sender,
		Type:      d.Type,
		SubType:   cfg.SubType,
		// Category is always derivable from the type via the registry when
		// not explicitly supplied.
		Category: d.Category,
		Priority: d.Priority,
		Title:    content.Title,
		Message:  content.Message,
		Data:     content.Data,
		Metadata: metadataFromMap(cfg.Metadata),
		Actions:  buildActions(d, content.Data),
		Channels: d.Channels,
		Delivery: models.DeliveryInfo{Attempts: 0, MaxAttempts: 3},
		Status:   models.NotificationStatusActive,
		GroupID:  cfg.GroupID,
	}
	if cfg.GroupID != "" {
		n.GroupOrder = cfg.GroupOrder
	}
	return n, nil
}

func (dp *Dispatcher) fanout(ctx context.Context, n *models.Notification, c Context, logger *zap.Logger) {
	requested := make(map[string]bool, len(n.Channels))
	for _, ch := range n.Channels {
		requested[ch] = true
	}

	var wg sync.WaitGroup
	for _, channel := range dp.Channels {
		if !requested[channel.Name()] {
			continue
		}
		wg.Add(1)
		go func(ch Channel) {
			defer wg.Done()
			rec := models.DeliveryRecord{Channel: ch.Name(), Timestamp: time.Now()}
			if err := ch.Deliver(ctx, n, c); err != nil {
				deliveryErr := &ChannelDeliveryError{Channel: ch.Name(), Err: err}
				logger.Error("channel delivery failed",
					zap.String("notification", n.ID),
					zap.String("channel", ch.Name()),
					zap.Error(deliveryErr))
				rec.Status = models.DeliveryStatusFailed
				rec.Error = err.Error()
			} else {
				rec.Status = models.DeliveryStatusSent
			}
			if err := dp.Repo.AppendDeliveryRecord(n.ID, rec); err != nil {
				logger.Warn("failed to record delivery outcome",
					zap.String("notification", n.ID),
					zap.String("channel", ch.Name()),
					zap.Error(err))
			}
		}(channel)
	}
	wg.Wait()
}

// dedupRef picks the context reference a duplicate check keys on: the
// booking reference when present, the payment reference otherwise.
func dedupRef(meta map[string]any) (string, string) {
	if v := metaString(meta, "bookingId"); v != "" {
		return "bookingId", v
	}
	if v := metaString(meta, "paymentId"); v != "" {
		return "paymentId", v
	}
	return "", ""
}

func metadataFromMap(meta map[string]any) models.NotificationMetadata {
	m := models.NotificationMetadata{
		BookingID:     metaString(meta, "bookingId"),
		LiveSessionID: metaString(meta, "liveSessionId"),
		ProgramID:     metaString(meta, "programId"),
		PaymentID:     metaString(meta, "paymentId"),
	}
	extra := make(map[string]any)
	for k, v := range meta {
		switch k {
		case "bookingId", "liveSessionId", "programId", "paymentId":
		default:
			extra[k] = v
		}
	}
	if len(extra) > 0 {
		m.AdditionalData = extra
	}
	return m
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
