package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"coachly/config"
	"coachly/services/notification"
	"coachly/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

const maxWebhookBodyBytes = int64(65536)

// StripeWebhookHandler turns payment events into notification dispatches.
// A dispatch failure never fails the webhook; Stripe retries are for
// signature and transport problems only.
type StripeWebhookHandler struct {
	Dispatcher *notification.Dispatcher
	Logger     *zap.Logger
}

func NewStripeWebhookHandler(d *notification.Dispatcher, logger *zap.Logger) *StripeWebhookHandler {
	return &StripeWebhookHandler{Dispatcher: d, Logger: logger}
}

func (h *StripeWebhookHandler) HandleWebhook(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBodyBytes)
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to read webhook body", err.Error())
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), config.AppConfig.StripeWebhookSecret)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "webhook signature verification failed", err.Error())
		return
	}

	switch event.Type {
	case "payment_intent.succeeded":
		h.dispatchPaymentEvent(c, event, notification.TypePaymentReceived)
	case "payment_intent.payment_failed":
		h.dispatchPaymentEvent(c, event, notification.TypePaymentFailed)
	default:
		h.Logger.Debug("ignoring stripe event", zap.String("type", string(event.Type)))
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

func (h *StripeWebhookHandler) dispatchPaymentEvent(c *gin.Context, event stripe.Event, notifType string) {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		h.Logger.Error("failed to parse payment intent",
			zap.String("event", string(event.Type)), zap.Error(err))
		return
	}

	metadata := map[string]any{
		"paymentId":     intent.ID,
		"amountInCents": intent.Amount,
		"currency":      string(intent.Currency),
	}
	if bookingID := intent.Metadata["bookingId"]; bookingID != "" {
		metadata["bookingId"] = bookingID
	}

	cfg := notification.SendConfig{
		Type:      notifType,
		Recipient: intent.Metadata["userId"],
		Metadata:  metadata,
	}
	if _, err := h.Dispatcher.Send(c.Request.Context(), cfg, nil); err != nil {
		h.Logger.Error("failed to dispatch payment notification",
			zap.String("type", notifType),
			zap.String("paymentIntent", intent.ID),
			zap.Error(err))
	}
}
