package notification

import (
	"time"

	"coachly/models"
)

// renderers is the type-keyed strategy table. Each entry is independently
// testable and the table is open for extension without touching unrelated
// cases.
var renderers = map[string]renderFunc{
	TypeBookingRequested:         renderBookingRequested,
	TypeBookingConfirmed:         renderBookingConfirmed,
	TypeBookingRescheduled:       renderBookingRescheduled,
	TypeBookingCancelledByClient: renderBookingCancelled,
	TypeBookingCancelledByCoach:  renderBookingCancelled,
	TypeBookingCompleted:         renderBookingCompleted,

	TypeSessionReminder:    renderSessionReminder,
	TypeWebinarConfirmed:   renderWebinarConfirmed,
	TypeWebinarFull:        renderWebinarFull,
	TypeWebinarCancelled:   renderWebinarCancelled,
	TypeLiveSessionStarted: renderLiveSessionStarted,

	TypePaymentReceived: renderPaymentReceived,
	TypePaymentFailed:   renderPaymentFailed,
	TypeRefundIssued:    renderRefundIssued,
	TypePayoutSent:      renderPayoutSent,

	TypeProgramPublished:  renderProgramPublished,
	TypeProgramEnrollment: renderProgramEnrollment,

	TypeReviewReceived: renderReviewReceived,
	TypeReviewReminder: renderReviewReminder,

	TypeConnectionRequest:   renderConnectionRequest,
	TypeConnectionAccepted:  renderConnectionAccepted,
	TypeAchievementUnlocked: renderAchievementUnlocked,
	TypeResourceShared:      renderResourceShared,
	TypeMessageReceived:     renderMessageReceived,

	TypeProfileApproved: renderProfileModeration,
	TypeProfileRejected: renderProfileModeration,

	TypeWelcome:           renderWelcome,
	TypeEmailVerification: renderEmailVerification,
	TypePasswordReset:     renderPasswordReset,
	TypeAccountWarning:    renderAccountNotice,
	TypeAccountSuspended:  renderAccountNotice,
}

// requireBooking extracts the booking from the context or fails with a
// ContentGenerationError, which signals an upstream data bug.
func requireBooking(d Descriptor, c Context) (*models.Booking, error) {
	if c.Booking == nil {
		return nil, NewContentGenerationError(d.Type, "booking context missing")
	}
	return c.Booking, nil
}

// bookingData collects the booking fields every booking renderer forwards.
func bookingData(b *models.Booking) map[string]any {
	data := map[string]any{
		"bookingId": b.ID,
		"start":     b.Start.Format(time.RFC3339),
		"end":       b.End.Format(time.RFC3339),
		"status":    b.Status,
	}
	if b.CoachName != "" {
		data["coachName"] = b.CoachName
	}
	if b.ClientName != "" {
		data["clientName"] = b.ClientName
	}
	if b.IsWebinar {
		data["isWebinar"] = true
	}
	return data
}

func renderBookingRequested(d Descriptor, c Context) (Content, error) {
	b, err := requireBooking(d, c)
	if err != nil {
		return Content{}, err
	}
	if d.RecipientRole == RoleCoach && !b.IsWebinar && b.UserID == "" {
		return Content{}, NewContentGenerationError(d.Type, "booking has no client attached")
	}
	return Content{
		Title:   contentKey(d.Type, d.RecipientRole, "title"),
		Message: contentKey(d.Type, d.RecipientRole, "message"),
		Data:    bookingData(b),
	}, nil
}

func renderBookingConfirmed(d Descriptor, c Context) (Content, error) {
	b, err := requireBooking(d, c)
	if err != nil {
		return Content{}, err
	}
	if d.RecipientRole == RoleCoach && !b.IsWebinar && b.UserID == "" {
		return Content{}, NewContentGenerationError(d.Type, "booking has no client attached")
	}

	data := bookingData(b)
	actions := validActionsFor(d)
	if d.RecipientRole == RoleClient && b.PaymentStatus == models.PaymentStatusPending {
		actions = append([]string{ActionPayNow}, actions...)
		data["paymentStatus"] = b.PaymentStatus
	}
	data["validActions"] = actions

	return Content{
		Title:   contentKey(d.Type, d.RecipientRole, "title"),
		Message: contentKey(d.Type, d.RecipientRole, "message"),
		Data:    data,
	}, nil
}

func renderBookingRescheduled(d Descriptor, c Context) (Content, error) {
	b, err := requireBooking(d, c)
	if err != nil {
		return Content{}, err
	}
	data := bookingData(b)
	if prev, ok := d.Metadata["previousStart"].(string); ok {
		data["previousStart"] = prev
	}
	return Content{
		Title:   contentKey(d.Type, d.RecipientRole, "title"),
		Message: contentKey(d.Type, d.RecipientRole, "message"),
		Data:    data,
	}, nil
}

func renderBookingCancelled(d Descriptor, c Context) (Content, error) {
	b, err := requireBooking(d, c)
	if err != nil {
		return Content{}, err
	}
	data := bookingData(b)
	if reason := metaString(d.Metadata, "reason"); reason != "" {
		data["reason"] = reason
	}
	return Content{
		Title:   contentKey(d.Type, d.RecipientRole, "title"),
		Message: contentKey(d.Type, d.RecipientRole, "message"),
		Data:    data,
	}, nil
}

func renderBookingCompleted(d Descriptor, c Context) (Content, error) {
	b, err := requireBooking(d, c)
	if err != nil {
		return Content{}, err
	}
	return Content{
		Title:   contentKey(d.Type, d.RecipientRole, "title"),
		Message: contentKey(d.Type, d.RecipientRole, "message"),
		Data:    bookingData(b),
	}, nil
}

func renderSessionReminder(d Descriptor, c Context) (Content, error) {
	b, err := requireBooking(d, c)
	if err != nil {
		return Content{}, err
	}
	data := bookingData(b)
	if lead := metaString(d.Metadata, "leadTime"); lead != "" {
		data["leadTime"] = lead
	}
	return Content{
		Title:   contentKey(d.Type, d.RecipientRole, "title"),
		Message: contentKey(d.Type, d.RecipientRole, "message"),
		Data:    data,
	}, nil
}

func renderWebinarConfirmed(d Descriptor, c Context) (Content, error) {
	b, err := requireBooking(d, c)
	if err != nil {
		return Content{}, err
	}
	if !b.IsWebinar {
		return Content{}, NewContentGenerationError(d.Type, "booking is not a webinar")
	}
	return Content{
		Title:   contentKey(d.Type, d.RecipientRole, "title"),
		Message: contentKey(d.Type, d.RecipientRole, "message"),
		Data:    bookingData(b),
	}, nil
}

func renderWebinarFull(d Descriptor, c Context) (Content, error) {
	b, err := requireBooking(d, c)
	if err != nil {
		return Content{}, err
	}
	if !b.IsWebinar {
		return Content{}, NewContentGenerationError(d.Type, "booking is not a webinar")
	}
	data := bookingData(b)
	data["attendees"] = b.Attendees
	data["capacity"] = b.Capacity
	return Content{
		Title:   contentKey(d.Type, "", "title"),
		Message: contentKey(d.Type, "", "message"),
		Data:    data,
	}, nil
}

func renderWebinarCancelled(d Descriptor, c Context) (Content, error) {
	b, err := requireBooking(d, c)
	if err != nil {
		return Content{}, err
	}
	data := bookingData(b)
	if reason := metaString(d.Metadata, "reason"); reason != "" {
		data["reason"] = reason
	}
	return Content{
		Title:   contentKey(d.Type, d.RecipientRole, "title"),
		Message: contentKey(d.Type, d.RecipientRole, "message"),
		Data:    data,
	}, nil
}

func renderLiveSessionStarted(d Descriptor, c Context) (Content, error) {
	b, err := requireBooking(d, c)
	if err != nil {
		return Content{}, err
	}
	data := bookingData(b)
	if sessionID := metaString(d.Metadata, "liveSessionId"); sessionID != "" {
		data["liveSessionId"] = sessionID
	}
	return Content{
		Title:   contentKey(d.Type, "", "title"),
		Message: contentKey(d.Type, "", "message"),
		Data:    data,
	}, nil
}

// paymentData collects amount/currency/reference fields shared by the
// payment renderers. Amounts come from metadata per the fixed-point rules.
func paymentData(d Descriptor, c Context) map[string]any {
	data := map[string]any{
		"amount": formatAmount(d.Metadata),
	}
	if currency := metaString(d.Metadata, "currency"); currency != "" {
		data["currency"] = currency
	} else if c.Payment != nil && c.Payment.Currency != "" {
		data["currency"] = c.Payment.Currency
	}
	if c.Payment != nil {
		data["paymentId"] = c.Payment.ID
	}
	if bookingID := metaString(d.Metadata, "bookingId"); bookingID != "" {
		data["bookingId"] = bookingID
	} else if c.Booking != nil {
		data["bookingId"] = c.Booking.ID
	}
	if c.Booking != nil && c.Booking.CoachName != "" {
		data["coachName"] = c.Booking.CoachName
	}
	if c.Program != nil {
		data["programId"] = c.Program.ID
		data["programTitle"] = c.Program.Title
	}
	return data
}

func renderPaymentReceived(d Descriptor, c Context) (Content, error) {
	return Content{
		Title:   contentKey(d.Type, d.RecipientRole, "title"),
		Message: contentKey(d.Type, d.RecipientRole, "message"),
		Data:    paymentData(d, c),
	}, nil
}

func renderPaymentFailed(d Descriptor, c Context) (Content, error) {
	data := paymentData(d, c)
	if reason := metaString(d.Metadata, "reason"); reason != "" {
		data["reason"] = reason
	}
	return Content{
		Title:   contentKey(d.Type, "", "title"),
		Message: contentKey(d.Type, "", "message"),
		Data:    data,
	}, nil
}

func renderRefundIssued(d Descriptor, c Context) (Content, error) {
	return Content{
		Title:   contentKey(d.Type, "", "title"),
		Message: contentKey(d.Type, "", "message"),
		Data:    paymentData(d, c),
	}, nil
}

func renderPayoutSent(d Descriptor, c Context) (Content, error) {
	data := paymentData(d, c)
	if period := metaString(d.Metadata, "payoutPeriod"); period != "" {
		data["payoutPeriod"] = period
	}
	return Content{
		Title:   contentKey(d.Type, "", "title"),
		Message: contentKey(d.Type, "", "message"),
		Data:    data,
	}, nil
}

func renderProgramPublished(d Descriptor, c Context) (Content, error) {
	if c.Program == nil {
		return Content{}, NewContentGenerationError(d.Type, "program context missing")
	}
	data := map[string]any{
		"programId":    c.Program.ID,
		"programTitle": c.Program.Title,
	}
	if c.Program.CoachName != "" {
		data["coachName"] = c.Program.CoachName
	}
	return Content{
		Title:   contentKey(d.Type, "", "title"),
		Message: contentKey(d.Type, "", "message"),
		Data:    data,
	}, nil
}

func renderProgramEnrollment(d Descriptor, c Context) (Content, error) {
	if c.Program == nil {
		return Content{}, NewContentGenerationError(d.Type, "program context missing")
	}
	data := map[string]any{
		"programId":    c.Program.ID,
		"programTitle": c.Program.Title,
	}
	if clientName := metaString(d.Metadata, "clientName"); clientName != "" {
		data["clientName"] = clientName
	}
	return Content{
		Title:   contentKey(d.Type, d.RecipientRole, "title"),
		Message: contentKey(d.Type, d.RecipientRole, "message"),
		Data:    data,
	}, nil
}

func renderReviewReceived(d Descriptor, c Context) (Content, error) {
	b, err := requireBooking(d, c)
	if err != nil {
		return Content{}, err
	}
	data := bookingData(b)
	if rating, ok := metaNumber(d.Metadata, "rating"); ok {
		data["rating"] = rating
	}
	if reviewer := metaString(d.Metadata, "reviewerName"); reviewer != "" {
		data["reviewerName"] = reviewer
	}
	return Content{
		Title:   contentKey(d.Type, "", "title"),
		Message: contentKey(d.Type, "", "message"),
		Data:    data,
	}, nil
}

func renderReviewReminder(d Descriptor, c Context) (Content, error) {
	b, err := requireBooking(d, c)
	if err != nil {
		return Content{}, err
	}
	return Content{
		Title:   contentKey(d.Type, "", "title"),
		Message: contentKey(d.Type, "", "message"),
		Data:    bookingData(b),
	}, nil
}

// forwardMeta copies string metadata fields into data when present.
func forwardMeta(data map[string]any, meta map[string]any, keys ...string) {
	for _, key := range keys {
		if v := metaString(meta, key); v != "" {
			data[key] = v
		}
	}
}

func renderConnectionRequest(d Descriptor, c Context) (Content, error) {
	data := map[string]any{}
	forwardMeta(data, d.Metadata, "senderName", "senderId", "connectionId")
	return Content{
		Title:   contentKey(d.Type, "", "title"),
		Message: contentKey(d.Type, "", "message"),
		Data:    data,
	}, nil
}

func renderConnectionAccepted(d Descriptor, c Context) (Content, error) {
	data := map[string]any{}
	forwardMeta(data, d.Metadata, "senderName", "senderId", "connectionId")
	return Content{
		Title:   contentKey(d.Type, "", "title"),
		Message: contentKey(d.Type, "", "message"),
		Data:    data,
	}, nil
}

func renderAchievementUnlocked(d Descriptor, c Context) (Content, error) {
	data := map[string]any{}
	forwardMeta(data, d.Metadata, "achievementKey", "achievementName")
	return Content{
		Title:   contentKey(d.Type, "", "title"),
		Message: contentKey(d.Type, "", "message"),
		Data:    data,
	}, nil
}

func renderResourceShared(d Descriptor, c Context) (Content, error) {
	data := map[string]any{}
	forwardMeta(data, d.Metadata, "resourceId", "resourceName", "senderName")
	return Content{
		Title:   contentKey(d.Type, "", "title"),
		Message: contentKey(d.Type, "", "message"),
		Data:    data,
	}, nil
}

func renderMessageReceived(d Descriptor, c Context) (Content, error) {
	data := map[string]any{}
	forwardMeta(data, d.Metadata, "senderName", "senderId", "conversationId", "preview")
	return Content{
		Title:   contentKey(d.Type, "", "title"),
		Message: contentKey(d.Type, "", "message"),
		Data:    data,
	}, nil
}

func renderProfileModeration(d Descriptor, c Context) (Content, error) {
	data := map[string]any{}
	forwardMeta(data, d.Metadata, "reason", "profileSection")
	return Content{
		Title:   contentKey(d.Type, "", "title"),
		Message: contentKey(d.Type, "", "message"),
		Data:    data,
	}, nil
}

func renderWelcome(d Descriptor, c Context) (Content, error) {
	data := map[string]any{}
	forwardMeta(data, d.Metadata, "firstName")
	return Content{
		Title:   contentKey(d.Type, "", "title"),
		Message: contentKey(d.Type, "", "message"),
		Data:    data,
	}, nil
}

func renderEmailVerification(d Descriptor, c Context) (Content, error) {
	data := map[string]any{}
	forwardMeta(data, d.Metadata, "verificationUrl")
	if data["verificationUrl"] == nil {
		return Content{}, NewContentGenerationError(d.Type, "verificationUrl missing from metadata")
	}
	return Content{
		Title:   contentKey(d.Type, "", "title"),
		Message: contentKey(d.Type, "", "message"),
		Data:    data,
	}, nil
}

func renderPasswordReset(d Descriptor, c Context) (Content, error) {
	data := map[string]any{}
	forwardMeta(data, d.Metadata, "resetUrl")
	if data["resetUrl"] == nil {
		return Content{}, NewContentGenerationError(d.Type, "resetUrl missing from metadata")
	}
	return Content{
		Title:   contentKey(d.Type, "", "title"),
		Message: contentKey(d.Type, "", "message"),
		Data:    data,
	}, nil
}

func renderAccountNotice(d Descriptor, c Context) (Content, error) {
	data := map[string]any{}
	forwardMeta(data, d.Metadata, "reason", "until")
	return Content{
		Title:   contentKey(d.Type, "", "title"),
		Message: contentKey(d.Type, "", "message"),
		Data:    data,
	}, nil
}
