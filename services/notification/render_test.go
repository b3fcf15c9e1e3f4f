package notification

import (
	"testing"

	"coachly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		name string
		meta map[string]any
		want string
	}{
		{"cents int", map[string]any{"amountInCents": 4999}, "49.99"},
		{"cents int64", map[string]any{"amountInCents": int64(150000)}, "1500.00"},
		{"cents json float", map[string]any{"amountInCents": float64(4999)}, "49.99"},
		{"cents wins over float", map[string]any{"amountInCents": 1000, "amount": 99.99}, "10.00"},
		{"float amount", map[string]any{"amount": 49.99}, "49.99"},
		{"zero is a real amount", map[string]any{"amountInCents": 0}, "0.00"},
		{"zero float", map[string]any{"amount": 0.0}, "0.00"},
		{"missing", map[string]any{}, "unknown"},
		{"nil meta", nil, "unknown"},
		{"non numeric", map[string]any{"amount": "49.99"}, "unknown"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, formatAmount(tc.meta))
		})
	}
}

func TestRenderUnknownTypeFallsBackToGeneric(t *testing.T) {
	d := Descriptor{
		Type:         "exotic_new_type",
		ValidActions: []string{ActionView},
	}
	content, err := Render(d, Context{Kind: ContextNone})
	require.NoError(t, err)

	assert.Equal(t, "exotic_new_type", content.Title)
	assert.Equal(t, "exotic_new_type", content.Message)
	assert.Equal(t, []string{ActionView}, content.Data["validActions"])
}

func TestRenderInjectsRegistryValidActions(t *testing.T) {
	b := testBooking()
	d := Descriptor{Type: TypeBookingCompleted, RecipientRole: RoleClient}

	content, err := Render(d, Context{Kind: ContextBooking, Booking: b})
	require.NoError(t, err)

	info, _ := LookupType(TypeBookingCompleted)
	assert.Equal(t, info.ValidActions, content.Data["validActions"])
	assert.Equal(t, "notifications.booking_completed.client.title", content.Title)
	assert.Equal(t, "notifications.booking_completed.client.message", content.Message)
}

func TestRenderBookingConfirmedPrependsPayNowForUnpaidClient(t *testing.T) {
	b := testBooking()
	b.PaymentStatus = models.PaymentStatusPending
	d := Descriptor{
		Type:          TypeBookingConfirmed,
		RecipientRole: RoleClient,
		ValidActions:  []string{ActionView, ActionReschedule},
	}

	content, err := Render(d, Context{Kind: ContextBooking, Booking: b})
	require.NoError(t, err)

	actions, ok := content.Data["validActions"].([]string)
	require.True(t, ok)
	assert.Equal(t, []string{ActionPayNow, ActionView, ActionReschedule}, actions)
	assert.Equal(t, models.PaymentStatusPending, content.Data["paymentStatus"])
}

func TestRenderBookingConfirmedCoachDoesNotGetPayNow(t *testing.T) {
	b := testBooking()
	b.PaymentStatus = models.PaymentStatusPending
	d := Descriptor{
		Type:          TypeBookingConfirmed,
		RecipientRole: RoleCoach,
		ValidActions:  []string{ActionView},
	}

	content, err := Render(d, Context{Kind: ContextBooking, Booking: b})
	require.NoError(t, err)
	assert.Equal(t, []string{ActionView}, content.Data["validActions"])
}

func TestRenderBookingConfirmedCoachWithoutClientFails(t *testing.T) {
	b := testBooking()
	b.UserID = ""
	d := Descriptor{Type: TypeBookingConfirmed, RecipientRole: RoleCoach}

	_, err := Render(d, Context{Kind: ContextBooking, Booking: b})
	var genErr *ContentGenerationError
	require.ErrorAs(t, err, &genErr)
}

func TestRenderWebinarTypeOnRegularBookingFails(t *testing.T) {
	b := testBooking()
	d := Descriptor{Type: TypeWebinarConfirmed, RecipientRole: RoleClient}

	_, err := Render(d, Context{Kind: ContextBooking, Booking: b})
	var genErr *ContentGenerationError
	require.ErrorAs(t, err, &genErr)
}

func TestRenderBookingTypeWithoutBookingContextFails(t *testing.T) {
	d := Descriptor{Type: TypeBookingConfirmed, RecipientRole: RoleClient}

	_, err := Render(d, Context{Kind: ContextNone})
	var genErr *ContentGenerationError
	require.ErrorAs(t, err, &genErr)
}

func TestRenderEmailVerificationRequiresURL(t *testing.T) {
	d := Descriptor{Type: TypeEmailVerification}
	_, err := Render(d, Context{Kind: ContextNone})
	var genErr *ContentGenerationError
	require.ErrorAs(t, err, &genErr)

	d.Metadata = map[string]any{"verificationUrl": "https://coachly.example/verify/abc"}
	content, err := Render(d, Context{Kind: ContextNone})
	require.NoError(t, err)
	assert.Equal(t, "https://coachly.example/verify/abc", content.Data["verificationUrl"])
}

func TestRenderPaymentReceivedFormatsAmountFromCents(t *testing.T) {
	d := Descriptor{
		Type:          TypePaymentReceived,
		RecipientRole: RoleCoach,
		Metadata:      map[string]any{"amountInCents": int64(4999), "currency": "usd", "bookingId": "bk-1"},
	}

	content, err := Render(d, Context{Kind: ContextNone})
	require.NoError(t, err)
	assert.Equal(t, "49.99", content.Data["amount"])
	assert.Equal(t, "usd", content.Data["currency"])
	assert.Equal(t, "bk-1", content.Data["bookingId"])
}

func TestRenderEveryRegisteredTypeHasARenderer(t *testing.T) {
	for typ := range typeRegistry {
		_, ok := renderers[typ]
		assert.True(t, ok, "type %s has no renderer", typ)
	}
}

func TestRenderEveryRegisteredTypeProducesContent(t *testing.T) {
	booking := testBooking()
	booking.IsWebinar = true
	booking.Capacity = 20
	booking.Attendees = 20
	bookingCtx := Context{Kind: ContextBooking, Booking: booking}

	payment := &models.Payment{ID: "pay-1", UserID: "client-1", Currency: "usd"}
	paymentCtx := Context{Kind: ContextPayment, Payment: payment}

	program := &models.Program{ID: "prog-1", CoachID: "coach-1", Title: "Strength Basics"}
	programCtx := Context{Kind: ContextProgram, Program: program}

	meta := map[string]any{
		"verificationUrl": "https://coachly.example/verify/abc",
		"resetUrl":        "https://coachly.example/reset/abc",
		"amountInCents":   int64(4999),
	}

	for typ, info := range typeRegistry {
		ctx := bookingCtx
		switch info.Category {
		case CategoryPayment:
			ctx = paymentCtx
		}
		switch typ {
		case TypeProgramPublished, TypeProgramEnrollment:
			ctx = programCtx
		}
		if IsContextFree(typ) {
			ctx = Context{Kind: ContextNone}
		}

		d := Descriptor{Type: typ, RecipientRole: RoleClient, Metadata: meta}
		content, err := Render(d, ctx)
		require.NoError(t, err, "type %s", typ)
		assert.NotEmpty(t, content.Title, "type %s", typ)
		assert.NotEmpty(t, content.Message, "type %s", typ)
		assert.NotNil(t, content.Data["validActions"], "type %s", typ)
	}
}
