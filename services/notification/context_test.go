package notification

import (
	"testing"

	"coachly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveContextFreeTypeSkipsLookups(t *testing.T) {
	r := testResolver(nil, nil, nil)

	c, err := r.Resolve(TypeWelcome, map[string]any{"bookingId": "bk-1"}, nil)
	require.NoError(t, err)
	assert.Equal(t, ContextNone, c.Kind)
}

func TestResolveDirectEntityWinsOverMetadata(t *testing.T) {
	direct := testBooking()
	other := testBooking()
	other.ID = "bk-other"
	r := testResolver(map[string]*models.Booking{"bk-other": other}, nil, nil)

	c, err := r.Resolve(TypeBookingConfirmed, map[string]any{"bookingId": "bk-other"}, direct)
	require.NoError(t, err)
	require.Equal(t, ContextBooking, c.Kind)
	assert.Equal(t, "bk-1", c.Booking.ID)
}

func TestResolveBookingByMetadataReference(t *testing.T) {
	b := testBooking()
	r := testResolver(map[string]*models.Booking{"bk-1": b}, nil, nil)

	c, err := r.Resolve(TypeBookingConfirmed, map[string]any{"bookingId": "bk-1"}, nil)
	require.NoError(t, err)
	require.Equal(t, ContextBooking, c.Kind)
	assert.Equal(t, "client-1", c.UserID())
	assert.Equal(t, "coach-1", c.CoachID())
}

func TestResolvePaymentFallbackForPaymentTypes(t *testing.T) {
	payment := &models.Payment{ID: "pay-1", UserID: "client-1", BookingID: "bk-gone"}
	payments := &fakePaymentRepo{
		byBooking: map[string]*models.Payment{"bk-gone": payment},
	}
	r := testResolver(nil, payments, nil)

	// The booking is gone, but for a payment type the payment linked to the
	// booking reference still resolves.
	c, err := r.Resolve(TypePaymentReceived, map[string]any{"bookingId": "bk-gone"}, nil)
	require.NoError(t, err)
	require.Equal(t, ContextPayment, c.Kind)
	assert.Equal(t, "pay-1", c.Payment.ID)
}

func TestResolveNoPaymentFallbackForNonPaymentTypes(t *testing.T) {
	payments := &fakePaymentRepo{
		byBooking: map[string]*models.Payment{"bk-gone": {ID: "pay-1"}},
	}
	r := testResolver(nil, payments, nil)

	_, err := r.Resolve(TypeBookingConfirmed, map[string]any{"bookingId": "bk-gone"}, nil)
	var resErr *ContextResolutionError
	require.ErrorAs(t, err, &resErr)
}

func TestResolvePaymentByID(t *testing.T) {
	b := testBooking()
	payment := &models.Payment{ID: "pay-1", UserID: "client-1", BookingID: "bk-1"}
	payments := &fakePaymentRepo{payments: map[string]*models.Payment{"pay-1": payment}}
	r := testResolver(map[string]*models.Booking{"bk-1": b}, payments, nil)

	c, err := r.Resolve(TypeRefundIssued, map[string]any{"paymentId": "pay-1"}, nil)
	require.NoError(t, err)
	require.Equal(t, ContextPayment, c.Kind)
	// The linked booking comes along for the renderer.
	require.NotNil(t, c.Booking)
	assert.Equal(t, "bk-1", c.Booking.ID)
}

func TestResolveProgramByID(t *testing.T) {
	prog := &models.Program{ID: "prog-1", CoachID: "coach-1", Title: "Strength Basics"}
	r := testResolver(nil, nil, map[string]*models.Program{"prog-1": prog})

	c, err := r.Resolve(TypeProgramPublished, map[string]any{"programId": "prog-1"}, nil)
	require.NoError(t, err)
	require.Equal(t, ContextProgram, c.Kind)
	assert.Equal(t, "coach-1", c.CoachID())
	assert.Equal(t, "", c.UserID())
}

func TestResolveMissingReferenceIsAnError(t *testing.T) {
	r := testResolver(nil, nil, nil)

	_, err := r.Resolve(TypeBookingConfirmed, nil, nil)
	var resErr *ContextResolutionError
	require.ErrorAs(t, err, &resErr)

	_, err = r.Resolve(TypeBookingConfirmed, map[string]any{"bookingId": "bk-missing"}, nil)
	require.ErrorAs(t, err, &resErr)
}
