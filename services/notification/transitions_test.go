package notification

import (
	"testing"
	"time"

	"coachly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBooking() *models.Booking {
	return &models.Booking{
		ID:      "bk-1",
		UserID:  "client-1",
		CoachID: "coach-1",
		Status:  models.BookingStatusConfirmed,
		Start:   time.Now().Add(24 * time.Hour),
		End:     time.Now().Add(25 * time.Hour),
	}
}

func TestDescriptorsForBookingConfirmedNotifiesBothParties(t *testing.T) {
	ds := DescriptorsForBookingStatus(models.BookingStatusConfirmed, testBooking(), nil)
	require.Len(t, ds, 2)

	// "both" expands client first, then coach.
	assert.Equal(t, RoleClient, ds[0].RecipientRole)
	assert.Equal(t, "client-1", ds[0].Recipient)
	assert.Equal(t, RoleCoach, ds[1].RecipientRole)
	assert.Equal(t, "coach-1", ds[1].Recipient)

	for _, d := range ds {
		assert.Equal(t, TypeBookingConfirmed, d.Type)
		assert.Equal(t, CategoryBooking, d.Category)
		assert.Equal(t, PriorityHigh, d.Priority)
		assert.Equal(t, "bk-1", d.Metadata["bookingId"])
	}
}

func TestDescriptorsForBookingRequestedScopesClientToInApp(t *testing.T) {
	ds := DescriptorsForBookingStatus(models.BookingStatusRequested, testBooking(), nil)
	require.Len(t, ds, 2)

	assert.Equal(t, RoleCoach, ds[0].RecipientRole)
	assert.Equal(t, []string{"in_app", "email", "push"}, ds[0].Channels)

	assert.Equal(t, RoleClient, ds[1].RecipientRole)
	assert.Equal(t, []string{models.ChannelInApp}, ds[1].Channels)
}

func TestDescriptorsDropRulesWithMissingRecipient(t *testing.T) {
	booking := testBooking()
	booking.CoachID = ""

	ds := DescriptorsForBookingStatus(models.BookingStatusConfirmed, booking, nil)
	require.Len(t, ds, 1)
	assert.Equal(t, RoleClient, ds[0].RecipientRole)
}

func TestDescriptorsMergeExtraMetadataBookingWins(t *testing.T) {
	booking := testBooking()
	booking.ProgramID = "prog-1"

	ds := DescriptorsForBookingStatus(models.BookingStatusCompleted, booking, map[string]any{
		"bookingId": "stale-ref",
		"source":    "scheduler",
	})
	require.NotEmpty(t, ds)

	// The entity's own reference takes precedence over caller metadata.
	assert.Equal(t, "bk-1", ds[0].Metadata["bookingId"])
	assert.Equal(t, "prog-1", ds[0].Metadata["programId"])
	assert.Equal(t, "scheduler", ds[0].Metadata["source"])
}

func TestDescriptorsForUnknownStatusOrNilBooking(t *testing.T) {
	assert.Nil(t, DescriptorsForBookingStatus("no_such_status", testBooking(), nil))
	assert.Nil(t, DescriptorsForBookingStatus(models.BookingStatusConfirmed, nil, nil))
}
