package notification

import (
	"context"
	"testing"

	"coachly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInAppChannelEmitsNotificationAndInvalidate(t *testing.T) {
	rt := &fakeRealtime{}
	ch := &InAppChannel{Realtime: rt}

	b := testBooking()
	n := &models.Notification{ID: "n1", Recipient: "user-1", Type: TypeBookingConfirmed}
	err := ch.Deliver(context.Background(), n, Context{Kind: ContextBooking, Booking: b})
	require.NoError(t, err)

	require.Len(t, rt.events, 2)
	assert.Equal(t, EventNotification, rt.events[0].Event)
	assert.Equal(t, "user-1", rt.events[0].UserID)
	payload, ok := rt.events[0].Payload.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, n, payload["notification"])
	ctxFields, ok := payload["context"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "bk-1", ctxFields["id"])

	assert.Equal(t, EventInvalidateNotifications, rt.events[1].Event)
}

func TestInAppChannelOmitsContextWhenNone(t *testing.T) {
	rt := &fakeRealtime{}
	ch := &InAppChannel{Realtime: rt}

	n := &models.Notification{ID: "n1", Recipient: "user-1", Type: TypeWelcome}
	require.NoError(t, ch.Deliver(context.Background(), n, Context{Kind: ContextNone}))

	require.Len(t, rt.events, 2)
	payload, ok := rt.events[0].Payload.(map[string]any)
	require.True(t, ok)
	_, hasContext := payload["context"]
	assert.False(t, hasContext)
}

func TestInAppChannelToleratesAbsentTransport(t *testing.T) {
	ch := &InAppChannel{}
	n := &models.Notification{ID: "n1", Recipient: "user-1"}
	assert.NoError(t, ch.Deliver(context.Background(), n, Context{Kind: ContextNone}))
}
