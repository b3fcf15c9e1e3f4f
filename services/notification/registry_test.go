package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupTypeKnown(t *testing.T) {
	info, ok := LookupType(TypeBookingConfirmed)
	require.True(t, ok)
	assert.Equal(t, CategoryBooking, info.Category)
	assert.Equal(t, PriorityHigh, info.Priority)
	assert.Equal(t, []string{"in_app", "email", "push"}, info.DefaultChannels)
	assert.False(t, info.RequiresAction)
	assert.Contains(t, info.ValidActions, ActionReschedule)
}

func TestLookupTypeUnknownFallsBackConservatively(t *testing.T) {
	info, ok := LookupType("definitely_not_registered")
	require.False(t, ok)
	assert.Equal(t, CategorySystem, info.Category)
	assert.Equal(t, PriorityLow, info.Priority)
	assert.Equal(t, []string{"in_app"}, info.DefaultChannels)
	assert.False(t, info.RequiresAction)
	assert.Empty(t, info.ValidActions)
}

func TestRegistryMandatoryTypesAreEmailOnly(t *testing.T) {
	for _, typ := range []string{TypeEmailVerification, TypePasswordReset, TypeAccountSuspended} {
		info, ok := LookupType(typ)
		require.True(t, ok, typ)
		assert.Equal(t, []string{"email"}, info.DefaultChannels, typ)
		assert.Equal(t, PriorityHigh, info.Priority, typ)
	}
}

func TestRegistryActionRequiringTypesDeclareActions(t *testing.T) {
	for typ, info := range typeRegistry {
		if info.RequiresAction {
			assert.NotEmpty(t, info.ValidActions, "type %s requires action but declares none", typ)
		}
	}
}
