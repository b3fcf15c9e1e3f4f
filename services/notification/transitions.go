package notification

import "coachly/models"

// Recipient roles used by the status transition table.
const (
	RoleClient = "client"
	RoleCoach  = "coach"
	RoleBoth   = "both"
)

// Descriptor is one per-recipient notification request produced by the
// status transition mapper, ready for rendering and dispatch.
type Descriptor struct {
	Type           string
	Recipient      string
	RecipientRole  string
	Priority       string
	Category       string
	Channels       []string
	RequiresAction bool
	ValidActions   []string
	Metadata       map[string]any
}

// transition is one declarative rule: who gets which notification type when
// a booking enters a status. Channels nil means "registry default".
type transition struct {
	Type     string
	Role     string
	Channels []string
}

// bookingTransitions maps a booking status to the notification set it
// produces. Static configuration, never mutated at runtime. Rules with
// Role "both" expand to a client descriptor followed by a coach descriptor.
var bookingTransitions = map[string][]transition{
	models.BookingStatusRequested: {
		{Type: TypeBookingRequested, Role: RoleCoach},
		{Type: TypeBookingRequested, Role: RoleClient, Channels: []string{models.ChannelInApp}},
	},
	models.BookingStatusConfirmed: {
		{Type: TypeBookingConfirmed, Role: RoleBoth},
	},
	models.BookingStatusRescheduled: {
		{Type: TypeBookingRescheduled, Role: RoleBoth},
	},
	models.BookingStatusCancelledByClient: {
		{Type: TypeBookingCancelledByClient, Role: RoleCoach},
		{Type: TypeBookingCancelledByClient, Role: RoleClient, Channels: []string{models.ChannelInApp}},
	},
	models.BookingStatusCancelledByCoach: {
		{Type: TypeBookingCancelledByCoach, Role: RoleClient},
		{Type: TypeBookingCancelledByCoach, Role: RoleCoach, Channels: []string{models.ChannelInApp}},
	},
	models.BookingStatusCompleted: {
		{Type: TypeBookingCompleted, Role: RoleBoth},
	},
}

// DescriptorsForBookingStatus expands the transition rules for a booking
// status into concrete per-recipient descriptors. Rules whose recipient is
// missing on the entity (e.g. no coach assigned yet) are silently dropped;
// partial notification sets are acceptable. Caller metadata is merged in,
// with the booking's own reference taking precedence.
func DescriptorsForBookingStatus(status string, booking *models.Booking, extra map[string]any) []Descriptor {
	rules, ok := bookingTransitions[status]
	if !ok || booking == nil {
		return nil
	}

	var out []Descriptor
	for _, rule := range rules {
		roles := []string{rule.Role}
		if rule.Role == RoleBoth {
			roles = []string{RoleClient, RoleCoach}
		}
		for _, role := range roles {
			recipient := booking.UserID
			if role == RoleCoach {
				recipient = booking.CoachID
			}
			if recipient == "" {
				continue
			}
			out = append(out, buildDescriptor(rule, role, recipient, booking, extra))
		}
	}
	return out
}

func buildDescriptor(rule transition, role, recipient string, booking *models.Booking, extra map[string]any) Descriptor {
	info, _ := LookupType(rule.Type)

	channels := rule.Channels
	if channels == nil {
		channels = info.DefaultChannels
	}

	meta := make(map[string]any, len(extra)+2)
	for k, v := range extra {
		meta[k] = v
	}
	meta["bookingId"] = booking.ID
	if booking.ProgramID != "" {
		meta["programId"] = booking.ProgramID
	}

	return Descriptor{
		Type:           rule.Type,
		Recipient:      recipient,
		RecipientRole:  role,
		Priority:       info.Priority,
		Category:       info.Category,
		Channels:       channels,
		RequiresAction: info.RequiresAction,
		ValidActions:   info.ValidActions,
		Metadata:       meta,
	}
}
