package notification

import (
	"errors"
	"fmt"
	"time"

	"coachly/database/repository"
	"coachly/models"
)

// ContextKind tags the resolved subject of a notification.
type ContextKind string

const (
	ContextNone    ContextKind = "none"
	ContextBooking ContextKind = "booking"
	ContextPayment ContextKind = "payment"
	ContextProgram ContextKind = "program"
)

// Context is the resolved polymorphic subject a notification is about.
// Exactly the field matching Kind is set; a payment context may additionally
// carry its linked booking or program when resolvable.
type Context struct {
	Kind    ContextKind
	Booking *models.Booking
	Payment *models.Payment
	Program *models.Program
}

// UserID returns the client user associated with the context, if any.
func (c Context) UserID() string {
	switch c.Kind {
	case ContextBooking:
		return c.Booking.UserID
	case ContextPayment:
		return c.Payment.UserID
	}
	return ""
}

// CoachID returns the coach associated with the context, if any.
func (c Context) CoachID() string {
	switch c.Kind {
	case ContextBooking:
		return c.Booking.CoachID
	case ContextPayment:
		return c.Payment.CoachID
	case ContextProgram:
		return c.Program.CoachID
	}
	return ""
}

// CoreFields returns the context's id/start/end/status summary, used by the
// generic fallback renderer and the realtime payload.
func (c Context) CoreFields() map[string]any {
	switch c.Kind {
	case ContextBooking:
		return map[string]any{
			"id":     c.Booking.ID,
			"start":  c.Booking.Start.Format(time.RFC3339),
			"end":    c.Booking.End.Format(time.RFC3339),
			"status": c.Booking.Status,
		}
	case ContextPayment:
		return map[string]any{
			"id":     c.Payment.ID,
			"status": c.Payment.Status,
		}
	case ContextProgram:
		return map[string]any{
			"id":     c.Program.ID,
			"start":  c.Program.StartDate.Format(time.RFC3339),
			"status": c.Program.Status,
		}
	}
	return map[string]any{}
}

// contextFreeTypes never resolve a subject entity; everything the renderer
// needs travels in metadata. Static configuration.
var contextFreeTypes = map[string]bool{
	TypeConnectionRequest:   true,
	TypeConnectionAccepted:  true,
	TypeAchievementUnlocked: true,
	TypeResourceShared:      true,
	TypeMessageReceived:     true,
	TypeProfileApproved:     true,
	TypeProfileRejected:     true,
	TypeWelcome:             true,
	TypeEmailVerification:   true,
	TypePasswordReset:       true,
	TypeAccountWarning:      true,
	TypeAccountSuspended:    true,
}

// paymentTypes get the payment fallback when a bookingId reference does not
// resolve to a booking.
var paymentTypes = map[string]bool{
	TypePaymentReceived: true,
	TypePaymentFailed:   true,
	TypeRefundIssued:    true,
	TypePayoutSent:      true,
}

// IsContextFree reports whether a type skips context resolution.
func IsContextFree(notifType string) bool {
	return contextFreeTypes[notifType]
}

// ContextResolver resolves the subject entity of a notification request by
// following metadata references. Read-only; it never writes.
type ContextResolver struct {
	Bookings repository.BookingRepository
	Payments repository.PaymentRepository
	Programs repository.ProgramRepository
}

// Resolve produces the Context for a send request. A directly-passed entity
// wins; otherwise metadata references are followed in order bookingId (with
// a payment fallback for payment types), paymentId, programId. A
// context-requiring type with no usable reference is a
// ContextResolutionError.
func (r *ContextResolver) Resolve(notifType string, meta map[string]any, direct any) (Context, error) {
	if IsContextFree(notifType) {
		return Context{Kind: ContextNone}, nil
	}

	switch v := direct.(type) {
	case Context:
		return v, nil
	case *models.Booking:
		if v != nil {
			return Context{Kind: ContextBooking, Booking: v}, nil
		}
	case *models.Payment:
		if v != nil {
			return r.paymentContext(v), nil
		}
	case *models.Program:
		if v != nil {
			return Context{Kind: ContextProgram, Program: v}, nil
		}
	}

	if bookingID := metaString(meta, "bookingId"); bookingID != "" {
		booking, err := r.Bookings.GetByID(bookingID)
		if err == nil {
			return Context{Kind: ContextBooking, Booking: booking}, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return Context{}, fmt.Errorf("resolving booking %s: %w", bookingID, err)
		}
		if paymentTypes[notifType] {
			payment, perr := r.Payments.GetByBookingID(bookingID)
			if perr == nil {
				return r.paymentContext(payment), nil
			}
		}
		return Context{}, NewContextResolutionError(fmt.Sprintf("booking %s not found for type %s", bookingID, notifType))
	}

	if paymentID := metaString(meta, "paymentId"); paymentID != "" && paymentTypes[notifType] {
		payment, err := r.Payments.GetByID(paymentID)
		if err != nil {
			return Context{}, NewContextResolutionError(fmt.Sprintf("payment %s not found for type %s", paymentID, notifType))
		}
		return r.paymentContext(payment), nil
	}

	if programID := metaString(meta, "programId"); programID != "" {
		program, err := r.Programs.GetByID(programID)
		if err != nil {
			return Context{}, NewContextResolutionError(fmt.Sprintf("program %s not found for type %s", programID, notifType))
		}
		return Context{Kind: ContextProgram, Program: program}, nil
	}

	return Context{}, NewContextResolutionError(fmt.Sprintf("type %s requires a context reference, none supplied", notifType))
}

// paymentContext attaches the payment's linked booking or program when it
// resolves; a broken link is tolerated, the payment alone is enough.
func (r *ContextResolver) paymentContext(p *models.Payment) Context {
	c := Context{Kind: ContextPayment, Payment: p}
	if p.BookingID != "" {
		if booking, err := r.Bookings.GetByID(p.BookingID); err == nil {
			c.Booking = booking
		}
	}
	if c.Booking == nil && p.ProgramID != "" {
		if program, err := r.Programs.GetByID(p.ProgramID); err == nil {
			c.Program = program
		}
	}
	return c
}

// metaString reads a string-valued metadata key.
func metaString(meta map[string]any, key string) string {
	if meta == nil {
		return ""
	}
	if s, ok := meta[key].(string); ok {
		return s
	}
	return ""
}
