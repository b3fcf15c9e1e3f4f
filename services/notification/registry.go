package notification

// Notification categories.
const (
	CategoryBooking     = "booking"
	CategorySession     = "session"
	CategoryPayment     = "payment"
	CategoryConnection  = "connection"
	CategoryAchievement = "achievement"
	CategoryResource    = "resource"
	CategoryMessage     = "message"
	CategorySystem      = "system"
	CategoryProfile     = "profile"
	CategoryReview      = "review"
)

// Priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Notification type keys.
const (
	TypeBookingRequested         = "booking_requested"
	TypeBookingConfirmed         = "booking_confirmed"
	TypeBookingRescheduled       = "booking_rescheduled"
	TypeBookingCancelledByClient = "booking_cancelled_by_client"
	TypeBookingCancelledByCoach  = "booking_cancelled_by_coach"
	TypeBookingCompleted         = "booking_completed"

	TypeSessionReminder    = "session_reminder"
	TypeWebinarConfirmed   = "webinar_confirmed"
	TypeWebinarFull        = "webinar_full"
	TypeWebinarCancelled   = "webinar_cancelled"
	TypeLiveSessionStarted = "live_session_started"

	TypePaymentReceived = "payment_received"
	TypePaymentFailed   = "payment_failed"
	TypeRefundIssued    = "refund_issued"
	TypePayoutSent      = "payout_sent"

	TypeConnectionRequest  = "connection_request"
	TypeConnectionAccepted = "connection_accepted"

	TypeAchievementUnlocked = "achievement_unlocked"
	TypeResourceShared      = "resource_shared"
	TypeMessageReceived     = "message_received"

	TypeReviewReceived = "review_received"
	TypeReviewReminder = "review_reminder"

	TypeProgramPublished  = "program_published"
	TypeProgramEnrollment = "program_enrollment"

	TypeProfileApproved = "profile_approved"
	TypeProfileRejected = "profile_rejected"

	TypeWelcome           = "welcome"
	TypeEmailVerification = "email_verification"
	TypePasswordReset     = "password_reset"
	TypeAccountWarning    = "account_warning"
	TypeAccountSuspended  = "account_suspended"
)

// Action verbs clients may render.
const (
	ActionView       = "view"
	ActionReschedule = "reschedule"
	ActionCancel     = "cancel"
	ActionPayNow     = "pay_now"
	ActionJoin       = "join"
	ActionReview     = "review"
	ActionAccept     = "accept"
	ActionDecline    = "decline"
	ActionReply      = "reply"
	ActionDownload   = "download"
	ActionVerify     = "verify"
	ActionReset      = "reset"
	ActionSupport    = "contact_support"
)

// TypeInfo is one immutable registry entry.
type TypeInfo struct {
	Category        string
	Priority        string
	DefaultChannels []string
	RequiresAction  bool
	ValidActions    []string
}

// defaultTypeInfo applies to types the registry does not know. Conservative
// on purpose: in-app only, low priority, no actions.
var defaultTypeInfo = TypeInfo{
	Category:        CategorySystem,
	Priority:        PriorityLow,
	DefaultChannels: []string{"in_app"},
}

// typeRegistry is static process-wide configuration. Loaded once, never
// mutated at runtime.
var typeRegistry = map[string]TypeInfo{
	TypeBookingRequested: {
		Category:        CategoryBooking,
		Priority:        PriorityHigh,
		DefaultChannels: []string{"in_app", "email", "push"},
		RequiresAction:  true,
		ValidActions:    []string{ActionView, ActionAccept, ActionDecline},
	},
	TypeBookingConfirmed: {
		Category:        CategoryBooking,
		Priority:        PriorityHigh,
		DefaultChannels: []string{"in_app", "email", "push"},
		ValidActions:    []string{ActionView, ActionReschedule, ActionCancel},
	},
	TypeBookingRescheduled: {
		Category:        CategoryBooking,
		Priority:        PriorityHigh,
		DefaultChannels: []string{"in_app", "email", "push"},
		ValidActions:    []string{ActionView, ActionCancel},
	},
	TypeBookingCancelledByClient: {
		Category:        CategoryBooking,
		Priority:        PriorityHigh,
		DefaultChannels: []string{"in_app", "email"},
		ValidActions:    []string{ActionView},
	},
	TypeBookingCancelledByCoach: {
		Category:        CategoryBooking,
		Priority:        PriorityHigh,
		DefaultChannels: []string{"in_app", "email", "push"},
		ValidActions:    []string{ActionView, ActionReschedule},
	},
	TypeBookingCompleted: {
		Category:        CategoryBooking,
		Priority:        PriorityMedium,
		DefaultChannels: []string{"in_app", "email"},
		RequiresAction:  true,
		ValidActions:    []string{ActionView, ActionReview},
	},
	TypeSessionReminder: {
		Category:        CategorySession,
		Priority:        PriorityHigh,
		DefaultChannels: []string{"in_app", "push"},
		ValidActions:    []string{ActionView, ActionJoin},
	},
	TypeWebinarConfirmed: {
		Category:        CategorySession,
		Priority:        PriorityMedium,
		DefaultChannels: []string{"in_app", "email"},
		ValidActions:    []string{ActionView, ActionCancel},
	},
	TypeWebinarFull: {
		Category:        CategorySession,
		Priority:        PriorityMedium,
		DefaultChannels: []string{"in_app", "email"},
		ValidActions:    []string{ActionView},
	},
	TypeWebinarCancelled: {
		Category:        CategorySession,
		Priority:        PriorityHigh,
		DefaultChannels: []string{"in_app", "email", "push"},
		ValidActions:    []string{ActionView},
	},
	TypeLiveSessionStarted: {
		Category:        CategorySession,
		Priority:        PriorityHigh,
		DefaultChannels: []string{"in_app", "push"},
		RequiresAction:  true,
		ValidActions:    []string{ActionJoin},
	},
	TypePaymentReceived: {
		Category:        CategoryPayment,
		Priority:        PriorityHigh,
		DefaultChannels: []string{"in_app", "email"},
		ValidActions:    []string{ActionView, ActionDownload},
	},
	TypePaymentFailed: {
		Category:        CategoryPayment,
		Priority:        PriorityHigh,
		DefaultChannels: []string{"in_app", "email", "push"},
		RequiresAction:  true,
		ValidActions:    []string{ActionPayNow, ActionSupport},
	},
	TypeRefundIssued: {
		Category:        CategoryPayment,
		Priority:        PriorityMedium,
		DefaultChannels: []string{"in_app", "email"},
		ValidActions:    []string{ActionView},
	},
	TypePayoutSent: {
		Category:        CategoryPayment,
		Priority:        PriorityMedium,
		DefaultChannels: []string{"in_app", "email"},
		ValidActions:    []string{ActionView, ActionDownload},
	},
	TypeConnectionRequest: {
		Category:        CategoryConnection,
		Priority:        PriorityMedium,
		DefaultChannels: []string{"in_app", "push"},
		RequiresAction:  true,
		ValidActions:    []string{ActionAccept, ActionDecline, ActionView},
	},
	TypeConnectionAccepted: {
		Category:        CategoryConnection,
		Priority:        PriorityLow,
		DefaultChannels: []string{"in_app"},
		ValidActions:    []string{ActionView},
	},
	TypeAchievementUnlocked: {
		Category:        CategoryAchievement,
		Priority:        PriorityLow,
		DefaultChannels: []string{"in_app"},
		ValidActions:    []string{ActionView},
	},
	TypeResourceShared: {
		Category:        CategoryResource,
		Priority:        PriorityLow,
		DefaultChannels: []string{"in_app", "email"},
		ValidActions:    []string{ActionView, ActionDownload},
	},
	TypeMessageReceived: {
		Category:        CategoryMessage,
		Priority:        PriorityMedium,
		DefaultChannels: []string{"in_app", "push"},
		ValidActions:    []string{ActionReply, ActionView},
	},
	TypeReviewReceived: {
		Category:        CategoryReview,
		Priority:        PriorityMedium,
		DefaultChannels: []string{"in_app", "email"},
		ValidActions:    []string{ActionView, ActionReply},
	},
	TypeReviewReminder: {
		Category:        CategoryReview,
		Priority:        PriorityLow,
		DefaultChannels: []string{"in_app"},
		RequiresAction:  true,
		ValidActions:    []string{ActionReview},
	},
	TypeProgramPublished: {
		Category:        CategoryResource,
		Priority:        PriorityLow,
		DefaultChannels: []string{"in_app", "email"},
		ValidActions:    []string{ActionView},
	},
	TypeProgramEnrollment: {
		Category:        CategoryBooking,
		Priority:        PriorityMedium,
		DefaultChannels: []string{"in_app", "email"},
		ValidActions:    []string{ActionView},
	},
	TypeProfileApproved: {
		Category:        CategoryProfile,
		Priority:        PriorityMedium,
		DefaultChannels: []string{"in_app", "email"},
		ValidActions:    []string{ActionView},
	},
	TypeProfileRejected: {
		Category:        CategoryProfile,
		Priority:        PriorityHigh,
		DefaultChannels: []string{"in_app", "email"},
		RequiresAction:  true,
		ValidActions:    []string{ActionView, ActionSupport},
	},
	TypeWelcome: {
		Category:        CategorySystem,
		Priority:        PriorityLow,
		DefaultChannels: []string{"in_app", "email"},
		ValidActions:    []string{ActionView},
	},
	TypeEmailVerification: {
		Category:        CategorySystem,
		Priority:        PriorityHigh,
		DefaultChannels: []string{"email"},
		RequiresAction:  true,
		ValidActions:    []string{ActionVerify},
	},
	TypePasswordReset: {
		Category:        CategorySystem,
		Priority:        PriorityHigh,
		DefaultChannels: []string{"email"},
		RequiresAction:  true,
		ValidActions:    []string{ActionReset},
	},
	TypeAccountWarning: {
		Category:        CategorySystem,
		Priority:        PriorityHigh,
		DefaultChannels: []string{"in_app", "email"},
		ValidActions:    []string{ActionView, ActionSupport},
	},
	TypeAccountSuspended: {
		Category:        CategorySystem,
		Priority:        PriorityHigh,
		DefaultChannels: []string{"email"},
		RequiresAction:  true,
		ValidActions:    []string{ActionSupport},
	},
}

// LookupType returns the registry entry for a type, falling back to the
// conservative default. The second return reports whether the type was
// registered; unknown types are tolerated but worth logging.
func LookupType(notifType string) (TypeInfo, bool) {
	info, ok := typeRegistry[notifType]
	if !ok {
		return defaultTypeInfo, false
	}
	return info, true
}
