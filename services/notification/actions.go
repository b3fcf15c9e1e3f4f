package notification

import (
	"fmt"

	"coachly/models"
)

// buildActions turns the rendered validActions set into concrete action
// affordances the tray can render. Labels are localization keys; endpoints
// point at the APIs the respective buttons hit.
func buildActions(d Descriptor, data map[string]any) []models.NotificationAction {
	verbs, _ := data["validActions"].([]string)
	if len(verbs) == 0 {
		return nil
	}

	bookingID := metaString(d.Metadata, "bookingId")
	programID := metaString(d.Metadata, "programId")

	actions := make([]models.NotificationAction, 0, len(verbs))
	for _, verb := range verbs {
		action := models.NotificationAction{
			Type:  verb,
			Label: "actions." + verb,
		}
		switch verb {
		case ActionPayNow:
			action.Endpoint = fmt.Sprintf("/api/bookings/%s/pay", bookingID)
			action.Data = map[string]any{"bookingId": bookingID}
		case ActionReschedule:
			action.Endpoint = fmt.Sprintf("/api/bookings/%s/reschedule", bookingID)
			action.Data = map[string]any{"bookingId": bookingID}
		case ActionCancel:
			action.Endpoint = fmt.Sprintf("/api/bookings/%s/cancel", bookingID)
			action.Data = map[string]any{"bookingId": bookingID}
		case ActionAccept:
			action.Endpoint = fmt.Sprintf("/api/bookings/%s/accept", bookingID)
			action.Data = map[string]any{"bookingId": bookingID}
		case ActionDecline:
			action.Endpoint = fmt.Sprintf("/api/bookings/%s/decline", bookingID)
			action.Data = map[string]any{"bookingId": bookingID}
		case ActionReview:
			action.Endpoint = fmt.Sprintf("/api/bookings/%s/review", bookingID)
			action.Data = map[string]any{"bookingId": bookingID}
		case ActionJoin:
			if sessionID := metaString(d.Metadata, "liveSessionId"); sessionID != "" {
				action.Endpoint = fmt.Sprintf("/api/sessions/%s/join", sessionID)
				action.Data = map[string]any{"liveSessionId": sessionID}
			} else {
				action.Endpoint = fmt.Sprintf("/api/bookings/%s/join", bookingID)
				action.Data = map[string]any{"bookingId": bookingID}
			}
		case ActionVerify:
			action.Endpoint = metaString(d.Metadata, "verificationUrl")
		case ActionReset:
			action.Endpoint = metaString(d.Metadata, "resetUrl")
		case ActionView:
			switch {
			case bookingID != "":
				action.Data = map[string]any{"bookingId": bookingID}
			case programID != "":
				action.Data = map[string]any{"programId": programID}
			}
		}
		actions = append(actions, action)
	}
	return actions
}
