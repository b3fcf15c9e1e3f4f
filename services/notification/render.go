package notification

import "fmt"

// Content is the structured payload a renderer produces. Title and Message
// are localization keys; Data carries the interpolation values plus the
// validActions set.
type Content struct {
	Title   string
	Message string
	Data    map[string]any
}

// renderFunc renders one notification type. Pure function of the descriptor
// metadata and the resolved context; must not fail for well-formed,
// fully-resolved input.
type renderFunc func(d Descriptor, c Context) (Content, error)

// Render produces the content for a descriptor. Types absent from the
// strategy table fall back to a generic renderer so an unrecognized type
// degrades instead of crashing.
func Render(d Descriptor, c Context) (Content, error) {
	fn, ok := renderers[d.Type]
	if !ok {
		return renderGeneric(d, c), nil
	}
	content, err := fn(d, c)
	if err != nil {
		return Content{}, err
	}
	if content.Data == nil {
		content.Data = map[string]any{}
	}
	if _, exists := content.Data["validActions"]; !exists {
		content.Data["validActions"] = validActionsFor(d)
	}
	return content, nil
}

// validActionsFor prefers the per-call override on the descriptor, then the
// registry default.
func validActionsFor(d Descriptor) []string {
	if len(d.ValidActions) > 0 {
		return d.ValidActions
	}
	info, _ := LookupType(d.Type)
	return info.ValidActions
}

// renderGeneric echoes the raw type as both title and message keys and
// forwards the context's core fields.
func renderGeneric(d Descriptor, c Context) Content {
	data := map[string]any{
		"validActions": validActionsFor(d),
	}
	for k, v := range c.CoreFields() {
		data[k] = v
	}
	return Content{
		Title:   d.Type,
		Message: d.Type,
		Data:    data,
	}
}

// formatAmount renders a fixed-point decimal string from metadata. An
// integer amountInCents wins over a float amount; zero is a real amount,
// only a missing value renders "unknown".
func formatAmount(meta map[string]any) string {
	if cents, ok := metaNumber(meta, "amountInCents"); ok {
		return fmt.Sprintf("%.2f", cents/100)
	}
	if amount, ok := metaNumber(meta, "amount"); ok {
		return fmt.Sprintf("%.2f", amount)
	}
	return "unknown"
}

// metaNumber reads a numeric metadata value regardless of how it was
// decoded (int, int64, float64, JSON number as float64).
func metaNumber(meta map[string]any, key string) (float64, bool) {
	if meta == nil {
		return 0, false
	}
	switch v := meta[key].(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

// contentKey builds a localization key: notifications.<type>.<role>.<field>
// for role-specific strings, notifications.<type>.<field> otherwise.
func contentKey(notifType, role, field string) string {
	if role == "" {
		return fmt.Sprintf("notifications.%s.%s", notifType, field)
	}
	return fmt.Sprintf("notifications.%s.%s.%s", notifType, role, field)
}
