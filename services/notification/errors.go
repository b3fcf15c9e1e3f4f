package notification

import "fmt"

// ConfigurationError means the send request itself is malformed, most
// importantly that no recipient could be resolved. Fatal to the send.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configurationError: %s", e.Message)
}

func NewConfigurationError(msg string) error {
	return &ConfigurationError{Message: msg}
}

// ContextResolutionError means a context-requiring type was sent without a
// usable reference, or the referenced entity does not exist. Fatal.
type ContextResolutionError struct {
	Message string
}

func (e *ContextResolutionError) Error() string {
	return fmt.Sprintf("contextResolutionError: %s", e.Message)
}

func NewContextResolutionError(msg string) error {
	return &ContextResolutionError{Message: msg}
}

// ContentGenerationError means the resolved context lacks fields the
// renderer needs. This signals a data-integrity bug upstream, not a
// retryable condition. Fatal.
type ContentGenerationError struct {
	Type    string
	Message string
}

func (e *ContentGenerationError) Error() string {
	return fmt.Sprintf("contentGenerationError: %s: %s", e.Type, e.Message)
}

func NewContentGenerationError(notifType, msg string) error {
	return &ContentGenerationError{Type: notifType, Message: msg}
}

// ChannelDeliveryError wraps a failure of one delivery channel. Logged and
// recorded, never propagated out of the dispatcher.
type ChannelDeliveryError struct {
	Channel string
	Err     error
}

func (e *ChannelDeliveryError) Error() string {
	return fmt.Sprintf("channelDeliveryError: %s: %v", e.Channel, e.Err)
}

func (e *ChannelDeliveryError) Unwrap() error {
	return e.Err
}

// ValidationError means the notification entity violates its schema
// invariants. Fatal, nothing persisted.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validationError: %s", e.Message)
}

func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}
