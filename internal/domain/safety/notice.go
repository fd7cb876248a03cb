package safety

import "errors"

// NoticeKind classifies a user-visible notice.
type NoticeKind int

const (
	// NoticeInfo is an informational notice.
	NoticeInfo NoticeKind = iota
	// NoticeHardwareUnavailable reports a missing torch.
	NoticeHardwareUnavailable
	// NoticeCapabilityDenied reports that a message could not be composed or sent.
	NoticeCapabilityDenied
	// NoticeInvalidInput reports rejected input.
	NoticeInvalidInput
)

// String implements fmt.Stringer.
func (k NoticeKind) String() string {
	switch k {
	case NoticeHardwareUnavailable:
		return "hardware unavailable"
	case NoticeCapabilityDenied:
		return "capability denied"
	case NoticeInvalidInput:
		return "invalid input"
	default:
		return "info"
	}
}

// Notice is a non-fatal event surfaced to the user.
type Notice struct {
	// Kind classifies the notice.
	Kind NoticeKind
	// Message is a short human-readable description.
	Message string
	// Err is the underlying error, if any.
	Err error
}

// NoticeFromError builds a notice whose kind follows the error taxonomy.
func NoticeFromError(message string, err error) Notice {
	kind := NoticeInfo

	switch {
	case errors.Is(err, ErrHardwareUnavailable):
		kind = NoticeHardwareUnavailable
	case errors.Is(err, ErrCapabilityDenied):
		kind = NoticeCapabilityDenied
	case errors.Is(err, ErrInvalidInput):
		kind = NoticeInvalidInput
	}

	return Notice{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}
