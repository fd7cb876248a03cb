package safety

import "errors"

var (
	// ErrHardwareUnavailable indicates the torch (or another device) is missing.
	ErrHardwareUnavailable = errors.New("hardware unavailable")
	// ErrCapabilityDenied indicates the platform cannot handle the requested action,
	// for example no messaging backend can open an sms: URI.
	ErrCapabilityDenied = errors.New("capability denied")
	// ErrInvalidInput indicates rejected user input.
	ErrInvalidInput = errors.New("invalid input")
)
