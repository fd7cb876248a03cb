// Package message composes sms: URIs and hands them to a messaging backend:
// KDE Connect, a URI opener such as xdg-open, or the walk-buddy relay.
package message

import (
	"context"
	"fmt"

	"github.com/oshokin/walk-buddy/internal/domain/safety"
)

// Sender opens sms: URIs.
type Sender interface {
	// CanOpen reports whether the backend can handle uri right now.
	CanOpen(ctx context.Context, uri string) bool
	// Open hands uri to the backend.
	Open(ctx context.Context, uri string) error
}

// None is the sender used when messaging is disabled.
type None struct{}

// CanOpen implements Sender.
func (None) CanOpen(context.Context, string) bool { return false }

// Open implements Sender.
func (None) Open(context.Context, string) error {
	return fmt.Errorf("messaging disabled: %w", safety.ErrCapabilityDenied)
}

// Send composes the sms: URI for contact and body, checks the capability and
// opens it. Failures are classified with the safety error taxonomy.
func Send(ctx context.Context, sender Sender, contact, body string) (string, error) {
	uri, err := BuildSMSURI(contact, body)
	if err != nil {
		return "", fmt.Errorf("compose message: %w: %w", safety.ErrCapabilityDenied, err)
	}

	if sender == nil || !sender.CanOpen(ctx, uri) {
		return uri, fmt.Errorf("cannot open %s: %w", smsScheme, safety.ErrCapabilityDenied)
	}

	if err = sender.Open(ctx, uri); err != nil {
		return uri, fmt.Errorf("open message: %w", err)
	}

	return uri, nil
}
