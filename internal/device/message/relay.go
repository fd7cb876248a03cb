package message

import (
	"context"
	"fmt"

	"github.com/oshokin/walk-buddy/internal/domain/safety"
	"github.com/oshokin/walk-buddy/internal/logger"
)

// AlertClient forwards alerts to walk-buddy-relay.
type AlertClient interface {
	SendAlert(ctx context.Context, alert *safety.Alert) (*safety.Alert, error)
}

// Relay sends messages through the relay server.
type Relay struct {
	// client is the relay connection.
	client AlertClient
	// actor identifies this machine in the alert.
	actor *safety.Actor
}

// NewRelay returns a sender forwarding alerts through client.
func NewRelay(client AlertClient, actor *safety.Actor) *Relay {
	return &Relay{
		client: client,
		actor:  actor.Clone(),
	}
}

// CanOpen implements Sender.
func (r *Relay) CanOpen(_ context.Context, uri string) bool {
	if r.client == nil {
		return false
	}

	_, _, err := ParseSMSURI(uri)

	return err == nil
}

// Open implements Sender.
func (r *Relay) Open(ctx context.Context, uri string) error {
	contact, body, err := ParseSMSURI(uri)
	if err != nil {
		return err
	}

	alert, err := r.client.SendAlert(ctx, &safety.Alert{
		Contact: contact,
		Body:    body,
		Actor:   r.actor.Clone(),
	})
	if err != nil {
		return fmt.Errorf("relay alert: %w: %w", safety.ErrCapabilityDenied, err)
	}

	logger.InfoKV(ctx, "Alert accepted by relay", "alert_id", alert.ID, "delivered", alert.Delivered)

	if !alert.Delivered {
		return fmt.Errorf("relay could not deliver alert %s: %w", alert.ID, safety.ErrCapabilityDenied)
	}

	return nil
}
