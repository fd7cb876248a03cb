package safety

import "time"

// Actor identifies who raised an alert.
type Actor struct {
	// Hostname is the machine name where the alert was raised.
	Hostname string
	// Username is the system user who raised the alert.
	Username string
}

// Clone returns a deep copy of the actor.
func (a *Actor) Clone() *Actor {
	if a == nil {
		return nil
	}

	cloned := *a

	return &cloned
}

// Alert is an emergency message forwarded through the relay.
type Alert struct {
	// ID uniquely identifies the alert, assigned by the relay.
	ID string
	// Contact is the destination phone number.
	Contact string
	// Body is the message text.
	Body string
	// Actor is the user who raised the alert.
	Actor *Actor
	// Timestamp is when the relay accepted the alert.
	Timestamp time.Time
	// Delivered reports whether the relay handed the message to its sender.
	Delivered bool
}

// Clone returns a copy of the alert to avoid leaking internal references.
func (a *Alert) Clone() *Alert {
	if a == nil {
		return nil
	}

	return &Alert{
		ID:        a.ID,
		Contact:   a.Contact,
		Body:      a.Body,
		Actor:     a.Actor.Clone(),
		Timestamp: a.Timestamp,
		Delivered: a.Delivered,
	}
}
