package relay

import (
	"errors"
	"fmt"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	domain "github.com/oshokin/walk-buddy/internal/domain/safety"
)

// Struct field names of the alert payload.
const (
	fieldID        = "id"
	fieldContact   = "contact"
	fieldBody      = "body"
	fieldActor     = "actor"
	fieldHostname  = "hostname"
	fieldUsername  = "username"
	fieldTimestamp = "timestamp"
	fieldDelivered = "delivered"
)

// errNilAlert is returned when converting a nil alert.
var errNilAlert = errors.New("alert is nil")

// AlertToProto converts a domain alert into its Struct payload.
func AlertToProto(alert *domain.Alert) (*structpb.Struct, error) {
	if alert == nil {
		return nil, errNilAlert
	}

	fields := map[string]any{
		fieldID:        alert.ID,
		fieldContact:   alert.Contact,
		fieldBody:      alert.Body,
		fieldDelivered: alert.Delivered,
	}

	if !alert.Timestamp.IsZero() {
		fields[fieldTimestamp] = alert.Timestamp.UTC().Format(time.RFC3339Nano)
	}

	if alert.Actor != nil {
		fields[fieldActor] = map[string]any{
			fieldHostname: alert.Actor.Hostname,
			fieldUsername: alert.Actor.Username,
		}
	}

	payload, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("encode alert: %w", err)
	}

	return payload, nil
}

// AlertFromProto converts a Struct payload into a domain alert.
func AlertFromProto(payload *structpb.Struct) (*domain.Alert, error) {
	fields := payload.GetFields()

	alert := &domain.Alert{
		ID:        fields[fieldID].GetStringValue(),
		Contact:   fields[fieldContact].GetStringValue(),
		Body:      fields[fieldBody].GetStringValue(),
		Delivered: fields[fieldDelivered].GetBoolValue(),
	}

	if raw := fields[fieldTimestamp].GetStringValue(); raw != "" {
		timestamp, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, fmt.Errorf("decode alert timestamp: %w", err)
		}

		alert.Timestamp = timestamp
	}

	if actor := fields[fieldActor].GetStructValue(); actor != nil {
		alert.Actor = &domain.Actor{
			Hostname: actor.GetFields()[fieldHostname].GetStringValue(),
			Username: actor.GetFields()[fieldUsername].GetStringValue(),
		}
	}

	return alert, nil
}
