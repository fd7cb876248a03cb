package relay

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oshokin/walk-buddy/internal/device/message"
	domain "github.com/oshokin/walk-buddy/internal/domain/safety"
	"github.com/oshokin/walk-buddy/internal/logger"
	repo "github.com/oshokin/walk-buddy/internal/repository/alert"
)

// service encapsulates alert delivery and persistence.
// It is unexported to keep the transport decoupled from the implementation.
type service struct {
	// repo handles persistent storage of the last alert.
	repo repo.Repository
	// sender delivers alerts.
	sender message.Sender
	// last is the most recent alert, nil before the first one.
	last *domain.Alert
	// now returns the acceptance timestamp.
	now func() time.Time
	// mu protects last and serialises deliveries.
	mu sync.RWMutex
}

// newService creates a service backed by the provided repository and sender.
func newService(ctx context.Context, repository repo.Repository, sender message.Sender) (*service, error) {
	s := &service{
		repo:   repository,
		sender: sender,
		now:    time.Now,
	}

	if repository == nil {
		return s, nil
	}

	alert, err := repository.Load(ctx)
	switch {
	case err == nil:
		s.last = alert
	case errors.Is(err, repo.ErrNotFound):
		// No alert yet.
	default:
		return nil, fmt.Errorf("load alert: %w", err)
	}

	return s, nil
}

// SendAlert assigns an ID and timestamp, attempts delivery and persists the alert.
// A failed delivery is recorded in the alert rather than returned as an error.
func (s *service) SendAlert(ctx context.Context, alert *domain.Alert) (*domain.Alert, error) {
	if alert == nil || alert.Contact == "" {
		return nil, fmt.Errorf("contact is required: %w", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	accepted := alert.Clone()
	accepted.ID = uuid.NewString()
	accepted.Timestamp = s.now()
	accepted.Delivered = false

	ctx = logger.WithKV(ctx, "alert_id", accepted.ID)

	uri, err := message.Send(ctx, s.sender, accepted.Contact, accepted.Body)
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return nil, err
	case err != nil:
		logger.WarnKV(ctx, "Alert not delivered", "contact", accepted.Contact, "error", err)
	default:
		accepted.Delivered = true
	}

	if s.repo != nil {
		if err := s.repo.Save(ctx, accepted); err != nil {
			logger.Errorf(ctx, "Failed to persist alert: %v", err)

			return nil, fmt.Errorf("persist alert: %w", err)
		}
	}

	s.last = accepted

	logger.InfoKV(ctx, "Alert accepted",
		"uri", uri,
		"delivered", accepted.Delivered,
		"actor", accepted.Actor,
	)

	return accepted.Clone(), nil
}

// GetLastAlert returns the most recent alert, or nil before the first one.
func (s *service) GetLastAlert(ctx context.Context) *domain.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	logger.DebugKV(ctx, "Last alert requested", "found", s.last != nil)

	return s.last.Clone()
}
