package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	domain "github.com/oshokin/walk-buddy/internal/domain/safety"
	"github.com/oshokin/walk-buddy/internal/logger"
	repo "github.com/oshokin/walk-buddy/internal/repository/settings"
)

// Store keeps the emergency contact in memory and persists changes.
type Store struct {
	// repo handles persistent storage of the settings.
	repo repo.Repository
	// settings is the current in-memory copy.
	settings domain.Settings
	// mu protects concurrent access to settings.
	mu sync.RWMutex
}

// NewStore creates a store backed by the provided repository.
// A missing settings file yields the default contact.
func NewStore(ctx context.Context, repository repo.Repository) (*Store, error) {
	s := &Store{
		repo:     repository,
		settings: *domain.DefaultSettings(),
	}

	if repository == nil {
		return s, nil
	}

	settings, err := repository.Load(ctx)
	switch {
	case err == nil:
		if settings != nil {
			s.settings = *settings
		}
	case errors.Is(err, repo.ErrNotFound):
		// Keep defaults.
	default:
		return nil, fmt.Errorf("load settings: %w", err)
	}

	return s, nil
}

// GetContact returns the stored emergency contact.
func (s *Store) GetContact(_ context.Context) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.settings.EmergencyContact
}

// SetContact stores a new emergency contact. Empty input is ignored and the
// previous contact is kept; the format is not validated.
func (s *Store) SetContact(ctx context.Context, contact string) error {
	contact = strings.TrimSpace(contact)
	if contact == "" {
		logger.Debug(ctx, "Ignoring empty emergency contact")

		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	updated := s.settings
	updated.EmergencyContact = contact

	if s.repo != nil {
		if err := s.repo.Save(ctx, &updated); err != nil {
			logger.Errorf(ctx, "Failed to persist settings: %v", err)

			return fmt.Errorf("persist settings: %w", err)
		}
	}

	s.settings = updated

	logger.InfoKV(ctx, "Emergency contact updated", "contact", contact)

	return nil
}
