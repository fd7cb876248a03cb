package settings

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/walk-buddy/internal/config"
	domain "github.com/oshokin/walk-buddy/internal/domain/safety"
	repo "github.com/oshokin/walk-buddy/internal/repository/settings"
)

var (
	errTestLoad = errors.New("test load error")
	errTestSave = errors.New("test save error")
)

// memoryRepository is a minimal in-memory Repository implementation for tests.
type memoryRepository struct {
	// settings is returned from Load operations.
	settings *domain.Settings
	// loadErr is the error to return from Load operations.
	loadErr error
	// saveErr is the error to return from Save operations.
	saveErr error
	// saved stores the last settings passed to Save operations.
	saved *domain.Settings
}

// Load returns the configured settings and error.
func (m *memoryRepository) Load(context.Context) (*domain.Settings, error) {
	return m.settings, m.loadErr
}

// Save records s unless saveErr is set.
func (m *memoryRepository) Save(_ context.Context, s *domain.Settings) error {
	if m.saveErr != nil {
		return m.saveErr
	}

	copied := *s
	m.saved = &copied

	return nil
}

// TestNewStore_LoadsOrDefaults asserts NewStore behavior on existing, missing, and broken settings.
func TestNewStore_LoadsOrDefaults(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	s, err := NewStore(ctx, &memoryRepository{settings: &domain.Settings{EmergencyContact: "911"}})
	require.NoError(t, err)
	require.Equal(t, "911", s.GetContact(ctx))

	s, err = NewStore(ctx, &memoryRepository{loadErr: repo.ErrNotFound})
	require.NoError(t, err)
	require.Equal(t, domain.DefaultContact, s.GetContact(ctx))

	s, err = NewStore(ctx, &memoryRepository{loadErr: errTestLoad})
	require.Error(t, err)
	require.Nil(t, s)
}

// TestStore_SetContact covers update, empty input and persistence failure.
func TestStore_SetContact(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	memory := &memoryRepository{loadErr: repo.ErrNotFound}

	s, err := NewStore(ctx, memory)
	require.NoError(t, err)

	require.NoError(t, s.SetContact(ctx, "5551234567"))
	require.Equal(t, "5551234567", s.GetContact(ctx))
	require.Equal(t, "5551234567", memory.saved.EmergencyContact)

	// Empty input keeps the previous contact.
	memory.saved = nil
	require.NoError(t, s.SetContact(ctx, ""))
	require.NoError(t, s.SetContact(ctx, "   "))
	require.Equal(t, "5551234567", s.GetContact(ctx))
	require.Nil(t, memory.saved)

	// A failed save leaves the contact unchanged.
	memory.saveErr = errTestSave
	require.ErrorIs(t, s.SetContact(ctx, "112"), errTestSave)
	require.Equal(t, "5551234567", s.GetContact(ctx))
}

// TestStore_PersistsAcrossRestart uses the file repository and a fresh store.
func TestStore_PersistsAcrossRestart(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	file := filepath.Join(t.TempDir(), "settings.json")

	s, err := NewStore(ctx, repo.NewFileRepository(file))
	require.NoError(t, err)
	require.Equal(t, domain.DefaultContact, s.GetContact(ctx))

	require.NoError(t, s.SetContact(ctx, "5551234567"))
	require.NoError(t, s.SetContact(ctx, ""))

	restarted, err := NewStore(ctx, repo.NewFileRepository(file))
	require.NoError(t, err)
	require.Equal(t, "5551234567", restarted.GetContact(ctx))
}

// TestRunSetGet drives the CLI commands against a temporary configuration.
func TestRunSetGet(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "walk-buddy.yaml")

	require.NoError(t, config.Save(cfgPath, &config.Config{
		SettingsFile: filepath.Join(dir, "settings.json"),
	}))

	var out bytes.Buffer

	opts := &Options{ConfigPath: cfgPath, Output: &out}

	require.NoError(t, RunGet(context.Background(), opts))
	require.Equal(t, domain.DefaultContact+"\n", out.String())

	out.Reset()
	require.NoError(t, RunSet(context.Background(), opts, "5551234567"))
	require.Equal(t, "5551234567\n", out.String())

	out.Reset()
	require.NoError(t, RunGet(context.Background(), opts))
	require.Equal(t, "5551234567\n", out.String())
}
