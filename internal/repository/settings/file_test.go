package settings

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/walk-buddy/internal/domain/safety"
)

// TestFileRepository_NotFound verifies Load returns ErrNotFound for missing file.
func TestFileRepository_NotFound(t *testing.T) {
	t.Parallel()
	repo := NewFileRepository(filepath.Join(t.TempDir(), "missing.json"))
	s, err := repo.Load(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
	require.Nil(t, s)
}

// TestFileRepository_SaveLoad_Roundtrip ensures Save followed by Load returns equal settings.
func TestFileRepository_SaveLoad_Roundtrip(t *testing.T) {
	t.Parallel()
	file := filepath.Join(t.TempDir(), "settings.json")
	repo := NewFileRepository(file)

	want := &domain.Settings{EmergencyContact: "5551234567"}
	require.NoError(t, repo.Save(context.Background(), want))

	// A fresh repository simulates a restart.
	got, err := NewFileRepository(file).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, want, got)

	contents, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Contains(t, string(contents), "emergency_contact")
}

// TestFileRepository_MissingKey falls back to the default contact.
func TestFileRepository_MissingKey(t *testing.T) {
	t.Parallel()
	file := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"theme": "dark"}`), 0o600))

	got, err := NewFileRepository(file).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.DefaultContact, got.EmergencyContact)
}

// TestFileRepository_Corrupt reports decode errors.
func TestFileRepository_Corrupt(t *testing.T) {
	t.Parallel()
	file := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(file, []byte(`not json`), 0o600))

	_, err := NewFileRepository(file).Load(context.Background())
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
}
