package settings

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/walk-buddy/internal/config"
	domain "github.com/oshokin/walk-buddy/internal/domain/safety"
)

// emergencyContactKey is the document key of the contact.
const emergencyContactKey = "emergency_contact"

// Repository defines persistence operations for the settings.
type Repository interface {
	Load(ctx context.Context) (*domain.Settings, error)
	Save(ctx context.Context, settings *domain.Settings) error
}

// FileRepository persists the settings to a JSON file on disk.
// The document is a google.protobuf.Struct encoded with protojson, so new
// keys can be added without a schema change.
type FileRepository struct {
	// path is the filesystem location of the JSON settings file.
	path string
	// mu protects concurrent access to the settings file.
	mu sync.Mutex
}

// ErrNotFound is returned when the settings file does not exist yet.
var ErrNotFound = errors.New("settings not found")

// NewFileRepository creates a repository that reads/writes JSON at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Load reads the settings from disk. Keys missing from the document keep
// their defaults.
func (r *FileRepository) Load(_ context.Context) (*domain.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read settings file: %w", err)
	}

	var document structpb.Struct
	if err = protojson.Unmarshal(contents, &document); err != nil {
		return nil, fmt.Errorf("decode settings file: %w", err)
	}

	settings := domain.DefaultSettings()
	if contact := document.GetFields()[emergencyContactKey].GetStringValue(); contact != "" {
		settings.EmergencyContact = contact
	}

	return settings, nil
}

// Save writes the settings to disk using JSON representation.
func (r *FileRepository) Save(_ context.Context, settings *domain.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	document, err := structpb.NewStruct(map[string]any{
		emergencyContactKey: settings.EmergencyContact,
	})
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	data, err := protojson.MarshalOptions{Multiline: true}.Marshal(document)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	if err = os.WriteFile(r.path, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}
