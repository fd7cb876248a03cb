package alert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	api "github.com/oshokin/walk-buddy/internal/api/grpc/relay"
	"github.com/oshokin/walk-buddy/internal/config"
	domain "github.com/oshokin/walk-buddy/internal/domain/safety"
)

// Repository defines persistence operations for the last alert.
type Repository interface {
	Load(ctx context.Context) (*domain.Alert, error)
	Save(ctx context.Context, alert *domain.Alert) error
}

// FileRepository persists the last alert to a JSON file on disk.
// JSON is produced and consumed via protojson using the same Struct payload
// as the gRPC API.
type FileRepository struct {
	// path is the filesystem location of the JSON alert file.
	path string
	// mu protects concurrent access to the alert file.
	mu sync.Mutex
}

// ErrNotFound is returned when the alert file does not exist yet.
var ErrNotFound = errors.New("alert not found")

// NewFileRepository creates a repository that reads/writes JSON at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Load reads the alert from disk.
func (r *FileRepository) Load(_ context.Context) (*domain.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read alert file: %w", err)
	}

	var payload structpb.Struct
	if err = protojson.Unmarshal(contents, &payload); err != nil {
		return nil, fmt.Errorf("decode alert file: %w", err)
	}

	alert, err := api.AlertFromProto(&payload)
	if err != nil {
		return nil, fmt.Errorf("decode alert file: %w", err)
	}

	return alert, nil
}

// Save writes the alert to disk using JSON representation.
func (r *FileRepository) Save(_ context.Context, alert *domain.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	payload, err := api.AlertToProto(alert)
	if err != nil {
		return fmt.Errorf("encode alert: %w", err)
	}

	data, err := protojson.MarshalOptions{EmitUnpopulated: true}.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode alert: %w", err)
	}

	if err = os.WriteFile(r.path, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write alert file: %w", err)
	}

	return nil
}
