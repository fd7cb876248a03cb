package settings

import (
	"context"
	"fmt"
	"io"

	"github.com/oshokin/walk-buddy/internal/config"
	"github.com/oshokin/walk-buddy/internal/logger"
	repo "github.com/oshokin/walk-buddy/internal/repository/settings"
)

// Options controls the contact commands.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// Output receives the printed contact.
	Output io.Writer
}

// Open loads the configuration and returns the store it points to.
func Open(ctx context.Context, configPath string) (*Store, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	return NewStore(ctx, repo.NewFileRepository(cfg.SettingsFile))
}

// RunGet prints the stored emergency contact.
func RunGet(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "contact")

	store, err := Open(ctx, opts.ConfigPath)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(opts.Output, store.GetContact(ctx))

	return err
}

// RunSet stores a new emergency contact and prints the resulting value.
func RunSet(ctx context.Context, opts *Options, contact string) error {
	ctx = logger.WithName(ctx, "contact")

	store, err := Open(ctx, opts.ConfigPath)
	if err != nil {
		return err
	}

	if err = store.SetContact(ctx, contact); err != nil {
		return err
	}

	_, err = fmt.Fprintln(opts.Output, store.GetContact(ctx))

	return err
}
