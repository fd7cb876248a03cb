//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap/zapcore"

	"github.com/oshokin/walk-buddy/internal/config"
	"github.com/oshokin/walk-buddy/internal/logger"
)

// logFilePermissions restricts the log file to its owner.
const logFilePermissions = 0o600

// ApplyLogLevel sets the global level from configuration; unknown names keep the current level.
func ApplyLogLevel(ctx context.Context, level string) {
	parsed, ok := logger.ParseLogLevel(level)
	if !ok {
		logger.WarnKV(ctx, "Unknown log level, keeping current one", "log_level", level, "current", logger.Level())

		return
	}

	logger.SetLevel(parsed)
}

// EnableDebug forces debug output on the global logger regardless of the configured level.
func EnableDebug() {
	logger.SetLogger(logger.Logger().WithOptions(logger.WithLevel(zapcore.DebugLevel)))
}

// RedirectLogs sends the global logger to the configured log file.
// The returned function restores the previous logger and closes the file.
func RedirectLogs(cfg *config.Config) (func(), error) {
	file, err := os.OpenFile(
		filepath.Clean(cfg.LogFile),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND,
		logFilePermissions,
	)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	previous := logger.Logger()
	logger.SetLogger(logger.NewWithWriter(file, nil))

	return func() {
		_ = logger.Logger().Sync() //nolint:errcheck // Nothing to do on failure.
		logger.SetLogger(previous)
		_ = file.Close()
	}, nil
}
