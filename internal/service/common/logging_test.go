//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/oshokin/walk-buddy/internal/config"
	"github.com/oshokin/walk-buddy/internal/logger"
)

// TestLogging covers level parsing and file redirection. It mutates the
// global logger, so it does not run in parallel.
//
//nolint:paralleltest // Global logger state.
func TestLogging(t *testing.T) {
	ctx := context.Background()
	previousLevel := logger.Level()

	t.Cleanup(func() {
		logger.SetLevel(previousLevel)
	})

	ApplyLogLevel(ctx, "debug")
	require.Equal(t, zapcore.DebugLevel, logger.Level())

	ApplyLogLevel(ctx, "loud")
	require.Equal(t, zapcore.DebugLevel, logger.Level())

	cfg := config.Default()
	cfg.LogFile = filepath.Join(t.TempDir(), "walk-buddy.log")

	previous := logger.Logger()

	restore, err := RedirectLogs(cfg)
	require.NoError(t, err)

	logger.Info(ctx, "written to file")
	restore()

	require.Same(t, previous, logger.Logger())

	EnableDebug()
	t.Cleanup(func() {
		logger.SetLogger(previous)
	})

	logger.SetLevel(zapcore.ErrorLevel)
	require.True(t, logger.Logger().Desugar().Core().Enabled(zapcore.DebugLevel))

	contents, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	require.Contains(t, string(contents), "written to file")
}
