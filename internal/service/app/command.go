package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/oshokin/walk-buddy/internal/config"
	"github.com/oshokin/walk-buddy/internal/device"
	"github.com/oshokin/walk-buddy/internal/logger"
	repo "github.com/oshokin/walk-buddy/internal/repository/settings"
	"github.com/oshokin/walk-buddy/internal/service/common"
	"github.com/oshokin/walk-buddy/internal/service/settings"
	"github.com/oshokin/walk-buddy/internal/service/strobe"
	"github.com/oshokin/walk-buddy/internal/ui"
)

// noticeQueueSize bounds undelivered notices; older ones are more useful than none.
const noticeQueueSize = 16

// Options controls the terminal UI.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// LogFile overrides the configured log file.
	LogFile string
	// Verbose enables debug logging.
	Verbose bool
}

// Run starts the terminal UI and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts *Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if opts.LogFile != "" {
		cfg.LogFile = opts.LogFile
	}

	// The UI owns the terminal, so logs go to a file from here on.
	restoreLogs, err := common.RedirectLogs(cfg)
	if err != nil {
		return err
	}
	defer restoreLogs()

	common.ApplyLogLevel(ctx, cfg.LogLevel)

	if opts.Verbose {
		common.EnableDebug()
	}

	ctx = logger.WithName(ctx, "walk-buddy")

	store, err := settings.NewStore(ctx, repo.NewFileRepository(cfg.SettingsFile))
	if err != nil {
		return fmt.Errorf("open contact store: %w", err)
	}

	devices := device.New(ctx, cfg)
	defer devices.Close(ctx) //nolint:errcheck // Failures are logged by Close.

	notices := ui.NewNoticeQueue(noticeQueueSize)

	controller := strobe.New(
		devices.Torch,
		devices.Alarm,
		devices.Messages,
		store,
		strobe.WithFlashSpeed(cfg.FlashSpeed),
		strobe.WithDisplayFlash(*cfg.DisplayFlash),
		strobe.WithNoticeHandler(notices.Push),
	)
	defer controller.Close(context.WithoutCancel(ctx))

	logger.InfoKV(ctx, "Starting terminal UI", "settings_file", cfg.SettingsFile, "contact", store.GetContact(ctx))

	program := tea.NewProgram(
		ui.New(ctx, controller, store, notices),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err = program.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("run terminal UI: %w", err)
	}

	logger.Info(ctx, "Terminal UI closed")

	return nil
}
