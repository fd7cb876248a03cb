package sos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oshokin/walk-buddy/internal/config"
	"github.com/oshokin/walk-buddy/internal/device"
	"github.com/oshokin/walk-buddy/internal/domain/safety"
	"github.com/oshokin/walk-buddy/internal/logger"
	repo "github.com/oshokin/walk-buddy/internal/repository/settings"
	"github.com/oshokin/walk-buddy/internal/service/common"
	"github.com/oshokin/walk-buddy/internal/service/settings"
	"github.com/oshokin/walk-buddy/internal/service/strobe"
)

// Options controls the sos command.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// Duration limits how long panic mode stays engaged; zero waits for a signal.
	Duration time.Duration
	// Verbose enables debug logging.
	Verbose bool
}

// errNegativeDuration is returned for a negative duration.
var errNegativeDuration = errors.New("duration must not be negative")

// Run engages panic mode and blocks until the duration elapses or ctx is cancelled.
func Run(ctx context.Context, opts *Options) error {
	if opts.Duration < 0 {
		return errNegativeDuration
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	common.ApplyLogLevel(ctx, cfg.LogLevel)

	if opts.Verbose {
		common.EnableDebug()
	}

	ctx = logger.WithName(ctx, "walk-buddy-sos")

	store, err := settings.NewStore(ctx, repo.NewFileRepository(cfg.SettingsFile))
	if err != nil {
		return fmt.Errorf("open contact store: %w", err)
	}

	devices := device.New(ctx, cfg)
	defer devices.Close(ctx) //nolint:errcheck // Failures are logged by Close.

	controller := strobe.New(
		devices.Torch,
		devices.Alarm,
		devices.Messages,
		store,
		strobe.WithFlashSpeed(cfg.FlashSpeed),
		strobe.WithDisplayFlash(false),
		strobe.WithNoticeHandler(func(notice safety.Notice) {
			logger.WarnKV(ctx, notice.Message, "kind", notice.Kind.String(), "error", notice.Err)
		}),
	)

	return hold(ctx, controller, opts.Duration)
}

// panicController is the part of the strobe controller the command drives.
type panicController interface {
	TogglePanicMode(ctx context.Context)
	Close(ctx context.Context)
}

// hold engages panic mode, waits and releases it.
func hold(ctx context.Context, controller panicController, duration time.Duration) error {
	controller.TogglePanicMode(ctx)
	logger.InfoKV(ctx, "Panic mode engaged", "duration", duration)

	waitCtx := ctx

	if duration > 0 {
		var cancel context.CancelFunc

		waitCtx, cancel = context.WithTimeout(ctx, duration)
		defer cancel()
	}

	<-waitCtx.Done()

	// ctx may already be cancelled; releasing devices must still happen.
	releaseCtx := context.WithoutCancel(ctx)
	controller.Close(releaseCtx)

	logger.Info(releaseCtx, "Panic mode released")

	return nil
}
