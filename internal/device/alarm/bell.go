package alarm

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/oshokin/walk-buddy/internal/logger"
)

// bellSequence rings the terminal bell.
const bellSequence = "\a"

// Bell rings the terminal bell at a fixed interval until stopped.
type Bell struct {
	// out is the terminal.
	out io.Writer
	// interval is the pause between bells.
	interval time.Duration

	loop loop
}

// NewBell returns a bell player writing to out.
func NewBell(ctx context.Context, out io.Writer, interval time.Duration) *Bell {
	b := &Bell{
		out:      out,
		interval: interval,
	}

	b.loop.step = b.ring
	b.loop.onError = func(err error) {
		logger.WarnKV(ctx, "Terminal bell failed", "error", err)
	}

	return b
}

// Play implements Player.
func (b *Bell) Play(ctx context.Context) error {
	logger.Info(ctx, "Bell alarm started")
	b.loop.start()

	return nil
}

// Stop implements Player.
func (b *Bell) Stop(ctx context.Context) error {
	return b.loop.stop(ctx)
}

// ring writes one bell and sleeps for the interval.
func (b *Bell) ring(ctx context.Context) error {
	_, err := io.WriteString(b.out, bellSequence)

	timer := time.NewTimer(b.interval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}

	if err != nil {
		return fmt.Errorf("write bell: %w", err)
	}

	return nil
}
