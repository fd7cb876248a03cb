package alarm

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/oshokin/walk-buddy/internal/domain/safety"
	"github.com/oshokin/walk-buddy/internal/logger"
)

// failureBackoff delays the next attempt after the player command fails.
const failureBackoff = time.Second

// errEmptyCommand is returned for an empty player invocation.
var errEmptyCommand = errors.New("empty player command")

// Command repeatedly runs an external sound player until stopped.
type Command struct {
	// name and args form the player invocation.
	name string
	args []string
	// lookPath resolves the player binary.
	lookPath func(file string) (string, error)

	loop loop
}

// NewCommand returns a player for the given invocation, e.g.
// ["paplay", "/usr/share/sounds/freedesktop/stereo/alarm-clock-elapsed.oga"].
func NewCommand(ctx context.Context, argv []string) (*Command, error) {
	if len(argv) == 0 || argv[0] == "" {
		return nil, errEmptyCommand
	}

	c := &Command{
		name:     argv[0],
		args:     argv[1:],
		lookPath: exec.LookPath,
	}

	c.loop.step = c.runOnce
	c.loop.onError = func(err error) {
		logger.WarnKV(ctx, "Alarm player failed", "player", c.name, "error", err)
	}

	return c, nil
}

// Play implements Player.
func (c *Command) Play(ctx context.Context) error {
	if _, err := c.lookPath(c.name); err != nil {
		return fmt.Errorf("alarm player %s: %w: %w", c.name, safety.ErrCapabilityDenied, err)
	}

	logger.InfoKV(ctx, "Alarm started", "player", c.name)
	c.loop.start()

	return nil
}

// Stop implements Player.
func (c *Command) Stop(ctx context.Context) error {
	if !c.loop.running() {
		return nil
	}

	logger.InfoKV(ctx, "Alarm stopped", "player", c.name)

	return c.loop.stop(ctx)
}

// runOnce plays the sound once; cancellation kills the player process.
func (c *Command) runOnce(ctx context.Context) error {
	//nolint:gosec // The invocation comes from the user's own configuration.
	err := exec.CommandContext(ctx, c.name, c.args...).Run()
	if err == nil {
		return nil
	}

	// Avoid a hot loop when the player keeps failing.
	select {
	case <-ctx.Done():
	case <-time.After(failureBackoff):
	}

	return err
}
