package message

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/oshokin/walk-buddy/internal/domain/safety"
	"github.com/oshokin/walk-buddy/internal/logger"
)

// Opener hands sms: URIs to the desktop's URI handler, e.g. xdg-open.
type Opener struct {
	// program is the opener binary.
	program string
	// lookPath resolves the opener binary.
	lookPath func(file string) (string, error)
	// run executes the opener.
	run func(ctx context.Context, name string, args ...string) error
}

// NewOpener returns a sender that runs program with the URI.
func NewOpener(program string) *Opener {
	return &Opener{
		program:  program,
		lookPath: exec.LookPath,
		run:      runCommand,
	}
}

// CanOpen implements Sender.
func (o *Opener) CanOpen(ctx context.Context, uri string) bool {
	if _, _, err := ParseSMSURI(uri); err != nil {
		return false
	}

	if _, err := o.lookPath(o.program); err != nil {
		logger.DebugKV(ctx, "URI opener not found", "opener", o.program, "error", err)

		return false
	}

	return true
}

// Open implements Sender.
func (o *Opener) Open(ctx context.Context, uri string) error {
	if err := o.run(ctx, o.program, uri); err != nil {
		return fmt.Errorf("open uri: %w: %w", safety.ErrCapabilityDenied, err)
	}

	logger.InfoKV(ctx, "Message URI opened", "opener", o.program)

	return nil
}
