package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/oshokin/walk-buddy/internal/service/sos"
)

var (
	// sosDuration limits panic mode; zero waits for a signal.
	sosDuration time.Duration

	// sosCmd engages panic mode without the UI.
	sosCmd = &cobra.Command{
		Use:   "sos",
		Short: "Engage panic mode without the UI.",
		Long: `Strobes the torch, sounds the alarm and sends the emergency SMS to the
stored contact, then keeps strobing until the duration elapses or the
process receives SIGINT/SIGTERM. Suitable for a global hotkey.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return sos.Run(ctx, &sos.Options{
				ConfigPath: configPath,
				Duration:   sosDuration,
				Verbose:    verbose,
			})
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	sosCmd.Flags().DurationVarP(&sosDuration, "duration", "d", 0, "how long to stay in panic mode (0 waits for a signal)")
}
