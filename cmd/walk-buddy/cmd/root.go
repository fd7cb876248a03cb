package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/walk-buddy/internal/config"
	"github.com/oshokin/walk-buddy/internal/service/app"
	"github.com/oshokin/walk-buddy/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// logFile overrides the log file used while the UI runs.
	logFile string
	// verbose enables debug logging.
	verbose bool

	// rootCmd represents the base command that runs the terminal UI.
	rootCmd = &cobra.Command{
		Use:   "walk-buddy",
		Short: "Strobe, alarm and one-key emergency message for walking home.",
		Long: `Runs the walk-buddy terminal UI.

The panic screen strobes the torch and the screen, adjusts the strobe speed
and engages panic mode: strobe, audible alarm and an emergency SMS to the
stored contact. The settings screen edits the emergency contact.

Keys: f/space flash, left/right speed, d screen flash, p panic, s settings, q quit.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return app.Run(ctx, &app.Options{
				ConfigPath: configPath,
				LogFile:    logFile,
				Verbose:    verbose,
			})
		},
	}
)

// Execute runs the walk-buddy CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Config is shared by every subcommand.
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "log file used while the UI runs (default from config)")

	rootCmd.AddCommand(sosCmd, contactCmd)
}
