package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/walk-buddy/internal/config"
	"github.com/oshokin/walk-buddy/internal/service/relay"
	"github.com/oshokin/walk-buddy/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// alertFile path where the last alert is persisted.
	alertFile string
	// verbose enables debug logging.
	verbose bool

	// rootCmd represents the base command for running the relay.
	rootCmd = &cobra.Command{
		Use:   "walk-buddy-relay [listen-address]",
		Short: "Run the panic relay gRPC server.",
		Long: `Starts the gRPC relay that receives panic alerts from walk-buddy
instances whose message driver is "relay", and delivers them with the
sender configured under relay.delivery (e.g. KDE Connect on this machine).

Only the port of relay.listen_addr is used for listening (e.g., :50051).
Listen address can be provided as argument to override config (e.g., :9090, 0.0.0.0:8080).
The last alert is persisted to a JSON file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			// Use listen address argument if provided, otherwise rely on config.
			var listenAddress string
			if len(args) > 0 {
				listenAddress = args[0]
			}

			return relay.Run(ctx, &relay.Options{
				ConfigPath:    configPath,
				ListenAddress: listenAddress,
				AlertFile:     alertFile,
				Verbose:       verbose,
			})
		},
	}
)

// Execute runs the walk-buddy-relay CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().StringVarP(&alertFile, "alert-file", "a", "", "path to persist the last alert (default from config)")
}
