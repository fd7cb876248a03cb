package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/walk-buddy/internal/service/settings"
)

var (
	// contactCmd groups the emergency contact commands.
	contactCmd = &cobra.Command{
		Use:   "contact",
		Short: "Show or change the emergency contact.",
	}

	// contactGetCmd prints the stored contact.
	contactGetCmd = &cobra.Command{
		Use:   "get",
		Short: "Print the emergency contact.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return settings.RunGet(cmd.Context(), &settings.Options{
				ConfigPath: configPath,
				Output:     cmd.OutOrStdout(),
			})
		},
	}

	// contactSetCmd stores a new contact. An empty number keeps the current one.
	contactSetCmd = &cobra.Command{
		Use:   "set <number>",
		Short: "Store a new emergency contact.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return settings.RunSet(cmd.Context(), &settings.Options{
				ConfigPath: configPath,
				Output:     cmd.OutOrStdout(),
			}, args[0])
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	contactCmd.AddCommand(contactGetCmd, contactSetCmd)
}
