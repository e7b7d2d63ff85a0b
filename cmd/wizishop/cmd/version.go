package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JWebCreation/wizishop-sdk/pkg/wizishop"
)

// Version is set at build time via ldflags.
var Version = "dev"

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "wizishop %s (sdk %s)\n", Version, wizishop.Version)
			return err
		},
	}
}
