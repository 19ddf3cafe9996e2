package commands

import (
	"github.com/spf13/cobra"

	"github.com/nvsentinel/demo-env/cmd/nvsentinel-demo/handlers"
)

// Status returns the status command, which reports on an existing demo
// cluster without provisioning anything.
func Status() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show node and pod state for an existing demo cluster",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Status(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to an optional YAML config overriding the demo defaults")

	return cmd
}
