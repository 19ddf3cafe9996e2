package commands

import (
	"github.com/spf13/cobra"

	"github.com/nvsentinel/demo-env/cmd/nvsentinel-demo/handlers"
)

// Down returns the down command, which deletes the demo cluster.
func Down() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "down",
		Short: "Delete the demo cluster",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Down(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to an optional YAML config overriding the demo defaults")

	return cmd
}
