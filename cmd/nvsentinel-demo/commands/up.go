package commands

import (
	"github.com/spf13/cobra"

	"github.com/nvsentinel/demo-env/cmd/nvsentinel-demo/handlers"
)

// Up returns the up command, which runs the full provisioning pipeline.
func Up() *cobra.Command {
	var (
		configPath string
		version    string
		skipStatus bool
	)

	cmd := &cobra.Command{
		Use:   "up",
		Short: "Create the demo cluster and install the full NVSentinel stack",
		Long: `Runs the provisioning pipeline: validates prerequisites, creates a
two-node kind cluster (destroying any previous demo cluster), installs
cert-manager, the metrics CRDs, and NVSentinel, deploys the DCGM simulator,
labels worker nodes as simulated GPU hardware, and waits for every workload
group to become ready.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Up(cmd.Context(), configPath, version, skipStatus)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to an optional YAML config overriding the demo defaults")
	cmd.Flags().StringVar(&version, "version", "", "NVSentinel version to install (overrides NVSENTINEL_VERSION and the default)")
	cmd.Flags().BoolVar(&skipStatus, "skip-status", false, "suppress the final status report")

	return cmd
}
