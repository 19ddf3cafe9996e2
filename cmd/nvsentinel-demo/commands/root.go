// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing and flag binding. Command execution is delegated to handler
// functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the nvsentinel-demo CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nvsentinel-demo",
		Short: "Provision a disposable NVSentinel demo environment on kind",
	}

	cmd.AddCommand(Up())
	cmd.AddCommand(Down())
	cmd.AddCommand(Status())
	cmd.AddCommand(Version())

	return cmd
}
