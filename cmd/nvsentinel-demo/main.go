// Package main is the entry point for the nvsentinel-demo CLI.
//
// nvsentinel-demo provisions a disposable single-machine demonstration
// environment for the NVSentinel GPU health-monitoring stack: a two-node
// kind cluster with cert-manager, the metrics CRDs, the application, and a
// simulated DCGM hardware daemon.
//
// Commands: up, down, status, version.
package main

import (
	"fmt"
	"os"

	"github.com/nvsentinel/demo-env/cmd/nvsentinel-demo/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
