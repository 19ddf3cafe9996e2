// Package handlers implements command execution for the nvsentinel-demo CLI.
package handlers

import (
	"context"
	"os"

	"github.com/nvsentinel/demo-env/internal/config"
	"github.com/nvsentinel/demo-env/internal/k8s"
	kindplatform "github.com/nvsentinel/demo-env/internal/platform/kind"
	"github.com/nvsentinel/demo-env/internal/provisioning"
)

// Up runs the full provisioning pipeline.
func Up(ctx context.Context, configPath, version string, skipStatus bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if version != "" {
		cfg.SetAppVersion(version)
	}

	pctx := provisioning.NewContext(
		ctx,
		cfg,
		kindplatform.NewProvisioner(),
		k8s.NewHelmClient(),
		provisioning.NewConsoleObserver(os.Stdout),
	)

	return provisioning.RunPhases(pctx, demoPhases(skipStatus))
}

// demoPhases returns the pipeline stages in their fixed execution order.
func demoPhases(skipStatus bool) []provisioning.Phase {
	phases := []provisioning.Phase{
		provisioning.NewValidationPhase(),
		provisioning.NewClusterPhase(),
		provisioning.NewCertManagerPhase(),
		provisioning.NewMetricsCRDsPhase(),
		provisioning.NewApplicationPhase(),
		provisioning.NewSimulatorPhase(),
		provisioning.NewNodeLabelPhase(),
		provisioning.NewReadinessGatePhase(),
	}

	if !skipStatus {
		phases = append(phases, provisioning.NewStatusPhase())
	}

	return phases
}

// loadConfig returns the demo defaults, overlaid with a config file when one
// is given.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}

	return config.LoadFile(configPath)
}
