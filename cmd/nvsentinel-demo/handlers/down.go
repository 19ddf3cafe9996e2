package handlers

import (
	"context"
	"fmt"
	"os"
	"slices"

	kindplatform "github.com/nvsentinel/demo-env/internal/platform/kind"
	"github.com/nvsentinel/demo-env/internal/provisioning"
)

// Down deletes the demo cluster if it exists.
func Down(_ context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	observer := provisioning.NewConsoleObserver(os.Stdout)
	clusters := kindplatform.NewProvisioner()

	existing, err := clusters.List()
	if err != nil {
		return fmt.Errorf("failed to list clusters: %w", err)
	}

	if !slices.Contains(existing, cfg.ClusterName) {
		observer.Infof("Cluster %q does not exist, nothing to do", cfg.ClusterName)
		return nil
	}

	if err := clusters.Delete(cfg.ClusterName); err != nil {
		return err
	}

	observer.Successf("Cluster %q deleted", cfg.ClusterName)
	return nil
}
