package handlers

import (
	"context"
	"os"

	"github.com/nvsentinel/demo-env/internal/k8s"
	kindplatform "github.com/nvsentinel/demo-env/internal/platform/kind"
	"github.com/nvsentinel/demo-env/internal/provisioning"
)

// Status runs only the status reporter against an existing demo cluster.
func Status(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	clusters := kindplatform.NewProvisioner()

	kubeconfig, err := clusters.Kubeconfig(cfg.ClusterName)
	if err != nil {
		return err
	}

	kube, err := k8s.NewClientFromBytes(kubeconfig)
	if err != nil {
		return err
	}

	pctx := provisioning.NewContext(ctx, cfg, clusters, nil, provisioning.NewConsoleObserver(os.Stdout))
	pctx.State.Kubeconfig = kubeconfig
	pctx.State.Kube = kube

	return provisioning.NewStatusPhase().Provision(pctx)
}
