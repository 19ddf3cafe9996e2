package provisioning

import (
	"fmt"
	"slices"

	"github.com/nvsentinel/demo-env/internal/config"
	"github.com/nvsentinel/demo-env/internal/k8s"
)

// demoNodeCount is the fixed cluster topology size: one control-plane node
// plus one worker.
const demoNodeCount = 2

// ClusterPhase idempotently establishes the demo cluster. An existing
// cluster with the same name is destroyed first; there is no reconcile path
// for cluster topology.
type ClusterPhase struct {
	newClient func([]byte) (*k8s.Client, error)
}

// NewClusterPhase creates a new cluster phase.
func NewClusterPhase() *ClusterPhase {
	return &ClusterPhase{newClient: k8s.NewClientFromBytes}
}

// Name implements the Phase interface.
func (cp *ClusterPhase) Name() string {
	return "cluster"
}

// Provision implements the Phase interface.
func (cp *ClusterPhase) Provision(ctx *Context) error {
	name := ctx.Config.ClusterName

	clusters, err := ctx.Clusters.List()
	if err != nil {
		return fmt.Errorf("failed to list clusters: %w", err)
	}

	if slices.Contains(clusters, name) {
		ctx.Observer.Warningf("Cluster %q already exists, deleting it", name)
		if err := ctx.Clusters.Delete(name); err != nil {
			return fmt.Errorf("failed to delete existing cluster %s: %w", name, err)
		}
	}

	ctx.Observer.Infof("Creating cluster %q (1 control-plane, 1 worker)", name)
	if err := ctx.Clusters.Create(name, config.KindTopology(name)); err != nil {
		return fmt.Errorf("failed to create cluster %s: %w", name, err)
	}

	kubeconfig, err := ctx.Clusters.Kubeconfig(name)
	if err != nil {
		return fmt.Errorf("failed to export kubeconfig: %w", err)
	}

	kube, err := cp.newClient(kubeconfig)
	if err != nil {
		return fmt.Errorf("failed to build cluster client: %w", err)
	}

	ctx.State.Kubeconfig = kubeconfig
	ctx.State.Kube = kube

	ctx.Observer.Infof("Waiting up to %v for %d nodes to become ready", ctx.Timeouts.NodesReady, demoNodeCount)
	if err := kube.WaitForNodesReady(ctx, demoNodeCount, ctx.Timeouts.NodesReady); err != nil {
		return fmt.Errorf("cluster nodes did not become ready: %w", err)
	}

	return nil
}
