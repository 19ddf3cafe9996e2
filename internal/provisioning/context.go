package provisioning

import (
	"context"

	"sigs.k8s.io/kind/pkg/apis/config/v1alpha4"

	"github.com/nvsentinel/demo-env/internal/config"
	"github.com/nvsentinel/demo-env/internal/k8s"
)

// ClusterProvisioner abstracts the kind cluster lifecycle.
// Implemented by internal/platform/kind.Provisioner.
type ClusterProvisioner interface {
	// List returns the names of all existing clusters.
	List() ([]string, error)

	// Create creates a cluster from the given typed config.
	Create(name string, config *v1alpha4.Cluster) error

	// Delete deletes a cluster.
	Delete(name string) error

	// Kubeconfig returns the external kubeconfig for a cluster.
	Kubeconfig(name string) ([]byte, error)
}

// ChartInstaller abstracts helm install-or-upgrade of a pinned chart.
// Implemented by internal/k8s.HelmClient.
type ChartInstaller interface {
	InstallOrUpgrade(ctx context.Context, kubeconfig []byte, spec k8s.ChartSpec) (*k8s.ReleaseStatus, error)
}

// State holds the shared results of provisioning phases. It is populated by
// the cluster phase and read by every later phase; no phase relies on an
// ambient "current cluster" context.
type State struct {
	// Kubeconfig for the freshly created cluster.
	Kubeconfig []byte

	// Kube is the client handle bound to the new cluster.
	Kube *k8s.Client
}

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	Config   *config.Config
	Timeouts *config.Timeouts
	Clusters ClusterProvisioner
	Charts   ChartInstaller
	Observer Observer
	State    *State
}

// NewContext creates a new provisioning context.
func NewContext(
	ctx context.Context,
	cfg *config.Config,
	clusters ClusterProvisioner,
	charts ChartInstaller,
	observer Observer,
) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		Timeouts: config.LoadTimeouts(),
		Clusters: clusters,
		Charts:   charts,
		Observer: observer,
		State:    &State{},
	}
}
