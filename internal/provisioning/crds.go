package provisioning

import (
	"fmt"

	"github.com/nvsentinel/demo-env/internal/k8s"
)

// MetricsCRDsPhase installs the metrics custom-resource schema (the
// prometheus-operator CRDs) that the application's monitors register against.
// The artifact is schema-only, so instead of a built-in readiness wait the
// installer's reported release state is checked explicitly.
type MetricsCRDsPhase struct{}

// NewMetricsCRDsPhase creates a new metrics CRDs phase.
func NewMetricsCRDsPhase() *MetricsCRDsPhase {
	return &MetricsCRDsPhase{}
}

// Name implements the Phase interface.
func (p *MetricsCRDsPhase) Name() string {
	return "metrics-crds"
}

// Provision implements the Phase interface.
func (p *MetricsCRDsPhase) Provision(ctx *Context) error {
	ref := ctx.Config.Charts.MetricsCRDs

	ctx.Observer.Infof("Installing metrics CRDs (%s %s)", ref.Chart, ref.Version)

	rel, err := ctx.Charts.InstallOrUpgrade(ctx, ctx.State.Kubeconfig, k8s.ChartSpec{
		ReleaseName:     "prometheus-operator-crds",
		Namespace:       "default",
		RepoURL:         ref.Repo,
		Chart:           ref.Chart,
		Version:         ref.Version,
		Timeout:         ctx.Timeouts.MetricsCRDs,
		CreateNamespace: false,
	})
	if err != nil {
		return fmt.Errorf("metrics CRD install failed: %w", err)
	}

	if !rel.Deployed() {
		return fmt.Errorf("metrics CRD release %s reported status %s", rel.Name, rel.Status)
	}

	return nil
}
