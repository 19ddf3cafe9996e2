package provisioning

import (
	"fmt"

	"github.com/nvsentinel/demo-env/internal/k8s"
)

// CertManagerPhase installs cert-manager, the foundational platform service
// the application's webhooks depend on. The chart's built-in wait covers
// controller, webhook, and cainjector readiness.
type CertManagerPhase struct{}

// NewCertManagerPhase creates a new cert-manager phase.
func NewCertManagerPhase() *CertManagerPhase {
	return &CertManagerPhase{}
}

// Name implements the Phase interface.
func (p *CertManagerPhase) Name() string {
	return "cert-manager"
}

// Provision implements the Phase interface.
func (p *CertManagerPhase) Provision(ctx *Context) error {
	ref := ctx.Config.Charts.CertManager

	ctx.Observer.Infof("Installing cert-manager %s", ref.Version)

	rel, err := ctx.Charts.InstallOrUpgrade(ctx, ctx.State.Kubeconfig, k8s.ChartSpec{
		ReleaseName: "cert-manager",
		Namespace:   "cert-manager",
		RepoURL:     ref.Repo,
		Chart:       ref.Chart,
		Version:     ref.Version,
		Values: map[string]any{
			"crds": map[string]any{"enabled": true},
		},
		Wait:            true,
		Timeout:         ctx.Timeouts.CertManager,
		CreateNamespace: true,
	})
	if err != nil {
		return fmt.Errorf("cert-manager install failed: %w", err)
	}

	ctx.Observer.Infof("cert-manager release %s at revision %d", rel.Name, rel.Revision)
	return nil
}
