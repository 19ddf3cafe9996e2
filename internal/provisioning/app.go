package provisioning

import (
	"fmt"

	"github.com/nvsentinel/demo-env/internal/k8s"
)

// ApplicationPhase installs the NVSentinel stack into its namespace. The
// chart version comes from the resolved configuration (flag, env override,
// or default). On arm64 hosts the datastore image overlay is merged in,
// since the default datastore build is amd64-only.
type ApplicationPhase struct{}

// NewApplicationPhase creates a new application phase.
func NewApplicationPhase() *ApplicationPhase {
	return &ApplicationPhase{}
}

// Name implements the Phase interface.
func (p *ApplicationPhase) Name() string {
	return "application"
}

// Provision implements the Phase interface.
func (p *ApplicationPhase) Provision(ctx *Context) error {
	namespace := ctx.Config.AppNamespace

	if err := ctx.State.Kube.EnsureNamespace(ctx, namespace); err != nil {
		return fmt.Errorf("failed to ensure namespace %s: %w", namespace, err)
	}

	ref := ctx.Config.Charts.NVSentinel
	values := map[string]any{}

	if ctx.Config.HostArch == "arm64" {
		ctx.Observer.Infof("arm64 host detected, applying ARM values overlay")
		values = armValues()
	}

	ctx.Observer.Infof("Installing NVSentinel %s into namespace %s (this can take several minutes)", ref.Version, namespace)

	rel, err := ctx.Charts.InstallOrUpgrade(ctx, ctx.State.Kubeconfig, k8s.ChartSpec{
		ReleaseName: "nvsentinel",
		Namespace:   namespace,
		RepoURL:     ref.Repo,
		Chart:       ref.Chart,
		Version:     ref.Version,
		Values:      values,
		Wait:        true,
		Timeout:     ctx.Timeouts.Application,
	})
	if err != nil {
		return fmt.Errorf("NVSentinel install failed: %w", err)
	}

	ctx.Observer.Infof("NVSentinel release %s at revision %d", rel.Name, rel.Revision)
	return nil
}

// armValues swaps the datastore image for an arm64-capable build. Matches
// the chart's values-arm.yaml overlay.
func armValues() map[string]any {
	return map[string]any{
		"mongodb": map[string]any{
			"image": map[string]any{
				"repository": "mongodb/mongodb-community-server",
				"tag":        "7.0.12-ubi8",
			},
		},
	}
}
