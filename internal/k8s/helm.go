package k8s

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"k8s.io/apimachinery/pkg/api/meta"
	"k8s.io/client-go/discovery"
	"k8s.io/client-go/discovery/cached/memory"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/restmapper"
	"k8s.io/client-go/tools/clientcmd"
	clientcmdapi "k8s.io/client-go/tools/clientcmd/api"

	"helm.sh/helm/v3/pkg/action"
	"helm.sh/helm/v3/pkg/chart/loader"
	"helm.sh/helm/v3/pkg/cli"
	"helm.sh/helm/v3/pkg/release"
)

// ChartSpec describes one install-or-upgrade of a pinned chart.
type ChartSpec struct {
	ReleaseName     string
	Namespace       string
	RepoURL         string
	Chart           string
	Version         string
	Values          map[string]any
	Wait            bool
	Timeout         time.Duration
	CreateNamespace bool
}

// ReleaseStatus is the installer's reported outcome for a release.
type ReleaseStatus struct {
	Name     string
	Revision int
	Status   release.Status
}

// Deployed reports whether the release reached the deployed state.
func (r *ReleaseStatus) Deployed() bool {
	return r.Status == release.StatusDeployed
}

// HelmClient handles Helm operations.
type HelmClient struct {
	settings *cli.EnvSettings
}

// NewHelmClient creates a new HelmClient.
func NewHelmClient() *HelmClient {
	return &HelmClient{
		settings: cli.New(),
	}
}

// InstallOrUpgrade installs a chart, or upgrades it if a release with the
// same name already exists. When spec.Wait is set, the call blocks until the
// chart's own readiness criteria hold, bounded by spec.Timeout.
func (h *HelmClient) InstallOrUpgrade(ctx context.Context, kubeconfig []byte, spec ChartSpec) (*ReleaseStatus, error) {
	restConfig, err := clientcmd.RESTConfigFromKubeConfig(kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create rest config: %w", err)
	}

	actionConfig := new(action.Configuration)
	clientGetter := &genericRESTClientGetter{
		config:    restConfig,
		namespace: spec.Namespace,
	}

	if err := actionConfig.Init(clientGetter, spec.Namespace, os.Getenv("HELM_DRIVER"), log.Printf); err != nil {
		return nil, fmt.Errorf("failed to init action config: %w", err)
	}

	cp := &action.ChartPathOptions{}
	cp.RepoURL = spec.RepoURL
	cp.Version = spec.Version

	chartPath, err := cp.LocateChart(spec.Chart, h.settings)
	if err != nil {
		return nil, fmt.Errorf("failed to locate chart %s: %w", spec.Chart, err)
	}

	chart, err := loader.Load(chartPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart %s: %w", spec.Chart, err)
	}

	// Check if already installed
	histClient := action.NewHistory(actionConfig)
	histClient.Max = 1
	if _, err := histClient.Run(spec.ReleaseName); err == nil {
		upgrade := action.NewUpgrade(actionConfig)
		upgrade.Namespace = spec.Namespace
		upgrade.Wait = spec.Wait
		upgrade.Timeout = spec.Timeout
		rel, err := upgrade.RunWithContext(ctx, spec.ReleaseName, chart, spec.Values)
		if err != nil {
			return nil, fmt.Errorf("helm upgrade of %s failed: %w", spec.ReleaseName, err)
		}
		return releaseStatus(rel), nil
	}

	install := action.NewInstall(actionConfig)
	install.Namespace = spec.Namespace
	install.ReleaseName = spec.ReleaseName
	install.CreateNamespace = spec.CreateNamespace
	install.Wait = spec.Wait
	install.Timeout = spec.Timeout
	rel, err := install.RunWithContext(ctx, chart, spec.Values)
	if err != nil {
		return nil, fmt.Errorf("helm install of %s failed: %w", spec.ReleaseName, err)
	}

	return releaseStatus(rel), nil
}

func releaseStatus(rel *release.Release) *ReleaseStatus {
	status := &ReleaseStatus{
		Name:     rel.Name,
		Revision: rel.Version,
	}
	if rel.Info != nil {
		status.Status = rel.Info.Status
	}

	return status
}

// genericRESTClientGetter implements basic RESTClientGetter for Helm.
type genericRESTClientGetter struct {
	config    *rest.Config
	namespace string
}

func (g *genericRESTClientGetter) ToRESTConfig() (*rest.Config, error) {
	return g.config, nil
}

func (g *genericRESTClientGetter) ToDiscoveryClient() (discovery.CachedDiscoveryInterface, error) {
	discoveryClient, err := discovery.NewDiscoveryClientForConfig(g.config)
	if err != nil {
		return nil, err
	}
	return memory.NewMemCacheClient(discoveryClient), nil
}

func (g *genericRESTClientGetter) ToRESTMapper() (meta.RESTMapper, error) {
	discoveryClient, err := g.ToDiscoveryClient()
	if err != nil {
		return nil, err
	}
	return restmapper.NewDeferredDiscoveryRESTMapper(discoveryClient), nil
}

func (g *genericRESTClientGetter) ToRawKubeConfigLoader() clientcmd.ClientConfig {
	return clientcmd.NewDefaultClientConfig(*clientcmdapi.NewConfig(), &clientcmd.ConfigOverrides{})
}
