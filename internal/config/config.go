// Package config holds the demo environment configuration: cluster identity,
// chart coordinates, workload groups, and stage timeouts.
package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Default values for the demo environment. The application version can be
// overridden via the NVSENTINEL_VERSION environment variable or the
// --version flag; everything else is fixed demo topology.
const (
	DefaultClusterName = "nvsentinel-demo"
	DefaultAppVersion  = "0.4.0"

	// AppNamespace is where the NVSentinel stack is installed.
	AppNamespace = "nvsentinel"
	// SimulatorNamespace is where the DCGM simulator runs.
	SimulatorNamespace = "gpu-operator"

	// VersionEnvVar overrides the application chart version.
	VersionEnvVar = "NVSENTINEL_VERSION"
)

// ChartRef identifies a pinned Helm chart.
type ChartRef struct {
	Repo    string `yaml:"repo"`
	Chart   string `yaml:"chart"`
	Version string `yaml:"version"`
}

// Charts holds the chart coordinates for every installer stage.
type Charts struct {
	CertManager ChartRef `yaml:"cert_manager"`
	MetricsCRDs ChartRef `yaml:"metrics_crds"`
	NVSentinel  ChartRef `yaml:"nvsentinel"`
}

// WorkloadGroup names a set of pods the readiness gate waits on.
type WorkloadGroup struct {
	Name      string `yaml:"name"`
	Namespace string `yaml:"namespace"`
	Selector  string `yaml:"selector"`
}

// Config holds the demo environment configuration.
type Config struct {
	ClusterName        string          `yaml:"cluster_name"`
	AppNamespace       string          `yaml:"app_namespace"`
	SimulatorNamespace string          `yaml:"simulator_namespace"`
	AppVersion         string          `yaml:"app_version"`
	HostArch           string          `yaml:"-"`
	RequiredTools      []string        `yaml:"required_tools"`
	Charts             Charts          `yaml:"charts"`
	WorkloadGroups     []WorkloadGroup `yaml:"workload_groups"`
	NodeLabels         map[string]string
}

// Default returns the fixed demo configuration. The application version is
// taken from NVSENTINEL_VERSION when set.
func Default() *Config {
	version := DefaultAppVersion
	if v := os.Getenv(VersionEnvVar); v != "" {
		version = v
	}

	return &Config{
		ClusterName:        DefaultClusterName,
		AppNamespace:       AppNamespace,
		SimulatorNamespace: SimulatorNamespace,
		AppVersion:         version,
		HostArch:           runtime.GOARCH,
		RequiredTools:      []string{"docker"},
		Charts: Charts{
			CertManager: ChartRef{
				Repo:    "https://charts.jetstack.io",
				Chart:   "cert-manager",
				Version: "v1.16.2",
			},
			MetricsCRDs: ChartRef{
				Repo:    "https://prometheus-community.github.io/helm-charts",
				Chart:   "prometheus-operator-crds",
				Version: "16.0.1",
			},
			NVSentinel: ChartRef{
				Repo:    "https://nvidia.github.io/nvsentinel",
				Chart:   "nvsentinel",
				Version: version,
			},
		},
		WorkloadGroups: DefaultWorkloadGroups(),
		NodeLabels:     GPUNodeLabels(),
	}
}

// LoadFile reads a YAML config file and overlays it on the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.ClusterName == "" {
		return nil, fmt.Errorf("cluster_name is required")
	}
	// A version set in the file also pins the chart, unless the env override
	// is present (env wins).
	if os.Getenv(VersionEnvVar) == "" {
		cfg.Charts.NVSentinel.Version = cfg.AppVersion
	}

	return cfg, nil
}

// SetAppVersion pins the application version explicitly (e.g. from a CLI
// flag), taking precedence over both the env override and the default.
func (c *Config) SetAppVersion(version string) {
	c.AppVersion = version
	c.Charts.NVSentinel.Version = version
}
