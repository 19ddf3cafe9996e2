package config

import (
	"os"
	"time"
)

// Timeouts holds the per-stage wait bounds. The values intentionally differ
// between stages and are kept as distinct knobs rather than a single policy.
type Timeouts struct {
	NodesReady      time.Duration // Cluster node readiness after creation
	CertManager     time.Duration // cert-manager built-in install wait
	MetricsCRDs     time.Duration // metrics CRD install
	Application     time.Duration // NVSentinel install (datastore init dominates)
	SimulatorSettle time.Duration // Delay before the first simulator probe
	SimulatorProbe  time.Duration // Total budget for the simulator TCP probe
	SimulatorPoll   time.Duration // Interval between simulator probes
	GateGroup       time.Duration // Per workload group in the readiness gate
}

// LoadTimeouts loads timeout configuration from environment variables.
// If a variable is not set or invalid, the default value is used.
//
// Environment Variables:
//   - NVSENTINEL_DEMO_TIMEOUT_NODES (default: 120s)
//   - NVSENTINEL_DEMO_TIMEOUT_CERT_MANAGER (default: 120s)
//   - NVSENTINEL_DEMO_TIMEOUT_METRICS_CRDS (default: 60s)
//   - NVSENTINEL_DEMO_TIMEOUT_APPLICATION (default: 600s)
//   - NVSENTINEL_DEMO_TIMEOUT_SIMULATOR_SETTLE (default: 10s)
//   - NVSENTINEL_DEMO_TIMEOUT_SIMULATOR_PROBE (default: 90s)
//   - NVSENTINEL_DEMO_TIMEOUT_SIMULATOR_POLL (default: 5s)
//   - NVSENTINEL_DEMO_TIMEOUT_GATE_GROUP (default: 300s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		NodesReady:      parseDuration("NVSENTINEL_DEMO_TIMEOUT_NODES", 120*time.Second),
		CertManager:     parseDuration("NVSENTINEL_DEMO_TIMEOUT_CERT_MANAGER", 120*time.Second),
		MetricsCRDs:     parseDuration("NVSENTINEL_DEMO_TIMEOUT_METRICS_CRDS", 60*time.Second),
		Application:     parseDuration("NVSENTINEL_DEMO_TIMEOUT_APPLICATION", 600*time.Second),
		SimulatorSettle: parseDuration("NVSENTINEL_DEMO_TIMEOUT_SIMULATOR_SETTLE", 10*time.Second),
		SimulatorProbe:  parseDuration("NVSENTINEL_DEMO_TIMEOUT_SIMULATOR_PROBE", 90*time.Second),
		SimulatorPoll:   parseDuration("NVSENTINEL_DEMO_TIMEOUT_SIMULATOR_POLL", 5*time.Second),
		GateGroup:       parseDuration("NVSENTINEL_DEMO_TIMEOUT_GATE_GROUP", 300*time.Second),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}
