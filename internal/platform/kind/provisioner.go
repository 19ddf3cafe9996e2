// Package kind wraps the kind SDK for demo cluster lifecycle operations.
package kind

import (
	"fmt"
	"io"
	"os"
	"strings"

	"sigs.k8s.io/kind/pkg/apis/config/v1alpha4"
	"sigs.k8s.io/kind/pkg/cluster"
	"sigs.k8s.io/kind/pkg/log"
)

// Provider describes the subset of kind's cluster provider used here.
type Provider interface {
	List() ([]string, error)
	Create(name string, options ...cluster.CreateOption) error
	Delete(name, explicitKubeconfigPath string) error
	KubeConfig(name string, internal bool) (string, error)
}

// Provisioner manages kind cluster lifecycle through the kind SDK.
type Provisioner struct {
	provider Provider
}

// NewProvisioner creates a Provisioner backed by the real kind provider,
// streaming kind's console output to stdout.
func NewProvisioner() *Provisioner {
	return &Provisioner{
		provider: cluster.NewProvider(
			cluster.ProviderWithLogger(&streamLogger{writer: os.Stdout}),
		),
	}
}

// NewProvisionerWithProvider creates a Provisioner with an explicit provider
// for testing purposes.
func NewProvisionerWithProvider(provider Provider) *Provisioner {
	return &Provisioner{provider: provider}
}

// List returns the names of all existing kind clusters.
func (p *Provisioner) List() ([]string, error) {
	clusters, err := p.provider.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list kind clusters: %w", err)
	}

	return clusters, nil
}

// Create creates a cluster from the given typed config.
func (p *Provisioner) Create(name string, config *v1alpha4.Cluster) error {
	err := p.provider.Create(name, cluster.CreateWithV1Alpha4Config(config))
	if err != nil {
		return fmt.Errorf("failed to create kind cluster %s: %w", name, err)
	}

	return nil
}

// Delete deletes a cluster and removes its kubeconfig entry.
func (p *Provisioner) Delete(name string) error {
	if err := p.provider.Delete(name, ""); err != nil {
		return fmt.Errorf("failed to delete kind cluster %s: %w", name, err)
	}

	return nil
}

// Kubeconfig returns the external kubeconfig for a cluster.
func (p *Provisioner) Kubeconfig(name string) ([]byte, error) {
	kubeconfig, err := p.provider.KubeConfig(name, false)
	if err != nil {
		return nil, fmt.Errorf("failed to export kubeconfig for cluster %s: %w", name, err)
	}

	return []byte(kubeconfig), nil
}

// streamLogger forwards kind's console output to a writer in real time.
// Only info-level messages (V(0)) are enabled to avoid verbose debug output.
type streamLogger struct {
	writer io.Writer
}

func (l *streamLogger) Warn(message string) {
	l.write(message)
}

func (l *streamLogger) Warnf(format string, args ...any) {
	l.write(fmt.Sprintf(format, args...))
}

func (l *streamLogger) Error(message string) {
	l.write(message)
}

func (l *streamLogger) Errorf(format string, args ...any) {
	l.write(fmt.Sprintf(format, args...))
}

func (l *streamLogger) V(level log.Level) log.InfoLogger {
	if level > 0 {
		return noopInfoLogger{}
	}

	return l
}

func (l *streamLogger) Info(message string) {
	l.write(message)
}

func (l *streamLogger) Infof(format string, args ...any) {
	l.write(fmt.Sprintf(format, args...))
}

func (l *streamLogger) Enabled() bool {
	return true
}

func (l *streamLogger) write(message string) {
	if message == "" {
		_, _ = io.WriteString(l.writer, "\n")
		return
	}

	if strings.ContainsRune(message, '\r') || strings.HasSuffix(message, "\n") {
		_, _ = io.WriteString(l.writer, message)
		return
	}

	_, _ = io.WriteString(l.writer, message+"\n")
}

// noopInfoLogger discards verbose/debug messages (V(1) and higher).
type noopInfoLogger struct{}

func (noopInfoLogger) Info(string)          {}
func (noopInfoLogger) Infof(string, ...any) {}
func (noopInfoLogger) Enabled() bool        { return false }
