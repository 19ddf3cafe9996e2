package kind

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/kind/pkg/apis/config/v1alpha4"
	"sigs.k8s.io/kind/pkg/cluster"
)

type mockProvider struct {
	clusters   []string
	kubeconfig string

	listErr   error
	createErr error
	deleteErr error
	configErr error

	created []string
	deleted []string
}

func (m *mockProvider) List() ([]string, error) {
	return m.clusters, m.listErr
}

func (m *mockProvider) Create(name string, _ ...cluster.CreateOption) error {
	m.created = append(m.created, name)
	return m.createErr
}

func (m *mockProvider) Delete(name, _ string) error {
	m.deleted = append(m.deleted, name)
	return m.deleteErr
}

func (m *mockProvider) KubeConfig(name string, internal bool) (string, error) {
	if internal {
		return "", fmt.Errorf("internal kubeconfig requested")
	}
	return m.kubeconfig, m.configErr
}

func TestProvisioner_List(t *testing.T) {
	t.Parallel()
	provider := &mockProvider{clusters: []string{"a", "b"}}
	provisioner := NewProvisionerWithProvider(provider)

	clusters, err := provisioner.List()

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, clusters)
}

func TestProvisioner_ListError(t *testing.T) {
	t.Parallel()
	provider := &mockProvider{listErr: fmt.Errorf("docker not running")}
	provisioner := NewProvisionerWithProvider(provider)

	_, err := provisioner.List()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list kind clusters")
}

func TestProvisioner_Create(t *testing.T) {
	t.Parallel()
	provider := &mockProvider{}
	provisioner := NewProvisionerWithProvider(provider)

	err := provisioner.Create("demo", &v1alpha4.Cluster{Name: "demo"})

	require.NoError(t, err)
	assert.Equal(t, []string{"demo"}, provider.created)
}

func TestProvisioner_CreateError(t *testing.T) {
	t.Parallel()
	provider := &mockProvider{createErr: fmt.Errorf("port already in use")}
	provisioner := NewProvisionerWithProvider(provider)

	err := provisioner.Create("demo", &v1alpha4.Cluster{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create kind cluster demo")
}

func TestProvisioner_Delete(t *testing.T) {
	t.Parallel()
	provider := &mockProvider{}
	provisioner := NewProvisionerWithProvider(provider)

	require.NoError(t, provisioner.Delete("demo"))
	assert.Equal(t, []string{"demo"}, provider.deleted)
}

func TestProvisioner_Kubeconfig(t *testing.T) {
	t.Parallel()
	provider := &mockProvider{kubeconfig: "apiVersion: v1"}
	provisioner := NewProvisionerWithProvider(provider)

	data, err := provisioner.Kubeconfig("demo")

	require.NoError(t, err)
	assert.Equal(t, []byte("apiVersion: v1"), data)
}

func TestStreamLogger_Write(t *testing.T) {
	t.Parallel()
	var buf strings.Builder
	logger := &streamLogger{writer: &buf}

	logger.Info("plain line")
	logger.Info("already terminated\n")
	logger.Info("")
	logger.Infof("formatted %d", 42)

	assert.Equal(t, "plain line\nalready terminated\n\nformatted 42\n", buf.String())
}

func TestStreamLogger_Verbosity(t *testing.T) {
	t.Parallel()
	logger := &streamLogger{writer: &strings.Builder{}}

	assert.True(t, logger.V(0).Enabled())
	assert.False(t, logger.V(1).Enabled())
}
