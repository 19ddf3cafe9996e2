package provisioning

import (
	"context"
	"fmt"
	"sync"
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
	"sigs.k8s.io/kind/pkg/apis/config/v1alpha4"

	"github.com/nvsentinel/demo-env/internal/config"
	"github.com/nvsentinel/demo-env/internal/k8s"
)

// recordingObserver captures messages per severity for assertions.
type recordingObserver struct {
	mu       sync.Mutex
	infos    []string
	succs    []string
	warnings []string
	errors   []string
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{}
}

func (o *recordingObserver) Infof(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.infos = append(o.infos, fmt.Sprintf(format, args...))
}

func (o *recordingObserver) Successf(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.succs = append(o.succs, fmt.Sprintf(format, args...))
}

func (o *recordingObserver) Warningf(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.warnings = append(o.warnings, fmt.Sprintf(format, args...))
}

func (o *recordingObserver) Errorf(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.errors = append(o.errors, fmt.Sprintf(format, args...))
}

func (o *recordingObserver) all() []string {
	o.mu.Lock()
	defer o.mu.Unlock()

	var all []string
	all = append(all, o.infos...)
	all = append(all, o.succs...)
	all = append(all, o.warnings...)
	all = append(all, o.errors...)
	return all
}

// mockClusterProvisioner records lifecycle calls in order.
type mockClusterProvisioner struct {
	existing   []string
	kubeconfig []byte

	listErr   error
	createErr error
	deleteErr error

	calls []string
}

func (m *mockClusterProvisioner) List() ([]string, error) {
	m.calls = append(m.calls, "list")
	return m.existing, m.listErr
}

func (m *mockClusterProvisioner) Create(name string, _ *v1alpha4.Cluster) error {
	m.calls = append(m.calls, "create:"+name)
	return m.createErr
}

func (m *mockClusterProvisioner) Delete(name string) error {
	m.calls = append(m.calls, "delete:"+name)
	return m.deleteErr
}

func (m *mockClusterProvisioner) Kubeconfig(name string) ([]byte, error) {
	m.calls = append(m.calls, "kubeconfig:"+name)
	return m.kubeconfig, nil
}

// mockChartInstaller captures the specs it was asked to install.
type mockChartInstaller struct {
	specs  []k8s.ChartSpec
	status *k8s.ReleaseStatus
	err    error
}

func (m *mockChartInstaller) InstallOrUpgrade(_ context.Context, _ []byte, spec k8s.ChartSpec) (*k8s.ReleaseStatus, error) {
	m.specs = append(m.specs, spec)
	if m.err != nil {
		return nil, m.err
	}
	if m.status != nil {
		return m.status, nil
	}
	return &k8s.ReleaseStatus{Name: spec.ReleaseName, Revision: 1, Status: "deployed"}, nil
}

// fastTimeouts keeps test waits short.
func fastTimeouts() *config.Timeouts {
	return &config.Timeouts{
		NodesReady:      100 * time.Millisecond,
		CertManager:     100 * time.Millisecond,
		MetricsCRDs:     100 * time.Millisecond,
		Application:     100 * time.Millisecond,
		SimulatorSettle: 0,
		SimulatorProbe:  100 * time.Millisecond,
		SimulatorPoll:   10 * time.Millisecond,
		GateGroup:       100 * time.Millisecond,
	}
}

// newTestContext builds a Context with a recording observer and fast
// timeouts, backed by the given clientset.
func newTestContext(clientset *fake.Clientset) (*Context, *recordingObserver) {
	observer := newRecordingObserver()

	ctx := &Context{
		Context:  context.Background(),
		Config:   config.Default(),
		Timeouts: fastTimeouts(),
		Observer: observer,
		State:    &State{},
	}
	if clientset != nil {
		ctx.State.Kube = k8s.NewClientFromClientset(clientset)
	}

	return ctx, observer
}

// readyNode builds a ready node, optionally marked as control-plane.
func readyNode(name string, controlPlane bool) *corev1.Node {
	labels := map[string]string{}
	if controlPlane {
		labels["node-role.kubernetes.io/control-plane"] = ""
	}

	return &corev1.Node{
		ObjectMeta: metav1.ObjectMeta{Name: name, Labels: labels},
		Status: corev1.NodeStatus{
			Conditions: []corev1.NodeCondition{
				{Type: corev1.NodeReady, Status: corev1.ConditionTrue},
			},
		},
	}
}

// readyPod builds a running, ready pod with the given labels.
func readyPod(namespace, name string, labels map[string]string) *corev1.Pod {
	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace, Labels: labels},
		Spec: corev1.PodSpec{
			Containers: []corev1.Container{{Name: "main"}},
		},
		Status: corev1.PodStatus{
			Phase: corev1.PodRunning,
			Conditions: []corev1.PodCondition{
				{Type: corev1.PodReady, Status: corev1.ConditionTrue},
			},
			ContainerStatuses: []corev1.ContainerStatus{{Name: "main", Ready: true}},
		},
	}
}

// pendingPod builds a pod that never reports ready.
func pendingPod(namespace, name string, labels map[string]string) *corev1.Pod {
	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace, Labels: labels},
		Spec: corev1.PodSpec{
			Containers: []corev1.Container{{Name: "main"}},
		},
		Status: corev1.PodStatus{
			Phase: corev1.PodPending,
		},
	}
}
