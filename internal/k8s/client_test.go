package k8s

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func TestEnsureNamespace_Idempotent(t *testing.T) {
	t.Parallel()
	client := NewClientFromClientset(fake.NewSimpleClientset())

	require.NoError(t, client.EnsureNamespace(t.Context(), "nvsentinel"))
	require.NoError(t, client.EnsureNamespace(t.Context(), "nvsentinel"))

	_, err := client.Clientset().CoreV1().Namespaces().Get(t.Context(), "nvsentinel", metav1.GetOptions{})
	require.NoError(t, err)
}

func TestLabelNode_MergesLabels(t *testing.T) {
	t.Parallel()
	clientset := fake.NewSimpleClientset(&corev1.Node{
		ObjectMeta: metav1.ObjectMeta{
			Name:   "worker",
			Labels: map[string]string{"existing": "kept"},
		},
	})
	client := NewClientFromClientset(clientset)

	err := client.LabelNode(t.Context(), "worker", map[string]string{
		"nvidia.com/gpu.present": "true",
	})

	require.NoError(t, err)

	node, err := clientset.CoreV1().Nodes().Get(t.Context(), "worker", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, "true", node.Labels["nvidia.com/gpu.present"])
	assert.Equal(t, "kept", node.Labels["existing"])
}

func TestLabelNode_MissingNode(t *testing.T) {
	t.Parallel()
	client := NewClientFromClientset(fake.NewSimpleClientset())

	err := client.LabelNode(t.Context(), "nope", map[string]string{"a": "b"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to label node nope")
}

func TestGetPods_FiltersBySelector(t *testing.T) {
	t.Parallel()
	clientset := fake.NewSimpleClientset(
		&corev1.Pod{ObjectMeta: metav1.ObjectMeta{
			Name: "match", Namespace: "demo",
			Labels: map[string]string{"app": "dcgm-simulator"},
		}},
		&corev1.Pod{ObjectMeta: metav1.ObjectMeta{
			Name: "other", Namespace: "demo",
			Labels: map[string]string{"app": "something-else"},
		}},
	)
	client := NewClientFromClientset(clientset)

	pods, err := client.GetPods(t.Context(), "demo", "app=dcgm-simulator")

	require.NoError(t, err)
	require.Len(t, pods, 1)
	assert.Equal(t, "match", pods[0].Name)
}

func testDeployment(image string) *appsv1.Deployment {
	return &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{Name: "dcgm-simulator", Namespace: "demo"},
		Spec: appsv1.DeploymentSpec{
			Template: corev1.PodTemplateSpec{
				Spec: corev1.PodSpec{
					Containers: []corev1.Container{{Name: "main", Image: image}},
				},
			},
		},
	}
}

func TestApplyDeployment_CreateThenUpdate(t *testing.T) {
	t.Parallel()
	clientset := fake.NewSimpleClientset()
	client := NewClientFromClientset(clientset)

	require.NoError(t, client.ApplyDeployment(t.Context(), testDeployment("image:v1")))
	require.NoError(t, client.ApplyDeployment(t.Context(), testDeployment("image:v2")))

	deployment, err := clientset.AppsV1().Deployments("demo").Get(t.Context(), "dcgm-simulator", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, "image:v2", deployment.Spec.Template.Spec.Containers[0].Image)
}

func TestApplyService_PreservesClusterIP(t *testing.T) {
	t.Parallel()
	clientset := fake.NewSimpleClientset(&corev1.Service{
		ObjectMeta: metav1.ObjectMeta{Name: "dcgm-simulator", Namespace: "demo"},
		Spec: corev1.ServiceSpec{
			ClusterIP: "10.0.0.42",
			Ports:     []corev1.ServicePort{{Port: 5555}},
		},
	})
	client := NewClientFromClientset(clientset)

	err := client.ApplyService(t.Context(), &corev1.Service{
		ObjectMeta: metav1.ObjectMeta{Name: "dcgm-simulator", Namespace: "demo"},
		Spec: corev1.ServiceSpec{
			Ports: []corev1.ServicePort{{Port: 5555}, {Port: 5556}},
		},
	})

	require.NoError(t, err)

	service, err := clientset.CoreV1().Services("demo").Get(t.Context(), "dcgm-simulator", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.42", service.Spec.ClusterIP)
	assert.Len(t, service.Spec.Ports, 2)
}

func TestNewClientFromBytes_InvalidKubeconfig(t *testing.T) {
	t.Parallel()
	_, err := NewClientFromBytes([]byte("not a kubeconfig"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to build kubeconfig")
}
