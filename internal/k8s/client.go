// Package k8s provides a Kubernetes client wrapper for the demo pipeline.
package k8s

import (
	"context"
	"encoding/json"
	"fmt"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// Client wraps Kubernetes API operations used by the pipeline stages.
type Client struct {
	clientset  kubernetes.Interface
	restConfig *rest.Config
}

// NewClientFromBytes creates a new Kubernetes client from kubeconfig bytes.
func NewClientFromBytes(kubeconfigData []byte) (*Client, error) {
	config, err := clientcmd.RESTConfigFromKubeConfig(kubeconfigData)
	if err != nil {
		return nil, fmt.Errorf("failed to build kubeconfig from bytes: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create clientset: %w", err)
	}

	return &Client{
		clientset:  clientset,
		restConfig: config,
	}, nil
}

// NewClientFromClientset wraps an existing clientset. Callers that need pod
// exec must use NewClientFromBytes instead, since no REST config is attached.
func NewClientFromClientset(clientset kubernetes.Interface) *Client {
	return &Client{clientset: clientset}
}

// EnsureNamespace creates a namespace if it does not already exist.
func (c *Client) EnsureNamespace(ctx context.Context, name string) error {
	ns := &corev1.Namespace{
		ObjectMeta: metav1.ObjectMeta{Name: name},
	}

	_, err := c.clientset.CoreV1().Namespaces().Create(ctx, ns, metav1.CreateOptions{})
	if err != nil {
		if apierrors.IsAlreadyExists(err) {
			return nil
		}
		return fmt.Errorf("failed to create namespace %s: %w", name, err)
	}

	return nil
}

// ListNodes returns all nodes in the cluster.
func (c *Client) ListNodes(ctx context.Context) ([]corev1.Node, error) {
	nodeList, err := c.clientset.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list nodes: %w", err)
	}

	return nodeList.Items, nil
}

// LabelNode merge-patches the given labels onto a node, overwriting any
// existing values for the same keys.
func (c *Client) LabelNode(ctx context.Context, name string, labels map[string]string) error {
	patch, err := json.Marshal(map[string]any{
		"metadata": map[string]any{
			"labels": labels,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal label patch: %w", err)
	}

	_, err = c.clientset.CoreV1().Nodes().Patch(ctx, name, types.MergePatchType, patch, metav1.PatchOptions{})
	if err != nil {
		return fmt.Errorf("failed to label node %s: %w", name, err)
	}

	return nil
}

// GetPods returns pods matching a label selector in a namespace.
func (c *Client) GetPods(ctx context.Context, namespace, labelSelector string) ([]corev1.Pod, error) {
	podList, err := c.clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{
		LabelSelector: labelSelector,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pods: %w", err)
	}

	return podList.Items, nil
}

// ApplyDeployment creates a deployment, or updates it if it already exists.
func (c *Client) ApplyDeployment(ctx context.Context, deployment *appsv1.Deployment) error {
	deployments := c.clientset.AppsV1().Deployments(deployment.Namespace)

	_, err := deployments.Create(ctx, deployment, metav1.CreateOptions{})
	if err != nil {
		if !apierrors.IsAlreadyExists(err) {
			return fmt.Errorf("failed to create deployment %s/%s: %w", deployment.Namespace, deployment.Name, err)
		}
		existing, getErr := deployments.Get(ctx, deployment.Name, metav1.GetOptions{})
		if getErr != nil {
			return fmt.Errorf("failed to get deployment %s/%s: %w", deployment.Namespace, deployment.Name, getErr)
		}
		deployment.ResourceVersion = existing.ResourceVersion
		if _, err := deployments.Update(ctx, deployment, metav1.UpdateOptions{}); err != nil {
			return fmt.Errorf("failed to update deployment %s/%s: %w", deployment.Namespace, deployment.Name, err)
		}
	}

	return nil
}

// ApplyService creates a service, or updates it if it already exists. The
// allocated ClusterIP is preserved across updates.
func (c *Client) ApplyService(ctx context.Context, service *corev1.Service) error {
	services := c.clientset.CoreV1().Services(service.Namespace)

	_, err := services.Create(ctx, service, metav1.CreateOptions{})
	if err != nil {
		if !apierrors.IsAlreadyExists(err) {
			return fmt.Errorf("failed to create service %s/%s: %w", service.Namespace, service.Name, err)
		}
		existing, getErr := services.Get(ctx, service.Name, metav1.GetOptions{})
		if getErr != nil {
			return fmt.Errorf("failed to get service %s/%s: %w", service.Namespace, service.Name, getErr)
		}
		service.ResourceVersion = existing.ResourceVersion
		service.Spec.ClusterIP = existing.Spec.ClusterIP
		if _, err := services.Update(ctx, service, metav1.UpdateOptions{}); err != nil {
			return fmt.Errorf("failed to update service %s/%s: %w", service.Namespace, service.Name, err)
		}
	}

	return nil
}

// Clientset exposes the underlying typed clientset.
func (c *Client) Clientset() kubernetes.Interface {
	return c.clientset
}
