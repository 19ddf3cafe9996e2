package k8s

import (
	"context"
	"time"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/util/wait"
)

const pollInterval = 5 * time.Second

// WaitForNodesReady waits until the cluster reports exactly expected nodes
// and all of them carry a true NodeReady condition.
func (c *Client) WaitForNodesReady(ctx context.Context, expected int, timeout time.Duration) error {
	return wait.PollUntilContextTimeout(ctx, pollInterval, timeout, true, func(ctx context.Context) (bool, error) {
		nodes, err := c.ListNodes(ctx)
		if err != nil {
			return false, nil
		}

		if len(nodes) != expected {
			return false, nil
		}

		for _, node := range nodes {
			if !IsNodeReady(&node) {
				return false, nil
			}
		}

		return true, nil
	})
}

// WaitForPodsReady waits for all pods matching a label selector to become
// ready. At least one matching pod must exist.
func (c *Client) WaitForPodsReady(ctx context.Context, namespace, labelSelector string, timeout time.Duration) error {
	return wait.PollUntilContextTimeout(ctx, pollInterval, timeout, true, func(ctx context.Context) (bool, error) {
		pods, err := c.GetPods(ctx, namespace, labelSelector)
		if err != nil {
			return false, nil
		}

		if len(pods) == 0 {
			return false, nil
		}

		for _, pod := range pods {
			if !IsPodReady(&pod) {
				return false, nil
			}
		}

		return true, nil
	})
}

// WaitForRunningPod waits until at least one pod matching the selector is
// running and returns its name.
func (c *Client) WaitForRunningPod(ctx context.Context, namespace, labelSelector string, timeout time.Duration) (string, error) {
	var podName string

	err := wait.PollUntilContextTimeout(ctx, pollInterval, timeout, true, func(ctx context.Context) (bool, error) {
		pods, err := c.GetPods(ctx, namespace, labelSelector)
		if err != nil {
			return false, nil
		}

		for _, pod := range pods {
			if pod.Status.Phase == corev1.PodRunning {
				podName = pod.Name
				return true, nil
			}
		}

		return false, nil
	})
	if err != nil {
		return "", err
	}

	return podName, nil
}

// IsNodeReady checks if a node reports a true NodeReady condition.
func IsNodeReady(node *corev1.Node) bool {
	for _, condition := range node.Status.Conditions {
		if condition.Type == corev1.NodeReady &&
			condition.Status == corev1.ConditionTrue {
			return true
		}
	}

	return false
}

// IsPodReady checks if a pod is running and reports a true PodReady condition.
func IsPodReady(pod *corev1.Pod) bool {
	if pod.Status.Phase != corev1.PodRunning {
		return false
	}

	for _, condition := range pod.Status.Conditions {
		if condition.Type == corev1.PodReady &&
			condition.Status == corev1.ConditionTrue {
			return true
		}
	}

	return false
}

// NodeRole returns the node's role derived from its role labels.
func NodeRole(node *corev1.Node) string {
	if _, ok := node.Labels["node-role.kubernetes.io/control-plane"]; ok {
		return "control-plane"
	}

	return "worker"
}

// PodReadyCount returns how many containers in the pod are ready.
func PodReadyCount(pod *corev1.Pod) (ready, total int) {
	total = len(pod.Spec.Containers)
	for _, status := range pod.Status.ContainerStatuses {
		if status.Ready {
			ready++
		}
	}

	return ready, total
}
