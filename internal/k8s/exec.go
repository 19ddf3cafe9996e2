package k8s

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/tools/remotecommand"
)

// ExecInPod runs a command inside a pod's first container and returns the
// combined output. A non-zero exit status surfaces as an error.
func (c *Client) ExecInPod(ctx context.Context, namespace, podName string, command []string) (string, error) {
	if c.restConfig == nil {
		return "", fmt.Errorf("pod exec requires a client built from a kubeconfig")
	}

	req := c.clientset.CoreV1().RESTClient().Post().
		Resource("pods").
		Name(podName).
		Namespace(namespace).
		SubResource("exec").
		VersionedParams(&corev1.PodExecOptions{
			Command: command,
			Stdout:  true,
			Stderr:  true,
		}, scheme.ParameterCodec)

	exec, err := remotecommand.NewSPDYExecutor(c.restConfig, "POST", req.URL())
	if err != nil {
		return "", fmt.Errorf("failed to create executor for pod %s/%s: %w", namespace, podName, err)
	}

	var stdout, stderr bytes.Buffer
	err = exec.StreamWithContext(ctx, remotecommand.StreamOptions{
		Stdout: &stdout,
		Stderr: &stderr,
	})
	output := strings.TrimSpace(stdout.String() + stderr.String())
	if err != nil {
		return output, fmt.Errorf("exec in pod %s/%s failed: %w", namespace, podName, err)
	}

	return output, nil
}
