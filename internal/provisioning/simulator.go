package provisioning

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"time"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/util/wait"
	"sigs.k8s.io/yaml"
)

//go:embed payloads/simulator.yaml
var simulatorPayload []byte

const (
	// simulatorSelector matches the simulated DCGM workload.
	simulatorSelector = "app=dcgm-simulator"

	// simulatorPort is where the simulated hostengine accepts connections.
	simulatorPort = 5555
)

// SimulatorPhase deploys a workload that emulates the DCGM hardware daemon
// and blocks until it accepts TCP connections on its port. The probe runs
// inside the pod, which is a stronger guarantee than process liveness.
type SimulatorPhase struct {
	probe func(ctx *Context, podName string) error
}

// NewSimulatorPhase creates a new simulator phase.
func NewSimulatorPhase() *SimulatorPhase {
	p := &SimulatorPhase{}
	p.probe = p.tcpProbe
	return p
}

// Name implements the Phase interface.
func (p *SimulatorPhase) Name() string {
	return "dcgm-simulator"
}

// Provision implements the Phase interface.
func (p *SimulatorPhase) Provision(ctx *Context) error {
	namespace := ctx.Config.SimulatorNamespace

	if err := ctx.State.Kube.EnsureNamespace(ctx, namespace); err != nil {
		return fmt.Errorf("failed to ensure namespace %s: %w", namespace, err)
	}

	deployment, service, err := loadSimulatorPayload()
	if err != nil {
		return err
	}
	deployment.Namespace = namespace
	service.Namespace = namespace

	if err := ctx.State.Kube.ApplyDeployment(ctx, deployment); err != nil {
		return err
	}
	if err := ctx.State.Kube.ApplyService(ctx, service); err != nil {
		return err
	}

	ctx.Observer.Infof("Waiting for the DCGM simulator pod to start")
	podName, err := ctx.State.Kube.WaitForRunningPod(ctx, namespace, simulatorSelector, ctx.Timeouts.SimulatorProbe)
	if err != nil {
		return fmt.Errorf("DCGM simulator pod did not start: %w", err)
	}

	// Give the hostengine a moment to bind its port before probing.
	time.Sleep(ctx.Timeouts.SimulatorSettle)

	ctx.Observer.Infof("Probing port %d on pod %s", simulatorPort, podName)
	err = wait.PollUntilContextTimeout(ctx, ctx.Timeouts.SimulatorPoll, ctx.Timeouts.SimulatorProbe, true,
		func(context.Context) (bool, error) {
			if probeErr := p.probe(ctx, podName); probeErr != nil {
				return false, nil
			}
			return true, nil
		})
	if err != nil {
		return fmt.Errorf("DCGM simulator never accepted connections on port %d: %w", simulatorPort, err)
	}

	ctx.Observer.Infof("DCGM simulator is accepting connections on port %d", simulatorPort)
	return nil
}

// tcpProbe attempts a live TCP connection to the simulator port from inside
// the pod.
func (p *SimulatorPhase) tcpProbe(ctx *Context, podName string) error {
	command := []string{
		"bash", "-c",
		fmt.Sprintf("timeout 2 bash -c '</dev/tcp/localhost/%d'", simulatorPort),
	}

	_, err := ctx.State.Kube.ExecInPod(ctx, ctx.Config.SimulatorNamespace, podName, command)
	return err
}

// loadSimulatorPayload decodes the embedded workload and service payloads
// into typed objects.
func loadSimulatorPayload() (*appsv1.Deployment, *corev1.Service, error) {
	var (
		deployment *appsv1.Deployment
		service    *corev1.Service
	)

	for _, doc := range strings.Split(string(simulatorPayload), "\n---\n") {
		doc = strings.TrimSpace(doc)
		if doc == "" {
			continue
		}

		var meta struct {
			Kind string `json:"kind"`
		}
		if err := yaml.Unmarshal([]byte(doc), &meta); err != nil {
			return nil, nil, fmt.Errorf("failed to decode simulator payload: %w", err)
		}

		switch meta.Kind {
		case "Deployment":
			deployment = &appsv1.Deployment{}
			if err := yaml.Unmarshal([]byte(doc), deployment); err != nil {
				return nil, nil, fmt.Errorf("failed to decode simulator deployment: %w", err)
			}
		case "Service":
			service = &corev1.Service{}
			if err := yaml.Unmarshal([]byte(doc), service); err != nil {
				return nil, nil, fmt.Errorf("failed to decode simulator service: %w", err)
			}
		default:
			return nil, nil, fmt.Errorf("unexpected kind %q in simulator payload", meta.Kind)
		}
	}

	if deployment == nil || service == nil {
		return nil, nil, fmt.Errorf("simulator payload must contain a Deployment and a Service")
	}

	return deployment, service, nil
}
