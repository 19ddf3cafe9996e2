package provisioning

import (
	"fmt"

	"github.com/nvsentinel/demo-env/internal/k8s"
)

// controlPlaneLabel marks nodes the labeler must skip. Only workers host the
// simulated GPU workloads.
const controlPlaneLabel = "node-role.kubernetes.io/control-plane"

// NodeLabelPhase applies the fixed GPU label set to every worker node,
// making them eligible for hardware-dependent scheduling. Re-running is a
// no-op when the labels already match.
type NodeLabelPhase struct{}

// NewNodeLabelPhase creates a new node label phase.
func NewNodeLabelPhase() *NodeLabelPhase {
	return &NodeLabelPhase{}
}

// Name implements the Phase interface.
func (p *NodeLabelPhase) Name() string {
	return "node-labels"
}

// Provision implements the Phase interface.
func (p *NodeLabelPhase) Provision(ctx *Context) error {
	nodes, err := ctx.State.Kube.ListNodes(ctx)
	if err != nil {
		return fmt.Errorf("failed to list nodes: %w", err)
	}

	labeled := 0
	for _, node := range nodes {
		if k8s.NodeRole(&node) != "worker" {
			continue
		}

		if err := ctx.State.Kube.LabelNode(ctx, node.Name, ctx.Config.NodeLabels); err != nil {
			return err
		}

		ctx.Observer.Infof("Labeled node %s as simulated GPU hardware", node.Name)
		labeled++
	}

	if labeled == 0 {
		return fmt.Errorf("no worker nodes found to label")
	}

	return nil
}
