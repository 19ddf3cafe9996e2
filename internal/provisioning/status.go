package provisioning

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	corev1 "k8s.io/api/core/v1"

	"github.com/nvsentinel/demo-env/internal/k8s"
)

// Styles matching a compact status table. Styled rendering is used only on
// interactive terminals; plain output otherwise.
var (
	statusTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#f9fafb"))

	statusSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#3b82f6"))

	statusDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6b7280"))
)

// StatusPhase prints the cluster's node and pod state. Best-effort: any
// error degrades to a warning, never a pipeline failure.
type StatusPhase struct{}

// NewStatusPhase creates a new status phase.
func NewStatusPhase() *StatusPhase {
	return &StatusPhase{}
}

// Name implements the Phase interface.
func (p *StatusPhase) Name() string {
	return "status"
}

// Provision implements the Phase interface.
func (p *StatusPhase) Provision(ctx *Context) error {
	nodes, err := ctx.State.Kube.ListNodes(ctx)
	if err != nil {
		ctx.Observer.Warningf("Could not list nodes for the status report: %v", err)
		return nil
	}

	namespaces := []string{ctx.Config.AppNamespace, ctx.Config.SimulatorNamespace}
	podsByNamespace := make(map[string][]corev1.Pod, len(namespaces))
	for _, namespace := range namespaces {
		pods, err := ctx.State.Kube.GetPods(ctx, namespace, "")
		if err != nil {
			ctx.Observer.Warningf("Could not list pods in %s: %v", namespace, err)
			continue
		}
		podsByNamespace[namespace] = pods
	}

	fmt.Print(RenderStatus(ctx.Config.ClusterName, nodes, namespaces, podsByNamespace, isInteractiveTTY()))
	return nil
}

// RenderStatus produces the status report for the given cluster state.
func RenderStatus(clusterName string, nodes []corev1.Node, namespaces []string, podsByNamespace map[string][]corev1.Pod, styled bool) string {
	title := func(s string) string { return s }
	section := func(s string) string { return s }
	dim := func(s string) string { return s }
	if styled {
		title = func(s string) string { return statusTitleStyle.Render(s) }
		section = func(s string) string { return statusSectionStyle.Render(s) }
		dim = func(s string) string { return statusDimStyle.Render(s) }
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(title(fmt.Sprintf("  cluster: %s", clusterName)))
	b.WriteString("\n")
	b.WriteString(dim("  " + strings.Repeat("═", 40)))
	b.WriteString("\n\n")

	b.WriteString(section("  Nodes"))
	b.WriteString("\n")
	b.WriteString(dim(fmt.Sprintf("  %-34s %-14s %-8s %s", "Name", "Role", "Ready", "Version")))
	b.WriteString("\n")
	for _, node := range nodes {
		ready := "no"
		if k8s.IsNodeReady(&node) {
			ready = "yes"
		}
		fmt.Fprintf(&b, "  %-34s %-14s %-8s %s\n",
			node.Name, k8s.NodeRole(&node), ready, node.Status.NodeInfo.KubeletVersion)
	}

	for _, namespace := range namespaces {
		pods, ok := podsByNamespace[namespace]
		if !ok {
			continue
		}

		b.WriteString("\n")
		b.WriteString(section(fmt.Sprintf("  Pods in %s", namespace)))
		b.WriteString("\n")
		b.WriteString(dim(fmt.Sprintf("  %-52s %-8s %s", "Name", "Ready", "Phase")))
		b.WriteString("\n")

		if len(pods) == 0 {
			b.WriteString(dim("  (none)"))
			b.WriteString("\n")
			continue
		}

		for _, pod := range pods {
			ready, total := k8s.PodReadyCount(&pod)
			fmt.Fprintf(&b, "  %-52s %d/%-6d %s\n", pod.Name, ready, total, pod.Status.Phase)
		}
	}

	b.WriteString("\n")
	return b.String()
}

func isInteractiveTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
