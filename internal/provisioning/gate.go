package provisioning

import (
	"fmt"
)

// ReadinessGatePhase blocks until each workload group reports ready, one
// group at a time, each under its own timeout. The first group that fails
// its wait aborts the gate; later groups are not checked.
type ReadinessGatePhase struct{}

// NewReadinessGatePhase creates a new readiness gate phase.
func NewReadinessGatePhase() *ReadinessGatePhase {
	return &ReadinessGatePhase{}
}

// Name implements the Phase interface.
func (p *ReadinessGatePhase) Name() string {
	return "readiness-gate"
}

// Provision implements the Phase interface.
func (p *ReadinessGatePhase) Provision(ctx *Context) error {
	for _, group := range ctx.Config.WorkloadGroups {
		ctx.Observer.Infof("Waiting up to %v for %s (%s)", ctx.Timeouts.GateGroup, group.Name, group.Selector)

		err := ctx.State.Kube.WaitForPodsReady(ctx, group.Namespace, group.Selector, ctx.Timeouts.GateGroup)
		if err != nil {
			return fmt.Errorf("%s did not become ready within %v: %w", group.Name, ctx.Timeouts.GateGroup, err)
		}

		ctx.Observer.Successf("%s ready", group.Name)
	}

	return nil
}
