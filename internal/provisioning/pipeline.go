// Package provisioning implements the demo environment pipeline: an ordered
// sequence of idempotent phases executed fail-fast against a kind cluster.
package provisioning

import (
	"fmt"
	"time"
)

// Phase defines the interface for a provisioning phase.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Provision executes the provisioning logic for this phase.
	Provision(ctx *Context) error
}

// RunPhases executes all provisioning phases sequentially. The first phase
// error aborts the run; later phases never start after a failure.
func RunPhases(ctx *Context, phases []Phase) error {
	start := time.Now()
	ctx.Observer.Infof("Starting provisioning with %d phases", len(phases))

	for i, phase := range phases {
		phaseStart := time.Now()
		name := fmt.Sprintf("%s (%d/%d)", phase.Name(), i+1, len(phases))

		ctx.Observer.Infof("[%s] starting", name)

		if err := phase.Provision(ctx); err != nil {
			ctx.Observer.Errorf("[%s] failed: %v", name, err)
			return fmt.Errorf("%s phase failed: %w", phase.Name(), err)
		}

		ctx.Observer.Successf("[%s] completed in %v", name, time.Since(phaseStart).Round(time.Millisecond))
	}

	ctx.Observer.Successf("Provisioning completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}
