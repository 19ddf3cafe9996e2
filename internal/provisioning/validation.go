package provisioning

import (
	"fmt"
	"os/exec"
	"strings"
)

// ValidationPhase checks that every required external tool is invocable.
// All missing tools are collected before failing, so the operator fixes the
// environment in one round-trip.
type ValidationPhase struct {
	lookPath func(string) (string, error)
}

// NewValidationPhase creates a new validation phase.
func NewValidationPhase() *ValidationPhase {
	return &ValidationPhase{lookPath: exec.LookPath}
}

// Name implements the Phase interface.
func (vp *ValidationPhase) Name() string {
	return "validation"
}

// Provision implements the Phase interface.
func (vp *ValidationPhase) Provision(ctx *Context) error {
	tools := ctx.Config.RequiredTools

	missing := missingTools(tools, vp.lookPath)
	if len(missing) > 0 {
		return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
	}

	ctx.Observer.Infof("All required tools present: %s", strings.Join(tools, ", "))
	return nil
}

// missingTools returns the names of every tool not found by look, in the
// order they were listed.
func missingTools(tools []string, look func(string) (string, error)) []string {
	var missing []string
	for _, tool := range tools {
		if _, err := look(tool); err != nil {
			missing = append(missing, tool)
		}
	}

	return missing
}
