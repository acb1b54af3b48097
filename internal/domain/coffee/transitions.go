package coffee

import (
	"context"

	"github.com/garyjia/coffee-machine/internal/domain/workflow"
)

// precondition binds a check state to the sensor it tests
type precondition struct {
	state   workflow.State
	next    workflow.State
	holds   func(workflow.Sensors) bool
	failure Failure
}

// preconditions are evaluated in this order: water, bin, capsule
var preconditions = []precondition{
	{
		state:   workflow.StateCheckWater,
		next:    workflow.StateCheckBin,
		holds:   func(s workflow.Sensors) bool { return s.WaterTankFilled },
		failure: FailureWaterTankEmpty,
	},
	{
		state:   workflow.StateCheckBin,
		next:    workflow.StateCheckCapsule,
		holds:   func(s workflow.Sensors) bool { return s.CapsuleBinEmpty },
		failure: FailureCapsuleBinFull,
	},
	{
		state:   workflow.StateCheckCapsule,
		next:    workflow.StateBrewing,
		holds:   func(s workflow.Sensors) bool { return s.CapsuleInserted },
		failure: FailureCapsuleNotInserted,
	},
}

// brewTransitions is never configured after init; Build copies it per machine
var brewTransitions = NewTransitionBuilder()

// NewTransitionBuilder creates a builder configured with the brew readiness chart:
// Idle -> CheckWater -> CheckBin -> CheckCapsule -> Brewing -> Idle, where each
// check state may abort back to Idle.
func NewTransitionBuilder() workflow.StateMachineBuilder {
	builder := workflow.NewBuilder()

	builder.Configure(workflow.StateIdle).
		Permit(workflow.TriggerBrew, workflow.StateCheckWater)

	for _, p := range preconditions {
		holds := p.holds
		builder.Configure(p.state).
			PermitIf(workflow.TriggerProceed, p.next, func(_ context.Context, s workflow.Sensors) bool {
				return holds(s)
			}).
			Permit(workflow.TriggerAbort, workflow.StateIdle)
	}

	builder.Configure(workflow.StateBrewing).
		Permit(workflow.TriggerFinish, workflow.StateIdle)

	return builder
}

// TransitionTable returns the brew readiness transitions
func TransitionTable() []workflow.TransitionRule {
	return brewTransitions.Transitions()
}

func failureFor(state workflow.State) Failure {
	for _, p := range preconditions {
		if p.state == state {
			return p.failure
		}
	}
	return FailureNone
}
