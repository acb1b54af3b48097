package workflow

import "context"

// Sensors is the appliance context read by transition guards
type Sensors struct {
	WaterTankFilled bool `yaml:"water_tank_filled"`
	CapsuleBinEmpty bool `yaml:"capsule_bin_empty"`
	CapsuleInserted bool `yaml:"capsule_inserted"`
}

// StateMachine tracks the current state and validates transitions
type StateMachine interface {
	// State returns the current state
	State() State

	// CanFire returns true if the trigger is configured for the current state
	CanFire(trigger Trigger) bool

	// Fire attempts to execute the trigger against the given sensors,
	// transitioning to the new state if allowed
	Fire(ctx context.Context, trigger Trigger, sensors Sensors) error

	// PermittedTriggers returns the triggers configured for the current state, sorted
	PermittedTriggers() []Trigger

	// Reset forces the machine into the given state without evaluating guards
	Reset(state State) error
}
