package workflow

// Trigger represents an event that can cause a state transition
type Trigger string

const (
	// TriggerBrew starts an attempt from Idle
	TriggerBrew Trigger = "BREW"
	// TriggerProceed advances a check state when its precondition holds
	TriggerProceed Trigger = "PROCEED"
	// TriggerAbort returns a check state to Idle
	TriggerAbort Trigger = "ABORT"
	// TriggerFinish returns Brewing to Idle
	TriggerFinish Trigger = "FINISH"
)

// String returns the string representation of the trigger
func (t Trigger) String() string {
	return string(t)
}
