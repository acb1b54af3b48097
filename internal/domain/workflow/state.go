package workflow

// State represents a stage of a brew attempt
type State string

const (
	StateIdle         State = "IDLE"
	StateCheckWater   State = "CHECK_WATER"
	StateCheckBin     State = "CHECK_BIN"
	StateCheckCapsule State = "CHECK_CAPSULE"
	StateBrewing      State = "BREWING"
)

var validStates = map[State]bool{
	StateIdle:         true,
	StateCheckWater:   true,
	StateCheckBin:     true,
	StateCheckCapsule: true,
	StateBrewing:      true,
}

var checkStates = map[State]bool{
	StateCheckWater:   true,
	StateCheckBin:     true,
	StateCheckCapsule: true,
}

// IsCheck returns true if the state tests a single precondition
func (s State) IsCheck() bool {
	return checkStates[s]
}

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}

// IsValid returns true if the state is a known brew state
func (s State) IsValid() bool {
	return validStates[s]
}
