package coffee

// Failure identifies the precondition that stopped a brew attempt
type Failure int

const (
	FailureNone Failure = iota
	FailureWaterTankEmpty
	FailureCapsuleBinFull
	FailureCapsuleNotInserted
)

// MessageBrewed is reported when every precondition holds
const MessageBrewed = "Coffee Brewed"

var failureMessages = map[Failure]string{
	FailureWaterTankEmpty:     "Fill water tank!",
	FailureCapsuleBinFull:     "Capsule Bin is full!",
	FailureCapsuleNotInserted: "Coffee capsule has not been inserted!",
}

var failureNames = map[Failure]string{
	FailureNone:               "none",
	FailureWaterTankEmpty:     "water tank empty",
	FailureCapsuleBinFull:     "capsule bin full",
	FailureCapsuleNotInserted: "capsule not inserted",
}

// Message returns the fixed user-facing message for the failure
func (f Failure) Message() string {
	return failureMessages[f]
}

// String returns a short machine-readable name
func (f Failure) String() string {
	if name, ok := failureNames[f]; ok {
		return name
	}
	return "unknown"
}

// Error lets a Failure travel as an error and match with errors.Is
func (f Failure) Error() string {
	return "brew precondition failed: " + f.String()
}
