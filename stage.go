package vector

// Stage orders loops within a single tick.
// Loops are executed in stage order: Before → Default → After.
type Stage int

const (
	// Before stage runs first. The config watcher runs here so every other
	// loop of the tick sees the freshest tunables.
	Before Stage = iota

	// Default stage runs second. The effect task runs here.
	Default

	// After stage runs last.
	After

	// stageCount is the total number of stages.
	stageCount
)

// String returns the string representation of the stage.
func (s Stage) String() string {
	switch s {
	case Before:
		return "Before"
	case Default:
		return "Default"
	case After:
		return "After"
	default:
		return "Unknown"
	}
}
