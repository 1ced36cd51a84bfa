package engine

// TimerState describes what the countdown screen is currently showing.
type TimerState int

const (
	// Idle means no countdown is running and no error is shown.
	Idle TimerState = iota
	// Running means a countdown session is active.
	Running
	// Invalid means the last submission was rejected.
	Invalid
)

func (s TimerState) String() string {
	switch s {
	case Running:
		return "running"
	case Invalid:
		return "invalid"
	default:
		return "idle"
	}
}
