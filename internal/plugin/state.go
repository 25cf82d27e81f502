package plugin

// State represents the lifecycle state of an extension.
type State int

// Extension states.
const (
	// StateInactive - extension is not running.
	StateInactive State = iota

	// StateActivating - configuration is loading and contributions are
	// being registered.
	StateActivating

	// StateActive - extension is running.
	StateActive

	// StateDeactivating - contributions are being released.
	StateDeactivating
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StateInactive:
		return "inactive"
	case StateActivating:
		return "activating"
	case StateActive:
		return "active"
	case StateDeactivating:
		return "deactivating"
	default:
		return "unknown"
	}
}
