package action

import "context"

// Callback runs an action.
type Callback func(ctx context.Context) error

// Predicate reports whether an action may run right now.
type Predicate func() bool

// Action is an invokable command.
type Action struct {
	// ID is the stable key, e.g. "create-password".
	ID string

	// Name is the display name shown in the palette.
	Name string

	// Icon is an optional icon name for menus.
	Icon string

	// Hotkeys lists suggested key bindings, for display only.
	Hotkeys []string

	// Run executes the action.
	Run Callback

	// Available gates the action. Nil means always available.
	Available Predicate

	// Source names the extension that registered the action.
	Source string
}

// IsAvailable evaluates the availability check.
func (a Action) IsAvailable() bool {
	return a.Available == nil || a.Available()
}
