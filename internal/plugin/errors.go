package plugin

import "errors"

// Lifecycle errors.
var (
	// ErrInvalidState is returned when an operation is not allowed in the
	// current state.
	ErrInvalidState = errors.New("invalid state")

	// ErrPartialActivation is returned when the extension became active but
	// some commands or hooks failed to register.
	ErrPartialActivation = errors.New("partial activation")

	// ErrNotActive is returned when a command is invoked while the
	// extension is not active.
	ErrNotActive = errors.New("extension not active")
)
