package action

import "errors"

var (
	// ErrDuplicateAction is returned when an ID is registered twice in one session.
	ErrDuplicateAction = errors.New("action already registered")

	// ErrActionNotFound is returned when invoking an unknown ID.
	ErrActionNotFound = errors.New("action not found")

	// ErrInvalidAction is returned when an action is missing its ID, name or callback.
	ErrInvalidAction = errors.New("invalid action")
)
