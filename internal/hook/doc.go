// Package hook owns the ambient listeners and timers an extension registers
// against host-global state, and releases them as a unit when the extension
// is deactivated.
//
// Cancellation is cooperative. Every callback body runs behind a liveness
// check, so a timer tick or event that was already in flight when a hook was
// released is dropped instead of running.
package hook
