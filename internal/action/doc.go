// Package action is the registry of named commands an extension contributes
// during one activation session.
//
// Each action has a unique ID, a display name, a callback and an optional
// availability check. Invoking an unavailable action is a silent no-op, the
// way a command palette hides commands that cannot run. An action never runs
// concurrently with itself.
package action
