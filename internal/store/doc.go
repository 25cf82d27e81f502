// Package store holds the extension's configuration: a flat map of setting
// keys to string values, loaded by overlaying persisted data onto built-in
// defaults and written back through a host-provided Storage after every
// change.
//
// Saves are serialized and coalesced. A save always persists the newest
// in-memory snapshot, and a save whose snapshot is already covered by a newer
// persisted one is dropped, so the last submitted value wins regardless of
// the order in which storage calls complete.
package store
