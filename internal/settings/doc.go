// Package settings renders an extension's setting definitions as editable
// fields bound to its configuration and writes every change through.
//
// Changes are queued and saved in the background in submission order, so the
// caller never blocks on storage and a later value always lands after an
// earlier one for the same key.
package settings
