// Package cli defines the Cobra command tree for the amytools CLI. Each file
// in this package registers one top-level command (commands, exec, settings,
// run, etc.) with the root command. Commands open a session over the vault,
// activate the bundled extension, act on it and deactivate it again; they
// only handle flag parsing, I/O formatting, and user interaction.
package cli
