// Package app is the interactive workspace session: a ribbon, a command
// palette, a status bar and inline dialogs around one running extension.
package app
