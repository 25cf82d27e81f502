// Package ui holds the terminal building blocks extensions use to talk to
// the user: the Dialog capability interface, presenters that show dialogs,
// a reusable text form, and the shared lipgloss theme.
//
// A dialog is any type with Title, Render and OnClose. Dialogs that also
// handle input implement Interactive and are driven by bubbletea.
package ui
