// Package host is the terminal rendition of the note application that
// extensions run inside. It owns the vault root, per-extension storage,
// the active view, ribbon and status bar items, notices, dialogs and the
// global event bus.
package host
