package host

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/amytools-labs/amytools/internal/event"
	"github.com/amytools-labs/amytools/internal/store"
	"github.com/amytools-labs/amytools/internal/ui"
	"go.uber.org/zap"
)

// Errors returned by the host.
var (
	ErrRibbonNotFound = errors.New("ribbon item not found")
	ErrNoPresenter    = errors.New("no dialog presenter")
)

// ViewKind classifies the active view.
type ViewKind string

// View kinds.
const (
	ViewMarkdown ViewKind = "markdown"
	ViewFile     ViewKind = "file"
)

// View is the file shown in the workspace.
type View struct {
	Path string
	Kind ViewKind
}

// MarkdownView is an active markdown view with its content.
type MarkdownView struct {
	View
	Content string
}

// Host is one running application instance over a vault.
type Host struct {
	root      string
	bus       *event.Bus
	presenter ui.Presenter
	out       io.Writer
	logger    *zap.Logger

	mu      sync.Mutex
	active  *View
	ribbon  []*RibbonItem
	status  []*StatusItem
	notices []string
	nextID  int
}

// Option configures a Host.
type Option func(*Host)

// WithPresenter sets how dialogs are shown.
func WithPresenter(p ui.Presenter) Option {
	return func(h *Host) { h.presenter = p }
}

// WithNoticeWriter sets where notices are printed. The default discards
// them; Notices still records every one.
func WithNoticeWriter(w io.Writer) Option {
	return func(h *Host) {
		if w != nil {
			h.out = w
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(h *Host) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// New creates a host rooted at the vault directory root.
func New(root string, opts ...Option) *Host {
	h := &Host{
		root:   filepath.Clean(root),
		bus:    event.NewBus(),
		out:    io.Discard,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.With(zap.String("component", "host"))
	return h
}

// Root returns the vault root.
func (h *Host) Root() string { return h.root }

// Events returns the global event bus.
func (h *Host) Events() *event.Bus { return h.bus }

// Storage returns the persisted data record of an extension.
func (h *Host) Storage(pluginID string) *store.FileStorage {
	return store.NewFileStorage(h.DataPath(pluginID))
}

// OpenFile makes path (relative to the vault, or absolute) the active view.
func (h *Host) OpenFile(path string) error {
	abs := h.resolve(path)
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("opening %s: is a directory", path)
	}

	kind := ViewFile
	if strings.EqualFold(filepath.Ext(abs), ".md") {
		kind = ViewMarkdown
	}

	h.mu.Lock()
	h.active = &View{Path: abs, Kind: kind}
	h.mu.Unlock()

	h.logger.Debug("file opened", zap.String("path", abs), zap.String("kind", string(kind)))
	h.bus.Publish(event.Event{Name: event.FileOpen, Data: map[string]string{"path": h.Rel(abs)}})
	return nil
}

// CloseFile clears the active view.
func (h *Host) CloseFile() {
	h.mu.Lock()
	h.active = nil
	h.mu.Unlock()
	h.bus.Publish(event.Event{Name: event.LayoutChange})
}

// ActiveView returns the active view, if any.
func (h *Host) ActiveView() (View, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.active == nil {
		return View{}, false
	}
	return *h.active, true
}

// ActiveMarkdown returns the active view with its content when it is a
// markdown view.
func (h *Host) ActiveMarkdown() (*MarkdownView, bool) {
	v, ok := h.ActiveView()
	if !ok || v.Kind != ViewMarkdown {
		return nil, false
	}
	data, err := os.ReadFile(v.Path)
	if err != nil {
		h.logger.Warn("reading active view", zap.String("path", v.Path), zap.Error(err))
		return nil, false
	}
	return &MarkdownView{View: v, Content: string(data)}, true
}

// Notice shows a transient message.
func (h *Host) Notice(msg string) {
	h.mu.Lock()
	h.notices = append(h.notices, msg)
	h.mu.Unlock()

	h.logger.Info("notice", zap.String("message", msg))
	fmt.Fprintln(h.out, msg)
}

// Notices returns every notice shown so far.
func (h *Host) Notices() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.notices...)
}

// OpenDialog shows d through the configured presenter.
func (h *Host) OpenDialog(ctx context.Context, d ui.Dialog) error {
	if h.presenter == nil {
		return fmt.Errorf("%w: cannot open %q", ErrNoPresenter, d.Title())
	}
	h.logger.Debug("opening dialog", zap.String("title", d.Title()))
	return h.presenter.Present(ctx, d)
}

// Click publishes a mouse click at (x, y) and returns the number of
// listeners notified.
func (h *Host) Click(x, y int) int {
	return h.bus.Publish(event.Event{Name: event.Click, X: x, Y: y})
}
