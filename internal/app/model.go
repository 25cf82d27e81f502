package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/amytools-labs/amytools/internal/action"
	"github.com/amytools-labs/amytools/internal/plugin"
	"github.com/amytools-labs/amytools/internal/settings"
	"github.com/amytools-labs/amytools/internal/ui"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// refreshEvery redraws the status bar so background changes show up.
const refreshEvery = time.Second

type (
	refreshMsg   time.Time
	invokeResult struct {
		id  string
		ran bool
		err error
	}
)

var (
	ribbonStyle    = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.NormalBorder(), false, false, true, false)
	ribbonItem     = lipgloss.NewStyle().Padding(0, 1)
	statusBarStyle = lipgloss.NewStyle().Padding(0, 1).Reverse(true)
)

// pending is a dialog waiting to be shown, or being shown.
type pending struct {
	dialog ui.Dialog
	done   chan struct{}
}

type model struct {
	ctx     context.Context
	manager *plugin.Manager
	logger  *zap.Logger

	width, height int

	dialogs []pending

	paletteOpen bool
	filter      textinput.Model
	cursor      int

	message string
}

func newModel(ctx context.Context, m *plugin.Manager, logger *zap.Logger) *model {
	if logger == nil {
		logger = zap.NewNop()
	}
	filter := textinput.New()
	filter.Prompt = "> "
	filter.Placeholder = "Type a command"
	return &model{ctx: ctx, manager: m, logger: logger, filter: filter}
}

func (m *model) Init() tea.Cmd { return refresh() }

func refresh() tea.Cmd {
	return tea.Tick(refreshEvery, func(t time.Time) tea.Msg { return refreshMsg(t) })
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case refreshMsg:
		return m, refresh()

	case openDialogMsg:
		return m, m.push(pending{dialog: msg.dialog, done: msg.done})

	case invokeResult:
		switch {
		case msg.err != nil:
			m.message = ui.ErrorStyle.Render(msg.err.Error())
			m.logger.Warn("command failed", zap.String("command", msg.id), zap.Error(msg.err))
		case !msg.ran:
			m.message = "Command not available here"
		}
		return m, nil

	case tea.MouseMsg:
		return m, m.mouse(msg)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if len(m.dialogs) > 0 {
			return m, m.dialogKey(msg)
		}
		if m.paletteOpen {
			return m, m.paletteKey(msg)
		}
		return m, m.key(msg)
	}

	if d, ok := m.top(); ok {
		if in, ok := d.dialog.(ui.Interactive); ok {
			cmd := in.Update(msg)
			return m, tea.Batch(cmd, m.closeIfDone())
		}
	}
	if m.paletteOpen {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *model) key(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "p", "ctrl+p", ":":
		m.openPalette()
		return textinput.Blink
	case "s":
		editor := settings.NewEditor(m.ctx, "Settings", m.manager.Panel(), m.manager.Store().Snapshot())
		editor.OnSaveError = func(err error) {
			m.manager.Host().Notice("Saving settings failed: " + err.Error())
		}
		return m.push(pending{dialog: editor})
	case "o":
		return m.push(pending{dialog: newOpenFileDialog(m.manager.Host())})
	}
	if k := msg.String(); len(k) == 1 && k[0] >= '1' && k[0] <= '9' {
		return m.clickRibbon(int(k[0] - '1'))
	}
	return nil
}

func (m *model) openPalette() {
	m.paletteOpen = true
	m.cursor = 0
	m.filter.SetValue("")
	m.filter.Focus()
}

func (m *model) closePalette() {
	m.paletteOpen = false
	m.filter.Blur()
}

// commands returns the available commands matching the palette filter.
func (m *model) commands() []action.Action {
	query := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	var out []action.Action
	for _, a := range m.manager.Available() {
		if query == "" || strings.Contains(strings.ToLower(a.Name), query) || strings.Contains(a.ID, query) {
			out = append(out, a)
		}
	}
	return out
}

func (m *model) paletteKey(msg tea.KeyMsg) tea.Cmd {
	cmds := m.commands()
	switch msg.Type {
	case tea.KeyEsc:
		m.closePalette()
		return nil
	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
		return nil
	case tea.KeyDown:
		if m.cursor < len(cmds)-1 {
			m.cursor++
		}
		return nil
	case tea.KeyEnter:
		m.closePalette()
		if m.cursor >= len(cmds) {
			return nil
		}
		return m.invoke(cmds[m.cursor].ID)
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.cursor = 0
	return cmd
}

// invoke runs a command off the UI goroutine; its dialogs come back as
// openDialogMsg.
func (m *model) invoke(id string) tea.Cmd {
	ctx := m.ctx
	manager := m.manager
	return func() tea.Msg {
		ran, err := manager.Invoke(ctx, id)
		return invokeResult{id: id, ran: ran, err: err}
	}
}

func (m *model) push(p pending) tea.Cmd {
	m.dialogs = append(m.dialogs, p)
	if len(m.dialogs) > 1 {
		return nil
	}
	return m.initTop()
}

func (m *model) initTop() tea.Cmd {
	if d, ok := m.top(); ok {
		if in, ok := d.dialog.(ui.Interactive); ok {
			return in.Init()
		}
	}
	return nil
}

func (m *model) top() (pending, bool) {
	if len(m.dialogs) == 0 {
		return pending{}, false
	}
	return m.dialogs[0], true
}

func (m *model) dialogKey(msg tea.KeyMsg) tea.Cmd {
	d, _ := m.top()
	in, ok := d.dialog.(ui.Interactive)
	if !ok {
		switch msg.String() {
		case "enter", "esc", "q":
			return m.closeTop()
		}
		return nil
	}
	cmd := in.Update(msg)
	return tea.Batch(cmd, m.closeIfDone())
}

func (m *model) closeIfDone() tea.Cmd {
	d, ok := m.top()
	if !ok {
		return nil
	}
	if in, ok := d.dialog.(ui.Interactive); ok && in.Done() {
		return m.closeTop()
	}
	return nil
}

// closeTop dismisses the visible dialog. Dialogs opened through the
// presenter are closed by it; local ones are closed here.
func (m *model) closeTop() tea.Cmd {
	d := m.dialogs[0]
	m.dialogs = m.dialogs[1:]
	if d.done != nil {
		close(d.done)
	} else {
		d.dialog.OnClose()
	}
	return m.initTop()
}

// closeAll releases presenters still waiting on dialogs.
func (m *model) closeAll() {
	for len(m.dialogs) > 0 {
		m.closeTop()
	}
}

func (m *model) mouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	m.manager.Host().Click(msg.X, msg.Y)
	if msg.Y != 0 || len(m.dialogs) > 0 {
		return nil
	}
	for i, span := range m.ribbonSpans() {
		if msg.X >= span[0] && msg.X < span[1] {
			return m.clickRibbon(i)
		}
	}
	return nil
}

func (m *model) clickRibbon(i int) tea.Cmd {
	items := m.manager.Host().RibbonItems()
	if i >= len(items) {
		return nil
	}
	if err := m.manager.Host().ClickRibbon(items[i].ID); err != nil {
		m.message = ui.ErrorStyle.Render(err.Error())
	}
	return nil
}

func ribbonLabel(i int, icon, title string) string {
	return fmt.Sprintf("%d %s %s", i+1, icon, title)
}

// ribbonSpans returns the [start, end) columns of each ribbon item as laid
// out by viewRibbon.
func (m *model) ribbonSpans() [][2]int {
	var spans [][2]int
	x := 1
	for i, it := range m.manager.Host().RibbonItems() {
		w := lipgloss.Width(ribbonItem.Render(ribbonLabel(i, it.Icon, it.Title)))
		spans = append(spans, [2]int{x, x + w})
		x += w
	}
	return spans
}

func (m *model) View() string {
	var b strings.Builder
	b.WriteString(m.viewRibbon())
	b.WriteString("\n")

	switch {
	case len(m.dialogs) > 0:
		d := m.dialogs[0].dialog
		b.WriteString(ui.Frame(d.Title(), d.Render()))
	case m.paletteOpen:
		b.WriteString(ui.Frame("Command palette", m.viewPalette()))
	default:
		b.WriteString(m.viewWorkspace())
	}

	b.WriteString("\n")
	b.WriteString(m.viewStatus())
	return b.String()
}

func (m *model) viewRibbon() string {
	var parts []string
	for i, it := range m.manager.Host().RibbonItems() {
		parts = append(parts, ribbonItem.Render(ribbonLabel(i, it.Icon, it.Title)))
	}
	if len(parts) == 0 {
		parts = append(parts, ui.MutedStyle.Render("(empty ribbon)"))
	}
	return ribbonStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
}

func (m *model) viewPalette() string {
	var b strings.Builder
	b.WriteString(m.filter.View())
	b.WriteString("\n\n")
	cmds := m.commands()
	if len(cmds) == 0 {
		b.WriteString(ui.MutedStyle.Render("No matching commands"))
	}
	for i, a := range cmds {
		line := a.Name + " " + ui.MutedStyle.Render(a.ID)
		if i == m.cursor {
			line = ui.SelectedStyle.Render("› " + a.Name)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m *model) viewWorkspace() string {
	h := m.manager.Host()
	var b strings.Builder
	if v, ok := h.ActiveView(); ok {
		b.WriteString(ui.TextStyle.Render(fmt.Sprintf("%s (%s)", h.Rel(v.Path), v.Kind)))
	} else {
		b.WriteString(ui.MutedStyle.Render("No file open"))
	}
	b.WriteString("\n\n")
	b.WriteString(ui.MutedStyle.Render("p palette · s settings · o open file · 1-9 ribbon · q quit"))
	if m.message != "" {
		b.WriteString("\n")
		b.WriteString(m.message)
	}
	return b.String()
}

func (m *model) viewStatus() string {
	h := m.manager.Host()
	parts := []string{m.manager.Manifest().Name + ": " + m.manager.State().String()}
	for _, it := range h.StatusItems() {
		if t := it.Text(); t != "" {
			parts = append(parts, t)
		}
	}
	if notices := h.Notices(); len(notices) > 0 {
		parts = append(parts, notices[len(notices)-1])
	}
	line := strings.Join(parts, " │ ")
	if m.width > 0 {
		return statusBarStyle.Width(m.width).Render(line)
	}
	return statusBarStyle.Render(line)
}
