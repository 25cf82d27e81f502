package amytools

import (
	"strings"

	"github.com/amytools-labs/amytools/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

// SampleModal previews the active note under an "Add New Project" heading.
type SampleModal struct {
	path    string
	preview string
	done    bool
}

// NewSampleModal renders content as terminal markdown. Rendering failures
// fall back to the raw text.
func NewSampleModal(path, content string) *SampleModal {
	preview := content
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(72))
	if err == nil {
		if out, err := r.Render(content); err == nil {
			preview = out
		}
	}
	return &SampleModal{path: path, preview: strings.TrimRight(preview, "\n")}
}

func (m *SampleModal) Title() string { return "Add New Project" }

func (m *SampleModal) Render() string {
	return ui.MutedStyle.Render(m.path) + "\n" + m.preview
}

func (m *SampleModal) Init() tea.Cmd { return nil }

func (m *SampleModal) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter", "esc", "q":
			m.done = true
		}
	}
	return nil
}

func (m *SampleModal) Done() bool { return m.done }
func (m *SampleModal) OnClose()   {}

var _ ui.Interactive = (*SampleModal)(nil)
