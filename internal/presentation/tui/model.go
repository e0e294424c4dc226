// Package tui wires the interactive digest client.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/takumin/newsbrief/internal/application/settings"
	"github.com/takumin/newsbrief/internal/application/usecase"
	"github.com/takumin/newsbrief/internal/presentation/tui/state"
	"github.com/takumin/newsbrief/internal/presentation/tui/update"
	"github.com/takumin/newsbrief/internal/presentation/tui/view"
)

// Model represents the main application state.
type Model struct {
	settings settings.Settings
	digests  *usecase.DigestService
	export   func(topic, markdown string) (string, error)
	state    *state.ModelState
}

// NewModel creates a new application model.
func NewModel(cfg settings.Settings, digests *usecase.DigestService, export func(topic, markdown string) (string, error)) *Model {
	return &Model{
		settings: cfg,
		digests:  digests,
		export:   export,
		state:    newModelState(cfg),
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.state.Spinner.Tick, textinput.Blink)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd, handled := update.HandleKeyMsg(m.state, msg, m.deps())
		if handled {
			return m, cmd
		}
	case tea.WindowSizeMsg:
		update.HandleWindowSize(m.state, msg)
	case update.DigestFetchedMsg:
		update.HandleDigestFetched(m.state, msg)
	case update.ExportedMsg:
		update.HandleExported(m.state, msg)
	}

	if m.state.Loading {
		m.state.Spinner, cmd = m.state.Spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	switch m.state.Session {
	case state.TopicView:
		m.state.TextInput, cmd = m.state.TextInput.Update(msg)
		cmds = append(cmds, cmd)
	case state.DigestView:
		m.state.Viewport, cmd = m.state.Viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the application view.
func (m *Model) View() string {
	return view.Render(view.Props{State: m.state, Theme: m.settings.Theme})
}

func (m *Model) deps() update.Deps {
	return update.Deps{
		Digests: m.digests,
		Export:  m.export,
	}
}

func newModelState(cfg settings.Settings) *state.ModelState {
	return &state.ModelState{
		Session:   state.TopicView,
		TextInput: newTextInput(),
		Spinner:   newSpinner(cfg.Theme),
		Viewport:  newViewport(),
		Help:      help.New(),
		Keys:      state.NewKeyMap(cfg.KeyMap),
	}
}

func newTextInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "e.g. AI safety research"
	ti.Focus()
	ti.CharLimit = 156
	ti.Width = 40
	return ti
}

func newSpinner(theme settings.ThemeConfig) spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))
	return s
}

func newViewport() viewport.Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1)
	return vp
}
