// Package update holds UI update logic for the TUI.
package update

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/takumin/newsbrief/internal/application/usecase"
	"github.com/takumin/newsbrief/internal/presentation/render"
	"github.com/takumin/newsbrief/internal/presentation/tui/presenter"
	"github.com/takumin/newsbrief/internal/presentation/tui/state"
)

// Deps groups external dependencies for updates.
type Deps struct {
	Digests *usecase.DigestService
	Export  func(topic, markdown string) (string, error)
}

// DigestFetchedMsg is emitted when a submission resolves.
type DigestFetchedMsg struct {
	Submission usecase.Submission
}

// ExportedMsg is emitted after exporting the digest to HTML.
type ExportedMsg struct {
	Path string
	Err  error
}

// SubmitDigestCmd creates a command that runs one digest submission.
func SubmitDigestCmd(svc *usecase.DigestService, seq uint64, topic string) tea.Cmd {
	topic = strings.TrimSpace(topic)
	return func() tea.Msg {
		return DigestFetchedMsg{Submission: svc.Submit(context.Background(), seq, topic)}
	}
}

// ExportCmd creates a command that writes the digest to an HTML file.
func ExportCmd(export func(topic, markdown string) (string, error), topic, markdown string) tea.Cmd {
	return func() tea.Msg {
		path, err := export(topic, markdown)
		return ExportedMsg{Path: path, Err: err}
	}
}

// HandleDigestFetched folds a resolved submission into UI state. Results
// for anything but the latest submission are dropped.
func HandleDigestFetched(st *state.ModelState, msg DigestFetchedMsg) {
	if msg.Submission.Seq != st.Seq {
		return
	}
	st.Loading = false
	st.Topic = msg.Submission.Topic
	st.UI = presenter.Apply(msg.Submission.Result)
	st.HaveResult = true
	st.StatusLine = ""
	if st.UI.Failed {
		st.Session = state.TopicView
		return
	}
	st.Session = state.ResultsView
}

// HandleExported records the outcome of an export in the status line.
func HandleExported(st *state.ModelState, msg ExportedMsg) {
	if msg.Err != nil {
		st.StatusLine = "Export failed: " + msg.Err.Error()
		return
	}
	st.StatusLine = "Exported to " + msg.Path
}

// HandleWindowSize resizes nested components.
func HandleWindowSize(st *state.ModelState, msg tea.WindowSizeMsg) {
	st.Width = msg.Width
	st.Height = msg.Height
	st.TextInput.Width = max(20, msg.Width-8)
	st.Viewport.Width = msg.Width
	st.Viewport.Height = max(3, msg.Height-6)
	st.Help.Width = msg.Width
}

// HandleKeyMsg processes a key press. The second return value reports
// whether the key was consumed.
func HandleKeyMsg(st *state.ModelState, msg tea.KeyMsg, deps Deps) (tea.Cmd, bool) {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit, true
	}

	switch st.Session {
	case state.TopicView:
		return handleTopicKeys(st, msg, deps)
	case state.ResultsView:
		return handleResultsKeys(st, msg, deps)
	case state.DigestView:
		return handleDigestKeys(st, msg)
	}
	return nil, false
}

func handleTopicKeys(st *state.ModelState, msg tea.KeyMsg, deps Deps) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, st.Keys.Submit):
		topic := strings.TrimSpace(st.TextInput.Value())
		if topic == "" || st.Loading {
			return nil, true
		}
		st.Seq = deps.Digests.Begin()
		st.Loading = true
		st.StatusLine = ""
		st.UI = presenter.UIState{}
		st.HaveResult = false
		return tea.Batch(st.Spinner.Tick, SubmitDigestCmd(deps.Digests, st.Seq, topic)), true
	case key.Matches(msg, st.Keys.Back):
		if st.HaveResult && !st.UI.Failed {
			st.Session = state.ResultsView
			return nil, true
		}
		return tea.Quit, true
	}
	// Everything else belongs to the text input.
	return nil, false
}

func handleResultsKeys(st *state.ModelState, msg tea.KeyMsg, deps Deps) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, st.Keys.Quit):
		return tea.Quit, true
	case key.Matches(msg, st.Keys.Back):
		st.Session = state.TopicView
		st.TextInput.Focus()
		return nil, true
	case key.Matches(msg, st.Keys.PrevPage):
		st.UI.Pager.Prev()
		return nil, true
	case key.Matches(msg, st.Keys.NextPage):
		st.UI.Pager.Next()
		return nil, true
	case key.Matches(msg, st.Keys.Open):
		if md := digestMarkdown(st); md != "" {
			st.Viewport.SetContent(render.EnhanceDigest(md, st.CurrentTime()))
			st.Viewport.GotoTop()
			st.Session = state.DigestView
		}
		return nil, true
	case key.Matches(msg, st.Keys.Export):
		if deps.Export == nil {
			return nil, true
		}
		md := digestMarkdown(st)
		if md == "" {
			st.StatusLine = "No digest to export."
			return nil, true
		}
		return ExportCmd(deps.Export, st.Topic, md), true
	case key.Matches(msg, st.Keys.Help):
		st.Help.ShowAll = !st.Help.ShowAll
		return nil, true
	}
	return nil, true
}

func handleDigestKeys(st *state.ModelState, msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, st.Keys.Quit):
		return tea.Quit, true
	case key.Matches(msg, st.Keys.Back):
		st.Session = state.ResultsView
		return nil, true
	case key.Matches(msg, st.Keys.Help):
		st.Help.ShowAll = !st.Help.ShowAll
		return nil, true
	}
	// Remaining keys scroll the viewport.
	return nil, false
}

// digestMarkdown flattens whichever digest shape the result carried into
// one markdown document.
func digestMarkdown(st *state.ModelState) string {
	d := st.UI.Digest
	if d == nil {
		return ""
	}
	switch {
	case d.Plain != "":
		return d.Plain
	case d.OverallSummary != "" && d.ArticleHighlights != "":
		return d.OverallSummary + "\n\n" + d.ArticleHighlights
	case d.ArticleHighlights != "":
		return d.ArticleHighlights
	default:
		return d.OverallSummary
	}
}
