package update

import (
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/takumin/newsbrief/internal/application/settings"
	"github.com/takumin/newsbrief/internal/application/usecase"
	"github.com/takumin/newsbrief/internal/domain/digest"
	"github.com/takumin/newsbrief/internal/presentation/tui/presenter"
	"github.com/takumin/newsbrief/internal/presentation/tui/state"
)

func newTestState() *state.ModelState {
	cfg := settings.KeyMapConfig{PrevPage: "h", NextPage: "l", Export: "e", Back: "esc", Quit: "q"}
	return &state.ModelState{
		Session:   state.TopicView,
		TextInput: textinput.New(),
		Keys:      state.NewKeyMap(cfg),
		Help:      help.New(),
		Now:       func() time.Time { return time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC) },
	}
}

func successSubmission(seq uint64, articles int) usecase.Submission {
	list := make([]digest.Article, articles)
	for i := range list {
		list[i] = digest.Article{Title: "Article", Link: "https://example.com"}
	}
	return usecase.Submission{
		Seq:   seq,
		Topic: "ai news",
		Result: digest.Result{
			Articles: list,
			Digest:   &digest.AIDigest{Shape: digest.ShapePlain, Plain: "# Digest"},
		},
	}
}

func TestHandleDigestFetched_Success(t *testing.T) {
	st := newTestState()
	st.Seq = 3
	st.Loading = true

	HandleDigestFetched(st, DigestFetchedMsg{Submission: successSubmission(3, 8)})

	if st.Loading {
		t.Fatal("loading should clear")
	}
	if st.Session != state.ResultsView {
		t.Fatalf("session = %v, want ResultsView", st.Session)
	}
	if st.UI.Pager.Current() != 1 || st.UI.Pager.TotalPages() != 2 {
		t.Fatalf("pager = %d/%d", st.UI.Pager.Current(), st.UI.Pager.TotalPages())
	}
}

func TestHandleDigestFetched_StaleResultDiscarded(t *testing.T) {
	st := newTestState()
	st.Seq = 5
	st.Loading = true

	HandleDigestFetched(st, DigestFetchedMsg{Submission: successSubmission(4, 2)})

	if !st.Loading {
		t.Fatal("stale result must not clear loading")
	}
	if st.HaveResult {
		t.Fatal("stale result must not become visible")
	}
	if st.Session != state.TopicView {
		t.Fatalf("session = %v, want TopicView", st.Session)
	}
}

func TestHandleDigestFetched_FailureStaysOnTopicView(t *testing.T) {
	st := newTestState()
	st.Seq = 1
	st.Loading = true

	HandleDigestFetched(st, DigestFetchedMsg{Submission: usecase.Submission{
		Seq:    1,
		Topic:  "ai news",
		Result: digest.Fail(digest.FailureTimeout, "deadline exceeded"),
	}})

	if st.Session != state.TopicView {
		t.Fatalf("session = %v, want TopicView", st.Session)
	}
	if st.UI.Status != presenter.StatusTimeout {
		t.Fatalf("status = %q", st.UI.Status)
	}
}

func TestHandleKeyMsg_Pagination(t *testing.T) {
	st := newTestState()
	st.Session = state.ResultsView
	HandleDigestFetched(st, DigestFetchedMsg{Submission: successSubmission(0, 13)})

	next := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}}
	prev := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}}

	if _, handled := HandleKeyMsg(st, next, Deps{}); !handled {
		t.Fatal("next page key should be handled")
	}
	if st.UI.Pager.Current() != 2 {
		t.Fatalf("page = %d, want 2", st.UI.Pager.Current())
	}

	HandleKeyMsg(st, next, Deps{})
	HandleKeyMsg(st, next, Deps{})
	if st.UI.Pager.Current() != 3 {
		t.Fatalf("page = %d, want clamp at 3", st.UI.Pager.Current())
	}

	HandleKeyMsg(st, prev, Deps{})
	if st.UI.Pager.Current() != 2 {
		t.Fatalf("page = %d, want 2", st.UI.Pager.Current())
	}
}

func TestHandleKeyMsg_ExportUsesDigestMarkdown(t *testing.T) {
	st := newTestState()
	HandleDigestFetched(st, DigestFetchedMsg{Submission: successSubmission(0, 1)})

	var gotTopic, gotMarkdown string
	deps := Deps{Export: func(topic, markdown string) (string, error) {
		gotTopic, gotMarkdown = topic, markdown
		return "/tmp/out.html", nil
	}}

	cmd, handled := HandleKeyMsg(st, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}}, deps)
	if !handled || cmd == nil {
		t.Fatal("export key should produce a command")
	}

	msg := cmd()
	exported, ok := msg.(ExportedMsg)
	if !ok {
		t.Fatalf("msg = %T", msg)
	}
	if exported.Path != "/tmp/out.html" {
		t.Fatalf("path = %q", exported.Path)
	}
	if gotTopic != "ai news" || gotMarkdown != "# Digest" {
		t.Fatalf("export called with %q / %q", gotTopic, gotMarkdown)
	}

	HandleExported(st, exported)
	if st.StatusLine != "Exported to /tmp/out.html" {
		t.Fatalf("status line = %q", st.StatusLine)
	}
}

func TestHandleKeyMsg_HelpToggle(t *testing.T) {
	st := newTestState()
	HandleDigestFetched(st, DigestFetchedMsg{Submission: successSubmission(0, 2)})

	helpKey := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}}

	if _, handled := HandleKeyMsg(st, helpKey, Deps{}); !handled {
		t.Fatal("help key should be handled on the results view")
	}
	if !st.Help.ShowAll {
		t.Fatal("help key should expand the help view")
	}

	HandleKeyMsg(st, helpKey, Deps{})
	if st.Help.ShowAll {
		t.Fatal("pressing help again should collapse the help view")
	}
}

func TestHandleWindowSize(t *testing.T) {
	st := newTestState()
	HandleWindowSize(st, tea.WindowSizeMsg{Width: 100, Height: 40})
	if st.Width != 100 || st.Viewport.Width != 100 {
		t.Fatalf("width not propagated: %d/%d", st.Width, st.Viewport.Width)
	}
	if st.Viewport.Height != 34 {
		t.Fatalf("viewport height = %d", st.Viewport.Height)
	}
}
