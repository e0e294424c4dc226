// Package view renders the TUI screens.
package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/takumin/newsbrief/internal/application/settings"
	"github.com/takumin/newsbrief/internal/domain/digest"
	"github.com/takumin/newsbrief/internal/presentation/render"
	"github.com/takumin/newsbrief/internal/presentation/tui/state"
)

// Props aggregates everything the renderer needs.
type Props struct {
	State *state.ModelState
	Theme settings.ThemeConfig
}

// Render renders the current screen.
func Render(p Props) string {
	st := p.State
	s := newStyles(p.Theme)

	switch st.Session {
	case state.ResultsView:
		return renderResults(st, s)
	case state.DigestView:
		return renderDigest(st, s)
	default:
		return renderTopic(st, s)
	}
}

type styles struct {
	title   lipgloss.Style
	accent  lipgloss.Style
	muted   lipgloss.Style
	failure lipgloss.Style
}

func newStyles(theme settings.ThemeConfig) styles {
	accent := lipgloss.Color(theme.Accent)
	muted := lipgloss.Color(theme.Muted)
	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		accent:  lipgloss.NewStyle().Foreground(accent),
		muted:   lipgloss.NewStyle().Foreground(muted),
		failure: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

func renderTopic(st *state.ModelState, s styles) string {
	var b strings.Builder
	b.WriteString(s.title.Render("newsbrief"))
	b.WriteString("\n\n")
	b.WriteString("What topic would you like a digest on?\n\n")
	b.WriteString(st.TextInput.View())
	b.WriteString("\n\n")

	switch {
	case st.Loading:
		b.WriteString(st.Spinner.View() + " Generating digest, this can take a while...")
	case st.HaveResult && st.UI.Failed:
		b.WriteString(s.failure.Render(st.UI.Status))
	case st.HaveResult:
		b.WriteString(s.muted.Render("Press " + st.Keys.Back.Help().Key + " to return to the results."))
	}
	b.WriteString("\n\n")
	b.WriteString(s.muted.Render("enter: submit • ctrl+c: quit"))
	return b.String()
}

func renderResults(st *state.ModelState, s styles) string {
	var b strings.Builder
	b.WriteString(s.title.Render("Digest: " + st.Topic))
	b.WriteString("\n\n")

	if !st.UI.ShowResults() {
		b.WriteString(s.muted.Render("No articles were returned for this topic."))
		b.WriteString("\n")
	} else {
		width := st.Width
		if width <= 0 {
			width = 80
		}
		now := st.CurrentTime()
		start, _ := st.UI.Pager.Bounds()
		for i, article := range st.UI.VisibleArticles() {
			b.WriteString(renderArticle(start+i+1, article, width, now, s))
		}
		b.WriteString(s.muted.Render(fmt.Sprintf("Page %d/%d • %d articles",
			st.UI.Pager.Current(), st.UI.Pager.TotalPages(), st.UI.Pager.TotalItems())))
		b.WriteString("\n")
	}

	if st.StatusLine != "" {
		b.WriteString("\n" + s.accent.Render(st.StatusLine) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(st.Help.View(&st.Keys))
	return b.String()
}

func renderArticle(n int, article digest.Article, width int, now time.Time, s styles) string {
	var b strings.Builder
	b.WriteString(s.accent.Render(truncate(fmt.Sprintf("%d. %s", n, singleLine(article.Title)), width-2)))
	b.WriteString("\n")

	meta := make([]string, 0, 2)
	if article.Source != "" {
		meta = append(meta, article.Source)
	}
	if published := render.RelativeOrAbsolute(article.Published, now); published != "" {
		meta = append(meta, published)
	}
	if len(meta) > 0 {
		b.WriteString("   " + s.muted.Render(strings.Join(meta, " • ")) + "\n")
	}
	if snippet := singleLine(article.Snippet); snippet != "" {
		b.WriteString("   " + truncate(snippet, width-4) + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

func renderDigest(st *state.ModelState, s styles) string {
	var b strings.Builder
	b.WriteString(s.title.Render("AI Digest: " + st.Topic))
	b.WriteString("\n\n")
	b.WriteString(st.Viewport.View())
	b.WriteString("\n")
	b.WriteString(st.Help.View(&st.Keys))
	return b.String()
}

// singleLine collapses whitespace into single spaces.
func singleLine(text string) string {
	if text == "" {
		return ""
	}
	return strings.Join(strings.Fields(text), " ")
}

// truncate trims a string to the given display width with an ellipsis.
func truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(text, width, "...")
}
