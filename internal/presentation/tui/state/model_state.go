package state

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/takumin/newsbrief/internal/presentation/tui/presenter"
)

// ModelState holds all mutable UI state.
type ModelState struct {
	Session Session

	TextInput textinput.Model
	Spinner   spinner.Model
	Viewport  viewport.Model
	Help      help.Model
	Keys      KeyMap

	// Seq is the sequence number of the in-flight submission. Results
	// carrying an older sequence are discarded.
	Seq     uint64
	Loading bool
	Topic   string

	UI         presenter.UIState
	HaveResult bool

	// StatusLine carries one-shot notices such as the export target path.
	StatusLine string

	Width  int
	Height int

	Now func() time.Time
}

// CurrentTime returns the injected clock, falling back to time.Now.
func (s *ModelState) CurrentTime() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
