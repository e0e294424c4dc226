// Package state holds UI state types for the TUI.
package state

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/takumin/newsbrief/internal/application/settings"
)

// Session represents the current view state.
type Session int

const (
	TopicView Session = iota
	ResultsView
	DigestView
)

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	Submit   key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Open     key.Binding
	Export   key.Binding
	Back     key.Binding
	Quit     key.Binding
	Help     key.Binding
}

// ShortHelp returns a subset of keybindings for the help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevPage, k.NextPage, k.Open, k.Export, k.Back, k.Quit, k.Help}
}

// FullHelp returns all keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Back, k.Quit},
		{k.PrevPage, k.NextPage},
		{k.Open, k.Export, k.Help},
	}
}

// NewKeyMap creates a new KeyMap from the configuration.
func NewKeyMap(cfg settings.KeyMapConfig) KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit topic"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys(splitKeys(cfg.PrevPage)...),
			key.WithHelp(cfg.PrevPage, "prev page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys(splitKeys(cfg.NextPage)...),
			key.WithHelp(cfg.NextPage, "next page"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "read digest"),
		),
		Export: key.NewBinding(
			key.WithKeys(splitKeys(cfg.Export)...),
			key.WithHelp(cfg.Export, "export html"),
		),
		Back: key.NewBinding(
			key.WithKeys(splitKeys(cfg.Back)...),
			key.WithHelp(cfg.Back, "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys(splitKeys(cfg.Quit)...),
			key.WithHelp(cfg.Quit, "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}

func splitKeys(keys string) []string {
	parts := strings.Split(keys, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		keyName := strings.TrimSpace(part)
		if keyName == "" {
			continue
		}
		out = append(out, keyName)
	}
	return out
}
