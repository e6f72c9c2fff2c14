package host

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/qisge/qisge/internal/engine"
)

// KeyMap defines the key bindings the host forwards to the game as numeric
// key codes, plus its own quit binding.
type KeyMap struct {
	Up     key.Binding
	Right  key.Binding
	Down   key.Binding
	Left   key.Binding
	Action key.Binding
	Next   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Action, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Action, k.Next, k.Back, k.Quit},
	}
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("up/w", "up"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("right/d", "right"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("down/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("left/a", "left"),
		),
		Action: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "action"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "n"),
			key.WithHelp("tab", "next"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "esc"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Code maps a key message to the numeric key code the wire format uses.
// Returns false when the key has no binding.
func (k KeyMap) Code(msg tea.KeyMsg) (int, bool) {
	switch {
	case key.Matches(msg, k.Up):
		return engine.KeyUp, true
	case key.Matches(msg, k.Right):
		return engine.KeyRight, true
	case key.Matches(msg, k.Down):
		return engine.KeyDown, true
	case key.Matches(msg, k.Left):
		return engine.KeyLeft, true
	case key.Matches(msg, k.Action):
		return engine.KeyAction, true
	case key.Matches(msg, k.Next):
		return engine.KeyNext, true
	case key.Matches(msg, k.Back):
		return engine.KeyBack, true
	case key.Matches(msg, k.Quit):
		return engine.KeyQuit, true
	}
	return 0, false
}
