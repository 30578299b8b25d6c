package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap binds the user-facing controls.
type KeyMap struct {
	Up, Down, Toggle, Add, Edit, Delete, Reload key.Binding
	All, Completed, Pending, NextFilter      key.Binding
	Theme, Quit, Enter, Esc                  key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:     key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		All:        key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		Completed:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "completed")),
		Pending:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "pending")),
		NextFilter: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next filter")),
		Theme:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Enter:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Esc:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// helpLine renders the bindings relevant to mode.
func helpLine(km KeyMap, m mode) string {
	var bindings []key.Binding
	switch m {
	case modeAdd, modeEdit:
		bindings = []key.Binding{km.Enter, km.Esc}
	default:
		bindings = []key.Binding{km.Up, km.Down, km.Toggle, km.Add, km.Edit, km.Delete, km.NextFilter, km.Theme, km.Reload, km.Quit}
	}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " │ ")
}
