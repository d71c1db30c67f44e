package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Add     key.Binding
	Remove  key.Binding
	Clear   key.Binding
	Summary key.Binding
	Back    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "arriba")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "abajo")),
		Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "agregar")),
		Remove:  key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "eliminar")),
		Clear:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "limpiar")),
		Summary: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "resumen")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "volver")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "ayuda")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "salir")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Add, k.Remove, k.Summary, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Add, k.Remove, k.Clear},
		{k.Summary, k.Back},
		{k.Help, k.Quit},
	}
}
