package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Overview key.Binding
	Input    key.Binding
	RunTab   key.Binding
	Summary  key.Binding
	Prev     key.Binding
	Next     key.Binding
	Run      key.Binding
	CSV      key.Binding
	XLSX     key.Binding
	PDF      key.Binding
	Back     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Overview: key.NewBinding(key.WithKeys("o", "1"), key.WithHelp("o/1", "overview")),
		Input:    key.NewBinding(key.WithKeys("i", "e", "2"), key.WithHelp("i/2", "edit inputs")),
		RunTab:   key.NewBinding(key.WithKeys("n", "3"), key.WithHelp("n/3", "run tab")),
		Summary:  key.NewBinding(key.WithKeys("s", "4"), key.WithHelp("s/4", "summary")),
		Prev:     key.NewBinding(key.WithKeys("left", "shift+tab"), key.WithHelp("←", "prev tab")),
		Next:     key.NewBinding(key.WithKeys("right", "tab"), key.WithHelp("→", "next tab")),
		Run:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "run")),
		CSV:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "csv")),
		XLSX:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "xlsx")),
		PDF:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pdf")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave form")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Run, k.Input, k.Summary, k.CSV, k.XLSX, k.PDF, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Overview, k.Input, k.RunTab, k.Summary, k.Prev, k.Next},
		{k.Run, k.CSV, k.XLSX, k.PDF},
		{k.Back, k.Help, k.Quit},
	}
}
