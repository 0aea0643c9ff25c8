package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI. The launch keys are
// only active in [LogView]; overlay views get enter/done/back plus whatever
// the embedded widget handles itself.
type keyMap struct {
	save     key.Binding
	load     key.Binding
	loadMany key.Binding
	pick     key.Binding
	pickMany key.Binding
	dir      key.Binding
	dirMany  key.Binding
	recents  key.Binding
	reveal   key.Binding
	enter    key.Binding
	done     key.Binding
	back     key.Binding
	forget   key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		save:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save transcript")),
		load:     key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "load file")),
		loadMany: key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "load files")),
		pick:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "pick file")),
		pickMany: key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "pick files")),
		dir:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "pick directory")),
		dirMany:  key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "pick directories")),
		recents:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "recent locations")),
		reveal:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reveal last pick")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		done:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "deliver selection")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		forget:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "forget")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.save, k.load, k.pick, k.dir, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.save, k.load, k.loadMany},
		{k.pick, k.pickMany, k.dir, k.dirMany},
		{k.recents, k.reveal, k.quit},
	}
}
