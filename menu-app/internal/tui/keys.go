package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Add        key.Binding
	Remove     key.Binding
	Drop       key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding
	Search     key.Binding
	Cart       key.Binding
	PlaceOrder key.Binding
	Back       key.Binding
	Quit       key.Binding
}

var defaultKeys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Add: key.NewBinding(
		key.WithKeys("+", "=", "right", "l"),
		key.WithHelp("+", "add"),
	),
	Remove: key.NewBinding(
		key.WithKeys("-", "left", "h"),
		key.WithHelp("-", "remove one"),
	),
	Drop: key.NewBinding(
		key.WithKeys("x", "delete"),
		key.WithHelp("x", "remove item"),
	),
	NextTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next category"),
	),
	PrevTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-tab", "prev category"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Cart: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "cart"),
	),
	PlaceOrder: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "place order"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Add, k.Remove, k.NextTab, k.Search, k.Cart, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.Add, k.Remove, k.Drop},
		{k.Search, k.Cart, k.PlaceOrder, k.Back, k.Quit},
	}
}
