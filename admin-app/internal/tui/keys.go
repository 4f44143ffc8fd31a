package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"tea-estate/internal/service"
)

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	Refresh  key.Binding
	Advance  key.Binding
	Status   key.Binding
	Estimate key.Binding
	Add      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Toggle   key.Binding
	QRCode   key.Binding
	QRSave   key.Binding
	Revenue  key.Binding
	Orders   key.Binding
	Shorter  key.Binding
	Longer   key.Binding
	Export   key.Binding
	Back     key.Binding
	Logout   key.Binding
	Quit     key.Binding
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
	NextTab: key.NewBinding(
		key.WithKeys("tab", "right", "l"),
		key.WithHelp("tab", "next tab"),
	),
	PrevTab: key.NewBinding(
		key.WithKeys("shift+tab", "left", "h"),
		key.WithHelp("S-tab", "prev tab"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Advance: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "next status"),
	),
	Status: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "set status"),
	),
	Estimate: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "estimate"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add"),
	),
	Edit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d", "delete"),
		key.WithHelp("d", "delete"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "toggle available"),
	),
	QRCode: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "show QR"),
	),
	QRSave: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "save QR png"),
	),
	Revenue: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "revenue"),
	),
	Orders: key.NewBinding(
		key.WithKeys("O"),
		key.WithHelp("O", "today's orders"),
	),
	Shorter: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "fewer days"),
	),
	Longer: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "more days"),
	),
	Export: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "export png"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	Logout: key.NewBinding(
		key.WithKeys("L"),
		key.WithHelp("L", "logout"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// tabKeys narrows the help line to what the current tab responds to.
type tabKeys struct {
	keyMap
	extra []key.Binding
}

func (k tabKeys) ShortHelp() []key.Binding {
	bindings := []key.Binding{k.NextTab, k.Up, k.Down}
	bindings = append(bindings, k.extra...)
	return append(bindings, k.Refresh, k.Logout, k.Quit)
}

func (k tabKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.Up, k.Down},
		k.extra,
		{k.Refresh, k.Back, k.Logout, k.Quit},
	}
}

func (k keyMap) forTab(tab service.Tab) tabKeys {
	var extra []key.Binding
	switch tab {
	case service.TabDashboard:
		extra = []key.Binding{k.Revenue, k.Orders}
	case service.TabOrders:
		extra = []key.Binding{k.Advance, k.Status, k.Estimate}
	case service.TabMenu:
		extra = []key.Binding{k.Add, k.Edit, k.Toggle, k.Delete}
	case service.TabTables:
		extra = []key.Binding{k.Add, k.QRCode, k.QRSave, k.Delete}
	case service.TabAnalytics:
		extra = []key.Binding{k.Shorter, k.Longer, k.Export}
	}
	return tabKeys{keyMap: k, extra: extra}
}
