// Package tui is the table-side ordering screen.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tea-estate/internal/domain"
	"tea-estate/internal/events"
	"tea-estate/internal/render"
	"tea-estate/internal/service"
	"tea-estate/internal/termui"
)

type Config struct {
	Customer        *service.Customer
	RefreshInterval time.Duration
	// LiveUpdates is false when no event source is configured.
	LiveUpdates bool
	// Warning is shown once at start, e.g. when the table could not be
	// checked.
	Warning string
	Theme   render.Theme
}

type Model struct {
	ctx      context.Context
	customer *service.Customer
	config   Config
	theme    render.Theme
	keys     keyMap
	help     help.Model

	state      service.CustomerState
	connection events.Status
	search     textinput.Model
	category   int
	cursor     int
	cartCursor int
	showCart   bool
	toasts     termui.Toasts

	width  int
	height int
}

func New(ctx context.Context, config Config) Model {
	search := textinput.New()
	search.Placeholder = "Search the menu"
	search.Prompt = "/ "
	search.CharLimit = 64

	model := Model{
		ctx:      ctx,
		customer: config.Customer,
		config:   config,
		theme:    config.Theme,
		keys:     defaultKeys,
		help:     help.New(),
		search:   search,
	}
	if config.LiveUpdates {
		model.connection = events.StatusDisconnected
	}
	model.state = config.Customer.Snapshot()
	return model
}

func (model Model) Init() tea.Cmd {
	customer := model.customer
	ctx := model.ctx
	cmds := []tea.Cmd{
		termui.Task(func() {
			customer.RestoreCart(ctx)
			customer.LoadMenu(ctx)
			customer.LoadCurrentOrders(ctx)
		}),
		termui.Every(model.config.RefreshInterval),
	}
	if model.config.Warning != "" {
		warning := termui.NotifyMsg{Level: service.LevelError, Text: model.config.Warning}
		cmds = append(cmds, func() tea.Msg { return warning })
	}
	return tea.Batch(cmds...)
}

func (model Model) categories() []string {
	names := []string{service.FilterAll}
	for _, c := range model.state.Menu {
		names = append(names, c.Name)
	}
	return names
}

func (model Model) filter() service.MenuFilter {
	names := model.categories()
	return service.MenuFilter{
		Category: names[min(model.category, len(names)-1)],
		Search:   model.search.Value(),
	}
}

func (model Model) visibleItems() []domain.MenuItem {
	var items []domain.MenuItem
	for _, c := range model.filter().Apply(model.state.Menu) {
		items = append(items, c.Items...)
	}
	return items
}

func (model Model) selected() (domain.MenuItem, bool) {
	items := model.visibleItems()
	if model.cursor < 0 || model.cursor >= len(items) {
		return domain.MenuItem{}, false
	}
	return items[model.cursor], true
}

func (model *Model) clamp() {
	model.category = min(model.category, len(model.categories())-1)
	model.cursor = max(0, min(model.cursor, len(model.visibleItems())-1))
}

func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width, model.height = message.Width, message.Height
		model.help.Width = message.Width
		return model, nil

	case termui.RefreshMsg:
		model.state = model.customer.Snapshot()
		model.clamp()
		return model, nil

	case termui.NotifyMsg:
		return model, model.toasts.Show(message)

	case termui.ToastExpiredMsg:
		model.toasts.Expire(message)
		return model, nil

	case termui.StatusMsg:
		model.connection = message.Status
		return model, nil

	case termui.TickMsg:
		customer, ctx := model.customer, model.ctx
		return model, tea.Batch(
			termui.Task(func() { customer.LoadCurrentOrders(ctx) }),
			termui.Every(model.config.RefreshInterval),
		)

	case tea.KeyMsg:
		return model.handleKey(message)
	}
	return model, nil
}

func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	customer, ctx := model.customer, model.ctx

	if message.String() == "ctrl+c" {
		return model, tea.Quit
	}

	if model.state.Confirmation != nil {
		if key.Matches(message, model.keys.Back, model.keys.PlaceOrder) {
			return model, termui.Task(customer.DismissConfirmation)
		}
		return model, nil
	}

	if model.search.Focused() {
		switch message.String() {
		case "enter", "esc":
			model.search.Blur()
			return model, nil
		}
		var cmd tea.Cmd
		model.search, cmd = model.search.Update(message)
		model.cursor = 0
		model.clamp()
		return model, cmd
	}

	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.Search):
		model.showCart = false
		return model, model.search.Focus()

	case key.Matches(message, model.keys.Back):
		if model.showCart {
			model.showCart = false
		} else if model.search.Value() != "" {
			model.search.SetValue("")
			model.clamp()
		}
		return model, nil

	case key.Matches(message, model.keys.Cart):
		model.showCart = !model.showCart
		return model, nil

	case key.Matches(message, model.keys.PlaceOrder):
		if !model.showCart {
			model.showCart = true
			return model, nil
		}
		return model, termui.Task(func() { customer.PlaceOrder(ctx) })

	case key.Matches(message, model.keys.NextTab):
		model.category = (model.category + 1) % len(model.categories())
		model.cursor = 0
		return model, nil

	case key.Matches(message, model.keys.PrevTab):
		n := len(model.categories())
		model.category = (model.category - 1 + n) % n
		model.cursor = 0
		return model, nil

	case key.Matches(message, model.keys.Up):
		if model.showCart {
			model.cartCursor = max(0, model.cartCursor-1)
		} else {
			model.cursor = max(0, model.cursor-1)
		}
		return model, nil

	case key.Matches(message, model.keys.Down):
		if model.showCart {
			model.cartCursor = min(model.cartCursor+1, max(len(model.state.Cart)-1, 0))
		} else {
			model.cursor++
			model.clamp()
		}
		return model, nil
	}

	itemID, ok := model.target()
	if !ok {
		return model, nil
	}
	switch {
	case key.Matches(message, model.keys.Add):
		return model, termui.Task(func() { customer.ChangeQuantity(ctx, itemID, 1) })
	case key.Matches(message, model.keys.Remove):
		return model, termui.Task(func() { customer.ChangeQuantity(ctx, itemID, -1) })
	case key.Matches(message, model.keys.Drop):
		return model, termui.Task(func() { customer.RemoveItemFromCart(ctx, itemID) })
	}
	return model, nil
}

// target is the item the quantity keys act on: the cart line under the
// cursor while the cart is open, the menu item otherwise.
func (model Model) target() (int, bool) {
	if model.showCart {
		entry, ok := model.cartEntry()
		return entry.ID, ok
	}
	item, ok := model.selected()
	return item.ID, ok
}

func (model Model) cartEntry() (domain.CartEntry, bool) {
	if len(model.state.Cart) == 0 {
		return domain.CartEntry{}, false
	}
	return model.state.Cart[min(model.cartCursor, len(model.state.Cart)-1)], true
}

func (model Model) quantity(itemID int) int {
	for _, e := range model.state.Cart {
		if e.ID == itemID {
			return e.Quantity
		}
	}
	return 0
}

func (model Model) View() string {
	theme := model.theme
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		lipgloss.NewStyle().Bold(true).Foreground(theme.Accent).Render("🍵 The Tea Estate"),
		"   ",
		fmt.Sprintf("Table %d", model.state.TableNumber),
		"   ",
		termui.ConnectionBadge(model.connection, theme),
	)
	if model.state.DemoMenu {
		header += "   " + lipgloss.NewStyle().Foreground(theme.StatusPending).Render("demo menu")
	}

	var body string
	switch {
	case model.state.Confirmation != nil:
		body = render.Confirmation(*model.state.Confirmation, theme)
	case model.showCart:
		body = render.CartSummary(model.state, theme)
		if entry, ok := model.cartEntry(); ok {
			body += "\n" + lipgloss.NewStyle().Foreground(theme.Selected).
				Render(fmt.Sprintf("▸ %s ×%d", entry.Name, entry.Quantity)) +
				lipgloss.NewStyle().Foreground(theme.Faint).Render("  +/- quantity · x remove")
		}
		if orders := render.CurrentOrders(model.state.Orders, theme); orders != "" {
			body += "\n\n" + orders
		}
	default:
		body = model.menuView()
	}

	footer := []string{}
	if cart := render.FloatingCart(model.state, theme); cart != "" && !model.showCart {
		footer = append(footer, cart)
	}
	if toast := model.toasts.View(theme); toast != "" {
		footer = append(footer, toast)
	}
	footer = append(footer, model.help.View(model.keys))

	chrome := lipgloss.Height(header) + 1 + lipgloss.Height(strings.Join(footer, "\n")) + 1
	if model.height > 0 {
		body = termui.Window(body, model.height-chrome, "▸ ")
	}
	return strings.Join([]string{header, "", body, "", strings.Join(footer, "\n")}, "\n")
}

func (model Model) menuView() string {
	theme := model.theme
	names := model.categories()
	tabs := make([]string, len(names))
	for i, name := range names {
		style := lipgloss.NewStyle().Padding(0, 1).Foreground(theme.Faint)
		if i == model.category {
			style = style.Foreground(theme.Selected).Bold(true).Underline(true)
		}
		label := name
		if name == service.FilterAll {
			label = "All"
		}
		tabs[i] = style.Render(label)
	}

	filtered := model.filter().Apply(model.state.Menu)
	selectedID := 0
	if item, ok := model.selected(); ok {
		selectedID = item.ID
	}
	opts := render.MenuOptions{
		Search:   model.search.Value(),
		Selected: selectedID,
		Quantity: model.quantity,
		Width:    max(model.width-4, 40),
	}

	parts := []string{lipgloss.JoinHorizontal(lipgloss.Top, tabs...)}
	if model.search.Focused() || model.search.Value() != "" {
		parts = append(parts, model.search.View())
		if h := render.SearchHeader(filtered, model.search.Value()); h != "" {
			parts = append(parts, lipgloss.NewStyle().Foreground(theme.Faint).Render(h))
		}
	}
	parts = append(parts, "")
	if model.search.Value() == "" && model.category == 0 {
		featured := opts
		featured.Selected = 0
		parts = append(parts, render.Bestsellers(service.Bestsellers(model.state.Menu), featured, theme), "")
	}
	parts = append(parts, render.Menu(filtered, opts, theme))
	if orders := render.CurrentOrders(model.state.Orders, theme); orders != "" {
		parts = append(parts, "", orders)
	}
	return strings.Join(parts, "\n")
}
