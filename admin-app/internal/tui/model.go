// Package tui is the staff dashboard: orders, menu, tables and analytics
// behind a login.
package tui

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tea-estate/internal/domain"
	"tea-estate/internal/events"
	"tea-estate/internal/render"
	"tea-estate/internal/service"
	"tea-estate/internal/termui"
)

type Config struct {
	Admin           *service.Admin
	RefreshInterval time.Duration
	LiveUpdates     bool
	ExportDir       string
	QR              render.TableQRGenerator
	Theme           render.Theme
}

type formKind int

const (
	formNone formKind = iota
	formLogin
	formMenuItem
	formTable
	formStatus
	formEstimate
)

type overlay int

const (
	overlayNone overlay = iota
	overlayRevenue
	overlayDaily
	overlayQR
)

// analyticsRanges are the periods [ and ] step through.
var analyticsRanges = []int{7, 30, 90}

type (
	overlayMsg  struct{ kind overlay }
	formDoneMsg struct{}
	qrMsg       struct {
		table int
		text  string
		err   error
	}
	exportedMsg struct {
		paths []string
		err   error
	}
)

type Model struct {
	ctx    context.Context
	admin  *service.Admin
	config Config
	theme  render.Theme
	keys   keyMap
	help   help.Model

	state   service.AdminState
	cursors map[service.Tab]int
	toasts  termui.Toasts

	form     termui.Form
	formKind formKind
	// editing is the menu item or order id the open form acts on.
	editing int

	overlay overlay
	qrTable int
	qrText  string

	confirm   string
	onConfirm tea.Cmd

	width  int
	height int
}

func New(ctx context.Context, config Config) Model {
	return Model{
		ctx:      ctx,
		admin:    config.Admin,
		config:   config,
		theme:    config.Theme,
		keys:     defaultKeys,
		help:     help.New(),
		state:    config.Admin.Snapshot(),
		cursors:  map[service.Tab]int{},
		form:     loginForm(""),
		formKind: formLogin,
	}
}

func (model Model) Init() tea.Cmd {
	admin, ctx := model.admin, model.ctx
	return tea.Batch(
		termui.Task(func() { admin.ResumeSession(ctx) }),
		termui.Every(model.config.RefreshInterval),
		textinput.Blink,
	)
}

func (model Model) notify(level service.Level, text string) tea.Cmd {
	return func() tea.Msg { return termui.NotifyMsg{Level: level, Text: text} }
}

func (model Model) cursor() int {
	return model.cursors[model.state.Tab]
}

func (model Model) listLen(tab service.Tab) int {
	switch tab {
	case service.TabOrders:
		return len(model.state.Orders)
	case service.TabMenu:
		return len(model.state.MenuItems)
	case service.TabTables:
		return len(model.state.Tables)
	}
	return 0
}

func (model *Model) moveCursor(delta int) {
	tab := model.state.Tab
	n := model.listLen(tab)
	model.cursors[tab] = max(0, min(model.cursors[tab]+delta, n-1))
}

func (model *Model) clamp() {
	for _, tab := range service.Tabs {
		model.cursors[tab] = max(0, min(model.cursors[tab], model.listLen(tab)-1))
	}
}

func (model Model) selectedOrder() (domain.Order, bool) {
	if i := model.cursor(); i < len(model.state.Orders) {
		return model.state.Orders[i], true
	}
	return domain.Order{}, false
}

func (model Model) selectedItem() (domain.MenuItem, bool) {
	if i := model.cursor(); i < len(model.state.MenuItems) {
		return model.state.MenuItems[i], true
	}
	return domain.MenuItem{}, false
}

func (model Model) selectedTable() (domain.Table, bool) {
	if i := model.cursor(); i < len(model.state.Tables) {
		return model.state.Tables[i], true
	}
	return domain.Table{}, false
}

func (model Model) analyticsDays() int {
	if model.state.Analytics != nil && model.state.Analytics.Days > 0 {
		return model.state.Analytics.Days
	}
	return service.DefaultAnalyticsDays
}

func (model Model) connection() events.Status {
	if model.config.LiveUpdates && model.state.Connection == "" {
		return events.StatusDisconnected
	}
	return model.state.Connection
}

func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width, model.height = message.Width, message.Height
		model.help.Width = message.Width
		return model, nil

	case termui.RefreshMsg:
		wasLoggedIn := model.state.LoggedIn
		model.state = model.admin.Snapshot()
		switch {
		case !model.state.LoggedIn && (wasLoggedIn || model.formKind != formLogin):
			model.form = loginForm("")
			model.formKind = formLogin
			model.overlay = overlayNone
			model.confirm, model.onConfirm = "", nil
		case model.state.LoggedIn && model.formKind == formLogin:
			model.formKind = formNone
		}
		if model.overlay == overlayRevenue && model.state.Revenue == nil ||
			model.overlay == overlayDaily && model.state.DailyOrders == nil {
			model.overlay = overlayNone
		}
		model.clamp()
		return model, nil

	case termui.NotifyMsg:
		return model, model.toasts.Show(message)

	case termui.ToastExpiredMsg:
		model.toasts.Expire(message)
		return model, nil

	case termui.TickMsg:
		cmds := []tea.Cmd{termui.Every(model.config.RefreshInterval)}
		if model.state.LoggedIn {
			admin, ctx := model.admin, model.ctx
			cmds = append(cmds, termui.Task(func() { admin.Reload(ctx) }))
		}
		return model, tea.Batch(cmds...)

	case overlayMsg:
		model.overlay = message.kind
		return model, nil

	case formDoneMsg:
		model.formKind = formNone
		return model, nil

	case qrMsg:
		if message.err != nil {
			return model, model.notify(service.LevelError, "Failed to generate QR code")
		}
		model.overlay = overlayQR
		model.qrTable = message.table
		model.qrText = message.text
		return model, nil

	case exportedMsg:
		switch {
		case message.err != nil:
			return model, model.notify(service.LevelError, "Export failed: "+message.err.Error())
		case len(message.paths) == 0:
			return model, model.notify(service.LevelInfo, "Nothing to export")
		}
		return model, model.notify(service.LevelSuccess,
			fmt.Sprintf("Exported %d charts to %s", len(message.paths), model.config.ExportDir))

	case tea.KeyMsg:
		return model.handleKey(message)
	}

	if model.formKind != formNone {
		var cmd tea.Cmd
		model.form, cmd = model.form.Update(message)
		return model, cmd
	}
	return model, nil
}

func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if message.String() == "ctrl+c" {
		return model, tea.Quit
	}
	if model.formKind != formNone {
		return model.handleFormKey(message)
	}

	if model.confirm != "" {
		cmd := model.onConfirm
		model.confirm, model.onConfirm = "", nil
		if message.String() == "y" {
			return model, cmd
		}
		return model, nil
	}

	admin, ctx := model.admin, model.ctx

	if model.overlay != overlayNone {
		if key.Matches(message, model.keys.Back, model.keys.Quit) {
			closing := model.overlay
			model.overlay = overlayNone
			if closing != overlayQR {
				return model, termui.Task(admin.CloseDetail)
			}
		}
		return model, nil
	}

	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.Logout):
		return model, termui.Task(func() { admin.Logout(ctx) })

	case key.Matches(message, model.keys.NextTab), key.Matches(message, model.keys.PrevTab):
		delta := 1
		if key.Matches(message, model.keys.PrevTab) {
			delta = len(service.Tabs) - 1
		}
		i := slices.Index(service.Tabs, model.state.Tab)
		tab := service.Tabs[(i+delta)%len(service.Tabs)]
		model.state.Tab = tab
		return model, termui.Task(func() { admin.ShowTab(ctx, tab) })

	case key.Matches(message, model.keys.Refresh):
		return model, termui.Task(func() { admin.Reload(ctx) })

	case key.Matches(message, model.keys.Up):
		model.moveCursor(-1)
		return model, nil

	case key.Matches(message, model.keys.Down):
		model.moveCursor(1)
		return model, nil
	}

	switch model.state.Tab {
	case service.TabDashboard:
		return model.dashboardKey(message)
	case service.TabOrders:
		return model.ordersKey(message)
	case service.TabMenu:
		return model.menuKey(message)
	case service.TabTables:
		return model.tablesKey(message)
	case service.TabAnalytics:
		return model.analyticsKey(message)
	}
	return model, nil
}

func (model Model) dashboardKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	admin, ctx := model.admin, model.ctx
	switch {
	case key.Matches(message, model.keys.Revenue):
		return model, func() tea.Msg {
			if admin.OpenRevenueDetail(ctx) {
				return overlayMsg{kind: overlayRevenue}
			}
			return nil
		}
	case key.Matches(message, model.keys.Orders):
		return model, func() tea.Msg {
			if admin.OpenDailyOrders(ctx) {
				return overlayMsg{kind: overlayDaily}
			}
			return nil
		}
	}
	return model, nil
}

func (model Model) ordersKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	admin, ctx := model.admin, model.ctx
	order, ok := model.selectedOrder()
	if !ok {
		return model, nil
	}
	switch {
	case key.Matches(message, model.keys.Advance):
		return model, termui.Task(func() { admin.AdvanceOrderStatus(ctx, order.ID) })
	case key.Matches(message, model.keys.Status):
		model.openForm(formStatus, order.ID, statusForm(order))
		return model, textinput.Blink
	case key.Matches(message, model.keys.Estimate):
		model.openForm(formEstimate, order.ID, estimateForm(order))
		return model, textinput.Blink
	}
	return model, nil
}

func (model Model) menuKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	admin, ctx := model.admin, model.ctx
	if key.Matches(message, model.keys.Add) {
		model.openForm(formMenuItem, 0, menuItemForm(nil))
		return model, textinput.Blink
	}
	item, ok := model.selectedItem()
	if !ok {
		return model, nil
	}
	switch {
	case key.Matches(message, model.keys.Edit):
		model.openForm(formMenuItem, item.ID, menuItemForm(&item))
		return model, textinput.Blink
	case key.Matches(message, model.keys.Toggle):
		available := !item.IsAvailable
		return model, termui.Task(func() {
			admin.SaveMenuItem(ctx, item.ID, domain.MenuItemInput{IsAvailable: &available})
		})
	case key.Matches(message, model.keys.Delete):
		model.confirm = fmt.Sprintf("Delete %q? (y/n)", item.Name)
		model.onConfirm = termui.Task(func() { admin.DeleteMenuItem(ctx, item.ID) })
	}
	return model, nil
}

func (model Model) tablesKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	admin, ctx := model.admin, model.ctx
	if key.Matches(message, model.keys.Add) {
		model.openForm(formTable, 0, tableForm())
		return model, textinput.Blink
	}
	table, ok := model.selectedTable()
	if !ok {
		return model, nil
	}
	qr, dir := model.config.QR, model.config.ExportDir
	switch {
	case key.Matches(message, model.keys.QRCode):
		return model, func() tea.Msg {
			text, err := qr.Text(table.TableNumber)
			return qrMsg{table: table.TableNumber, text: text, err: err}
		}
	case key.Matches(message, model.keys.QRSave):
		return model, func() tea.Msg {
			path, err := render.WriteTableQR(qr, table.TableNumber, dir)
			if err != nil {
				return termui.NotifyMsg{Level: service.LevelError, Text: "Failed to generate QR code"}
			}
			return termui.NotifyMsg{Level: service.LevelSuccess, Text: "QR code saved to " + path}
		}
	case key.Matches(message, model.keys.Delete):
		model.confirm = fmt.Sprintf("Delete table %d? (y/n)", table.TableNumber)
		model.onConfirm = termui.Task(func() { admin.DeleteTable(ctx, table.ID) })
	}
	return model, nil
}

func (model Model) analyticsKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	admin, ctx := model.admin, model.ctx
	switch {
	case key.Matches(message, model.keys.Shorter), key.Matches(message, model.keys.Longer):
		i := slices.Index(analyticsRanges, model.analyticsDays())
		if key.Matches(message, model.keys.Longer) {
			i = min(i+1, len(analyticsRanges)-1)
		} else {
			i = max(i-1, 0)
		}
		days := analyticsRanges[i]
		if days == model.analyticsDays() {
			return model, nil
		}
		return model, termui.Task(func() { admin.LoadAnalytics(ctx, days) })

	case key.Matches(message, model.keys.Export):
		analytics, dir, theme := model.state.Analytics, model.config.ExportDir, model.theme
		return model, func() tea.Msg {
			paths, err := render.ExportCharts(analytics, dir, theme)
			return exportedMsg{paths: paths, err: err}
		}
	}
	return model, nil
}

func (model *Model) openForm(kind formKind, editing int, form termui.Form) {
	model.form = form
	model.formKind = kind
	model.editing = editing
}

func (model Model) handleFormKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.String() {
	case "esc":
		if model.formKind != formLogin {
			model.formKind = formNone
		}
		return model, nil
	case "enter":
		return model.submitForm()
	}
	var cmd tea.Cmd
	model.form, cmd = model.form.Update(message)
	return model, cmd
}

func (model Model) submitForm() (tea.Model, tea.Cmd) {
	admin, ctx, id := model.admin, model.ctx, model.editing
	values := model.form.Values()

	switch model.formKind {
	case formLogin:
		username, password := values[0], model.form.Value(1)
		if username == "" || password == "" {
			return model, model.notify(service.LevelError, "Enter username and password")
		}
		model.form = loginForm(username)
		return model, termui.Task(func() { admin.Login(ctx, username, password) })

	case formMenuItem:
		input, err := parseMenuItem(values)
		if err != nil {
			return model, model.notify(service.LevelError, err.Error())
		}
		return model, func() tea.Msg {
			if admin.SaveMenuItem(ctx, id, input) {
				return formDoneMsg{}
			}
			return nil
		}

	case formTable:
		number, err := parseTableNumber(values[0])
		if err != nil {
			return model, model.notify(service.LevelError, err.Error())
		}
		return model, func() tea.Msg {
			if admin.CreateTable(ctx, number) {
				return formDoneMsg{}
			}
			return nil
		}

	case formStatus:
		model.formKind = formNone
		return model, termui.Task(func() { admin.UpdateOrderStatus(ctx, id, values[0]) })

	case formEstimate:
		minutes, err := parseMinutes(values[0])
		if err != nil {
			return model, model.notify(service.LevelError, err.Error())
		}
		model.formKind = formNone
		return model, termui.Task(func() { admin.UpdateEstimatedTime(ctx, id, minutes) })
	}
	return model, nil
}
