package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tea-estate/internal/render"
	"tea-estate/internal/service"
	"tea-estate/internal/termui"
)

var tabTitles = map[service.Tab]string{
	service.TabDashboard: "Dashboard",
	service.TabOrders:    "Orders",
	service.TabMenu:      "Menu",
	service.TabTables:    "Tables",
	service.TabAnalytics: "Analytics",
}

func (model Model) View() string {
	if !model.state.LoggedIn {
		return model.loginView()
	}
	theme := model.theme

	user := ""
	if model.state.User != nil {
		user = model.state.User.Username
	}
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		lipgloss.NewStyle().Bold(true).Foreground(theme.Accent).Render("🍵 Tea Estate Admin"),
		"   ",
		lipgloss.NewStyle().Foreground(theme.Faint).Render(user),
		"   ",
		termui.ConnectionBadge(model.connection(), theme),
	)

	tabs := make([]string, len(service.Tabs))
	for i, tab := range service.Tabs {
		style := lipgloss.NewStyle().Padding(0, 1).Foreground(theme.Faint)
		if tab == model.state.Tab {
			style = style.Foreground(theme.Selected).Bold(true).Underline(true)
		}
		tabs[i] = style.Render(tabTitles[tab])
	}
	header += "\n" + lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	var body string
	switch {
	case model.formKind != formNone:
		body = model.form.View(theme)
	case model.overlay == overlayRevenue && model.state.Revenue != nil:
		body = render.RevenueDetail(*model.state.Revenue, theme)
	case model.overlay == overlayDaily:
		body = render.DailyOrders(model.state.DailyOrders, theme)
	case model.overlay == overlayQR:
		body = fmt.Sprintf("Table %d\n%s\n\n%s", model.qrTable,
			render.TableURL(model.config.QR.PublicURL, model.qrTable), model.qrText)
	default:
		body = model.tabView()
	}
	if model.confirm != "" {
		body += "\n\n" + lipgloss.NewStyle().Foreground(theme.Danger).Bold(true).Render(model.confirm)
	}

	var footer []string
	if toast := model.toasts.View(theme); toast != "" {
		footer = append(footer, toast)
	}
	footer = append(footer, model.help.View(model.keys.forTab(model.state.Tab)))

	chrome := lipgloss.Height(header) + 1 + lipgloss.Height(strings.Join(footer, "\n")) + 1
	if model.height > 0 {
		body = termui.Window(body, model.height-chrome, "▸ ")
	}
	return strings.Join([]string{header, "", body, "", strings.Join(footer, "\n")}, "\n")
}

func (model Model) loginView() string {
	theme := model.theme
	parts := []string{
		lipgloss.NewStyle().Bold(true).Foreground(theme.Accent).Render("🍵 Tea Estate Admin"),
		"",
		model.form.View(theme),
	}
	if model.state.LoginError != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.Danger).Render(model.state.LoginError))
	}
	if toast := model.toasts.View(theme); toast != "" {
		parts = append(parts, toast)
	}
	view := strings.Join(parts, "\n")
	if model.width > 0 && model.height > 0 {
		return lipgloss.Place(model.width, model.height, lipgloss.Center, lipgloss.Center, view)
	}
	return view
}

func (model Model) tabView() string {
	theme := model.theme
	switch model.state.Tab {
	case service.TabDashboard:
		return render.Dashboard(model.state.Stats, model.state.ActiveTables, theme)

	case service.TabOrders:
		selected := 0
		if order, ok := model.selectedOrder(); ok {
			selected = order.ID
		}
		return render.ActiveOrders(model.state.Orders, selected, theme)

	case service.TabMenu:
		selected := 0
		if item, ok := model.selectedItem(); ok {
			selected = item.ID
		}
		return render.MenuItems(model.state.MenuItems, selected, theme)

	case service.TabTables:
		selected := 0
		if table, ok := model.selectedTable(); ok {
			selected = table.ID
		}
		return render.Tables(model.state.Tables, selected, theme)

	case service.TabAnalytics:
		title := lipgloss.NewStyle().Foreground(theme.Faint).
			Render(fmt.Sprintf("Last %d days", model.analyticsDays()))
		return title + "\n\n" + render.Analytics(model.state.Analytics, max(model.width-4, 40), theme)
	}
	return ""
}
