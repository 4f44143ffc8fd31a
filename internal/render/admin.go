package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tea-estate/internal/domain"
)

func card(title, value string, theme Theme) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 2).
		Width(22).
		Render(lipgloss.NewStyle().Foreground(theme.Faint).Render(title) + "\n" +
			lipgloss.NewStyle().Bold(true).Foreground(theme.Text).Render(value))
}

func Dashboard(stats *domain.DashboardStats, activeTables int, theme Theme) string {
	if stats == nil {
		return lipgloss.NewStyle().Foreground(theme.Faint).Render("Loading dashboard...")
	}
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Today's Orders", Count(stats.DailyOrders), theme),
		card("Today's Revenue", Money(stats.DailyRevenue), theme),
		card("Active Orders", Count(stats.ActiveOrders), theme),
		card("Active Tables", Count(activeTables), theme),
	)
	return cards + "\n\n" + PopularItems(stats.PopularItems, theme)
}

func PopularItems(items []domain.PopularItem, theme Theme) string {
	title := lipgloss.NewStyle().Bold(true).Render("Popular Items Today")
	if len(items) == 0 {
		return title + "\n" + lipgloss.NewStyle().Foreground(theme.Faint).Render("No orders today")
	}
	lines := []string{title}
	for i, item := range items {
		lines = append(lines, fmt.Sprintf("%2d. %-28s %s sold", i+1, truncate(item.Name, 28), Count(item.Quantity)))
	}
	return strings.Join(lines, "\n")
}

func cursor(selected bool, theme Theme) string {
	if selected {
		return lipgloss.NewStyle().Foreground(theme.Selected).Render("▸ ")
	}
	return "  "
}

// ActiveOrders lists the kitchen queue. selected is an order id.
func ActiveOrders(orders []domain.Order, selected int, theme Theme) string {
	if len(orders) == 0 {
		return lipgloss.NewStyle().Foreground(theme.Faint).Render("No active orders")
	}
	var b strings.Builder
	for i, o := range orders {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("%sOrder #%-5d Table %-3d %s  %-10s %s  %s",
			cursor(o.ID == selected, theme), o.ID, o.TableNumber,
			o.CreatedAt.Local().Format("15:04"), StatusBadge(o.Status, theme),
			Money(o.TotalAmount), fmt.Sprintf("est %d min", o.EstimatedTime)))
		for _, item := range o.Items {
			b.WriteString(fmt.Sprintf("\n      %d× %-24s %s", item.Quantity, truncate(item.MenuItemName, 24), Money(item.Subtotal)))
		}
	}
	return b.String()
}

func MenuItems(items []domain.MenuItem, selected int, theme Theme) string {
	if len(items) == 0 {
		return lipgloss.NewStyle().Foreground(theme.Faint).Render("No menu items")
	}
	header := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("  %-5s %-28s %-10s %s", "ID", "Name", "Price", "Available"))
	lines := []string{header}
	for _, item := range items {
		available := lipgloss.NewStyle().Foreground(theme.Accent).Render("yes")
		if !item.IsAvailable {
			available = lipgloss.NewStyle().Foreground(theme.Danger).Render("no")
		}
		lines = append(lines, fmt.Sprintf("%s%-5d %-28s %-10s %s",
			cursor(item.ID == selected, theme), item.ID, truncate(item.Name, 28), Money(item.Price), available))
	}
	return strings.Join(lines, "\n")
}

func Tables(tables []domain.Table, selected int, theme Theme) string {
	if len(tables) == 0 {
		return lipgloss.NewStyle().Foreground(theme.Faint).Render("No tables")
	}
	var cells []string
	for _, t := range tables {
		border := theme.Border
		if t.ID == selected {
			border = theme.Selected
		}
		status := lipgloss.NewStyle().Foreground(theme.Faint).Render("free")
		if t.ActiveOrders > 0 {
			status = lipgloss.NewStyle().Foreground(theme.StatusPending).Render(fmt.Sprintf("%d active", t.ActiveOrders))
		}
		if !t.IsActive {
			status = lipgloss.NewStyle().Foreground(theme.Danger).Render("inactive")
		}
		cells = append(cells, lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Width(12).
			Align(lipgloss.Center).
			Render(fmt.Sprintf("Table %d\n%s", t.TableNumber, status)))
	}
	const perRow = 5
	var rows []string
	for i := 0; i < len(cells); i += perRow {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells[i:min(i+perRow, len(cells))]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// TopProducts ranks the ten best sellers by revenue as returned.
func TopProducts(products []domain.ProductPerformance, theme Theme) string {
	if len(products) == 0 {
		return lipgloss.NewStyle().Foreground(theme.Faint).Render(MsgNoProducts)
	}
	lines := []string{lipgloss.NewStyle().Bold(true).Render("Top Products")}
	for i, p := range products[:min(10, len(products))] {
		lines = append(lines, fmt.Sprintf("#%-2d %-24s %-12s %12s %6s sold",
			i+1, truncate(p.Name, 24), truncate(p.Category, 12), Money(p.TotalRevenue), Count(p.TotalQuantity)))
	}
	return strings.Join(lines, "\n")
}

func ProductTable(products []domain.ProductPerformance, theme Theme) string {
	if len(products) == 0 {
		return lipgloss.NewStyle().Foreground(theme.Faint).Render(MsgNoProducts)
	}
	header := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%-24s %-12s %8s %12s %7s %10s",
		"Product", "Category", "Qty", "Revenue", "Orders", "Avg price"))
	lines := []string{header}
	for _, p := range products {
		lines = append(lines, fmt.Sprintf("%-24s %-12s %8s %12s %7s %10s",
			truncate(p.Name, 24), truncate(p.Category, 12), Count(p.TotalQuantity),
			Money(p.TotalRevenue), Count(p.OrderCount), Money(p.AvgPrice)))
	}
	return strings.Join(lines, "\n")
}

func section(title, body string, theme Theme) string {
	return lipgloss.NewStyle().Bold(true).Foreground(theme.Accent).Render(title) + "\n" + body
}

// Analytics draws the four analytics panels on cell canvases of the given
// width. Aggregates that failed to load say so in place of their panel.
func Analytics(a *domain.Analytics, width int, theme Theme) string {
	if a == nil {
		return lipgloss.NewStyle().Foreground(theme.Faint).Render("Loading analytics...")
	}
	width = max(width, 40)
	failed := lipgloss.NewStyle().Foreground(theme.Danger).Render(MsgAggregateFailed)

	chart := func(draw func(c Canvas) bool, summary string) string {
		c := NewCellCanvas(width, 14)
		if !draw(c) {
			return summary
		}
		return c.Render() + "\n" + summary
	}

	var parts []string
	title := fmt.Sprintf("Sales trend (last %d days)", a.Days)
	if a.Trends == nil {
		parts = append(parts, section(title, failed, theme))
	} else {
		parts = append(parts, section(title, chart(func(c Canvas) bool {
			return DrawSalesChart(c, a.Trends, theme)
		}, SalesSummaryText(a.Trends)), theme))
	}

	if a.Hourly == nil {
		parts = append(parts, section("Peak hours", failed, theme))
	} else {
		parts = append(parts, section("Peak hours", chart(func(c Canvas) bool {
			return DrawPeakHoursChart(c, a.Hourly, theme)
		}, PeakHoursText(a.Hourly)), theme))
	}

	if a.Categories == nil {
		parts = append(parts, section("Categories", failed, theme))
	} else {
		parts = append(parts, section("Categories", chart(func(c Canvas) bool {
			return DrawCategoryChart(c, a.Categories, theme)
		}, CategoriesText(a.Categories)), theme))
	}

	if a.Products == nil {
		parts = append(parts, section("Products", failed, theme))
	} else {
		parts = append(parts, section("Products", TopProducts(a.Products, theme)+"\n\n"+ProductTable(a.Products, theme), theme))
	}
	return strings.Join(parts, "\n\n")
}

func RevenueDetail(d domain.RevenueDetail, theme Theme) string {
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render("Revenue Details"),
		fmt.Sprintf("Total revenue     %s", Money(d.TotalRevenue)),
		fmt.Sprintf("Avg order value   %s", Money(d.AvgOrderValue)),
		fmt.Sprintf("Top category      %s", d.TopCategory),
		fmt.Sprintf("Growth            %+.1f%%", d.GrowthRate),
	}
	if len(d.HourlyRevenue) > 0 {
		lines = append(lines, "", "By hour")
		for _, h := range d.HourlyRevenue {
			lines = append(lines, fmt.Sprintf("  %-5s %s", HourLabel(h.Hour), Money(h.Revenue)))
		}
	}
	if len(d.CategoryRevenue) > 0 {
		lines = append(lines, "", "By category")
		for _, c := range d.CategoryRevenue {
			lines = append(lines, fmt.Sprintf("  %-16s %s", truncate(c.Category, 16), Money(c.Revenue)))
		}
	}
	return strings.Join(lines, "\n")
}

func DailyOrders(orders []domain.Order, theme Theme) string {
	title := lipgloss.NewStyle().Bold(true).Render("Today's Orders")
	if len(orders) == 0 {
		return title + "\n" + lipgloss.NewStyle().Foreground(theme.Faint).Render("No orders today")
	}
	total := 0.0
	lines := []string{title}
	for _, o := range orders {
		total += o.TotalAmount
		lines = append(lines, fmt.Sprintf("#%-5d %s  Table %-3d %-10s %s",
			o.ID, o.CreatedAt.Local().Format("15:04"), o.TableNumber, StatusBadge(o.Status, theme), Money(o.TotalAmount)))
	}
	lines = append(lines, "", fmt.Sprintf("%s orders · %s", Count(len(orders)), Money(total)))
	return strings.Join(lines, "\n")
}
