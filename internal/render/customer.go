package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tea-estate/internal/domain"
	"tea-estate/internal/service"
)

type MenuOptions struct {
	// Search is highlighted wherever it occurs in names and descriptions.
	Search string
	// Selected is the id of the item under the cursor.
	Selected int
	Quantity func(itemID int) int
	Width    int
}

func (o MenuOptions) quantity(id int) int {
	if o.Quantity == nil {
		return 0
	}
	return o.Quantity(id)
}

func SearchHeader(filtered []domain.Category, term string) string {
	term = strings.TrimSpace(term)
	if term == "" {
		return ""
	}
	return fmt.Sprintf("Found %d items matching %q", service.CountItems(filtered), term)
}

// Menu lists every category with its items, price and cart quantity.
func Menu(categories []domain.Category, opts MenuOptions, theme Theme) string {
	if service.CountItems(categories) == 0 {
		return lipgloss.NewStyle().Foreground(theme.Faint).Render("No items match your search.")
	}
	heading := lipgloss.NewStyle().Bold(true).Foreground(theme.Accent)
	var b strings.Builder
	for i, c := range categories {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(heading.Render(c.Name))
		b.WriteString("\n")
		for _, item := range c.Items {
			b.WriteString(menuLine(item, opts, theme))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func menuLine(item domain.MenuItem, opts MenuOptions, theme Theme) string {
	width := opts.Width
	if width <= 0 {
		width = 72
	}
	marker := "  "
	nameStyle := lipgloss.NewStyle().Foreground(theme.Text)
	if item.ID == opts.Selected {
		marker = lipgloss.NewStyle().Foreground(theme.Selected).Render("▸ ")
		nameStyle = nameStyle.Bold(true)
	}
	price := lipgloss.NewStyle().Foreground(theme.Money).Render(Money(item.Price))
	badge := ""
	if q := opts.quantity(item.ID); q > 0 {
		badge = lipgloss.NewStyle().Foreground(theme.Selected).Render(fmt.Sprintf(" ×%d", q))
	}
	nameW := max(width-lipgloss.Width(price)-lipgloss.Width(badge)-4, 8)
	name := highlight(truncate(item.Name, nameW), opts.Search, nameStyle, theme)
	gap := max(nameW-lipgloss.Width(truncate(item.Name, nameW)), 0)
	line := marker + name + strings.Repeat(" ", gap) + " " + price + badge
	if item.Description == "" {
		return line
	}
	desc := highlight(truncate(item.Description, width-4), opts.Search, lipgloss.NewStyle().Foreground(theme.Faint), theme)
	return line + "\n    " + desc
}

// highlight renders text in base with every case-insensitive occurrence of
// term marked.
func highlight(text, term string, base lipgloss.Style, theme Theme) string {
	term = strings.TrimSpace(term)
	if term == "" {
		return base.Render(text)
	}
	mark := base.Reverse(true).Foreground(theme.Selected)
	lower, needle := strings.ToLower(text), strings.ToLower(term)
	var b strings.Builder
	for {
		i := strings.Index(lower, needle)
		// Lower-casing can change byte lengths outside ASCII.
		if i < 0 || len(lower) != len(text) {
			b.WriteString(base.Render(text))
			return b.String()
		}
		if i > 0 {
			b.WriteString(base.Render(text[:i]))
		}
		b.WriteString(mark.Render(text[i : i+len(needle)]))
		text, lower = text[i+len(needle):], lower[i+len(needle):]
		if text == "" {
			return b.String()
		}
	}
}

func Bestsellers(items []service.Bestseller, opts MenuOptions, theme Theme) string {
	if len(items) == 0 {
		return lipgloss.NewStyle().Foreground(theme.Faint).Render("No bestsellers yet.")
	}
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.Selected).Render("🔥 Bestsellers"))
	b.WriteString("\n")
	for _, item := range items {
		b.WriteString(menuLine(item.MenuItem, opts, theme))
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Faint).Render("  from " + item.Category))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// FloatingCart is the one-line cart indicator; empty when the cart is.
func FloatingCart(state service.CustomerState, theme Theme) string {
	if state.ItemCount == 0 {
		return ""
	}
	return lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
		Render(fmt.Sprintf("🛒 %s · %s", Items(state.ItemCount), Money(state.Subtotal)))
}

func CartSummary(state service.CustomerState, theme Theme) string {
	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(theme.Border).Padding(0, 1)
	faint := lipgloss.NewStyle().Foreground(theme.Faint)
	if len(state.Cart) == 0 {
		return box.Render(strings.Join([]string{
			"Your cart is empty",
			faint.Render("Add items from the menu to get started"),
			"",
			"Total " + Money(0),
		}, "\n"))
	}

	lines := []string{fmt.Sprintf("Your order · %s added", Items(state.ItemCount)), ""}
	for _, e := range state.Cart {
		lines = append(lines, fmt.Sprintf("%-24s %3d × %-10s %s",
			truncate(e.Name, 24), e.Quantity, Money(e.Price), Money(e.Subtotal())))
	}
	lines = append(lines, "",
		fmt.Sprintf("%-42s %s", "Subtotal", Money(state.Subtotal)),
		fmt.Sprintf("%-42s %s", "Service charge", Money(state.ServiceCharge)),
		lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%-42s %s", "Total", Money(state.Total))),
		"",
	)
	if state.Submitting {
		lines = append(lines, faint.Render("Placing Order..."))
	} else {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Accent).Render("[enter] Place Order"))
	}
	return box.Render(strings.Join(lines, "\n"))
}

func StatusBadge(status domain.OrderStatus, theme Theme) string {
	label := string(status)
	if label != "" {
		label = strings.ToUpper(label[:1]) + label[1:]
	}
	return lipgloss.NewStyle().Foreground(theme.StatusColor(status)).Bold(true).Render(label)
}

func EstimateLabel(order domain.Order) string {
	if order.Status == domain.StatusReady {
		return "Ready!"
	}
	return fmt.Sprintf("Est. %d min", order.EstimatedTime)
}

func CurrentOrders(orders []domain.Order, theme Theme) string {
	if len(orders) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Your Orders"))
	for _, o := range orders {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("Order #%d  %s  %s  %s",
			o.ID, StatusBadge(o.Status, theme), Money(o.TotalAmount), EstimateLabel(o)))
		for _, item := range o.Items {
			b.WriteString(fmt.Sprintf("\n    %d× %s", item.Quantity, item.MenuItemName))
		}
	}
	return b.String()
}

func Confirmation(c domain.OrderConfirmation, theme Theme) string {
	box := lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(theme.Accent).Padding(0, 2)
	return box.Render(strings.Join([]string{
		lipgloss.NewStyle().Bold(true).Foreground(theme.Accent).Render("Order Placed Successfully!"),
		"",
		fmt.Sprintf("Order ID:        #%d", c.OrderID),
		fmt.Sprintf("Total Amount:    %s", Money(c.TotalAmount)),
		fmt.Sprintf("Estimated Time:  %d minutes", c.EstimatedTime),
		fmt.Sprintf("Status:          %s", StatusBadge(c.Status, theme)),
		"",
		lipgloss.NewStyle().Foreground(theme.Faint).Render("[esc] Continue"),
	}, "\n"))
}
