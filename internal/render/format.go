package render

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

const currency = "₹"

// Money formats an amount as rupees with grouped thousands and two
// decimals.
func Money(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + currency + humanize.FormatFloat("#,###.##", amount)
}

// MoneyWhole drops the decimals, for axis labels.
func MoneyWhole(amount float64) string {
	return currency + humanize.Comma(int64(amount+0.5))
}

func Count(n int) string {
	return humanize.Comma(int64(n))
}

func Items(n int) string {
	if n == 1 {
		return "1 item"
	}
	return Count(n) + " items"
}

// HourLabel renders 0-23 as 12AM, 1AM ... 12PM, 1PM ...
func HourLabel(hour int) string {
	switch {
	case hour == 0:
		return "12AM"
	case hour < 12:
		return fmt.Sprintf("%dAM", hour)
	case hour == 12:
		return "12PM"
	default:
		return fmt.Sprintf("%dPM", hour-12)
	}
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

func pad(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
