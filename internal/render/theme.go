package render

import (
	"image/color"

	"github.com/charmbracelet/lipgloss"

	"tea-estate/internal/domain"
)

// Theme is the terminal palette. Colors are hex strings so the same values
// drive both lipgloss styles and raster output.
type Theme struct {
	Text     lipgloss.Color
	Faint    lipgloss.Color
	Accent   lipgloss.Color
	Money    lipgloss.Color
	Danger   lipgloss.Color
	Border   lipgloss.Color
	Selected lipgloss.Color

	StatusPending   lipgloss.Color
	StatusPreparing lipgloss.Color
	StatusReady     lipgloss.Color
	StatusCompleted lipgloss.Color

	// Series colors for charts, cycled by index.
	Series []lipgloss.Color
	Grid   lipgloss.Color
	Axis   lipgloss.Color
}

var DefaultTheme = Theme{
	Text:     "#E5E7EB",
	Faint:    "#9CA3AF",
	Accent:   "#10B981",
	Money:    "#34D399",
	Danger:   "#EF4444",
	Border:   "#4B5563",
	Selected: "#F59E0B",

	StatusPending:   "#FBBF24",
	StatusPreparing: "#60A5FA",
	StatusReady:     "#34D399",
	StatusCompleted: "#9CA3AF",

	Series: []lipgloss.Color{"#EF4444", "#10B981", "#3B82F6", "#F59E0B", "#8B5CF6"},
	Grid:   "#374151",
	Axis:   "#D1D5DB",
}

func (t Theme) StatusColor(status domain.OrderStatus) lipgloss.Color {
	switch status {
	case domain.StatusPending:
		return t.StatusPending
	case domain.StatusPreparing:
		return t.StatusPreparing
	case domain.StatusReady:
		return t.StatusReady
	case domain.StatusCompleted:
		return t.StatusCompleted
	}
	return t.Faint
}

func (t Theme) SeriesColor(i int) lipgloss.Color {
	if len(t.Series) == 0 {
		return t.Text
	}
	return t.Series[i%len(t.Series)]
}

// RGBA converts a "#RRGGBB" color. Anything else comes back opaque black.
func RGBA(c lipgloss.Color) color.RGBA {
	s := string(c)
	out := color.RGBA{A: 0xff}
	if len(s) != 7 || s[0] != '#' {
		return out
	}
	hex := func(b byte) uint8 {
		switch {
		case b >= '0' && b <= '9':
			return b - '0'
		case b >= 'a' && b <= 'f':
			return b - 'a' + 10
		case b >= 'A' && b <= 'F':
			return b - 'A' + 10
		}
		return 0
	}
	out.R = hex(s[1])<<4 | hex(s[2])
	out.G = hex(s[3])<<4 | hex(s[4])
	out.B = hex(s[5])<<4 | hex(s[6])
	return out
}
