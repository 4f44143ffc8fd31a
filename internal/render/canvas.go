package render

import (
	"math"

	"github.com/charmbracelet/lipgloss"
)

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Canvas is an immediate-mode drawing surface. Coordinates grow right and
// down; angles are radians clockwise from three o'clock.
type Canvas interface {
	Size() (width, height float64)
	// Aspect is how many x units make up one y unit of visual distance.
	Aspect() float64
	TextSize(s string) (width, height float64)
	Clear()
	Line(x0, y0, x1, y1 float64, c lipgloss.Color)
	FillRect(x, y, w, h float64, c lipgloss.Color)
	FillCircle(cx, cy, r float64, c lipgloss.Color)
	FillSlice(cx, cy, r, from, to float64, c lipgloss.Color)
	// Text draws s vertically centred on y.
	Text(x, y float64, s string, align Align, c lipgloss.Color)
}

var (
	_ Canvas = (*CellCanvas)(nil)
	_ Canvas = (*RasterCanvas)(nil)
)

// inSlice reports whether the point at offset (dx, dy) from a centre lies
// within the angular range [from, to).
func inSlice(dx, dy, from, to float64) bool {
	span := to - from
	if span >= 2*math.Pi {
		return true
	}
	if span <= 0 {
		return false
	}
	a := math.Atan2(dy, dx)
	if a < 0 {
		a += 2 * math.Pi
	}
	from = math.Mod(from, 2*math.Pi)
	if from < 0 {
		from += 2 * math.Pi
	}
	rel := a - from
	if rel < 0 {
		rel += 2 * math.Pi
	}
	return rel < span
}

func textStart(x, width float64, align Align) float64 {
	switch align {
	case AlignCenter:
		return x - width/2
	case AlignRight:
		return x - width
	}
	return x
}
