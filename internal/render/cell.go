package render

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type cell struct {
	r rune
	c lipgloss.Color
}

// CellCanvas draws into a grid of terminal cells, one unit per cell. Cells
// are about twice as tall as they are wide, which Aspect accounts for.
type CellCanvas struct {
	width, height int
	cells         []cell
}

func NewCellCanvas(width, height int) *CellCanvas {
	c := &CellCanvas{width: max(width, 1), height: max(height, 1)}
	c.cells = make([]cell, c.width*c.height)
	c.Clear()
	return c
}

func (c *CellCanvas) Size() (float64, float64) {
	return float64(c.width), float64(c.height)
}

func (c *CellCanvas) Aspect() float64 { return 2 }

func (c *CellCanvas) TextSize(s string) (float64, float64) {
	return float64(lipgloss.Width(s)), 1
}

func (c *CellCanvas) Clear() {
	for i := range c.cells {
		c.cells[i] = cell{r: ' '}
	}
}

func (c *CellCanvas) set(x, y int, r rune, col lipgloss.Color) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.cells[y*c.width+x] = cell{r: r, c: col}
}

func (c *CellCanvas) Line(x0, y0, x1, y1 float64, col lipgloss.Color) {
	ax, ay := int(math.Floor(x0)), int(math.Floor(y0))
	bx, by := int(math.Floor(x1)), int(math.Floor(y1))
	glyph := '·'
	switch {
	case ay == by:
		glyph = '─'
	case ax == bx:
		glyph = '│'
	}
	dx, dy := abs(bx-ax), -abs(by-ay)
	sx, sy := sign(bx-ax), sign(by-ay)
	e := dx + dy
	for {
		c.set(ax, ay, glyph, col)
		if ax == bx && ay == by {
			return
		}
		if e2 := 2 * e; e2 >= dy {
			e += dy
			ax += sx
		} else {
			e += dx
			ay += sy
		}
	}
}

func (c *CellCanvas) FillRect(x, y, w, h float64, col lipgloss.Color) {
	x0, y0 := int(math.Floor(x)), int(math.Floor(y))
	x1, y1 := int(math.Ceil(x+w)), int(math.Ceil(y+h))
	for j := y0; j < y1; j++ {
		for i := x0; i < x1; i++ {
			c.set(i, j, '█', col)
		}
	}
}

func (c *CellCanvas) FillCircle(cx, cy, r float64, col lipgloss.Color) {
	if r < 1 {
		c.set(int(math.Floor(cx)), int(math.Floor(cy)), '●', col)
		return
	}
	c.FillSlice(cx, cy, r, 0, 2*math.Pi, col)
}

func (c *CellCanvas) FillSlice(cx, cy, r, from, to float64, col lipgloss.Color) {
	aspect := c.Aspect()
	for j := 0; j < c.height; j++ {
		for i := 0; i < c.width; i++ {
			dx := (float64(i) + 0.5 - cx) / aspect
			dy := float64(j) + 0.5 - cy
			if dx*dx+dy*dy > r*r || !inSlice(dx, dy, from, to) {
				continue
			}
			c.set(i, j, '█', col)
		}
	}
}

func (c *CellCanvas) Text(x, y float64, s string, align Align, col lipgloss.Color) {
	w, _ := c.TextSize(s)
	i := int(math.Round(textStart(x, w, align)))
	j := int(math.Floor(y))
	for _, r := range s {
		c.set(i, j, r, col)
		i++
	}
}

// Render returns the grid as styled lines.
func (c *CellCanvas) Render() string {
	return c.render(true)
}

// String returns the grid without any styling.
func (c *CellCanvas) String() string {
	return c.render(false)
}

func (c *CellCanvas) render(styled bool) string {
	var b strings.Builder
	for j := 0; j < c.height; j++ {
		row := c.cells[j*c.width : (j+1)*c.width]
		for i := 0; i < len(row); {
			k := i
			var run strings.Builder
			for k < len(row) && row[k].c == row[i].c {
				run.WriteRune(row[k].r)
				k++
			}
			if styled && row[i].c != "" {
				b.WriteString(lipgloss.NewStyle().Foreground(row[i].c).Render(run.String()))
			} else {
				b.WriteString(run.String())
			}
			i = k
		}
		if j < c.height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}
