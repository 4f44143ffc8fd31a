package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// RasterCanvas draws into an RGBA image, one unit per pixel.
type RasterCanvas struct {
	img        *image.RGBA
	background color.RGBA
	face       font.Face
}

func NewRasterCanvas(width, height int) *RasterCanvas {
	c := &RasterCanvas{
		img:        image.NewRGBA(image.Rect(0, 0, max(width, 1), max(height, 1))),
		background: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		face:       basicfont.Face7x13,
	}
	c.Clear()
	return c
}

func (c *RasterCanvas) Size() (float64, float64) {
	b := c.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (c *RasterCanvas) Aspect() float64 { return 1 }

// The bundled face is ASCII only.
func rasterText(s string) string {
	return strings.ReplaceAll(s, currency, "Rs.")
}

func (c *RasterCanvas) TextSize(s string) (float64, float64) {
	w := font.MeasureString(c.face, rasterText(s)).Ceil()
	return float64(w), float64(c.face.Metrics().Height.Ceil())
}

func (c *RasterCanvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(c.background), image.Point{}, draw.Src)
}

func (c *RasterCanvas) Line(x0, y0, x1, y1 float64, col lipgloss.Color) {
	rgba := RGBA(col)
	ax, ay := int(math.Round(x0)), int(math.Round(y0))
	bx, by := int(math.Round(x1)), int(math.Round(y1))
	dx, dy := abs(bx-ax), -abs(by-ay)
	sx, sy := sign(bx-ax), sign(by-ay)
	e := dx + dy
	for {
		c.img.SetRGBA(ax, ay, rgba)
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

func (c *RasterCanvas) FillRect(x, y, w, h float64, col lipgloss.Color) {
	r := image.Rect(int(math.Round(x)), int(math.Round(y)), int(math.Round(x+w)), int(math.Round(y+h)))
	draw.Draw(c.img, r, image.NewUniform(RGBA(col)), image.Point{}, draw.Src)
}

func (c *RasterCanvas) FillCircle(cx, cy, r float64, col lipgloss.Color) {
	c.FillSlice(cx, cy, r, 0, 2*math.Pi, col)
}

func (c *RasterCanvas) FillSlice(cx, cy, r, from, to float64, col lipgloss.Color) {
	rgba := RGBA(col)
	x0, x1 := int(math.Floor(cx-r)), int(math.Ceil(cx+r))
	y0, y1 := int(math.Floor(cy-r)), int(math.Ceil(cy+r))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			if dx*dx+dy*dy > r*r || !inSlice(dx, dy, from, to) {
				continue
			}
			c.img.SetRGBA(x, y, rgba)
		}
	}
}

func (c *RasterCanvas) Text(x, y float64, s string, align Align, col lipgloss.Color) {
	s = rasterText(s)
	w, _ := c.TextSize(s)
	m := c.face.Metrics()
	// Centre the glyph box on y.
	baseline := y + float64(m.Ascent.Ceil()-m.Descent.Ceil())/2
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(RGBA(col)),
		Face: c.face,
		Dot:  fixed.P(int(math.Round(textStart(x, w, align))), int(math.Round(baseline))),
	}
	d.DrawString(s)
}

func (c *RasterCanvas) Image() image.Image {
	return c.img
}

func (c *RasterCanvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.img)
}
