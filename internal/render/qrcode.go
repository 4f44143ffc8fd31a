package render

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

// TableURL is the address a table's QR code points customers to.
func TableURL(publicURL string, tableNumber int) string {
	return fmt.Sprintf("%s?table=%d", strings.TrimRight(publicURL, "/"), tableNumber)
}

type QRGenerator interface {
	Generate(tableNumber int) ([]byte, error)
}

type TableQRGenerator struct {
	PublicURL string
	Size      int
}

var _ QRGenerator = TableQRGenerator{}

// Generate returns a PNG of the table's QR code.
func (g TableQRGenerator) Generate(tableNumber int) ([]byte, error) {
	size := g.Size
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(TableURL(g.PublicURL, tableNumber), qrcode.Medium, size)
}

// Text draws the table's QR code with half-block characters, two modules
// per cell vertically.
func (g TableQRGenerator) Text(tableNumber int) (string, error) {
	q, err := qrcode.New(TableURL(g.PublicURL, tableNumber), qrcode.Medium)
	if err != nil {
		return "", err
	}
	bitmap := q.Bitmap()
	var b strings.Builder
	for y := 0; y < len(bitmap); y += 2 {
		for x := range bitmap[y] {
			top := bitmap[y][x]
			bottom := y+1 < len(bitmap) && bitmap[y+1][x]
			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteRune(' ')
			}
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
