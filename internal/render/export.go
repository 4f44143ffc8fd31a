package render

import (
	"fmt"
	"os"
	"path/filepath"

	"tea-estate/internal/domain"
)

const (
	exportWidth  = 800
	exportHeight = 400
)

// ExportCharts writes the analytics charts as PNG files into dir and
// returns their paths. Aggregates that failed to load are skipped.
func ExportCharts(a *domain.Analytics, dir string, theme Theme) ([]string, error) {
	if a == nil {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	charts := []struct {
		name   string
		loaded bool
		draw   func(c Canvas) bool
	}{
		{"sales.png", a.Trends != nil, func(c Canvas) bool { return DrawSalesChart(c, a.Trends, theme) }},
		{"peak-hours.png", a.Hourly != nil, func(c Canvas) bool { return DrawPeakHoursChart(c, a.Hourly, theme) }},
		{"categories.png", a.Categories != nil, func(c Canvas) bool { return DrawCategoryChart(c, a.Categories, theme) }},
	}

	var written []string
	for _, chart := range charts {
		if !chart.loaded {
			continue
		}
		canvas := NewRasterCanvas(exportWidth, exportHeight)
		chart.draw(canvas)
		path := filepath.Join(dir, chart.name)
		if err := writePNG(path, canvas); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// WriteTableQR saves the table's QR code as table-N.png in dir.
func WriteTableQR(g QRGenerator, tableNumber int, dir string) (string, error) {
	png, err := g.Generate(tableNumber)
	if err != nil {
		return "", fmt.Errorf("generate qr for table %d: %w", tableNumber, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create qr dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("table-%d.png", tableNumber))
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func writePNG(path string, c *RasterCanvas) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if err := c.EncodePNG(f); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
