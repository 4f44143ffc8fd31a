package render

import (
	"math"
	"slices"
	"strings"

	"tea-estate/internal/domain"
)

const (
	MsgNoSales         = "No sales data available for this period."
	MsgNoHourly        = "No hourly data available for this period."
	MsgNoCategories    = "No category data available."
	MsgNoCategorySales = "No sales in this period."
	MsgNoProducts      = "No product data available."
	MsgAggregateFailed = "Could not load this data."
)

const (
	gridLines   = 5
	peakBarFill = 0.7
)

type plotArea struct {
	x, y, w, h float64
}

func (p plotArea) bottom() float64 { return p.y + p.h }

// layout reserves room for y labels on the left and x labels underneath.
func layout(c Canvas, labels []string) plotArea {
	width, height := c.Size()
	charW, lineH := c.TextSize("0")
	labelW := 0.0
	for _, l := range labels {
		if w, _ := c.TextSize(l); w > labelW {
			labelW = w
		}
	}
	left := labelW + charW
	area := plotArea{x: left, y: lineH, w: width - left - 2*charW, h: height - 3*lineH}
	area.w = math.Max(area.w, 1)
	area.h = math.Max(area.h, 1)
	return area
}

func drawFrame(c Canvas, area plotArea, labels []string, theme Theme) {
	charW, _ := c.TextSize("0")
	for i := 0; i <= gridLines; i++ {
		y := area.y + area.h/gridLines*float64(i)
		c.Line(area.x, y, area.x+area.w, y, theme.Grid)
		if i < len(labels) {
			c.Text(area.x-charW/2, y, labels[i], AlignRight, theme.Faint)
		}
	}
	c.Line(area.x, area.bottom(), area.x+area.w, area.bottom(), theme.Axis)
	c.Line(area.x, area.y, area.x, area.bottom(), theme.Axis)
}

func centerMessage(c Canvas, msg string, theme Theme) {
	w, h := c.Size()
	c.Text(w/2, h/2, msg, AlignCenter, theme.Faint)
}

// SortedTrends returns a copy of data ordered by date.
func SortedTrends(data []domain.DailyTrend) []domain.DailyTrend {
	out := slices.Clone(data)
	slices.SortStableFunc(out, func(a, b domain.DailyTrend) int {
		return strings.Compare(a.Date, b.Date)
	})
	return out
}

// DrawSalesChart plots daily revenue as a line with a point per day. It
// reports false and draws the empty-state message when there is no data.
func DrawSalesChart(c Canvas, data []domain.DailyTrend, theme Theme) bool {
	c.Clear()
	if len(data) == 0 {
		centerMessage(c, MsgNoSales, theme)
		return false
	}
	points := SortedTrends(data)
	maxRevenue := 0.0
	for _, p := range points {
		maxRevenue = math.Max(maxRevenue, p.Revenue)
	}

	labels := make([]string, gridLines+1)
	for i := range labels {
		labels[i] = MoneyWhole(maxRevenue / gridLines * float64(gridLines-i))
	}
	area := layout(c, labels)
	drawFrame(c, area, labels, theme)

	_, lineH := c.TextSize("0")
	xAt := func(i int) float64 {
		if len(points) == 1 {
			return area.x + area.w/2
		}
		return area.x + float64(i)/float64(len(points)-1)*area.w
	}
	if maxRevenue > 0 {
		yAt := func(v float64) float64 { return area.bottom() - v/maxRevenue*area.h }
		for i := 1; i < len(points); i++ {
			c.Line(xAt(i-1), yAt(points[i-1].Revenue), xAt(i), yAt(points[i].Revenue), theme.Accent)
		}
		for i, p := range points {
			c.FillCircle(xAt(i), yAt(p.Revenue), lineH*0.3, theme.Accent)
		}
	}

	labelY := area.bottom() + lineH
	c.Text(area.x, labelY, shortDate(points[0].Date), AlignLeft, theme.Faint)
	if len(points) > 1 {
		c.Text(area.x+area.w, labelY, shortDate(points[len(points)-1].Date), AlignRight, theme.Faint)
	}
	return true
}

func shortDate(date string) string {
	if len(date) >= 10 {
		return date[5:10]
	}
	return date
}

// HourlyBuckets spreads data over the 24 hours of the day. Hours outside
// 0-23 are ignored.
func HourlyBuckets(data []domain.HourlySales) [24]domain.HourlySales {
	var buckets [24]domain.HourlySales
	for h := range buckets {
		buckets[h].Hour = h
	}
	for _, d := range data {
		if d.Hour >= 0 && d.Hour < 24 {
			buckets[d.Hour] = d
		}
	}
	return buckets
}

// DrawPeakHoursChart draws one bar per hour, scaled to the busiest hour.
func DrawPeakHoursChart(c Canvas, data []domain.HourlySales, theme Theme) bool {
	c.Clear()
	if len(data) == 0 {
		centerMessage(c, MsgNoHourly, theme)
		return false
	}
	buckets := HourlyBuckets(data)
	maxOrders := 0
	for _, b := range buckets {
		maxOrders = max(maxOrders, b.OrderCount)
	}

	labels := make([]string, gridLines+1)
	for i := range labels {
		labels[i] = Count(int(math.Round(float64(maxOrders) / gridLines * float64(gridLines-i))))
	}
	area := layout(c, labels)
	drawFrame(c, area, labels, theme)

	barW := area.w / 24
	bar := theme.SeriesColor(2)
	for h, b := range buckets {
		if b.OrderCount <= 0 || maxOrders == 0 {
			continue
		}
		barH := float64(b.OrderCount) / float64(maxOrders) * area.h
		x := area.x + float64(h)*barW + barW*(1-peakBarFill)/2
		c.FillRect(x, area.bottom()-barH, barW*peakBarFill, barH, bar)
	}

	charW, lineH := c.TextSize("0")
	labelW, _ := c.TextSize("12AM")
	step := 3
	for float64(step)*barW < labelW+charW && step < 12 {
		step *= 2
	}
	for h := 0; h < 24; h += step {
		c.Text(area.x+float64(h)*barW+barW/2, area.bottom()+lineH, HourLabel(h), AlignCenter, theme.Faint)
	}
	return true
}

// DrawCategoryChart draws revenue share per category as a labelled pie.
func DrawCategoryChart(c Canvas, data []domain.CategoryPerformance, theme Theme) bool {
	c.Clear()
	if len(data) == 0 {
		centerMessage(c, MsgNoCategories, theme)
		return false
	}
	total := 0.0
	for _, d := range data {
		total += d.TotalRevenue
	}
	if total == 0 {
		centerMessage(c, MsgNoCategorySales, theme)
		return false
	}

	width, height := c.Size()
	_, lineH := c.TextSize("0")
	aspect := c.Aspect()
	cx, cy := width/2, height/2
	radius := math.Min(cx/aspect, cy) - 2*lineH
	radius = math.Max(radius, 1)

	angle := 0.0
	for i, d := range data {
		slice := d.TotalRevenue / total * 2 * math.Pi
		c.FillSlice(cx, cy, radius, angle, angle+slice, theme.SeriesColor(i))
		mid := angle + slice/2
		lx := cx + math.Cos(mid)*(radius+lineH)*aspect
		ly := cy + math.Sin(mid)*(radius+lineH)
		c.Text(lx, ly, d.Category, AlignCenter, theme.Text)
		angle += slice
	}
	return true
}
