package render

import (
	"fmt"
	"strings"

	"tea-estate/internal/domain"
)

type SalesSummary struct {
	Days          int
	TotalRevenue  float64
	TotalOrders   int
	OrdersPerDay  float64
	AvgOrderValue float64
	BestDay       domain.DailyTrend
	WorstDay      domain.DailyTrend
}

// SummarizeSales reports false for an empty period.
func SummarizeSales(data []domain.DailyTrend) (SalesSummary, bool) {
	if len(data) == 0 {
		return SalesSummary{}, false
	}
	points := SortedTrends(data)
	s := SalesSummary{Days: len(points), BestDay: points[0], WorstDay: points[0]}
	for _, p := range points {
		s.TotalRevenue += p.Revenue
		s.TotalOrders += p.OrderCount
		if p.Revenue > s.BestDay.Revenue {
			s.BestDay = p
		}
		if p.Revenue < s.WorstDay.Revenue {
			s.WorstDay = p
		}
	}
	s.OrdersPerDay = float64(s.TotalOrders) / float64(s.Days)
	if s.TotalOrders > 0 {
		s.AvgOrderValue = s.TotalRevenue / float64(s.TotalOrders)
	}
	return s, true
}

type PeakSummary struct {
	PeakHour     int
	PeakOrders   int
	BusyHours    []int
	TotalOrders  int
	TotalRevenue float64
}

// busyHourShare is the fraction of the peak hour's orders that makes an
// hour count as busy.
const busyHourShare = 0.7

// SummarizePeakHours finds the busiest hour and every hour with at least
// 70% of its orders.
func SummarizePeakHours(data []domain.HourlySales) (PeakSummary, bool) {
	if len(data) == 0 {
		return PeakSummary{}, false
	}
	buckets := HourlyBuckets(data)
	var s PeakSummary
	for _, b := range buckets {
		s.TotalOrders += b.OrderCount
		s.TotalRevenue += b.Revenue
		if b.OrderCount > s.PeakOrders {
			s.PeakOrders = b.OrderCount
			s.PeakHour = b.Hour
		}
	}
	for _, b := range buckets {
		if b.OrderCount > 0 && float64(b.OrderCount) >= float64(s.PeakOrders)*busyHourShare {
			s.BusyHours = append(s.BusyHours, b.Hour)
		}
	}
	return s, true
}

type CategoryShare struct {
	Category string
	Revenue  float64
	Percent  float64
}

// SummarizeCategories reports false when there is nothing to share out,
// either no categories or no revenue at all.
func SummarizeCategories(data []domain.CategoryPerformance) ([]CategoryShare, bool) {
	total := 0.0
	for _, d := range data {
		total += d.TotalRevenue
	}
	if len(data) == 0 || total == 0 {
		return nil, false
	}
	shares := make([]CategoryShare, 0, len(data))
	for _, d := range data {
		shares = append(shares, CategoryShare{
			Category: d.Category,
			Revenue:  d.TotalRevenue,
			Percent:  d.TotalRevenue / total * 100,
		})
	}
	return shares, true
}

func SalesSummaryText(data []domain.DailyTrend) string {
	s, ok := SummarizeSales(data)
	if !ok {
		return MsgNoSales
	}
	lines := []string{
		fmt.Sprintf("Total revenue %s over %d days", Money(s.TotalRevenue), s.Days),
		fmt.Sprintf("Total orders %s (avg %.1f/day)", Count(s.TotalOrders), s.OrdersPerDay),
		fmt.Sprintf("Avg order value %s", MoneyWhole(s.AvgOrderValue)),
		fmt.Sprintf("Best day %s: %s (%d orders)", s.BestDay.Date, Money(s.BestDay.Revenue), s.BestDay.OrderCount),
		fmt.Sprintf("Lowest day %s: %s (%d orders)", s.WorstDay.Date, Money(s.WorstDay.Revenue), s.WorstDay.OrderCount),
	}
	return strings.Join(lines, "\n")
}

func PeakHoursText(data []domain.HourlySales) string {
	s, ok := SummarizePeakHours(data)
	if !ok {
		return MsgNoHourly
	}
	busy := "None identified"
	if len(s.BusyHours) > 0 {
		labels := make([]string, len(s.BusyHours))
		for i, h := range s.BusyHours {
			labels[i] = HourLabel(h)
		}
		busy = strings.Join(labels, ", ")
	}
	lines := []string{
		fmt.Sprintf("Peak hour %s (%d orders)", HourLabel(s.PeakHour), s.PeakOrders),
		"Busy periods " + busy,
		fmt.Sprintf("Total %s orders, %s", Count(s.TotalOrders), Money(s.TotalRevenue)),
	}
	return strings.Join(lines, "\n")
}

func CategoriesText(data []domain.CategoryPerformance) string {
	shares, ok := SummarizeCategories(data)
	if !ok {
		if len(data) == 0 {
			return MsgNoCategories
		}
		return MsgNoCategorySales
	}
	parts := make([]string, len(shares))
	for i, s := range shares {
		parts[i] = fmt.Sprintf("%s: %s (%.1f%%)", s.Category, Money(s.Revenue), s.Percent)
	}
	return strings.Join(parts, " | ")
}
