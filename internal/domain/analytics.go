package domain

type PopularItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type DashboardStats struct {
	DailyOrders  int           `json:"daily_orders"`
	DailyRevenue float64       `json:"daily_revenue"`
	ActiveOrders int           `json:"active_orders"`
	PopularItems []PopularItem `json:"popular_items"`
}

type DailyTrend struct {
	Date          string  `json:"date"`
	OrderCount    int     `json:"order_count"`
	Revenue       float64 `json:"revenue"`
	AvgOrderValue float64 `json:"avg_order_value"`
}

type HourlySales struct {
	Hour       int     `json:"hour"`
	OrderCount int     `json:"order_count"`
	Revenue    float64 `json:"revenue"`
}

type ProductPerformance struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	TotalQuantity int     `json:"total_quantity"`
	TotalRevenue  float64 `json:"total_revenue"`
	OrderCount    int     `json:"order_count"`
	AvgPrice      float64 `json:"avg_price"`
}

type CategoryPerformance struct {
	Category      string  `json:"category"`
	TotalQuantity int     `json:"total_quantity"`
	TotalRevenue  float64 `json:"total_revenue"`
	OrderCount    int     `json:"order_count"`
}

type HourlyRevenue struct {
	Hour    int     `json:"hour"`
	Revenue float64 `json:"revenue"`
}

type CategoryRevenue struct {
	Category     string  `json:"category"`
	Revenue      float64 `json:"revenue"`
	RevenueTotal float64 `json:"revenue_total"`
}

type RevenueDetail struct {
	TotalRevenue    float64           `json:"total_revenue"`
	AvgOrderValue   float64           `json:"avg_order_value"`
	TopCategory     string            `json:"top_category"`
	GrowthRate      float64           `json:"growth_rate"`
	HourlyRevenue   []HourlyRevenue   `json:"hourly_revenue"`
	CategoryRevenue []CategoryRevenue `json:"category_revenue"`
}

// Analytics bundles the four aggregates shown on the analytics tab. A nil
// slice means the aggregate failed to load; an empty one means no data.
type Analytics struct {
	Days       int
	Trends     []DailyTrend
	Hourly     []HourlySales
	Products   []ProductPerformance
	Categories []CategoryPerformance
}
