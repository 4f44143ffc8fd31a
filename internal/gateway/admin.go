package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"tea-estate/internal/domain"
)

type validateResponse struct {
	Valid bool             `json:"valid"`
	User  domain.AdminUser `json:"user"`
}

type itemsResponse struct {
	Items []domain.MenuItem `json:"items"`
}

type tableResponse struct {
	Table domain.Table `json:"table"`
}

type statsResponse struct {
	Stats domain.DashboardStats `json:"stats"`
}

type dataResponse[T any] struct {
	Data []T `json:"data"`
}

func daysQuery(days int) url.Values {
	if days <= 0 {
		return nil
	}
	return url.Values{"days": []string{strconv.Itoa(days)}}
}

// Login exchanges credentials for a bearer token. A 401 here means wrong
// credentials and does not run the unauthorized hook.
func (g *Gateway) Login(ctx context.Context, creds domain.Credentials) (*domain.LoginResult, error) {
	var resp domain.LoginResult
	if err := g.do(ctx, request{method: http.MethodPost, path: "/admin/login", body: creds}, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("%w: login response without token", ErrDecode)
	}
	return &resp, nil
}

func (g *Gateway) ValidateToken(ctx context.Context) (*domain.AdminUser, error) {
	var resp validateResponse
	if err := g.do(ctx, request{method: http.MethodGet, path: "/admin/validate", auth: true}, &resp); err != nil {
		return nil, err
	}
	if !resp.Valid {
		g.unauthorized()
		return nil, ErrUnauthorized
	}
	return &resp.User, nil
}

func (g *Gateway) AdminMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	var resp itemsResponse
	if err := g.do(ctx, request{method: http.MethodGet, path: "/admin/menu-items", auth: true}, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (g *Gateway) CreateMenuItem(ctx context.Context, input domain.MenuItemInput) (*domain.MenuItem, error) {
	var resp menuItemResponse
	r := request{method: http.MethodPost, path: "/admin/menu-items", body: input, auth: true}
	if err := g.do(ctx, r, &resp); err != nil {
		return nil, err
	}
	return &resp.Item, nil
}

func (g *Gateway) UpdateMenuItem(ctx context.Context, itemID int, input domain.MenuItemInput) (*domain.MenuItem, error) {
	var resp menuItemResponse
	r := request{method: http.MethodPut, path: "/admin/menu-items/" + strconv.Itoa(itemID), body: input, auth: true}
	if err := g.do(ctx, r, &resp); err != nil {
		return nil, err
	}
	return &resp.Item, nil
}

func (g *Gateway) DeleteMenuItem(ctx context.Context, itemID int) error {
	r := request{method: http.MethodDelete, path: "/admin/menu-items/" + strconv.Itoa(itemID), auth: true}
	return g.do(ctx, r, nil)
}

func (g *Gateway) ActiveOrders(ctx context.Context) ([]domain.Order, error) {
	var resp ordersResponse
	if err := g.do(ctx, request{method: http.MethodGet, path: "/admin/orders/active", auth: true}, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

func (g *Gateway) DailyOrders(ctx context.Context) ([]domain.Order, error) {
	var resp ordersResponse
	if err := g.do(ctx, request{method: http.MethodGet, path: "/admin/orders/daily", auth: true}, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

func (g *Gateway) UpdateOrderStatus(ctx context.Context, orderID int, update domain.StatusUpdate) (*domain.Order, error) {
	if !update.Status.Valid() {
		return nil, &APIError{StatusCode: http.StatusBadRequest, Message: "Invalid status"}
	}
	var resp orderResponse
	r := request{method: http.MethodPut, path: "/admin/orders/" + strconv.Itoa(orderID) + "/status", body: update, auth: true}
	if err := g.do(ctx, r, &resp); err != nil {
		return nil, err
	}
	return &resp.Order, nil
}

func (g *Gateway) AdminTables(ctx context.Context) ([]domain.Table, error) {
	var resp tablesResponse
	if err := g.do(ctx, request{method: http.MethodGet, path: "/admin/tables", auth: true}, &resp); err != nil {
		return nil, err
	}
	return resp.Tables, nil
}

func (g *Gateway) CreateTable(ctx context.Context, tableNumber int) (*domain.Table, error) {
	var resp tableResponse
	body := map[string]int{"table_number": tableNumber}
	if err := g.do(ctx, request{method: http.MethodPost, path: "/admin/tables", body: body, auth: true}, &resp); err != nil {
		return nil, err
	}
	return &resp.Table, nil
}

func (g *Gateway) DeleteTable(ctx context.Context, tableID int) error {
	r := request{method: http.MethodDelete, path: "/admin/tables/" + strconv.Itoa(tableID), auth: true}
	return g.do(ctx, r, nil)
}

func (g *Gateway) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	var resp statsResponse
	if err := g.do(ctx, request{method: http.MethodGet, path: "/admin/dashboard/stats", auth: true}, &resp); err != nil {
		return nil, err
	}
	return &resp.Stats, nil
}

func (g *Gateway) DailyTrends(ctx context.Context, days int) ([]domain.DailyTrend, error) {
	return analytics[domain.DailyTrend](ctx, g, "/admin/analytics/daily-trends", days)
}

func (g *Gateway) SalesByHour(ctx context.Context, days int) ([]domain.HourlySales, error) {
	return analytics[domain.HourlySales](ctx, g, "/admin/analytics/sales-by-hour", days)
}

func (g *Gateway) ProductPerformance(ctx context.Context, days int) ([]domain.ProductPerformance, error) {
	return analytics[domain.ProductPerformance](ctx, g, "/admin/analytics/product-performance", days)
}

func (g *Gateway) CategoryPerformance(ctx context.Context, days int) ([]domain.CategoryPerformance, error) {
	return analytics[domain.CategoryPerformance](ctx, g, "/admin/analytics/category-performance", days)
}

func (g *Gateway) RevenueDetail(ctx context.Context) (*domain.RevenueDetail, error) {
	var resp domain.RevenueDetail
	if err := g.do(ctx, request{method: http.MethodGet, path: "/admin/analytics/revenue-detail", auth: true}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func analytics[T any](ctx context.Context, g *Gateway, path string, days int) ([]T, error) {
	var resp dataResponse[T]
	if err := g.do(ctx, request{method: http.MethodGet, path: path, query: daysQuery(days), auth: true}, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		resp.Data = []T{}
	}
	return resp.Data, nil
}
