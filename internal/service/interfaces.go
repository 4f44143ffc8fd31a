package service

import (
	"context"

	"tea-estate/internal/domain"
	"tea-estate/internal/gateway"
)

type CustomerAPI interface {
	Menu(ctx context.Context) ([]domain.Category, error)
	ValidateTable(ctx context.Context, tableNumber int) (*domain.TableValidation, error)
	PlaceOrder(ctx context.Context, order domain.OrderRequest) (*domain.OrderConfirmation, error)
	TableOrders(ctx context.Context, tableNumber int) ([]domain.Order, error)
}

type AdminAPI interface {
	Login(ctx context.Context, creds domain.Credentials) (*domain.LoginResult, error)
	ValidateToken(ctx context.Context) (*domain.AdminUser, error)

	AdminMenuItems(ctx context.Context) ([]domain.MenuItem, error)
	CreateMenuItem(ctx context.Context, input domain.MenuItemInput) (*domain.MenuItem, error)
	UpdateMenuItem(ctx context.Context, itemID int, input domain.MenuItemInput) (*domain.MenuItem, error)
	DeleteMenuItem(ctx context.Context, itemID int) error

	ActiveOrders(ctx context.Context) ([]domain.Order, error)
	DailyOrders(ctx context.Context) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int, update domain.StatusUpdate) (*domain.Order, error)

	AdminTables(ctx context.Context) ([]domain.Table, error)
	CreateTable(ctx context.Context, tableNumber int) (*domain.Table, error)
	DeleteTable(ctx context.Context, tableID int) error

	DashboardStats(ctx context.Context) (*domain.DashboardStats, error)
	DailyTrends(ctx context.Context, days int) ([]domain.DailyTrend, error)
	SalesByHour(ctx context.Context, days int) ([]domain.HourlySales, error)
	ProductPerformance(ctx context.Context, days int) ([]domain.ProductPerformance, error)
	CategoryPerformance(ctx context.Context, days int) ([]domain.CategoryPerformance, error)
	RevenueDetail(ctx context.Context) (*domain.RevenueDetail, error)
}

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// View is told when state changed and when the user should see a message.
// Implementations must not call back into the service synchronously.
type View interface {
	Refresh()
	Notify(level Level, message string)
}

// ViewFuncs adapts plain functions to View. Nil fields are skipped.
type ViewFuncs struct {
	OnRefresh func()
	OnNotify  func(level Level, message string)
}

func (v ViewFuncs) Refresh() {
	if v.OnRefresh != nil {
		v.OnRefresh()
	}
}

func (v ViewFuncs) Notify(level Level, message string) {
	if v.OnNotify != nil {
		v.OnNotify(level, message)
	}
}

var (
	_ CustomerAPI = (*gateway.Gateway)(nil)
	_ AdminAPI    = (*gateway.Gateway)(nil)
	_ View        = ViewFuncs{}
)
