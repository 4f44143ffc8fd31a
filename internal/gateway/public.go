package gateway

import (
	"context"
	"net/http"
	"strconv"

	"tea-estate/internal/domain"
)

type menuResponse struct {
	Categories []domain.Category `json:"categories"`
}

type menuItemResponse struct {
	Item domain.MenuItem `json:"item"`
}

type tablesResponse struct {
	Tables []domain.Table `json:"tables"`
}

type orderResponse struct {
	Order domain.Order `json:"order"`
}

type ordersResponse struct {
	Orders []domain.Order `json:"orders"`
}

func (g *Gateway) Menu(ctx context.Context) ([]domain.Category, error) {
	var resp menuResponse
	if err := g.do(ctx, request{method: http.MethodGet, path: "/menu"}, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

func (g *Gateway) MenuItem(ctx context.Context, itemID int) (*domain.MenuItem, error) {
	var resp menuItemResponse
	path := "/menu/items/" + strconv.Itoa(itemID)
	if err := g.do(ctx, request{method: http.MethodGet, path: path}, &resp); err != nil {
		return nil, err
	}
	return &resp.Item, nil
}

func (g *Gateway) ValidateTable(ctx context.Context, tableNumber int) (*domain.TableValidation, error) {
	var resp domain.TableValidation
	path := "/tables/" + strconv.Itoa(tableNumber)
	if err := g.do(ctx, request{method: http.MethodGet, path: path}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (g *Gateway) Tables(ctx context.Context) ([]domain.Table, error) {
	var resp tablesResponse
	if err := g.do(ctx, request{method: http.MethodGet, path: "/tables"}, &resp); err != nil {
		return nil, err
	}
	return resp.Tables, nil
}

func (g *Gateway) PlaceOrder(ctx context.Context, order domain.OrderRequest) (*domain.OrderConfirmation, error) {
	var resp domain.OrderConfirmation
	if err := g.do(ctx, request{method: http.MethodPost, path: "/orders", body: order}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (g *Gateway) Order(ctx context.Context, orderID int) (*domain.Order, error) {
	var resp orderResponse
	path := "/orders/" + strconv.Itoa(orderID)
	if err := g.do(ctx, request{method: http.MethodGet, path: path}, &resp); err != nil {
		return nil, err
	}
	return &resp.Order, nil
}

func (g *Gateway) TableOrders(ctx context.Context, tableNumber int) ([]domain.Order, error) {
	var resp ordersResponse
	path := "/orders/table/" + strconv.Itoa(tableNumber)
	if err := g.do(ctx, request{method: http.MethodGet, path: path}, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}
