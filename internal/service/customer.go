package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"tea-estate/internal/domain"
	"tea-estate/internal/events"
	"tea-estate/internal/gateway"
	"tea-estate/internal/session"

	"go.uber.org/zap"
)

const DefaultServiceCharge = 20.0

const (
	msgDemoMenu        = "Demo mode: Using sample menu data for The Tea Estate"
	msgItemUnavailable = "An item in your cart is no longer available and has been removed"
	msgOrderFailed     = "Unable to place order"
)

var ErrInvalidTable = errors.New("invalid table number")

type CustomerConfig struct {
	TableNumber   int
	ServiceCharge float64
	Logger        *zap.Logger
}

// CustomerState is a copy of everything the menu screen draws.
type CustomerState struct {
	TableNumber   int
	Menu          []domain.Category
	DemoMenu      bool
	Cart          []domain.CartEntry
	ItemCount     int
	Subtotal      float64
	ServiceCharge float64
	Total         float64
	Orders        []domain.Order
	Submitting    bool
	Confirmation  *domain.OrderConfirmation
}

// Customer owns the cart and current orders of one table.
type Customer struct {
	api    CustomerAPI
	carts  *session.CartStore
	view   View
	logger *zap.Logger

	table         int
	serviceCharge float64

	mu           sync.Mutex
	menu         []domain.Category
	items        map[int]domain.MenuItem
	demo         bool
	cart         *session.Cart
	orders       *session.OrderBoard
	submitting   bool
	confirmation *domain.OrderConfirmation
}

func NewCustomer(config CustomerConfig, api CustomerAPI, carts *session.CartStore, view View) *Customer {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if view == nil {
		view = ViewFuncs{}
	}
	if config.ServiceCharge < 0 {
		config.ServiceCharge = DefaultServiceCharge
	}
	return &Customer{
		api:           api,
		carts:         carts,
		view:          view,
		logger:        logger.With(zap.Int("table", config.TableNumber)),
		table:         config.TableNumber,
		serviceCharge: config.ServiceCharge,
		items:         make(map[int]domain.MenuItem),
		cart:          session.NewCart(nil),
		orders:        session.NewOrderBoard(),
	}
}

func (c *Customer) sessionKey() string {
	return strconv.Itoa(c.table)
}

func (c *Customer) TableNumber() int { return c.table }

// Channels are the rooms a table client listens on.
func (c *Customer) Channels() []domain.Channel {
	return []domain.Channel{domain.TableChannel(c.table), domain.CustomersChannel()}
}

// ValidateTable returns ErrInvalidTable when the server does not know the
// table or has deactivated it. Other errors mean the check could not run.
func (c *Customer) ValidateTable(ctx context.Context) error {
	v, err := c.api.ValidateTable(ctx, c.table)
	if err != nil {
		var apiErr *gateway.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return ErrInvalidTable
		}
		return fmt.Errorf("validate table %d: %w", c.table, err)
	}
	if !v.Exists || !v.IsActive {
		return ErrInvalidTable
	}
	return nil
}

// RestoreCart loads the cart saved for this table, if any.
func (c *Customer) RestoreCart(ctx context.Context) {
	cart, err := c.carts.Restore(ctx, c.sessionKey())
	if err != nil {
		c.logger.Warn("restore cart", zap.Error(err))
	}
	c.mu.Lock()
	c.cart = cart
	c.mu.Unlock()
	c.view.Refresh()
}

// LoadMenu fetches the menu, falling back to the demo menu when the server
// fails or has nothing to show.
func (c *Customer) LoadMenu(ctx context.Context) {
	menu, err := c.api.Menu(ctx)
	demo := err != nil || len(menu) == 0
	if err != nil {
		c.logger.Warn("load menu", zap.Error(err))
	}
	if demo {
		menu = DemoMenu()
	}

	c.mu.Lock()
	c.menu = menu
	c.demo = demo
	c.items = make(map[int]domain.MenuItem)
	for _, cat := range menu {
		for _, item := range cat.Items {
			c.items[item.ID] = item
		}
	}
	c.mu.Unlock()

	if demo {
		c.view.Notify(LevelInfo, msgDemoMenu)
	}
	c.view.Refresh()
}

// ChangeQuantity adjusts the cart line for itemID by delta. Items missing
// from the loaded menu are ignored.
func (c *Customer) ChangeQuantity(ctx context.Context, itemID, delta int) {
	c.mu.Lock()
	item, ok := c.items[itemID]
	if !ok || !c.cart.ChangeQuantity(item, delta) {
		c.mu.Unlock()
		return
	}
	c.persistLocked(ctx)
	c.mu.Unlock()
	c.view.Refresh()
}

// RemoveItemFromCart drops itemID from the cart regardless of quantity.
func (c *Customer) RemoveItemFromCart(ctx context.Context, itemID int) {
	c.mu.Lock()
	c.cart.Remove(itemID)
	c.persistLocked(ctx)
	c.mu.Unlock()
	c.view.Refresh()
}

func (c *Customer) persistLocked(ctx context.Context) {
	if err := c.carts.Save(ctx, c.sessionKey(), c.cart); err != nil {
		c.logger.Error("persist cart", zap.Error(err))
	}
}

// PlaceOrder submits the cart once. An empty cart or a submission already
// in flight makes it a no-op. The submitted lines leave the cart only when
// the server accepts the order; anything added meanwhile stays.
func (c *Customer) PlaceOrder(ctx context.Context) {
	c.mu.Lock()
	if c.cart.Empty() || c.submitting {
		c.mu.Unlock()
		return
	}
	c.submitting = true
	req := domain.OrderRequest{TableNumber: c.table, Items: c.cart.Lines()}
	c.mu.Unlock()
	c.view.Refresh()

	confirmation, err := c.api.PlaceOrder(ctx, req)

	c.mu.Lock()
	c.submitting = false
	if err != nil {
		c.mu.Unlock()
		c.logger.Warn("place order", zap.Error(err))
		c.view.Notify(LevelError, gateway.Message(err, msgOrderFailed))
		c.view.Refresh()
		return
	}
	c.cart.Subtract(req.Items)
	c.persistLocked(ctx)
	c.confirmation = confirmation
	c.mu.Unlock()

	c.logger.Info("order placed", zap.Int("order_id", confirmation.OrderID))
	c.view.Refresh()
	c.LoadCurrentOrders(ctx)
}

func (c *Customer) DismissConfirmation() {
	c.mu.Lock()
	c.confirmation = nil
	c.mu.Unlock()
	c.view.Refresh()
}

// LoadCurrentOrders replaces the order list. On failure the previous list
// stays on screen.
func (c *Customer) LoadCurrentOrders(ctx context.Context) {
	orders, err := c.api.TableOrders(ctx, c.table)
	if err != nil {
		c.logger.Warn("load current orders", zap.Error(err))
		return
	}
	c.mu.Lock()
	c.orders.Replace(orders)
	c.mu.Unlock()
	c.view.Refresh()
}

// ApplyOrderUpdate merges a pushed order into the list. Orders this table
// does not show are ignored.
func (c *Customer) ApplyOrderUpdate(order domain.Order) {
	c.mu.Lock()
	replaced, ready := c.orders.Apply(order)
	c.mu.Unlock()
	if !replaced {
		return
	}
	if ready {
		c.view.Notify(LevelSuccess, fmt.Sprintf("Order #%d is ready!", order.ID))
	}
	c.view.Refresh()
}

// Register wires the customer's handlers into d.
func (c *Customer) Register(d *events.Dispatcher) {
	d.Handle(domain.EventOrderStatusUpdated, func(ctx context.Context, ev domain.Event) {
		order, err := ev.Order()
		if err != nil {
			c.logger.Warn("bad status update", zap.Error(err))
			return
		}
		c.ApplyOrderUpdate(*order)
	})
	d.Handle(domain.EventMenuUpdated, func(ctx context.Context, ev domain.Event) {
		c.LoadMenu(ctx)
	})
	d.Handle(domain.EventItemUnavailable, func(ctx context.Context, ev domain.Event) {
		itemID, err := ev.ItemID()
		if err != nil {
			c.logger.Warn("bad item_unavailable", zap.Error(err))
			return
		}
		c.RemoveItemFromCart(ctx, itemID)
		c.view.Notify(LevelInfo, msgItemUnavailable)
	})
}

func (c *Customer) Snapshot() CustomerState {
	c.mu.Lock()
	defer c.mu.Unlock()

	subtotal := c.cart.Total()
	charge := 0.0
	if !c.cart.Empty() {
		charge = c.serviceCharge
	}
	state := CustomerState{
		TableNumber:   c.table,
		Menu:          c.menu,
		DemoMenu:      c.demo,
		Cart:          c.cart.Entries(),
		ItemCount:     c.cart.Count(),
		Subtotal:      subtotal,
		ServiceCharge: charge,
		Total:         subtotal + charge,
		Orders:        c.orders.Orders(),
		Submitting:    c.submitting,
	}
	if c.confirmation != nil {
		confirmation := *c.confirmation
		state.Confirmation = &confirmation
	}
	return state
}
