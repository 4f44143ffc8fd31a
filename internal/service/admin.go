package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"tea-estate/internal/domain"
	"tea-estate/internal/events"
	"tea-estate/internal/gateway"
	"tea-estate/internal/session"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Tab string

const (
	TabDashboard Tab = "dashboard"
	TabOrders    Tab = "orders"
	TabMenu      Tab = "menu"
	TabTables    Tab = "tables"
	TabAnalytics Tab = "analytics"
)

var Tabs = []Tab{TabDashboard, TabOrders, TabMenu, TabTables, TabAnalytics}

const DefaultAnalyticsDays = 7

type AdminConfig struct {
	// StartEvents opens the admin event stream and returns its stop
	// function. Nil disables live updates.
	StartEvents func(ctx context.Context) (stop func())
	Logger      *zap.Logger
}

// AdminState is a copy of everything the dashboard draws.
type AdminState struct {
	LoggedIn     bool
	User         *domain.AdminUser
	LoginError   string
	Tab          Tab
	Connection   events.Status
	Stats        *domain.DashboardStats
	ActiveTables int
	Orders       []domain.Order
	MenuItems    []domain.MenuItem
	Tables       []domain.Table
	Analytics    *domain.Analytics
	Revenue      *domain.RevenueDetail
	DailyOrders  []domain.Order
}

// Admin drives one staff session. Every result is tagged with the session
// generation it was requested under and dropped if the session has ended
// since.
type Admin struct {
	api    AdminAPI
	creds  *session.CredentialStore
	view   View
	config AdminConfig
	logger *zap.Logger

	mu         sync.Mutex
	token      string
	generation uint64
	stopEvents func()
	state      AdminState
}

func NewAdmin(config AdminConfig, api AdminAPI, creds *session.CredentialStore, view View) *Admin {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if view == nil {
		view = ViewFuncs{}
	}
	return &Admin{
		api:    api,
		creds:  creds,
		view:   view,
		config: config,
		logger: logger,
		state:  AdminState{Tab: TabDashboard},
	}
}

// Token is the credential source for the gateway.
func (a *Admin) Token() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.token
}

func (a *Admin) session() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.generation
}

// commit applies fn to the state if generation gen is still the live
// session, then refreshes the view.
func (a *Admin) commit(gen uint64, fn func(s *AdminState)) bool {
	a.mu.Lock()
	if gen != a.generation || !a.state.LoggedIn {
		a.mu.Unlock()
		a.logger.Debug("dropping result from ended session", zap.Uint64("generation", gen))
		return false
	}
	fn(&a.state)
	a.mu.Unlock()
	a.view.Refresh()
	return true
}

// ResumeSession validates the stored credential. It reports whether a
// session is now live.
func (a *Admin) ResumeSession(ctx context.Context) bool {
	token, err := a.creds.Token(ctx)
	if err != nil {
		a.logger.Warn("read stored credential", zap.Error(err))
	}
	if token == "" {
		return false
	}

	a.mu.Lock()
	a.token = token
	a.mu.Unlock()

	user, err := a.api.ValidateToken(ctx)
	if err != nil {
		a.logger.Info("stored credential not usable", zap.Error(err))
		if errors.Is(err, gateway.ErrUnauthorized) {
			a.Teardown(ctx)
			return false
		}
		a.mu.Lock()
		a.token = ""
		a.state.LoginError = "Connection error"
		a.mu.Unlock()
		a.view.Refresh()
		return false
	}
	a.startSession(ctx, user)
	return true
}

func (a *Admin) Login(ctx context.Context, username, password string) bool {
	res, err := a.api.Login(ctx, domain.Credentials{Username: username, Password: password})
	if err != nil {
		message := gateway.Message(err, "Login failed")
		if gateway.IsTransient(err) {
			message = "Connection error"
		}
		a.logger.Info("login failed", zap.String("username", username), zap.Error(err))
		a.mu.Lock()
		a.state.LoginError = message
		a.mu.Unlock()
		a.view.Refresh()
		return false
	}

	if err := a.creds.Save(ctx, res.Token); err != nil {
		a.logger.Error("store credential", zap.Error(err))
	}
	a.mu.Lock()
	a.token = res.Token
	a.mu.Unlock()
	user := res.User
	a.startSession(ctx, &user)
	return true
}

func (a *Admin) startSession(ctx context.Context, user *domain.AdminUser) {
	a.mu.Lock()
	a.generation++
	a.state = AdminState{LoggedIn: true, User: user, Tab: TabDashboard}
	a.mu.Unlock()

	a.logger.Info("admin session started", zap.String("username", user.Username))
	if a.config.StartEvents != nil {
		stop := a.config.StartEvents(context.WithoutCancel(ctx))
		a.mu.Lock()
		a.stopEvents = stop
		a.mu.Unlock()
	}
	a.view.Refresh()
	a.LoadDashboard(ctx)
}

func (a *Admin) Logout(ctx context.Context) {
	a.Teardown(ctx)
}

// Teardown ends the session: the credential is forgotten, the event stream
// stopped and pending results discarded. It is also the gateway's
// unauthorized hook.
func (a *Admin) Teardown(ctx context.Context) {
	a.mu.Lock()
	wasLoggedIn := a.state.LoggedIn
	a.generation++
	a.token = ""
	a.state = AdminState{Tab: TabDashboard}
	stop := a.stopEvents
	a.stopEvents = nil
	a.mu.Unlock()

	if err := a.creds.Clear(context.WithoutCancel(ctx)); err != nil {
		a.logger.Error("clear credential", zap.Error(err))
	}
	if stop != nil {
		// The stream may be the caller, so it must not be waited on here.
		go stop()
	}
	if wasLoggedIn {
		a.logger.Info("admin session ended")
	}
	a.view.Refresh()
}

func (a *Admin) SetConnection(status events.Status) {
	a.mu.Lock()
	a.state.Connection = status
	a.mu.Unlock()
	a.view.Refresh()
}

func (a *Admin) Tab() Tab {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.Tab
}

// ShowTab switches tabs and loads the new tab's data.
func (a *Admin) ShowTab(ctx context.Context, tab Tab) {
	a.mu.Lock()
	a.state.Tab = tab
	a.mu.Unlock()
	a.view.Refresh()
	a.Reload(ctx)
}

// Reload fetches the data of the current tab.
func (a *Admin) Reload(ctx context.Context) {
	switch a.Tab() {
	case TabDashboard:
		a.LoadDashboard(ctx)
	case TabOrders:
		a.LoadActiveOrders(ctx)
	case TabMenu:
		a.LoadMenuItems(ctx)
	case TabTables:
		a.LoadTables(ctx)
	case TabAnalytics:
		a.LoadAnalytics(ctx, a.analyticsDays())
	}
}

func (a *Admin) analyticsDays() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state.Analytics != nil && a.state.Analytics.Days > 0 {
		return a.state.Analytics.Days
	}
	return DefaultAnalyticsDays
}

func (a *Admin) LoadDashboard(ctx context.Context) {
	gen := a.session()
	stats, err := a.api.DashboardStats(ctx)
	if err != nil {
		a.logger.Warn("load dashboard stats", zap.Error(err))
	} else {
		a.commit(gen, func(s *AdminState) { s.Stats = stats })
	}

	tables, err := a.api.AdminTables(ctx)
	if err != nil {
		a.logger.Warn("load tables for dashboard", zap.Error(err))
		return
	}
	active := 0
	for _, t := range tables {
		if t.ActiveOrders > 0 {
			active++
		}
	}
	a.commit(gen, func(s *AdminState) { s.ActiveTables = active })
}

func (a *Admin) LoadActiveOrders(ctx context.Context) {
	gen := a.session()
	orders, err := a.api.ActiveOrders(ctx)
	if err != nil {
		a.logger.Warn("load active orders", zap.Error(err))
		return
	}
	a.commit(gen, func(s *AdminState) { s.Orders = orders })
}

// UpdateOrderStatus validates raw before anything is sent.
func (a *Admin) UpdateOrderStatus(ctx context.Context, orderID int, raw string) {
	status, err := domain.ParseStatus(raw)
	if err != nil {
		a.view.Notify(LevelError, "Invalid status")
		return
	}
	if _, err := a.api.UpdateOrderStatus(ctx, orderID, domain.StatusUpdate{Status: status}); err != nil {
		a.logger.Warn("update order status", zap.Int("order_id", orderID), zap.Error(err))
		a.view.Notify(LevelError, gateway.Message(err, "Failed to update order status"))
		return
	}
	a.view.Notify(LevelSuccess, fmt.Sprintf("Order #%d status updated to %s", orderID, status))
	a.LoadActiveOrders(ctx)
}

// AdvanceOrderStatus moves an active order to the next workflow status.
func (a *Admin) AdvanceOrderStatus(ctx context.Context, orderID int) {
	order, ok := a.findOrder(orderID)
	if !ok {
		return
	}
	a.UpdateOrderStatus(ctx, orderID, string(order.Status.Next()))
}

// UpdateEstimatedTime keeps the order's status and only changes the
// estimate. Success is silent.
func (a *Admin) UpdateEstimatedTime(ctx context.Context, orderID, minutes int) {
	order, ok := a.findOrder(orderID)
	if !ok {
		return
	}
	update := domain.StatusUpdate{Status: order.Status, EstimatedTime: &minutes}
	if _, err := a.api.UpdateOrderStatus(ctx, orderID, update); err != nil {
		a.logger.Warn("update estimated time", zap.Int("order_id", orderID), zap.Error(err))
		a.view.Notify(LevelError, gateway.Message(err, "Failed to update estimated time"))
		return
	}
	a.LoadActiveOrders(ctx)
}

func (a *Admin) findOrder(orderID int) (domain.Order, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, o := range a.state.Orders {
		if o.ID == orderID {
			return o, true
		}
	}
	return domain.Order{}, false
}

func (a *Admin) LoadMenuItems(ctx context.Context) {
	gen := a.session()
	items, err := a.api.AdminMenuItems(ctx)
	if err != nil {
		a.logger.Warn("load menu items", zap.Error(err))
		return
	}
	a.commit(gen, func(s *AdminState) { s.MenuItems = items })
}

// SaveMenuItem creates the item when itemID is zero and updates it
// otherwise.
func (a *Admin) SaveMenuItem(ctx context.Context, itemID int, input domain.MenuItemInput) bool {
	var err error
	verb := "created"
	if itemID == 0 {
		_, err = a.api.CreateMenuItem(ctx, input)
	} else {
		verb = "updated"
		_, err = a.api.UpdateMenuItem(ctx, itemID, input)
	}
	if err != nil {
		a.logger.Warn("save menu item", zap.Int("item_id", itemID), zap.Error(err))
		a.view.Notify(LevelError, gateway.Message(err, "Failed to save menu item"))
		return false
	}
	a.view.Notify(LevelSuccess, "Menu item "+verb+" successfully")
	a.LoadMenuItems(ctx)
	return true
}

func (a *Admin) DeleteMenuItem(ctx context.Context, itemID int) {
	if err := a.api.DeleteMenuItem(ctx, itemID); err != nil {
		a.logger.Warn("delete menu item", zap.Int("item_id", itemID), zap.Error(err))
		a.view.Notify(LevelError, gateway.Message(err, "Failed to delete menu item"))
		return
	}
	a.view.Notify(LevelSuccess, "Menu item deleted successfully")
	a.LoadMenuItems(ctx)
}

func (a *Admin) LoadTables(ctx context.Context) {
	gen := a.session()
	tables, err := a.api.AdminTables(ctx)
	if err != nil {
		a.logger.Warn("load tables", zap.Error(err))
		return
	}
	a.commit(gen, func(s *AdminState) { s.Tables = tables })
}

func (a *Admin) CreateTable(ctx context.Context, tableNumber int) bool {
	if _, err := a.api.CreateTable(ctx, tableNumber); err != nil {
		a.logger.Warn("create table", zap.Int("table", tableNumber), zap.Error(err))
		a.view.Notify(LevelError, gateway.Message(err, "Failed to create table"))
		return false
	}
	a.view.Notify(LevelSuccess, "Table created successfully")
	a.LoadTables(ctx)
	return true
}

func (a *Admin) DeleteTable(ctx context.Context, tableID int) {
	if err := a.api.DeleteTable(ctx, tableID); err != nil {
		a.logger.Warn("delete table", zap.Int("table_id", tableID), zap.Error(err))
		a.view.Notify(LevelError, gateway.Message(err, "Failed to delete table"))
		return
	}
	a.view.Notify(LevelSuccess, "Table deleted successfully")
	a.LoadTables(ctx)
}

// LoadAnalytics fetches the four aggregates in parallel. Each one that fails
// is left nil so its panel can say so while the others still render.
func (a *Admin) LoadAnalytics(ctx context.Context, days int) {
	if days <= 0 {
		days = DefaultAnalyticsDays
	}
	gen := a.session()
	result := &domain.Analytics{Days: days}

	var g errgroup.Group
	g.Go(func() (err error) {
		result.Trends, err = a.api.DailyTrends(ctx, days)
		return wrapAggregate("daily trends", err)
	})
	g.Go(func() (err error) {
		result.Hourly, err = a.api.SalesByHour(ctx, days)
		return wrapAggregate("sales by hour", err)
	})
	g.Go(func() (err error) {
		result.Products, err = a.api.ProductPerformance(ctx, days)
		return wrapAggregate("product performance", err)
	})
	g.Go(func() (err error) {
		result.Categories, err = a.api.CategoryPerformance(ctx, days)
		return wrapAggregate("category performance", err)
	})
	if err := g.Wait(); err != nil {
		a.logger.Warn("load analytics", zap.Int("days", days), zap.Error(err))
	}
	a.commit(gen, func(s *AdminState) { s.Analytics = result })
}

func wrapAggregate(name string, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func (a *Admin) OpenRevenueDetail(ctx context.Context) bool {
	gen := a.session()
	detail, err := a.api.RevenueDetail(ctx)
	if err != nil {
		a.logger.Warn("load revenue detail", zap.Error(err))
		a.view.Notify(LevelError, "Failed to load revenue data")
		return false
	}
	return a.commit(gen, func(s *AdminState) { s.Revenue = detail })
}

func (a *Admin) OpenDailyOrders(ctx context.Context) bool {
	gen := a.session()
	orders, err := a.api.DailyOrders(ctx)
	if err != nil {
		a.logger.Warn("load daily orders", zap.Error(err))
		a.view.Notify(LevelError, "Failed to load orders data")
		return false
	}
	return a.commit(gen, func(s *AdminState) { s.DailyOrders = orders })
}

func (a *Admin) CloseDetail() {
	a.mu.Lock()
	a.state.Revenue = nil
	a.state.DailyOrders = nil
	a.mu.Unlock()
	a.view.Refresh()
}

// Register wires the admin handlers into d.
func (a *Admin) Register(d *events.Dispatcher) {
	d.Handle(domain.EventNewOrder, func(ctx context.Context, ev domain.Event) {
		order, err := ev.Order()
		if err != nil {
			a.logger.Warn("bad new_order", zap.Error(err))
			return
		}
		a.view.Notify(LevelInfo, fmt.Sprintf("New order #%d from table %d", order.ID, order.TableNumber))
		switch a.Tab() {
		case TabOrders:
			a.LoadActiveOrders(ctx)
		case TabDashboard:
			a.LoadDashboard(ctx)
		}
	})
	d.Handle(domain.EventOrderUpdated, func(ctx context.Context, ev domain.Event) {
		if a.Tab() == TabOrders {
			a.LoadActiveOrders(ctx)
		}
	})
}

func (a *Admin) Snapshot() AdminState {
	a.mu.Lock()
	defer a.mu.Unlock()
	s := a.state
	s.Orders = append([]domain.Order(nil), a.state.Orders...)
	s.MenuItems = append([]domain.MenuItem(nil), a.state.MenuItems...)
	s.Tables = append([]domain.Table(nil), a.state.Tables...)
	return s
}
