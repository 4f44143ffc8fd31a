package tests

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"testing"

	"tea-estate/internal/domain"
	"tea-estate/internal/events"
	"tea-estate/internal/gateway"
	"tea-estate/internal/mocks"
	"tea-estate/internal/service"
	"tea-estate/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type notification struct {
	Level   service.Level
	Message string
}

type recordingView struct {
	mu            sync.Mutex
	refreshes     int
	notifications []notification
}

func (v *recordingView) Refresh() {
	v.mu.Lock()
	v.refreshes++
	v.mu.Unlock()
}

func (v *recordingView) Notify(level service.Level, message string) {
	v.mu.Lock()
	v.notifications = append(v.notifications, notification{level, message})
	v.mu.Unlock()
}

func (v *recordingView) messages() []notification {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]notification(nil), v.notifications...)
}

func testMenu() []domain.Category {
	return []domain.Category{
		{ID: 1, Name: "Tea", Items: []domain.MenuItem{masalaChai}},
		{ID: 2, Name: "Coffee", Items: []domain.MenuItem{filterCoffee}},
	}
}

func newCustomer(t *testing.T, table int) (*service.Customer, *mocks.CustomerAPI, *recordingView, *session.CartStore) {
	t.Helper()
	api := mocks.NewCustomerAPI(t)
	view := &recordingView{}
	carts := session.NewCartStore(newSQLiteStore(t), nil)
	customer := service.NewCustomer(service.CustomerConfig{
		TableNumber:   table,
		ServiceCharge: service.DefaultServiceCharge,
	}, api, carts, view)
	return customer, api, view, carts
}

func loadedCustomer(t *testing.T, table int) (*service.Customer, *mocks.CustomerAPI, *recordingView, *session.CartStore) {
	t.Helper()
	customer, api, view, carts := newCustomer(t, table)
	api.On("Menu", mock.Anything).Return(testMenu(), nil).Once()
	customer.LoadMenu(context.Background())
	return customer, api, view, carts
}

func TestCustomer_LoadMenuFallsBackToDemo(t *testing.T) {
	tests := []struct {
		name string
		menu []domain.Category
		err  error
	}{
		{name: "server error", err: errors.New("boom")},
		{name: "empty menu", menu: []domain.Category{}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			customer, api, view, _ := newCustomer(t, 1)
			api.On("Menu", mock.Anything).Return(testCase.menu, testCase.err).Once()

			customer.LoadMenu(context.Background())

			state := customer.Snapshot()
			assert.True(t, state.DemoMenu)
			assert.Equal(t, 9, service.CountItems(state.Menu))
			require.Len(t, view.messages(), 1)
			assert.Equal(t, service.LevelInfo, view.messages()[0].Level)
			assert.Contains(t, view.messages()[0].Message, "Demo mode")
		})
	}
}

func TestCustomer_CartTotals(t *testing.T) {
	customer, _, _, carts := loadedCustomer(t, 3)
	ctx := context.Background()

	state := customer.Snapshot()
	assert.Zero(t, state.ServiceCharge)
	assert.Zero(t, state.Total)

	customer.ChangeQuantity(ctx, 1, 1)
	customer.ChangeQuantity(ctx, 1, 1)
	customer.ChangeQuantity(ctx, 4, 1)
	customer.ChangeQuantity(ctx, 42, 1)

	state = customer.Snapshot()
	assert.Equal(t, 3, state.ItemCount)
	assert.Equal(t, 90.0, state.Subtotal)
	assert.Equal(t, 20.0, state.ServiceCharge)
	assert.Equal(t, 110.0, state.Total)

	customer.ChangeQuantity(ctx, 1, -2)
	assert.Equal(t, 40.0, customer.Snapshot().Subtotal)

	restored, err := carts.Restore(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, 40.0, restored.Total())
}

func TestCustomer_RestoreCartForOtherTable(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)
	carts := session.NewCartStore(store, nil)
	saved := session.NewCart(nil)
	saved.ChangeQuantity(masalaChai, 2)
	require.NoError(t, carts.Save(ctx, "5", saved))

	customer := service.NewCustomer(service.CustomerConfig{TableNumber: 3}, mocks.NewCustomerAPI(t), carts, nil)
	customer.RestoreCart(ctx)

	assert.Empty(t, customer.Snapshot().Cart)
}

func TestCustomer_PlaceOrder(t *testing.T) {
	t.Run("empty cart sends nothing", func(t *testing.T) {
		customer, _, view, _ := loadedCustomer(t, 3)

		customer.PlaceOrder(context.Background())

		assert.Empty(t, view.messages())
		assert.Nil(t, customer.Snapshot().Confirmation)
	})

	t.Run("accepted order clears the cart", func(t *testing.T) {
		customer, api, _, carts := loadedCustomer(t, 3)
		ctx := context.Background()
		customer.ChangeQuantity(ctx, 1, 2)
		customer.ChangeQuantity(ctx, 4, 1)

		api.On("PlaceOrder", mock.Anything, domain.OrderRequest{
			TableNumber: 3,
			Items:       []domain.OrderLine{{MenuItemID: 1, Quantity: 2}, {MenuItemID: 4, Quantity: 1}},
		}).Return(&domain.OrderConfirmation{OrderID: 12, TotalAmount: 90, EstimatedTime: 15, Status: domain.StatusPending}, nil).Once()
		api.On("TableOrders", mock.Anything, 3).
			Return([]domain.Order{{ID: 12, TableNumber: 3, Status: domain.StatusPending, EstimatedTime: 15}}, nil).Once()

		customer.PlaceOrder(ctx)

		state := customer.Snapshot()
		assert.Empty(t, state.Cart)
		assert.False(t, state.Submitting)
		require.NotNil(t, state.Confirmation)
		assert.Equal(t, 12, state.Confirmation.OrderID)
		assert.Len(t, state.Orders, 1)

		restored, err := carts.Restore(ctx, "3")
		require.NoError(t, err)
		assert.True(t, restored.Empty())

		customer.DismissConfirmation()
		assert.Nil(t, customer.Snapshot().Confirmation)
	})

	t.Run("items added while the order is in flight stay in the cart", func(t *testing.T) {
		customer, api, _, carts := loadedCustomer(t, 3)
		ctx := context.Background()
		customer.ChangeQuantity(ctx, 1, 1)

		entered := make(chan struct{})
		release := make(chan struct{})
		api.On("PlaceOrder", mock.Anything, domain.OrderRequest{
			TableNumber: 3,
			Items:       []domain.OrderLine{{MenuItemID: 1, Quantity: 1}},
		}).Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).Return(&domain.OrderConfirmation{OrderID: 13, TotalAmount: 25, Status: domain.StatusPending}, nil).Once()
		api.On("TableOrders", mock.Anything, 3).Return([]domain.Order{}, nil).Once()

		done := make(chan struct{})
		go func() {
			customer.PlaceOrder(ctx)
			close(done)
		}()
		<-entered
		assert.True(t, customer.Snapshot().Submitting)
		customer.ChangeQuantity(ctx, 4, 1)
		customer.ChangeQuantity(ctx, 1, 1)
		close(release)
		<-done

		want := []domain.CartEntry{
			{ID: 1, Name: "Masala Chai", Price: 25, Quantity: 1},
			{ID: 4, Name: "Filter Coffee", Price: 40, Quantity: 1},
		}
		assert.Equal(t, want, customer.Snapshot().Cart)
		restored, err := carts.Restore(ctx, "3")
		require.NoError(t, err)
		assert.Equal(t, want, restored.Entries())
	})

	t.Run("rejected order keeps the cart", func(t *testing.T) {
		customer, api, view, _ := loadedCustomer(t, 3)
		ctx := context.Background()
		customer.ChangeQuantity(ctx, 1, 1)

		api.On("PlaceOrder", mock.Anything, mock.AnythingOfType("domain.OrderRequest")).
			Return(nil, &gateway.APIError{StatusCode: http.StatusBadRequest, Message: "Masala Chai is not available"}).Once()

		customer.PlaceOrder(ctx)

		assert.Equal(t, 1, customer.Snapshot().ItemCount)
		assert.Equal(t, []notification{{service.LevelError, "Masala Chai is not available"}}, view.messages())
	})

	t.Run("transport failure uses a generic message", func(t *testing.T) {
		customer, api, view, _ := loadedCustomer(t, 3)
		ctx := context.Background()
		customer.ChangeQuantity(ctx, 1, 1)

		api.On("PlaceOrder", mock.Anything, mock.AnythingOfType("domain.OrderRequest")).
			Return(nil, gateway.ErrTransport).Once()

		customer.PlaceOrder(ctx)

		assert.Equal(t, 1, customer.Snapshot().ItemCount)
		assert.Equal(t, []notification{{service.LevelError, "Unable to place order"}}, view.messages())
	})
}

func TestCustomer_ValidateTable(t *testing.T) {
	tableID := 3
	tests := []struct {
		name        string
		validation  *domain.TableValidation
		err         error
		wantInvalid bool
		wantErr     bool
	}{
		{name: "active table", validation: &domain.TableValidation{Exists: true, IsActive: true, TableID: &tableID}},
		{name: "inactive table", validation: &domain.TableValidation{Exists: true}, wantInvalid: true, wantErr: true},
		{name: "unknown table", err: &gateway.APIError{StatusCode: http.StatusNotFound, Message: "Table not found"}, wantInvalid: true, wantErr: true},
		{name: "server unreachable", err: gateway.ErrTransport, wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			customer, api, _, _ := newCustomer(t, 3)
			api.On("ValidateTable", mock.Anything, 3).Return(testCase.validation, testCase.err).Once()

			err := customer.ValidateTable(context.Background())

			assert.Equal(t, testCase.wantErr, err != nil)
			assert.Equal(t, testCase.wantInvalid, errors.Is(err, service.ErrInvalidTable))
		})
	}
}

func orderEvent(t *testing.T, kind domain.EventKind, order domain.Order) domain.Event {
	t.Helper()
	data, err := json.Marshal(order)
	require.NoError(t, err)
	return domain.Event{Type: kind, Data: data}
}

func TestCustomer_Events(t *testing.T) {
	t.Run("status update is applied in place and ready fires once", func(t *testing.T) {
		customer, api, view, _ := newCustomer(t, 3)
		api.On("TableOrders", mock.Anything, 3).Return([]domain.Order{
			{ID: 1, TableNumber: 3, Status: domain.StatusPending},
			{ID: 2, TableNumber: 3, Status: domain.StatusPreparing},
		}, nil).Once()
		customer.LoadCurrentOrders(context.Background())

		d := events.NewDispatcher(nil)
		customer.Register(d)

		ready := orderEvent(t, domain.EventOrderStatusUpdated, domain.Order{ID: 2, TableNumber: 3, Status: domain.StatusReady})
		d.Dispatch(context.Background(), ready)
		d.Dispatch(context.Background(), ready)
		d.Dispatch(context.Background(), orderEvent(t, domain.EventOrderStatusUpdated, domain.Order{ID: 77, Status: domain.StatusReady}))

		orders := customer.Snapshot().Orders
		require.Len(t, orders, 2)
		assert.Equal(t, domain.StatusReady, orders[1].Status)
		assert.Equal(t, []notification{{service.LevelSuccess, "Order #2 is ready!"}}, view.messages())
	})

	t.Run("unavailable item leaves the cart", func(t *testing.T) {
		customer, _, view, _ := loadedCustomer(t, 3)
		ctx := context.Background()
		customer.ChangeQuantity(ctx, 1, 2)
		customer.ChangeQuantity(ctx, 4, 1)

		d := events.NewDispatcher(nil)
		customer.Register(d)
		d.Dispatch(ctx, domain.Event{Type: domain.EventItemUnavailable, Data: json.RawMessage(`{"item_id":1}`)})

		state := customer.Snapshot()
		require.Len(t, state.Cart, 1)
		assert.Equal(t, 4, state.Cart[0].ID)
		require.Len(t, view.messages(), 1)
		assert.Equal(t, service.LevelInfo, view.messages()[0].Level)
	})

	t.Run("menu update reloads the menu", func(t *testing.T) {
		customer, api, _, _ := newCustomer(t, 3)
		api.On("Menu", mock.Anything).Return(testMenu(), nil).Once()

		d := events.NewDispatcher(nil)
		customer.Register(d)
		d.Dispatch(context.Background(), domain.Event{Type: domain.EventMenuUpdated})

		state := customer.Snapshot()
		assert.False(t, state.DemoMenu)
		assert.Equal(t, 2, service.CountItems(state.Menu))
	})
}

func TestCustomer_Channels(t *testing.T) {
	customer, _, _, _ := newCustomer(t, 6)

	assert.Equal(t, []string{"table_6", "customers"}, domain.Rooms(customer.Channels()))
}

func TestMenuFilter(t *testing.T) {
	menu := service.DemoMenu()
	tests := []struct {
		name      string
		filter    service.MenuFilter
		wantCats  int
		wantItems int
	}{
		{name: "everything", filter: service.MenuFilter{Category: service.FilterAll}, wantCats: 4, wantItems: 9},
		{name: "one category", filter: service.MenuFilter{Category: "coffee"}, wantCats: 1, wantItems: 2},
		{name: "search drops empty categories", filter: service.MenuFilter{Search: "CHAI"}, wantCats: 1, wantItems: 1},
		{name: "no match", filter: service.MenuFilter{Search: "pizza"}, wantCats: 0, wantItems: 0},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			got := testCase.filter.Apply(menu)
			assert.Len(t, got, testCase.wantCats)
			assert.Equal(t, testCase.wantItems, service.CountItems(got))
		})
	}
}

func TestBestsellers(t *testing.T) {
	names := []string{}
	for _, b := range service.Bestsellers(service.DemoMenu()) {
		names = append(names, b.Name)
	}
	assert.Equal(t, []string{"Masala Chai", "Filter Coffee", "Samosa", "Gulab Jamun"}, names)
}
