package tests

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"tea-estate/internal/domain"
	"tea-estate/internal/events"
	"tea-estate/internal/gateway"
	"tea-estate/internal/mocks"
	"tea-estate/internal/service"
	"tea-estate/internal/session"
	"tea-estate/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type adminFixture struct {
	admin   *service.Admin
	api     *mocks.AdminAPI
	view    *recordingView
	store   storage.LocalStore
	started int
	stopped chan struct{}
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()
	f := &adminFixture{
		api:     mocks.NewAdminAPI(t),
		view:    &recordingView{},
		store:   newSQLiteStore(t),
		stopped: make(chan struct{}, 1),
	}
	f.admin = service.NewAdmin(service.AdminConfig{
		StartEvents: func(ctx context.Context) func() {
			f.started++
			return func() { f.stopped <- struct{}{} }
		},
	}, f.api, session.NewCredentialStore(f.store), f.view)
	return f
}

func (f *adminFixture) expectDashboard() {
	f.api.On("DashboardStats", mock.Anything).Return(&domain.DashboardStats{DailyOrders: 4, DailyRevenue: 360}, nil).Once()
	f.api.On("AdminTables", mock.Anything).Return([]domain.Table{
		{ID: 1, TableNumber: 1, ActiveOrders: 2},
		{ID: 2, TableNumber: 2},
		{ID: 3, TableNumber: 3, ActiveOrders: 1},
	}, nil).Once()
}

func (f *adminFixture) login(t *testing.T) {
	t.Helper()
	f.api.On("Login", mock.Anything, domain.Credentials{Username: "admin", Password: "secret"}).
		Return(&domain.LoginResult{Token: "tok", User: domain.AdminUser{ID: 1, Username: "admin"}}, nil).Once()
	f.expectDashboard()
	require.True(t, f.admin.Login(context.Background(), "admin", "secret"))
}

func TestAdmin_Login(t *testing.T) {
	f := newAdminFixture(t)

	f.login(t)

	state := f.admin.Snapshot()
	assert.True(t, state.LoggedIn)
	assert.Equal(t, "admin", state.User.Username)
	assert.Equal(t, 4, state.Stats.DailyOrders)
	assert.Equal(t, 2, state.ActiveTables)
	assert.Equal(t, "tok", f.admin.Token())
	assert.Equal(t, 1, f.started)

	stored, err := f.store.Get(context.Background(), session.KeyAdminToken)
	require.NoError(t, err)
	assert.Equal(t, "tok", stored)
}

func TestAdmin_LoginFailure(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{name: "wrong password", err: &gateway.APIError{StatusCode: http.StatusUnauthorized, Message: "Invalid credentials"}, wantMsg: "Invalid credentials"},
		{name: "server down", err: gateway.ErrTransport, wantMsg: "Connection error"},
		{name: "no message", err: errors.New("odd"), wantMsg: "Login failed"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			f := newAdminFixture(t)
			f.api.On("Login", mock.Anything, mock.AnythingOfType("domain.Credentials")).Return(nil, testCase.err).Once()

			ok := f.admin.Login(context.Background(), "admin", "nope")

			assert.False(t, ok)
			state := f.admin.Snapshot()
			assert.False(t, state.LoggedIn)
			assert.Equal(t, testCase.wantMsg, state.LoginError)
			assert.Zero(t, f.started)
		})
	}
}

func TestAdmin_ResumeSession(t *testing.T) {
	t.Run("no stored token", func(t *testing.T) {
		f := newAdminFixture(t)
		assert.False(t, f.admin.ResumeSession(context.Background()))
	})

	t.Run("valid token resumes", func(t *testing.T) {
		f := newAdminFixture(t)
		require.NoError(t, f.store.Set(context.Background(), session.KeyAdminToken, "tok"))
		f.api.On("ValidateToken", mock.Anything).Return(&domain.AdminUser{ID: 1, Username: "admin"}, nil).Once()
		f.expectDashboard()

		assert.True(t, f.admin.ResumeSession(context.Background()))
		assert.True(t, f.admin.Snapshot().LoggedIn)
	})

	t.Run("rejected token is forgotten", func(t *testing.T) {
		f := newAdminFixture(t)
		require.NoError(t, f.store.Set(context.Background(), session.KeyAdminToken, "tok"))
		f.api.On("ValidateToken", mock.Anything).Return(nil, gateway.ErrUnauthorized).Once()

		assert.False(t, f.admin.ResumeSession(context.Background()))
		assert.Empty(t, f.admin.Token())
		_, err := f.store.Get(context.Background(), session.KeyAdminToken)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestAdmin_TeardownStopsEventsAndForgetsToken(t *testing.T) {
	f := newAdminFixture(t)
	f.login(t)

	f.admin.Teardown(context.Background())

	select {
	case <-f.stopped:
	case <-time.After(time.Second):
		t.Fatal("event stream not stopped")
	}
	state := f.admin.Snapshot()
	assert.False(t, state.LoggedIn)
	assert.Nil(t, state.Stats)
	assert.Empty(t, f.admin.Token())
	_, err := f.store.Get(context.Background(), session.KeyAdminToken)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestAdmin_DropsResultsFromEndedSession(t *testing.T) {
	f := newAdminFixture(t)
	f.login(t)

	f.api.On("ActiveOrders", mock.Anything).
		Run(func(args mock.Arguments) { f.admin.Teardown(context.Background()) }).
		Return([]domain.Order{{ID: 1, Status: domain.StatusPending}}, nil).Once()

	f.admin.LoadActiveOrders(context.Background())

	assert.Empty(t, f.admin.Snapshot().Orders)
}

func TestAdmin_LoadAnalyticsPartialFailure(t *testing.T) {
	f := newAdminFixture(t)
	f.login(t)

	f.api.On("DailyTrends", mock.Anything, 30).Return([]domain.DailyTrend{{Date: "2026-10-01", Revenue: 500}}, nil).Once()
	f.api.On("SalesByHour", mock.Anything, 30).Return(nil, errors.New("timeout")).Once()
	f.api.On("ProductPerformance", mock.Anything, 30).Return([]domain.ProductPerformance{}, nil).Once()
	f.api.On("CategoryPerformance", mock.Anything, 30).Return([]domain.CategoryPerformance{{Category: "Tea", TotalRevenue: 500}}, nil).Once()

	f.admin.LoadAnalytics(context.Background(), 30)

	a := f.admin.Snapshot().Analytics
	require.NotNil(t, a)
	assert.Equal(t, 30, a.Days)
	assert.Len(t, a.Trends, 1)
	assert.Nil(t, a.Hourly)
	assert.NotNil(t, a.Products)
	assert.Len(t, a.Categories, 1)
}

func TestAdmin_UpdateOrderStatus(t *testing.T) {
	t.Run("unknown status is rejected locally", func(t *testing.T) {
		f := newAdminFixture(t)
		f.login(t)

		f.admin.UpdateOrderStatus(context.Background(), 5, "cooking")

		assert.Equal(t, []notification{{service.LevelError, "Invalid status"}}, f.view.messages())
	})

	t.Run("valid status reloads orders", func(t *testing.T) {
		f := newAdminFixture(t)
		f.login(t)

		f.api.On("UpdateOrderStatus", mock.Anything, 5, domain.StatusUpdate{Status: domain.StatusReady}).
			Return(&domain.Order{ID: 5, Status: domain.StatusReady}, nil).Once()
		f.api.On("ActiveOrders", mock.Anything).Return([]domain.Order{{ID: 5, Status: domain.StatusReady}}, nil).Once()

		f.admin.UpdateOrderStatus(context.Background(), 5, "ready")

		assert.Equal(t, []notification{{service.LevelSuccess, "Order #5 status updated to ready"}}, f.view.messages())
		assert.Len(t, f.admin.Snapshot().Orders, 1)
	})

	t.Run("estimate keeps the current status", func(t *testing.T) {
		f := newAdminFixture(t)
		f.login(t)
		f.api.On("ActiveOrders", mock.Anything).Return([]domain.Order{{ID: 5, Status: domain.StatusPreparing}}, nil).Twice()
		f.admin.LoadActiveOrders(context.Background())

		minutes := 25
		f.api.On("UpdateOrderStatus", mock.Anything, 5, domain.StatusUpdate{Status: domain.StatusPreparing, EstimatedTime: &minutes}).
			Return(&domain.Order{ID: 5, Status: domain.StatusPreparing, EstimatedTime: 25}, nil).Once()

		f.admin.UpdateEstimatedTime(context.Background(), 5, 25)

		assert.Empty(t, f.view.messages())
	})
}

func TestAdmin_MenuAndTables(t *testing.T) {
	f := newAdminFixture(t)
	f.login(t)
	ctx := context.Background()

	name := "Ginger Tea"
	price := 30.0
	input := domain.MenuItemInput{Name: &name, Price: &price}
	f.api.On("CreateMenuItem", mock.Anything, input).Return(&domain.MenuItem{ID: 10, Name: name, Price: price}, nil).Once()
	f.api.On("AdminMenuItems", mock.Anything).Return([]domain.MenuItem{{ID: 10, Name: name, Price: price}}, nil).Once()
	f.api.On("DeleteTable", mock.Anything, 2).Return(&gateway.APIError{StatusCode: http.StatusBadRequest, Message: "Cannot delete table with active orders"}).Once()

	assert.True(t, f.admin.SaveMenuItem(ctx, 0, input))
	f.admin.DeleteTable(ctx, 2)

	assert.Len(t, f.admin.Snapshot().MenuItems, 1)
	assert.Equal(t, []notification{
		{service.LevelSuccess, "Menu item created successfully"},
		{service.LevelError, "Cannot delete table with active orders"},
	}, f.view.messages())
}

func TestAdmin_NewOrderEvent(t *testing.T) {
	f := newAdminFixture(t)
	f.login(t)
	ctx := context.Background()

	f.api.On("ActiveOrders", mock.Anything).Return([]domain.Order{{ID: 1}}, nil).Once()
	f.admin.ShowTab(ctx, service.TabOrders)

	d := events.NewDispatcher(nil)
	f.admin.Register(d)

	f.api.On("ActiveOrders", mock.Anything).Return([]domain.Order{{ID: 1}, {ID: 9}}, nil).Once()
	d.Dispatch(ctx, orderEvent(t, domain.EventNewOrder, domain.Order{ID: 9, TableNumber: 4}))

	assert.Len(t, f.admin.Snapshot().Orders, 2)
	assert.Equal(t, []notification{{service.LevelInfo, "New order #9 from table 4"}}, f.view.messages())
}
