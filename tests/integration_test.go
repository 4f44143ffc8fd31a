package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tea-estate/internal/domain"
	"tea-estate/internal/events"
	"tea-estate/internal/gateway"
	"tea-estate/internal/service"
	"tea-estate/internal/session"
	"tea-estate/internal/storage"
)

// backend is an in-memory stand-in for the REST server.
type backend struct {
	mu      sync.Mutex
	menu    []domain.Category
	orders  []domain.Order
	revoked map[string]bool
	nextID  int
}

func newBackend() *backend {
	return &backend{
		menu: []domain.Category{{ID: 1, Name: "Chai", Items: []domain.MenuItem{
			{ID: 1, Name: "Masala Chai", Price: 25, CategoryID: 1, IsAvailable: true},
			{ID: 2, Name: "Ginger Chai", Price: 30, CategoryID: 1, IsAvailable: true},
		}}},
		revoked: map[string]bool{},
		nextID:  100,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func (b *backend) price(itemID int) float64 {
	for _, c := range b.menu {
		for _, item := range c.Items {
			if item.ID == itemID {
				return item.Price
			}
		}
	}
	return 0
}

func (b *backend) authorized(r *http.Request) bool {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	b.mu.Lock()
	defer b.mu.Unlock()
	return token != "" && !b.revoked[token]
}

func (b *backend) revoke(token string) {
	b.mu.Lock()
	b.revoked[token] = true
	b.mu.Unlock()
}

func (b *backend) routes() http.Handler {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/menu", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "categories": b.menu})
	}).Methods(http.MethodGet)

	api.HandleFunc("/tables/{number}", func(w http.ResponseWriter, r *http.Request) {
		number, _ := strconv.Atoi(mux.Vars(r)["number"])
		if number > 10 {
			writeJSON(w, http.StatusNotFound, map[string]any{"error": "Table not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"exists": true, "is_active": true, "table_id": number})
	}).Methods(http.MethodGet)

	api.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		var req domain.OrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Items) == 0 {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Order must contain items"})
			return
		}
		b.mu.Lock()
		b.nextID++
		order := domain.Order{ID: b.nextID, TableNumber: req.TableNumber, Status: domain.StatusPending, EstimatedTime: 15, CreatedAt: time.Now()}
		for _, line := range req.Items {
			p := b.price(line.MenuItemID)
			order.TotalAmount += p * float64(line.Quantity)
			order.Items = append(order.Items, domain.OrderItem{MenuItemID: line.MenuItemID, Quantity: line.Quantity, PriceAtTime: p})
		}
		b.orders = append(b.orders, order)
		b.mu.Unlock()
		writeJSON(w, http.StatusCreated, map[string]any{
			"success": true, "order_id": order.ID, "total_amount": order.TotalAmount,
			"estimated_time": order.EstimatedTime, "status": order.Status,
		})
	}).Methods(http.MethodPost)

	api.HandleFunc("/orders/table/{number}", func(w http.ResponseWriter, r *http.Request) {
		number, _ := strconv.Atoi(mux.Vars(r)["number"])
		b.mu.Lock()
		var orders []domain.Order
		for _, o := range b.orders {
			if o.TableNumber == number {
				orders = append(orders, o)
			}
		}
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "orders": orders})
	}).Methods(http.MethodGet)

	api.HandleFunc("/admin/login", func(w http.ResponseWriter, r *http.Request) {
		var creds domain.Credentials
		json.NewDecoder(r.Body).Decode(&creds)
		if creds.Username != "admin" || creds.Password != "admin123" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "Invalid credentials"})
			return
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "1",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		signed, _ := token.SignedString([]byte("integration-secret"))
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true, "token": signed, "expires_in": 3600,
			"user": domain.AdminUser{ID: 1, Username: "admin"},
		})
	}).Methods(http.MethodPost)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !b.authorized(r) {
				writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "Token is invalid"})
				return
			}
			next.ServeHTTP(w, r)
		})
	})
	admin.HandleFunc("/validate", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"valid": true, "user": domain.AdminUser{ID: 1, Username: "admin"}})
	}).Methods(http.MethodGet)
	admin.HandleFunc("/dashboard/stats", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		stats := domain.DashboardStats{DailyOrders: len(b.orders), ActiveOrders: len(b.orders)}
		for _, o := range b.orders {
			stats.DailyRevenue += o.TotalAmount
		}
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "stats": stats})
	}).Methods(http.MethodGet)
	admin.HandleFunc("/tables", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "tables": []domain.Table{
			{ID: 1, TableNumber: 1, IsActive: true, ActiveOrders: 1},
			{ID: 2, TableNumber: 2, IsActive: true},
		}})
	}).Methods(http.MethodGet)
	admin.HandleFunc("/orders/active", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		orders := append([]domain.Order(nil), b.orders...)
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "orders": orders})
	}).Methods(http.MethodGet)
	admin.HandleFunc("/orders/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(mux.Vars(r)["id"])
		var update domain.StatusUpdate
		json.NewDecoder(r.Body).Decode(&update)
		b.mu.Lock()
		defer b.mu.Unlock()
		for i := range b.orders {
			if b.orders[i].ID == id {
				b.orders[i].Status = update.Status
				writeJSON(w, http.StatusOK, map[string]any{"success": true, "order": b.orders[i]})
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "Order not found"})
	}).Methods(http.MethodPut)

	return cors.Default().Handler(r)
}

func startBackend(t *testing.T) (*backend, string) {
	t.Helper()
	b := newBackend()
	server := httptest.NewServer(b.routes())
	t.Cleanup(server.Close)
	return b, server.URL + "/api"
}

type notes struct {
	mu       sync.Mutex
	messages []string
}

func (n *notes) view() service.View {
	return service.ViewFuncs{OnNotify: func(_ service.Level, message string) {
		n.mu.Lock()
		n.messages = append(n.messages, message)
		n.mu.Unlock()
	}}
}

func (n *notes) contains(message string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, m := range n.messages {
		if m == message {
			return true
		}
	}
	return false
}

func TestCustomerOrderFlow(t *testing.T) {
	ctx := context.Background()
	_, baseURL := startBackend(t)

	store, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "kiosk.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	newCustomer := func(table int) *service.Customer {
		api := gateway.NewGateway(gateway.Config{BaseURL: baseURL}, nil)
		return service.NewCustomer(service.CustomerConfig{TableNumber: table, ServiceCharge: 20},
			api, session.NewCartStore(store, zap.NewNop()), nil)
	}

	t.Run("UnknownTable", func(t *testing.T) {
		assert.ErrorIs(t, newCustomer(42).ValidateTable(ctx), service.ErrInvalidTable)
	})

	t.Run("CartSurvivesRestart", func(t *testing.T) {
		customer := newCustomer(3)
		require.NoError(t, customer.ValidateTable(ctx))
		customer.RestoreCart(ctx)
		customer.LoadMenu(ctx)
		customer.ChangeQuantity(ctx, 1, 1)
		customer.ChangeQuantity(ctx, 1, 1)
		customer.ChangeQuantity(ctx, 2, 1)

		restarted := newCustomer(3)
		restarted.RestoreCart(ctx)
		state := restarted.Snapshot()
		require.Len(t, state.Cart, 2)
		assert.Equal(t, 2, state.Cart[0].Quantity)
		assert.Equal(t, 80.0, state.Subtotal)
		assert.Equal(t, 100.0, state.Total)
	})

	t.Run("PlaceOrder", func(t *testing.T) {
		customer := newCustomer(3)
		customer.RestoreCart(ctx)
		customer.LoadMenu(ctx)
		customer.PlaceOrder(ctx)

		state := customer.Snapshot()
		require.NotNil(t, state.Confirmation)
		assert.Equal(t, 80.0, state.Confirmation.TotalAmount)
		assert.Empty(t, state.Cart)
		require.Len(t, state.Orders, 1)
		assert.Equal(t, domain.StatusPending, state.Orders[0].Status)

		restarted := newCustomer(3)
		restarted.RestoreCart(ctx)
		assert.Empty(t, restarted.Snapshot().Cart)
	})
}

func TestAdminSessionFlow(t *testing.T) {
	ctx := context.Background()
	b, baseURL := startBackend(t)

	store, err := storage.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	creds := session.NewCredentialStore(store)

	newAdmin := func() *service.Admin {
		var admin *service.Admin
		api := gateway.NewGateway(gateway.Config{
			BaseURL:        baseURL,
			Token:          func() string { return admin.Token() },
			OnUnauthorized: func() { admin.Teardown(ctx) },
		}, nil)
		admin = service.NewAdmin(service.AdminConfig{}, api, creds, nil)
		return admin
	}

	admin := newAdmin()
	assert.False(t, admin.Login(ctx, "admin", "wrong"))
	assert.Equal(t, "Invalid credentials", admin.Snapshot().LoginError)

	require.True(t, admin.Login(ctx, "admin", "admin123"))
	state := admin.Snapshot()
	assert.True(t, state.LoggedIn)
	require.NotNil(t, state.Stats)
	assert.Equal(t, 1, state.ActiveTables)
	token := admin.Token()

	resumed := newAdmin()
	require.True(t, resumed.ResumeSession(ctx))
	assert.Equal(t, token, resumed.Token())

	b.revoke(token)
	resumed.LoadActiveOrders(ctx)
	assert.False(t, resumed.Snapshot().LoggedIn)
	stored, err := creds.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)

	assert.False(t, newAdmin().ResumeSession(ctx))
}

func TestKitchenUpdateReachesTable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_, baseURL := startBackend(t)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	source := events.NewRedisSource(client, "tea-estate", nil)

	store, err := storage.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	seen := &notes{}
	api := gateway.NewGateway(gateway.Config{BaseURL: baseURL}, nil)
	customer := service.NewCustomer(service.CustomerConfig{TableNumber: 5},
		api, session.NewCartStore(store, zap.NewNop()), seen.view())
	customer.LoadMenu(ctx)
	customer.ChangeQuantity(ctx, 1, 1)
	customer.PlaceOrder(ctx)
	orders := customer.Snapshot().Orders
	require.Len(t, orders, 1)

	statuses := make(chan events.Status, 8)
	dispatcher := events.NewDispatcher(nil)
	customer.Register(dispatcher)
	stop := events.NewClient(source, dispatcher, events.Config{
		Channels:   customer.Channels(),
		RetryDelay: 10 * time.Millisecond,
		OnStatus:   func(s events.Status, _ error) { statuses <- s },
	}).Start(ctx)
	defer stop()
	require.Equal(t, events.StatusConnected, <-statuses)

	ready := orders[0]
	ready.Status = domain.StatusReady
	data, err := json.Marshal(ready)
	require.NoError(t, err)
	payload, err := json.Marshal(domain.Event{Type: domain.EventOrderStatusUpdated, Data: data})
	require.NoError(t, err)
	mr.Publish(source.ChannelName("table_5"), string(payload))

	assert.Eventually(t, func() bool {
		return seen.contains("Order #" + strconv.Itoa(ready.ID) + " is ready!")
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, domain.StatusReady, customer.Snapshot().Orders[0].Status)
}
