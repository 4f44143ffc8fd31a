package tests

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"tea-estate/internal/domain"
	"tea-estate/internal/gateway"
	"tea-estate/internal/mocks"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func jsonResponse(status int, body string) *http.Response {
	resp := &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
	resp.Header.Set("Content-Type", "application/json")
	return resp
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1,
		"exp":     exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestGateway_Menu(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(gateway.Config{BaseURL: "http://api/"}, mockClient)

	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.Method == http.MethodGet && req.URL.String() == "http://api/menu" &&
			req.Header.Get("Authorization") == ""
	})).Return(jsonResponse(http.StatusOK,
		`{"success":true,"categories":[{"id":1,"name":"Tea","items":[{"id":1,"name":"Masala Chai","price":25}]}]}`), nil).Once()

	menu, err := gw.Menu(context.Background())

	require.NoError(t, err)
	require.Len(t, menu, 1)
	assert.Equal(t, "Tea", menu[0].Name)
	assert.Equal(t, 25.0, menu[0].Items[0].Price)
}

func TestGateway_ErrorHandling(t *testing.T) {
	tests := []struct {
		name        string
		resp        *http.Response
		transport   error
		wantErr     error
		wantMessage string
	}{
		{
			name:        "error envelope",
			resp:        jsonResponse(http.StatusBadRequest, `{"error":"Table 9 is not active"}`),
			wantMessage: "Table 9 is not active",
		},
		{
			name:        "server error without body",
			resp:        jsonResponse(http.StatusInternalServerError, ``),
			wantMessage: "Internal Server Error",
		},
		{
			name:        "success false",
			resp:        jsonResponse(http.StatusOK, `{"success":false}`),
			wantMessage: "request was not successful",
		},
		{
			name:    "malformed body",
			resp:    jsonResponse(http.StatusOK, `<html>`),
			wantErr: gateway.ErrDecode,
		},
		{
			name:      "connection refused",
			transport: errors.New("connection refused"),
			wantErr:   gateway.ErrTransport,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockClient := mocks.NewHTTPClient(t)
			gw := gateway.NewGateway(gateway.Config{BaseURL: "http://api"}, mockClient)
			mockClient.On("Do", mock.Anything).Return(testCase.resp, testCase.transport).Once()

			_, err := gw.PlaceOrder(context.Background(), domain.OrderRequest{
				TableNumber: 9,
				Items:       []domain.OrderLine{{MenuItemID: 1, Quantity: 1}},
			})

			require.Error(t, err)
			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				assert.Equal(t, "fallback", gateway.Message(err, "fallback"))
				return
			}
			var apiErr *gateway.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, testCase.wantMessage, gateway.Message(err, "fallback"))
			assert.False(t, gateway.IsTransient(err))
		})
	}
}

func TestGateway_PlaceOrderBody(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(gateway.Config{BaseURL: "http://api"}, mockClient)

	var sent domain.OrderRequest
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		if req.Method != http.MethodPost || req.URL.Path != "/orders" {
			return false
		}
		return json.NewDecoder(req.Body).Decode(&sent) == nil
	})).Return(jsonResponse(http.StatusCreated,
		`{"success":true,"order_id":12,"total_amount":90,"estimated_time":15,"status":"pending"}`), nil).Once()

	confirmation, err := gw.PlaceOrder(context.Background(), domain.OrderRequest{
		TableNumber: 3,
		Items:       []domain.OrderLine{{MenuItemID: 1, Quantity: 2}, {MenuItemID: 4, Quantity: 1}},
	})

	require.NoError(t, err)
	assert.Equal(t, 12, confirmation.OrderID)
	assert.Equal(t, 15, confirmation.EstimatedTime)
	assert.Equal(t, 3, sent.TableNumber)
	assert.Len(t, sent.Items, 2)
}

func TestGateway_AuthenticatedRequests(t *testing.T) {
	valid := signedToken(t, time.Now().Add(time.Hour))
	expired := signedToken(t, time.Now().Add(-time.Minute))

	tests := []struct {
		name         string
		token        string
		resp         *http.Response
		wantRequest  bool
		wantErr      error
		wantCallback bool
	}{
		{
			name:        "valid token is sent as bearer",
			token:       valid,
			resp:        jsonResponse(http.StatusOK, `{"success":true,"orders":[{"id":1,"status":"pending"}]}`),
			wantRequest: true,
		},
		{
			name:         "expired token never reaches the server",
			token:        expired,
			wantErr:      gateway.ErrUnauthorized,
			wantCallback: true,
		},
		{
			name:         "missing token",
			token:        "",
			wantErr:      gateway.ErrUnauthorized,
			wantCallback: true,
		},
		{
			name:         "server rejects token",
			token:        valid,
			resp:         jsonResponse(http.StatusUnauthorized, `{"error":"Token has expired"}`),
			wantRequest:  true,
			wantErr:      gateway.ErrUnauthorized,
			wantCallback: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockClient := mocks.NewHTTPClient(t)
			called := 0
			gw := gateway.NewGateway(gateway.Config{
				BaseURL:        "http://api",
				Token:          func() string { return testCase.token },
				OnUnauthorized: func() { called++ },
			}, mockClient)

			if testCase.wantRequest {
				mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
					return req.Header.Get("Authorization") == "Bearer "+testCase.token
				})).Return(testCase.resp, nil).Once()
			}

			orders, err := gw.ActiveOrders(context.Background())

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
			} else {
				require.NoError(t, err)
				assert.Len(t, orders, 1)
			}
			if testCase.wantCallback {
				assert.Equal(t, 1, called)
			} else {
				assert.Zero(t, called)
			}
		})
	}
}

func TestGateway_LoginRejectionKeepsServerMessage(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	called := false
	gw := gateway.NewGateway(gateway.Config{
		BaseURL:        "http://api",
		OnUnauthorized: func() { called = true },
	}, mockClient)

	mockClient.On("Do", mock.Anything).
		Return(jsonResponse(http.StatusUnauthorized, `{"error":"Invalid credentials"}`), nil).Once()

	_, err := gw.Login(context.Background(), domain.Credentials{Username: "admin", Password: "nope"})

	require.Error(t, err)
	assert.NotErrorIs(t, err, gateway.ErrUnauthorized)
	assert.Equal(t, "Invalid credentials", gateway.Message(err, "Login failed"))
	assert.False(t, called)
}

func TestGateway_LoginWithoutToken(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(gateway.Config{BaseURL: "http://api"}, mockClient)
	mockClient.On("Do", mock.Anything).Return(jsonResponse(http.StatusOK, `{"success":true}`), nil).Once()

	_, err := gw.Login(context.Background(), domain.Credentials{Username: "admin", Password: "pw"})

	assert.ErrorIs(t, err, gateway.ErrDecode)
}

func TestGateway_UpdateOrderStatusRejectsUnknownStatus(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(gateway.Config{
		BaseURL: "http://api",
		Token:   func() string { return "opaque" },
	}, mockClient)

	_, err := gw.UpdateOrderStatus(context.Background(), 5, domain.StatusUpdate{Status: "cooking"})

	assert.True(t, gateway.IsValidation(err))
	assert.Equal(t, "Invalid status", gateway.Message(err, ""))
	mockClient.AssertNotCalled(t, "Do", mock.Anything)
}

func TestGateway_AnalyticsDaysQuery(t *testing.T) {
	tests := []struct {
		name      string
		days      int
		wantQuery string
	}{
		{name: "explicit window", days: 30, wantQuery: "days=30"},
		{name: "server default", days: 0, wantQuery: ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockClient := mocks.NewHTTPClient(t)
			gw := gateway.NewGateway(gateway.Config{
				BaseURL: "http://api",
				Token:   func() string { return "opaque" },
			}, mockClient)

			mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
				return req.URL.Path == "/admin/analytics/daily-trends" && req.URL.RawQuery == testCase.wantQuery
			})).Return(jsonResponse(http.StatusOK, `{"success":true,"data":null}`), nil).Once()

			trends, err := gw.DailyTrends(context.Background(), testCase.days)

			require.NoError(t, err)
			assert.NotNil(t, trends)
			assert.Empty(t, trends)
		})
	}
}

func TestTokenExpired(t *testing.T) {
	now := time.Now()
	assert.False(t, gateway.TokenExpired(signedToken(t, now.Add(time.Hour)), now))
	assert.True(t, gateway.TokenExpired(signedToken(t, now.Add(-time.Second)), now))
	assert.False(t, gateway.TokenExpired("not-a-jwt", now))
}
