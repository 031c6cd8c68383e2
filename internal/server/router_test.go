package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	customerctrl "crmd/internal/customer/controller"
	"crmd/internal/dto"
	"crmd/internal/jobs"
	orderctrl "crmd/internal/order/controller"
	productctrl "crmd/internal/product/controller"
)

// Mock implementations

type mockCustomersUseCase struct {
	CreateFunc     func(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResult, error)
	BulkCreateFunc func(ctx context.Context, req dto.BulkCreateCustomersRequest) (*dto.BulkCustomersResult, error)
	ListFunc       func(ctx context.Context, req dto.CustomerListRequest) (*dto.CustomerConnection, error)
	CountFunc      func(ctx context.Context) (int64, error)
}

func (m *mockCustomersUseCase) Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResult, error) {
	return m.CreateFunc(ctx, req)
}

func (m *mockCustomersUseCase) BulkCreate(ctx context.Context, req dto.BulkCreateCustomersRequest) (*dto.BulkCustomersResult, error) {
	return m.BulkCreateFunc(ctx, req)
}

func (m *mockCustomersUseCase) List(ctx context.Context, req dto.CustomerListRequest) (*dto.CustomerConnection, error) {
	return m.ListFunc(ctx, req)
}

func (m *mockCustomersUseCase) Count(ctx context.Context) (int64, error) {
	return m.CountFunc(ctx)
}

type mockProductsUseCase struct {
	CreateFunc         func(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResult, error)
	UpdateLowStockFunc func(ctx context.Context, req dto.UpdateLowStockRequest) (*dto.LowStockResult, error)
	ListFunc           func(ctx context.Context, req dto.ProductListRequest) (*dto.ProductConnection, error)
}

func (m *mockProductsUseCase) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResult, error) {
	return m.CreateFunc(ctx, req)
}

func (m *mockProductsUseCase) UpdateLowStock(ctx context.Context, req dto.UpdateLowStockRequest) (*dto.LowStockResult, error) {
	return m.UpdateLowStockFunc(ctx, req)
}

func (m *mockProductsUseCase) List(ctx context.Context, req dto.ProductListRequest) (*dto.ProductConnection, error) {
	return m.ListFunc(ctx, req)
}

type mockOrdersUseCase struct {
	CreateFunc  func(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderResult, error)
	ListFunc    func(ctx context.Context, req dto.OrderListRequest) (*dto.OrderConnection, error)
	CountFunc   func(ctx context.Context) (int64, error)
	RevenueFunc func(ctx context.Context) (decimal.Decimal, error)
	RecentFunc  func(ctx context.Context, days int) ([]dto.ReminderOrder, error)
}

func (m *mockOrdersUseCase) Create(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderResult, error) {
	return m.CreateFunc(ctx, req)
}

func (m *mockOrdersUseCase) List(ctx context.Context, req dto.OrderListRequest) (*dto.OrderConnection, error) {
	return m.ListFunc(ctx, req)
}

func (m *mockOrdersUseCase) Count(ctx context.Context) (int64, error) {
	return m.CountFunc(ctx)
}

func (m *mockOrdersUseCase) Revenue(ctx context.Context) (decimal.Decimal, error) {
	return m.RevenueFunc(ctx)
}

func (m *mockOrdersUseCase) Recent(ctx context.Context, days int) ([]dto.ReminderOrder, error) {
	return m.RecentFunc(ctx, days)
}

func newTestServer(t *testing.T, customers *mockCustomersUseCase, products *mockProductsUseCase, orders *mockOrdersUseCase) *httptest.Server {
	t.Helper()
	logger := zap.NewNop()
	router := NewRouter(
		customerctrl.NewCustomerController(customers, logger),
		productctrl.NewProductController(products, logger),
		orderctrl.NewOrderController(orders, logger),
		logger,
	)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func decodeBody(t *testing.T, resp *http.Response) map[string]json.RawMessage {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// The route paths and response keys are the operation contract the crmjob
// binary and external callers depend on. Driving the real jobs client against
// the real router keeps the two sides from drifting apart.
func TestRouter_JobClientRoundTrips(t *testing.T) {
	customers := &mockCustomersUseCase{
		CountFunc: func(ctx context.Context) (int64, error) { return 42, nil },
	}
	products := &mockProductsUseCase{
		UpdateLowStockFunc: func(ctx context.Context, req dto.UpdateLowStockRequest) (*dto.LowStockResult, error) {
			require.NotNil(t, req.IncrementBy)
			require.NotNil(t, req.Threshold)
			assert.Equal(t, 10, *req.IncrementBy)
			assert.Equal(t, 10, *req.Threshold)
			return &dto.LowStockResult{
				Success:         true,
				Message:         "Updated 1 low-stock products",
				UpdatedProducts: []dto.ProductDTO{{ID: 1, Name: "Widget", Stock: 15}},
			}, nil
		},
	}
	orders := &mockOrdersUseCase{
		CountFunc:   func(ctx context.Context) (int64, error) { return 17, nil },
		RevenueFunc: func(ctx context.Context) (decimal.Decimal, error) { return decimal.NewFromFloat(1234.50), nil },
		RecentFunc: func(ctx context.Context, days int) ([]dto.ReminderOrder, error) {
			assert.Equal(t, 7, days)
			return []dto.ReminderOrder{
				{ID: 7, OrderDate: time.Now().UTC(), Status: "pending", Customer: dto.ReminderCustomer{ID: 3, Email: "carol@example.com"}},
			}, nil
		},
	}
	srv := newTestServer(t, customers, products, orders)

	api := jobs.NewAPIClient(srv.URL, 5*time.Second)
	ctx := context.Background()

	hello, err := api.Hello(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Hello from CRM!", hello)

	customersCount, err := api.CustomersCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(42), customersCount)

	ordersCount, err := api.OrdersCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(17), ordersCount)

	revenue, err := api.OrdersRevenue(ctx)
	require.NoError(t, err)
	assert.True(t, revenue.Equal(decimal.NewFromFloat(1234.50)), "got %s", revenue)

	pending, err := api.PendingOrdersLastWeek(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, int64(7), pending[0].ID)
	assert.Equal(t, "carol@example.com", pending[0].Customer.Email)

	lowStock, err := api.UpdateLowStock(ctx, 10, 10)
	require.NoError(t, err)
	assert.Equal(t, "Updated 1 low-stock products", lowStock.Message)
	require.Len(t, lowStock.UpdatedProducts, 1)
	assert.Equal(t, "Widget", lowStock.UpdatedProducts[0].Name)
}

func TestRouter_ListResponseKeys(t *testing.T) {
	customers := &mockCustomersUseCase{
		ListFunc: func(ctx context.Context, req dto.CustomerListRequest) (*dto.CustomerConnection, error) {
			return &dto.CustomerConnection{Items: []dto.CustomerDTO{}, Page: 1, PageSize: 20}, nil
		},
	}
	products := &mockProductsUseCase{
		ListFunc: func(ctx context.Context, req dto.ProductListRequest) (*dto.ProductConnection, error) {
			return &dto.ProductConnection{Items: []dto.ProductDTO{}, Page: 1, PageSize: 20}, nil
		},
	}
	orders := &mockOrdersUseCase{
		ListFunc: func(ctx context.Context, req dto.OrderListRequest) (*dto.OrderConnection, error) {
			return &dto.OrderConnection{Items: []dto.OrderDTO{}, Page: 1, PageSize: 20}, nil
		},
	}
	srv := newTestServer(t, customers, products, orders)

	for path, key := range map[string]string{
		"/api/allCustomers": "allCustomers",
		"/api/allProducts":  "allProducts",
		"/api/allOrders":    "allOrders",
	} {
		resp, err := http.Post(srv.URL+path, "application/json", bytes.NewBufferString(`{}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)

		body := decodeBody(t, resp)
		assert.Contains(t, body, key, path)

		var conn struct {
			Items       []json.RawMessage `json:"items"`
			TotalCount  int64             `json:"totalCount"`
			HasNextPage bool              `json:"hasNextPage"`
		}
		require.NoError(t, json.Unmarshal(body[key], &conn))
		assert.NotNil(t, conn.Items, path)
	}
}

func TestRouter_CreateCustomerEnvelope(t *testing.T) {
	customers := &mockCustomersUseCase{
		CreateFunc: func(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResult, error) {
			assert.Equal(t, "Alice", req.Name)
			return &dto.CustomerResult{
				Success:  true,
				Message:  "Customer created successfully",
				Customer: &dto.CustomerDTO{ID: 1, Name: "Alice", Email: "alice@example.com"},
			}, nil
		},
	}
	srv := newTestServer(t, customers, &mockProductsUseCase{}, &mockOrdersUseCase{})

	resp, err := http.Post(srv.URL+"/api/createCustomer", "application/json",
		bytes.NewBufferString(`{"name":"Alice","email":"alice@example.com"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Contains(t, body, "success")
	assert.Contains(t, body, "message")
	assert.Contains(t, body, "errors")
	assert.Contains(t, body, "customer")
}

func TestRouter_CreateCustomerBadJSON(t *testing.T) {
	srv := newTestServer(t, &mockCustomersUseCase{}, &mockProductsUseCase{}, &mockOrdersUseCase{})

	resp, err := http.Post(srv.URL+"/api/createCustomer", "application/json",
		bytes.NewBufferString(`{not json`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.JSONEq(t, `false`, string(body["success"]))
}

func TestRouter_OrdersRecentDaysParam(t *testing.T) {
	orders := &mockOrdersUseCase{
		RecentFunc: func(ctx context.Context, days int) ([]dto.ReminderOrder, error) {
			assert.Equal(t, 3, days)
			return []dto.ReminderOrder{}, nil
		},
	}
	srv := newTestServer(t, &mockCustomersUseCase{}, &mockProductsUseCase{}, orders)

	resp, err := http.Get(srv.URL + "/api/ordersRecent?days=3")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Contains(t, body, "ordersRecent")

	resp, err = http.Get(srv.URL + "/api/ordersRecent?days=zero")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_Health(t *testing.T) {
	srv := newTestServer(t, &mockCustomersUseCase{}, &mockProductsUseCase{}, &mockOrdersUseCase{})

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
