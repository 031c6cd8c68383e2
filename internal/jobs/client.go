package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"crmd/internal/dto"
)

// APIClient is the thin HTTP client the periodic jobs use against the CRM
// API. Each job makes exactly one round trip per invocation.
type APIClient struct {
	baseURL string
	client  *http.Client
}

func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *APIClient) Hello(ctx context.Context) (string, error) {
	var out struct {
		Hello string `json:"hello"`
	}
	if err := c.get(ctx, "/api/hello", &out); err != nil {
		return "", err
	}
	return out.Hello, nil
}

func (c *APIClient) UpdateLowStock(ctx context.Context, incrementBy, threshold int) (*dto.LowStockResult, error) {
	req := dto.UpdateLowStockRequest{
		IncrementBy: &incrementBy,
		Threshold:   &threshold,
	}

	var out dto.LowStockResult
	if err := c.post(ctx, "/api/updateLowStockProducts", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) PendingOrdersLastWeek(ctx context.Context) ([]dto.ReminderOrder, error) {
	var out struct {
		Orders []dto.ReminderOrder `json:"pendingOrdersLastWeek"`
	}
	if err := c.get(ctx, "/api/pendingOrdersLastWeek", &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

func (c *APIClient) CustomersCount(ctx context.Context) (int64, error) {
	var out struct {
		Count int64 `json:"customersCount"`
	}
	if err := c.get(ctx, "/api/customersCount", &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

func (c *APIClient) OrdersCount(ctx context.Context) (int64, error) {
	var out struct {
		Count int64 `json:"ordersCount"`
	}
	if err := c.get(ctx, "/api/ordersCount", &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

func (c *APIClient) OrdersRevenue(ctx context.Context) (decimal.Decimal, error) {
	var out struct {
		Revenue decimal.Decimal `json:"ordersRevenue"`
	}
	if err := c.get(ctx, "/api/ordersRevenue", &out); err != nil {
		return decimal.Zero, err
	}
	return out.Revenue, nil
}

func (c *APIClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	return c.do(req, out)
}

func (c *APIClient) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *APIClient) do(req *http.Request, out interface{}) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("calling %s: unexpected status %d", req.URL.Path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", req.URL.Path, err)
	}
	return nil
}
