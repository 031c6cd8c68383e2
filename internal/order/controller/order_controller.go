package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"crmd/internal/dto"
	"crmd/internal/order/usecase"
)

type OrdersUseCase interface {
	Create(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderResult, error)
	List(ctx context.Context, req dto.OrderListRequest) (*dto.OrderConnection, error)
	Count(ctx context.Context) (int64, error)
	Revenue(ctx context.Context) (decimal.Decimal, error)
	Recent(ctx context.Context, days int) ([]dto.ReminderOrder, error)
}

type OrderController struct {
	useCase OrdersUseCase
	logger  *zap.Logger
}

func NewOrderController(useCase OrdersUseCase, logger *zap.Logger) *OrderController {
	return &OrderController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeJSON(w, http.StatusBadRequest, dto.OrderResult{
			Success: false,
			Message: "invalid JSON body",
			Errors:  []string{"request body must be valid JSON"},
		})
		return
	}

	result, err := c.useCase.Create(r.Context(), req)
	if err != nil {
		c.writeInternalError(w, logger, err)
		return
	}

	c.writeJSON(w, http.StatusOK, result)
}

func (c *OrderController) AllOrders(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.OrderListRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Warn("invalid JSON body", zap.Error(err))
			c.writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "request body must be valid JSON")
			return
		}
	}

	connection, err := c.useCase.List(r.Context(), req)
	if err != nil {
		c.writeInternalError(w, logger, err)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{"allOrders": connection})
}

func (c *OrderController) OrdersCount(w http.ResponseWriter, r *http.Request) {
	count, err := c.useCase.Count(r.Context())
	if err != nil {
		c.writeInternalError(w, c.logger, err)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]int64{"ordersCount": count})
}

func (c *OrderController) OrdersRevenue(w http.ResponseWriter, r *http.Request) {
	revenue, err := c.useCase.Revenue(r.Context())
	if err != nil {
		c.writeInternalError(w, c.logger, err)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]decimal.Decimal{"ordersRevenue": revenue})
}

// OrdersRecent serves pending orders within the last N days; days comes from
// the query string and defaults to 7.
func (c *OrderController) OrdersRecent(w http.ResponseWriter, r *http.Request) {
	days := usecase.DefaultRecentDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "days must be a positive integer")
			return
		}
		days = parsed
	}

	orders, err := c.useCase.Recent(r.Context(), days)
	if err != nil {
		c.writeInternalError(w, c.logger, err)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{"ordersRecent": orders})
}

// PendingOrdersLastWeek is ordersRecent fixed at the default window.
func (c *OrderController) PendingOrdersLastWeek(w http.ResponseWriter, r *http.Request) {
	orders, err := c.useCase.Recent(r.Context(), usecase.DefaultRecentDays)
	if err != nil {
		c.writeInternalError(w, c.logger, err)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{"pendingOrdersLastWeek": orders})
}

func (c *OrderController) writeInternalError(w http.ResponseWriter, logger *zap.Logger, err error) {
	logger.Error("unexpected error", zap.Error(err))
	c.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred")
}

func (c *OrderController) writeError(w http.ResponseWriter, status int, code, message string) {
	c.writeJSON(w, status, map[string]string{"error": code, "message": message})
}

func (c *OrderController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
