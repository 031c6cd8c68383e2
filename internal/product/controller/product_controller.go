package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"crmd/internal/dto"
)

type ProductsUseCase interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResult, error)
	UpdateLowStock(ctx context.Context, req dto.UpdateLowStockRequest) (*dto.LowStockResult, error)
	List(ctx context.Context, req dto.ProductListRequest) (*dto.ProductConnection, error)
}

type ProductController struct {
	useCase ProductsUseCase
	logger  *zap.Logger
}

func NewProductController(useCase ProductsUseCase, logger *zap.Logger) *ProductController {
	return &ProductController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// A malformed price (not a decimal) fails here too.
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeJSON(w, http.StatusBadRequest, dto.ProductResult{
			Success: false,
			Message: "invalid JSON body",
			Errors:  []string{"request body must be valid JSON with a decimal price"},
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

func (c *ProductController) UpdateLowStockProducts(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.UpdateLowStockRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Warn("invalid JSON body", zap.Error(err))
			c.writeJSON(w, http.StatusBadRequest, dto.LowStockResult{
				Success: false,
				Message: "invalid JSON body",
				Errors:  []string{"request body must be valid JSON"},
			})
			return
		}
	}

	result, err := c.useCase.UpdateLowStock(r.Context(), req)
	if err != nil {
		c.writeInternalError(w, logger, err)
		return
	}

	c.writeJSON(w, http.StatusOK, result)
}

func (c *ProductController) AllProducts(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.ProductListRequest
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

	c.writeJSON(w, http.StatusOK, map[string]interface{}{"allProducts": connection})
}

func (c *ProductController) writeInternalError(w http.ResponseWriter, logger *zap.Logger, err error) {
	logger.Error("unexpected error", zap.Error(err))
	c.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred")
}

func (c *ProductController) writeError(w http.ResponseWriter, status int, code, message string) {
	c.writeJSON(w, status, map[string]string{"error": code, "message": message})
}

func (c *ProductController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
