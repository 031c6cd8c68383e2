package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"crmd/internal/dto"
	apperrors "crmd/internal/errors"
)

type CustomersUseCase interface {
	Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResult, error)
	BulkCreate(ctx context.Context, req dto.BulkCreateCustomersRequest) (*dto.BulkCustomersResult, error)
	List(ctx context.Context, req dto.CustomerListRequest) (*dto.CustomerConnection, error)
	Count(ctx context.Context) (int64, error)
}

type CustomerController struct {
	useCase CustomersUseCase
	logger  *zap.Logger
}

func NewCustomerController(useCase CustomersUseCase, logger *zap.Logger) *CustomerController {
	return &CustomerController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *CustomerController) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeJSON(w, http.StatusBadRequest, dto.CustomerResult{
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

func (c *CustomerController) BulkCreateCustomers(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.BulkCreateCustomersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeJSON(w, http.StatusBadRequest, dto.BulkCustomersResult{
			Success: false,
			Message: "invalid JSON body",
			Errors:  []string{"request body must be valid JSON"},
		})
		return
	}

	result, err := c.useCase.BulkCreate(r.Context(), req)
	if err != nil {
		c.writeInternalError(w, logger, err)
		return
	}

	c.writeJSON(w, http.StatusOK, result)
}

func (c *CustomerController) AllCustomers(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.CustomerListRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Warn("invalid JSON body", zap.Error(err))
			c.writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "request body must be valid JSON")
			return
		}
	}

	connection, err := c.useCase.List(r.Context(), req)
	if err != nil {
		if ve, ok := apperrors.IsValidationError(err); ok {
			c.writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", ve.Message)
			return
		}
		c.writeInternalError(w, logger, err)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{"allCustomers": connection})
}

func (c *CustomerController) CustomersCount(w http.ResponseWriter, r *http.Request) {
	count, err := c.useCase.Count(r.Context())
	if err != nil {
		c.writeInternalError(w, c.logger, err)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]int64{"customersCount": count})
}

func (c *CustomerController) writeInternalError(w http.ResponseWriter, logger *zap.Logger, err error) {
	logger.Error("unexpected error", zap.Error(err))
	c.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred")
}

func (c *CustomerController) writeError(w http.ResponseWriter, status int, code, message string) {
	c.writeJSON(w, status, map[string]string{"error": code, "message": message})
}

func (c *CustomerController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
