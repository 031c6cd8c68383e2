package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"crmd/internal/domain"
	"crmd/internal/dto"
	apperrors "crmd/internal/errors"
	"crmd/internal/filter"
)

const DefaultRecentDays = 7

// OrderWriter performs the transactional order write; see service.OrderService.
type OrderWriter interface {
	CreateOrder(ctx context.Context, order domain.Order) (int64, error)
}

type OrderRepository interface {
	List(ctx context.Context, pred filter.Predicate, limit, offset int) ([]domain.Order, error)
	Count(ctx context.Context, pred filter.Predicate) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	Revenue(ctx context.Context) (decimal.Decimal, error)
	FindPendingSince(ctx context.Context, cutoff time.Time) ([]domain.Order, error)
}

type CustomerRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Customer, error)
}

type ProductRepository interface {
	FindByIDs(ctx context.Context, ids []int64) ([]domain.Product, error)
}

type OrdersUseCase struct {
	writer       OrderWriter
	orderRepo    OrderRepository
	customerRepo CustomerRepository
	productRepo  ProductRepository
	logger       *zap.Logger
	now          func() time.Time
}

func NewOrdersUseCase(
	writer OrderWriter,
	orderRepo OrderRepository,
	customerRepo CustomerRepository,
	productRepo ProductRepository,
	logger *zap.Logger,
) *OrdersUseCase {
	return &OrdersUseCase{
		writer:       writer,
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Create places an order for an existing customer over an existing set of
// products. The referenced ids are resolved first; the row, its product
// associations and the computed total then commit in one transaction.
// Validation and lookup failures come back as success=false results, never
// as errors.
func (uc *OrdersUseCase) Create(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderResult, error) {
	productIDs := dedupe(req.ProductIDs)

	var errs []string
	if req.CustomerID <= 0 {
		errs = append(errs, "customerId is required")
	}
	if len(productIDs) == 0 {
		errs = append(errs, "productIds must not be empty")
	}
	if len(errs) > 0 {
		return orderFailure(errs), nil
	}

	customer, err := uc.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return orderFailure([]string{"customer not found"}), nil
		}
		return nil, err
	}

	products, err := uc.productRepo.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	if len(products) != len(productIDs) {
		return orderFailure([]string{"one or more products not found"}), nil
	}

	order := domain.Order{
		CustomerID:  customer.ID,
		Customer:    customer,
		Products:    products,
		OrderDate:   uc.now(),
		Status:      domain.OrderStatusPending,
		TotalAmount: domain.OrderTotal(products),
	}

	orderID, err := uc.writer.CreateOrder(ctx, order)
	if err != nil {
		return nil, err
	}
	order.ID = orderID

	uc.logger.Info("order created",
		zap.Int64("orderId", orderID),
		zap.Int64("customerId", customer.ID),
		zap.Int("productCount", len(products)),
		zap.String("totalAmount", order.TotalAmount.String()),
	)

	result := dto.NewOrderDTO(order)
	return &dto.OrderResult{
		Success: true,
		Message: "Order created successfully",
		Order:   &result,
	}, nil
}

func (uc *OrdersUseCase) List(ctx context.Context, req dto.OrderListRequest) (*dto.OrderConnection, error) {
	pred := filter.Orders(req.Filter, req.OrderBy)

	page, pageSize := dto.NormalizePage(req.Page.Page, req.PageSize)
	offset := (page - 1) * pageSize

	orders, err := uc.orderRepo.List(ctx, pred, pageSize, offset)
	if err != nil {
		return nil, err
	}

	total, err := uc.orderRepo.Count(ctx, pred)
	if err != nil {
		return nil, err
	}

	items := make([]dto.OrderDTO, 0, len(orders))
	for _, o := range orders {
		items = append(items, dto.NewOrderDTO(o))
	}

	return &dto.OrderConnection{
		Items:       items,
		TotalCount:  total,
		Page:        page,
		PageSize:    pageSize,
		HasNextPage: int64(offset+len(items)) < total,
	}, nil
}

func (uc *OrdersUseCase) Count(ctx context.Context) (int64, error) {
	return uc.orderRepo.CountAll(ctx)
}

func (uc *OrdersUseCase) Revenue(ctx context.Context) (decimal.Decimal, error) {
	return uc.orderRepo.Revenue(ctx)
}

// Recent returns the reminder projection of pending orders placed within
// the last days days, newest first.
func (uc *OrdersUseCase) Recent(ctx context.Context, days int) ([]dto.ReminderOrder, error) {
	if days <= 0 {
		days = DefaultRecentDays
	}
	cutoff := uc.now().AddDate(0, 0, -days)

	orders, err := uc.orderRepo.FindPendingSince(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ReminderOrder, 0, len(orders))
	for _, o := range orders {
		item := dto.ReminderOrder{
			ID:        o.ID,
			OrderDate: o.OrderDate,
			Status:    o.Status,
		}
		if o.Customer != nil {
			item.Customer = dto.ReminderCustomer{ID: o.Customer.ID, Email: o.Customer.Email}
		}
		items = append(items, item)
	}
	return items, nil
}

func orderFailure(errs []string) *dto.OrderResult {
	return &dto.OrderResult{
		Success: false,
		Message: "order validation failed",
		Errors:  errs,
	}
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	var out []int64
	for _, id := range ids {
		if id <= 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
