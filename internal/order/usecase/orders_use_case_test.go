package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"crmd/internal/domain"
	"crmd/internal/dto"
	apperrors "crmd/internal/errors"
	"crmd/internal/filter"
)

type mockOrderWriter struct {
	CreateOrderFunc func(ctx context.Context, order domain.Order) (int64, error)
}

func (m *mockOrderWriter) CreateOrder(ctx context.Context, order domain.Order) (int64, error) {
	return m.CreateOrderFunc(ctx, order)
}

type mockOrderRepository struct {
	ListFunc             func(ctx context.Context, pred filter.Predicate, limit, offset int) ([]domain.Order, error)
	CountFunc            func(ctx context.Context, pred filter.Predicate) (int64, error)
	CountAllFunc         func(ctx context.Context) (int64, error)
	RevenueFunc          func(ctx context.Context) (decimal.Decimal, error)
	FindPendingSinceFunc func(ctx context.Context, cutoff time.Time) ([]domain.Order, error)
}

func (m *mockOrderRepository) List(ctx context.Context, pred filter.Predicate, limit, offset int) ([]domain.Order, error) {
	return m.ListFunc(ctx, pred, limit, offset)
}

func (m *mockOrderRepository) Count(ctx context.Context, pred filter.Predicate) (int64, error) {
	return m.CountFunc(ctx, pred)
}

func (m *mockOrderRepository) CountAll(ctx context.Context) (int64, error) {
	return m.CountAllFunc(ctx)
}

func (m *mockOrderRepository) Revenue(ctx context.Context) (decimal.Decimal, error) {
	return m.RevenueFunc(ctx)
}

func (m *mockOrderRepository) FindPendingSince(ctx context.Context, cutoff time.Time) ([]domain.Order, error) {
	return m.FindPendingSinceFunc(ctx, cutoff)
}

type mockCustomerRepository struct {
	FindByIDFunc func(ctx context.Context, id int64) (*domain.Customer, error)
}

func (m *mockCustomerRepository) FindByID(ctx context.Context, id int64) (*domain.Customer, error) {
	return m.FindByIDFunc(ctx, id)
}

type mockProductRepository struct {
	FindByIDsFunc func(ctx context.Context, ids []int64) ([]domain.Product, error)
}

func (m *mockProductRepository) FindByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	return m.FindByIDsFunc(ctx, ids)
}

func knownCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	return &domain.Customer{ID: id, Name: "Alice", Email: "alice@example.com"}, nil
}

func newTestOrdersUseCase(
	writer *mockOrderWriter,
	orderRepo *mockOrderRepository,
	customerRepo *mockCustomerRepository,
	productRepo *mockProductRepository,
) *OrdersUseCase {
	return NewOrdersUseCase(writer, orderRepo, customerRepo, productRepo, zap.NewNop())
}

func TestCreate_TotalIsSumOfProductPrices(t *testing.T) {
	var written domain.Order
	writer := &mockOrderWriter{
		CreateOrderFunc: func(ctx context.Context, order domain.Order) (int64, error) {
			written = order
			return 11, nil
		},
	}
	productRepo := &mockProductRepository{
		FindByIDsFunc: func(ctx context.Context, ids []int64) ([]domain.Product, error) {
			return []domain.Product{
				{ID: 1, Price: decimal.NewFromFloat(10.50)},
				{ID: 2, Price: decimal.NewFromFloat(4.25)},
			}, nil
		},
	}
	uc := newTestOrdersUseCase(writer, &mockOrderRepository{}, &mockCustomerRepository{FindByIDFunc: knownCustomer}, productRepo)

	result, err := uc.Create(context.Background(), dto.CreateOrderRequest{
		CustomerID: 1,
		ProductIDs: []int64{1, 2},
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	require.NotNil(t, result.Order)
	assert.Equal(t, int64(11), result.Order.ID)
	assert.True(t, written.TotalAmount.Equal(decimal.NewFromFloat(14.75)), "got %s", written.TotalAmount)
	assert.Equal(t, domain.OrderStatusPending, written.Status)
	assert.False(t, written.OrderDate.IsZero())
	assert.Equal(t, []int64{1, 2}, result.Order.ProductIDs)
}

func TestCreate_CustomerNotFound(t *testing.T) {
	customerRepo := &mockCustomerRepository{
		FindByIDFunc: func(ctx context.Context, id int64) (*domain.Customer, error) {
			return nil, apperrors.NewNotFoundError("customer not found")
		},
	}
	uc := newTestOrdersUseCase(&mockOrderWriter{}, &mockOrderRepository{}, customerRepo, &mockProductRepository{})

	result, err := uc.Create(context.Background(), dto.CreateOrderRequest{
		CustomerID: 99,
		ProductIDs: []int64{1},
	})
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Contains(t, result.Errors, "customer not found")
	assert.Nil(t, result.Order)
}

func TestCreate_UnresolvedProductRejectsWholeOrder(t *testing.T) {
	writerCalled := false
	writer := &mockOrderWriter{
		CreateOrderFunc: func(ctx context.Context, order domain.Order) (int64, error) {
			writerCalled = true
			return 1, nil
		},
	}
	productRepo := &mockProductRepository{
		FindByIDsFunc: func(ctx context.Context, ids []int64) ([]domain.Product, error) {
			// id 3 does not resolve
			return []domain.Product{{ID: 1}, {ID: 2}}, nil
		},
	}
	uc := newTestOrdersUseCase(writer, &mockOrderRepository{}, &mockCustomerRepository{FindByIDFunc: knownCustomer}, productRepo)

	result, err := uc.Create(context.Background(), dto.CreateOrderRequest{
		CustomerID: 1,
		ProductIDs: []int64{1, 2, 3},
	})
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Contains(t, result.Errors, "one or more products not found")
	assert.False(t, writerCalled, "no order must be written when a product is missing")
}

func TestCreate_DuplicateProductIDsCollapse(t *testing.T) {
	productRepo := &mockProductRepository{
		FindByIDsFunc: func(ctx context.Context, ids []int64) ([]domain.Product, error) {
			assert.Equal(t, []int64{1}, ids)
			return []domain.Product{{ID: 1, Price: decimal.NewFromInt(5)}}, nil
		},
	}
	writer := &mockOrderWriter{
		CreateOrderFunc: func(ctx context.Context, order domain.Order) (int64, error) {
			return 1, nil
		},
	}
	uc := newTestOrdersUseCase(writer, &mockOrderRepository{}, &mockCustomerRepository{FindByIDFunc: knownCustomer}, productRepo)

	result, err := uc.Create(context.Background(), dto.CreateOrderRequest{
		CustomerID: 1,
		ProductIDs: []int64{1, 1, 1},
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.True(t, result.Order.TotalAmount.Equal(decimal.NewFromInt(5)))
}

func TestCreate_EmptyProducts(t *testing.T) {
	uc := newTestOrdersUseCase(&mockOrderWriter{}, &mockOrderRepository{}, &mockCustomerRepository{}, &mockProductRepository{})

	result, err := uc.Create(context.Background(), dto.CreateOrderRequest{CustomerID: 1})
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Contains(t, result.Errors, "productIds must not be empty")
}

func TestRecent_WindowAndProjection(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	orderRepo := &mockOrderRepository{
		FindPendingSinceFunc: func(ctx context.Context, cutoff time.Time) ([]domain.Order, error) {
			assert.Equal(t, now.AddDate(0, 0, -7), cutoff)
			return []domain.Order{
				{
					ID:        4,
					OrderDate: now.Add(-24 * time.Hour),
					Status:    domain.OrderStatusPending,
					Customer:  &domain.Customer{ID: 2, Email: "bob@example.com"},
				},
			}, nil
		},
	}
	uc := newTestOrdersUseCase(&mockOrderWriter{}, orderRepo, &mockCustomerRepository{}, &mockProductRepository{})
	uc.now = func() time.Time { return now }

	orders, err := uc.Recent(context.Background(), 0) // 0 falls back to the default window
	require.NoError(t, err)

	require.Len(t, orders, 1)
	assert.Equal(t, int64(4), orders[0].ID)
	assert.Equal(t, "bob@example.com", orders[0].Customer.Email)
}

func TestRevenue_ZeroOnEmpty(t *testing.T) {
	orderRepo := &mockOrderRepository{
		RevenueFunc: func(ctx context.Context) (decimal.Decimal, error) {
			return decimal.Zero, nil
		},
	}
	uc := newTestOrdersUseCase(&mockOrderWriter{}, orderRepo, &mockCustomerRepository{}, &mockProductRepository{})

	revenue, err := uc.Revenue(context.Background())
	require.NoError(t, err)
	assert.True(t, revenue.IsZero())
}
