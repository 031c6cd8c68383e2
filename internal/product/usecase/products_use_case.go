package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"crmd/internal/domain"
	"crmd/internal/dto"
	"crmd/internal/filter"
)

const (
	DefaultLowStockIncrement = 10
	DefaultLowStockThreshold = 10
)

type ProductRepository interface {
	Insert(ctx context.Context, p domain.Product) (int64, error)
	List(ctx context.Context, pred filter.Predicate, limit, offset int) ([]domain.Product, error)
	Count(ctx context.Context, pred filter.Predicate) (int64, error)
	FindBelowStock(ctx context.Context, threshold int) ([]domain.Product, error)
	IncrementStock(ctx context.Context, id int64, by int) error
}

type ProductsUseCase struct {
	repo   ProductRepository
	logger *zap.Logger
}

func NewProductsUseCase(repo ProductRepository, logger *zap.Logger) *ProductsUseCase {
	return &ProductsUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *ProductsUseCase) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResult, error) {
	var errs []string
	if strings.TrimSpace(req.Name) == "" {
		errs = append(errs, "name is required")
	}
	if req.Stock < 0 {
		errs = append(errs, "stock must not be negative")
	}
	if req.Price.IsNegative() {
		errs = append(errs, "price must not be negative")
	}
	if len(errs) > 0 {
		return &dto.ProductResult{
			Success: false,
			Message: "product validation failed",
			Errors:  errs,
		}, nil
	}

	product := domain.Product{
		Name:  req.Name,
		Stock: req.Stock,
		Price: req.Price,
	}

	id, err := uc.repo.Insert(ctx, product)
	if err != nil {
		return nil, err
	}
	product.ID = id

	uc.logger.Info("product created", zap.Int64("productId", id), zap.String("name", product.Name))

	result := dto.NewProductDTO(product)
	return &dto.ProductResult{
		Success: true,
		Message: "Product created successfully",
		Product: &result,
	}, nil
}

// UpdateLowStock replenishes every product below the threshold and returns
// the updated set. Concurrent runs are not serialized: each increment is a
// single atomic statement, but two overlapping runs can both replenish a
// product that was below the threshold when they started.
func (uc *ProductsUseCase) UpdateLowStock(ctx context.Context, req dto.UpdateLowStockRequest) (*dto.LowStockResult, error) {
	incrementBy := DefaultLowStockIncrement
	if req.IncrementBy != nil {
		incrementBy = *req.IncrementBy
	}
	threshold := DefaultLowStockThreshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}

	if incrementBy < 0 {
		return &dto.LowStockResult{
			Success: false,
			Message: "low-stock validation failed",
			Errors:  []string{"incrementBy must not be negative"},
		}, nil
	}

	lowStock, err := uc.repo.FindBelowStock(ctx, threshold)
	if err != nil {
		return nil, err
	}

	updated := []dto.ProductDTO{}
	for _, p := range lowStock {
		if err := uc.repo.IncrementStock(ctx, p.ID, incrementBy); err != nil {
			return nil, err
		}
		p.Stock += incrementBy
		updated = append(updated, dto.NewProductDTO(p))
	}

	uc.logger.Info("low-stock products replenished",
		zap.Int("count", len(updated)),
		zap.Int("incrementBy", incrementBy),
		zap.Int("threshold", threshold),
	)

	return &dto.LowStockResult{
		Success:         true,
		Message:         fmt.Sprintf("Updated %d low-stock products", len(updated)),
		UpdatedProducts: updated,
	}, nil
}

func (uc *ProductsUseCase) List(ctx context.Context, req dto.ProductListRequest) (*dto.ProductConnection, error) {
	pred := filter.Products(req.Filter, req.OrderBy)

	page, pageSize := dto.NormalizePage(req.Page.Page, req.PageSize)
	offset := (page - 1) * pageSize

	products, err := uc.repo.List(ctx, pred, pageSize, offset)
	if err != nil {
		return nil, err
	}

	total, err := uc.repo.Count(ctx, pred)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ProductDTO, 0, len(products))
	for _, p := range products {
		items = append(items, dto.NewProductDTO(p))
	}

	return &dto.ProductConnection{
		Items:       items,
		TotalCount:  total,
		Page:        page,
		PageSize:    pageSize,
		HasNextPage: int64(offset+len(items)) < total,
	}, nil
}
