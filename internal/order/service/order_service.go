package service

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"crmd/internal/domain"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type OrderRepository interface {
	InsertTx(ctx context.Context, tx *sql.Tx, o domain.Order) (int64, error)
	AssociateProductTx(ctx context.Context, tx *sql.Tx, orderID, productID int64) error
}

// OrderService owns the write transaction for order creation: the order row
// and all product associations are committed together or not at all.
type OrderService struct {
	db        TransactionManager
	orderRepo OrderRepository
	logger    *zap.Logger
}

func NewOrderService(db TransactionManager, orderRepo OrderRepository, logger *zap.Logger) *OrderService {
	return &OrderService{
		db:        db,
		orderRepo: orderRepo,
		logger:    logger,
	}
}

func (s *OrderService) CreateOrder(ctx context.Context, order domain.Order) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return 0, err
	}
	// Rollback is a no-op once the transaction committed.
	defer tx.Rollback()

	orderID, err := s.orderRepo.InsertTx(ctx, tx, order)
	if err != nil {
		return 0, err
	}

	for _, p := range order.Products {
		if err := s.orderRepo.AssociateProductTx(ctx, tx, orderID, p.ID); err != nil {
			s.logger.Error("failed to associate product, rolling back",
				zap.Int64("orderId", orderID), zap.Int64("productId", p.ID), zap.Error(err))
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit order", zap.Int64("orderId", orderID), zap.Error(err))
		return 0, err
	}

	return orderID, nil
}
