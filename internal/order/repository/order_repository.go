package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"crmd/internal/domain"
	"crmd/internal/filter"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

// InsertTx writes the order row inside the caller's transaction. The total
// is fixed here and never touched again.
func (r *MySQLOrderRepository) InsertTx(ctx context.Context, tx *sql.Tx, o domain.Order) (int64, error) {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO orders (customer_id, order_date, status, total_amount) VALUES (?, ?, ?, ?)`,
		o.CustomerID, o.OrderDate, o.Status, o.TotalAmount,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting order: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading order id: %w", err)
	}
	return id, nil
}

func (r *MySQLOrderRepository) AssociateProductTx(ctx context.Context, tx *sql.Tx, orderID, productID int64) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO order_products (order_id, product_id) VALUES (?, ?)`,
		orderID, productID,
	)
	if err != nil {
		return fmt.Errorf("associating product %d with order %d: %w", productID, orderID, err)
	}
	return nil
}

// List returns one page of orders with their owning customer joined in.
// Associated products are not loaded here; the connection items expose the
// order's own fields plus the customer.
func (r *MySQLOrderRepository) List(ctx context.Context, pred filter.Predicate, limit, offset int) ([]domain.Order, error) {
	query := `
		SELECT o.id, o.customer_id, o.order_date, o.status, o.total_amount,
		       c.id, c.name, c.email, c.phone, c.created_at
		FROM orders o
		JOIN customers c ON c.id = o.customer_id`
	if pred.Where != "" {
		query += " WHERE " + pred.Where
	}
	query += " ORDER BY " + pred.OrderBy + " LIMIT ? OFFSET ?"

	args := append(append([]interface{}{}, pred.Args...), limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		var c domain.Customer
		err := rows.Scan(
			&o.ID, &o.CustomerID, &o.OrderDate, &o.Status, &o.TotalAmount,
			&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}
		o.Customer = &c
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	return orders, nil
}

func (r *MySQLOrderRepository) Count(ctx context.Context, pred filter.Predicate) (int64, error) {
	query := `SELECT COUNT(*) FROM orders o JOIN customers c ON c.id = o.customer_id`
	if pred.Where != "" {
		query += " WHERE " + pred.Where
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, query, pred.Args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting orders: %w", err)
	}
	return count, nil
}

func (r *MySQLOrderRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting orders: %w", err)
	}
	return count, nil
}

// Revenue sums total_amount across all orders; an empty table yields zero,
// never null.
func (r *MySQLOrderRepository) Revenue(ctx context.Context) (decimal.Decimal, error) {
	var revenue decimal.Decimal
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(total_amount), 0) FROM orders`,
	).Scan(&revenue)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing order revenue: %w", err)
	}
	return revenue, nil
}

// FindPendingSince returns pending orders placed at or after cutoff, newest
// first, with the customer joined in for the reminder projection.
func (r *MySQLOrderRepository) FindPendingSince(ctx context.Context, cutoff time.Time) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT o.id, o.customer_id, o.order_date, o.status, o.total_amount,
		       c.id, c.name, c.email, c.phone, c.created_at
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE o.status = ? AND o.order_date >= ?
		ORDER BY o.order_date DESC, o.id ASC`,
		domain.OrderStatusPending, cutoff,
	)
	if err != nil {
		return nil, fmt.Errorf("querying pending orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		var c domain.Customer
		err := rows.Scan(
			&o.ID, &o.CustomerID, &o.OrderDate, &o.Status, &o.TotalAmount,
			&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning pending order row: %w", err)
		}
		o.Customer = &c
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pending order rows: %w", err)
	}

	return orders, nil
}
