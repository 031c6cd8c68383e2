package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"crmd/internal/domain"
	"crmd/internal/filter"
)

type MySQLProductRepository struct {
	db *sql.DB
}

func NewMySQLProductRepository(db *sql.DB) *MySQLProductRepository {
	return &MySQLProductRepository{db: db}
}

func (r *MySQLProductRepository) Insert(ctx context.Context, p domain.Product) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO products (name, stock, price) VALUES (?, ?, ?)`,
		p.Name, p.Stock, p.Price,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting product: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading product id: %w", err)
	}
	return id, nil
}

// FindByIDs returns the products matching the given ids; ids that resolve to
// nothing are simply absent from the result.
func (r *MySQLProductRepository) FindByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, 0, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args = append(args, id)
	}

	query := fmt.Sprintf(
		`SELECT id, name, stock, price FROM products WHERE id IN (%s)`,
		strings.Join(placeholders, ", "),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *MySQLProductRepository) List(ctx context.Context, pred filter.Predicate, limit, offset int) ([]domain.Product, error) {
	query := `SELECT id, name, stock, price FROM products`
	if pred.Where != "" {
		query += " WHERE " + pred.Where
	}
	query += " ORDER BY " + pred.OrderBy + " LIMIT ? OFFSET ?"

	args := append(append([]interface{}{}, pred.Args...), limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *MySQLProductRepository) Count(ctx context.Context, pred filter.Predicate) (int64, error) {
	query := `SELECT COUNT(*) FROM products`
	if pred.Where != "" {
		query += " WHERE " + pred.Where
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, query, pred.Args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting products: %w", err)
	}
	return count, nil
}

func (r *MySQLProductRepository) FindBelowStock(ctx context.Context, threshold int) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, stock, price FROM products WHERE stock < ? ORDER BY name ASC, id ASC`,
		threshold,
	)
	if err != nil {
		return nil, fmt.Errorf("querying low-stock products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// IncrementStock adds by to the product's stock in a single statement, so
// each individual increment is atomic on the store side.
func (r *MySQLProductRepository) IncrementStock(ctx context.Context, id int64, by int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE products SET stock = stock + ? WHERE id = ?`,
		by, id,
	)
	if err != nil {
		return fmt.Errorf("incrementing stock: %w", err)
	}
	return nil
}

func scanProducts(rows *sql.Rows) ([]domain.Product, error) {
	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Stock, &p.Price); err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}
