package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"crmd/internal/domain"
	apperrors "crmd/internal/errors"
	"crmd/internal/filter"
)

const (
	mysqlErrDuplicateEntry = 1062
	mysqlErrInvalidRegexp  = 3135
)

type MySQLCustomerRepository struct {
	db *sql.DB
}

func NewMySQLCustomerRepository(db *sql.DB) *MySQLCustomerRepository {
	return &MySQLCustomerRepository{db: db}
}

// Insert persists a new customer. A duplicate-key violation on the unique
// email index surfaces as ConflictError so races against concurrent creates
// stay a validation failure for the caller.
func (r *MySQLCustomerRepository) Insert(ctx context.Context, c domain.Customer) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO customers (name, email, phone, created_at) VALUES (?, ?, ?, ?)`,
		c.Name, c.Email, c.Phone, c.CreatedAt,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry {
			return 0, apperrors.NewConflictError("email already exists")
		}
		return 0, fmt.Errorf("inserting customer: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading customer id: %w", err)
	}
	return id, nil
}

func (r *MySQLCustomerRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM customers WHERE LOWER(email) = LOWER(?))`,
		email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking email existence: %w", err)
	}
	return exists, nil
}

func (r *MySQLCustomerRepository) FindByID(ctx context.Context, id int64) (*domain.Customer, error) {
	var c domain.Customer
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, phone, created_at FROM customers WHERE id = ?`,
		id,
	).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("customer not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying customer: %w", err)
	}
	return &c, nil
}

func (r *MySQLCustomerRepository) List(ctx context.Context, pred filter.Predicate, limit, offset int) ([]domain.Customer, error) {
	query := `SELECT id, name, email, phone, created_at FROM customers`
	if pred.Where != "" {
		query += " WHERE " + pred.Where
	}
	query += " ORDER BY " + pred.OrderBy + " LIMIT ? OFFSET ?"

	args := append(append([]interface{}{}, pred.Args...), limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, queryError("querying customers", err)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning customer row: %w", err)
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating customer rows: %w", err)
	}

	return customers, nil
}

func (r *MySQLCustomerRepository) Count(ctx context.Context, pred filter.Predicate) (int64, error) {
	query := `SELECT COUNT(*) FROM customers`
	if pred.Where != "" {
		query += " WHERE " + pred.Where
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, query, pred.Args...).Scan(&count); err != nil {
		return 0, queryError("counting customers", err)
	}
	return count, nil
}

// queryError keeps the phone REGEXP criterion a validation concern: Go's
// regexp syntax and MySQL's ICU engine do not fully overlap, so a pattern
// that compiled in-process can still be rejected by the store at query time.
func queryError(op string, err error) error {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrInvalidRegexp {
		return apperrors.NewValidationError("invalid phone pattern", apperrors.ValidationDetail{
			Field:   "phonePattern",
			Message: "phonePattern is not a valid regular expression for the store",
		})
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (r *MySQLCustomerRepository) CountAll(ctx context.Context) (int64, error) {
	return r.Count(ctx, filter.Predicate{})
}
