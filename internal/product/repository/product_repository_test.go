package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmd/internal/dto"
	"crmd/internal/filter"
	"crmd/internal/testutil"
)

// Unit Tests

func TestNewMySQLProductRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLProductRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

// Integration Tests

func TestProductRepository_FindByIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)

	widgetID := insertProduct(t, db, "Widget", 10, "9.99")
	insertProduct(t, db, "Gadget", 5, "19.99")
	gizmoID := insertProduct(t, db, "Gizmo", 0, "4.50")

	products, err := repo.FindByIDs(context.Background(), []int64{widgetID, gizmoID, 999999})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Widget", products[0].Name)
	assert.True(t, products[0].Price.Equal(decimal.NewFromFloat(9.99)))
	assert.Equal(t, "Gizmo", products[1].Name)
}

func TestProductRepository_FindByIDs_EmptyList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)

	products, err := repo.FindByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, products)
}

func TestProductRepository_List_PriceRange(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)

	_, err := db.Exec(`
		INSERT INTO products (name, stock, price)
		VALUES ('Cheap', 10, 1.00),
		       ('Mid', 10, 10.00),
		       ('Dear', 10, 100.00)
	`)
	require.NoError(t, err)

	gte := decimal.NewFromInt(5)
	lte := decimal.NewFromInt(50)
	pred := filter.Products(dto.ProductFilter{PriceGte: &gte, PriceLte: &lte}, nil)

	products, err := repo.List(context.Background(), pred, 10, 0)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Mid", products[0].Name)

	count, err := repo.Count(context.Background(), pred)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestProductRepository_FindBelowStock(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)

	_, err := db.Exec(`
		INSERT INTO products (name, stock, price)
		VALUES ('Plenty', 50, 1.00),
		       ('Low', 3, 1.00),
		       ('Boundary', 10, 1.00)
	`)
	require.NoError(t, err)

	products, err := repo.FindBelowStock(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Low", products[0].Name)
}

func TestProductRepository_IncrementStock(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)

	id := insertProduct(t, db, "Widget", 5, "1.00")

	err := repo.IncrementStock(context.Background(), id, 10)
	require.NoError(t, err)

	var stock int
	err = db.QueryRow(`SELECT stock FROM products WHERE id = ?`, id).Scan(&stock)
	require.NoError(t, err)
	assert.Equal(t, 15, stock)
}

func insertProduct(t *testing.T, db *sql.DB, name string, stock int, price string) int64 {
	t.Helper()
	res, err := db.Exec(`INSERT INTO products (name, stock, price) VALUES (?, ?, ?)`, name, stock, price)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}
