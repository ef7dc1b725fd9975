package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory_backend/internal/models"
)

var productRowColumns = []string{
	"id", "user_id", "category_id", "company_id", "name", "shelf_number", "barcode",
	"purchase_price", "retail_price", "created_at", "updated_at",
}

func TestCreateProductDuplicateBarcode(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO products")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "products_user_barcode_key"})

	product := &models.Product{
		UserID: 1, CategoryID: 2, CompanyID: 3, Name: "Cable", ShelfNumber: "A1", Barcode: "123",
		PurchasePrice: decimal.RequireFromString("1.50"), RetailPrice: decimal.RequireFromString("2.00"),
	}
	_, err = repo.CreateProduct(context.Background(), db, product)
	assert.True(t, errors.Is(err, ErrDuplicateKey))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProductByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductRepository(db)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM products p WHERE p.id = $1")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(productRowColumns).
			AddRow(5, 1, 2, 3, "Cable", "A1", "123", "1.50", "2.00", now, now))

	product, err := repo.GetProductByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), product.UserID)
	assert.True(t, product.PurchasePrice.Equal(decimal.RequireFromString("1.5")))
	assert.True(t, product.RetailPrice.Equal(decimal.RequireFromString("2")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProductsJoinsCategoryAndCompany(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM products p WHERE p.user_id = $1")).
		WithArgs(int64(1), "%%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	cols := append(append([]string{}, productRowColumns...), "cat_id", "cat_name", "co_id", "co_name")
	mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN categories c ON c.id = p.category_id")).
		WithArgs(int64(1), "%%", 10, 10).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(5, 1, 2, 3, "Cable", "A1", "123", "1.50", "2.00", now, now, 2, "Electronics", 3, "Acme").
			AddRow(6, 1, 2, 3, "Drill", "B2", "456", "10.00", "12.00", now, now, nil, nil, nil, nil))

	products, total, err := repo.GetProducts(context.Background(), 1, "", models.NewPageRequest(2, 10))
	require.NoError(t, err)
	assert.Equal(t, 12, total)
	require.Len(t, products, 2)
	assert.Equal(t, &models.Option{ID: 2, Name: "Electronics"}, products[0].Category)
	assert.Equal(t, &models.Option{ID: 3, Name: "Acme"}, products[0].Company)
	assert.Nil(t, products[1].Category)
	assert.Nil(t, products[1].Company)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBarcodeExistsExcludesProduct(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("AND barcode = $2 AND id <> $3")).
		WithArgs(int64(1), "123", int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.BarcodeExists(context.Background(), 1, "123", 5)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProduct(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE products SET")).
		WithArgs(int64(2), int64(3), "Cable", "A1", "123", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), int64(5), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	product := &models.Product{
		ID: 5, UserID: 1, CategoryID: 2, CompanyID: 3, Name: "Cable", ShelfNumber: "A1", Barcode: "123",
		PurchasePrice: decimal.RequireFromString("1.50"), RetailPrice: decimal.RequireFromString("2.00"),
	}
	require.NoError(t, repo.UpdateProduct(context.Background(), db, product))
	assert.False(t, product.UpdatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteProductNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products WHERE id = $1")).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.DeleteProduct(context.Background(), db, 9)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
