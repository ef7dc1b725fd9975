package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"inventory_backend/internal/models"
	"inventory_backend/pkg/utils"
)

// ProductRepository defines the interface for product-related database operations.
type ProductRepository interface {
	CreateProduct(ctx context.Context, executor SQLExecutor, product *models.Product) (int64, error)
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	GetProducts(ctx context.Context, userID int64, search string, page models.PageRequest) ([]models.Product, int, error) // Joins category and company names
	BarcodeExists(ctx context.Context, userID int64, barcode string, excludeID int64) (bool, error)
	UpdateProduct(ctx context.Context, executor SQLExecutor, product *models.Product) error
	DeleteProduct(ctx context.Context, executor SQLExecutor, id int64) error
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository.
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `p.id, p.user_id, p.category_id, p.company_id, p.name, p.shelf_number, p.barcode,
	            p.purchase_price, p.retail_price, p.created_at, p.updated_at`

func scanProduct(row scanner, product *models.Product, extra ...interface{}) error {
	dest := []interface{}{
		&product.ID, &product.UserID, &product.CategoryID, &product.CompanyID, &product.Name,
		&product.ShelfNumber, &product.Barcode, &product.PurchasePrice, &product.RetailPrice,
		&product.CreatedAt, &product.UpdatedAt,
	}
	return row.Scan(append(dest, extra...)...)
}

// CreateProduct inserts a new product into the database.
func (r *productRepository) CreateProduct(ctx context.Context, executor SQLExecutor, product *models.Product) (int64, error) {
	query := `INSERT INTO products
	          (user_id, category_id, company_id, name, shelf_number, barcode, purchase_price, retail_price, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          RETURNING id`

	currentTime := time.Now()
	product.CreatedAt = currentTime
	product.UpdatedAt = currentTime

	err := executor.QueryRowContext(ctx, query,
		product.UserID, product.CategoryID, product.CompanyID, product.Name, product.ShelfNumber,
		product.Barcode, product.PurchasePrice, product.RetailPrice, product.CreatedAt, product.UpdatedAt,
	).Scan(&product.ID)
	if err != nil {
		return 0, wrapWriteError(err, "creating product")
	}
	return product.ID, nil
}

// GetProductByID retrieves a product by its ID regardless of owner.
func (r *productRepository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	product := &models.Product{}
	query := `SELECT ` + productColumns + ` FROM products p WHERE p.id = $1`

	if err := scanProduct(r.db.QueryRowContext(ctx, query, id), product); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting product by ID %d: %v", ErrDatabaseError, id, err)
	}
	return product, nil
}

// GetProducts retrieves one page of a user's products with their category and company names.
func (r *productRepository) GetProducts(ctx context.Context, userID int64, search string, page models.PageRequest) ([]models.Product, int, error) {
	pattern := utils.ContainsPattern(search)

	var totalCount int
	countQuery := `SELECT COUNT(*) FROM products p WHERE p.user_id = $1 AND p.name ILIKE $2`
	if err := r.db.QueryRowContext(ctx, countQuery, userID, pattern).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("%w: counting products: %v", ErrDatabaseError, err)
	}

	products := []models.Product{}
	if totalCount == 0 {
		return products, 0, nil
	}

	query := `SELECT ` + productColumns + `,
	            c.id, c.name, co.id, co.name
	          FROM products p
	          LEFT JOIN categories c ON c.id = p.category_id
	          LEFT JOIN companies co ON co.id = p.company_id
	          WHERE p.user_id = $1 AND p.name ILIKE $2
	          ORDER BY LOWER(p.name) ASC, p.id ASC
	          LIMIT $3 OFFSET $4`
	rows, err := r.db.QueryContext(ctx, query, userID, pattern, page.PerPage, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying products: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var product models.Product
		var catID, coID sql.NullInt64
		var catName, coName sql.NullString
		if err := scanProduct(rows, &product, &catID, &catName, &coID, &coName); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning product: %v", ErrDatabaseError, err)
		}
		if catID.Valid {
			product.Category = &models.Option{ID: catID.Int64, Name: catName.String}
		}
		if coID.Valid {
			product.Company = &models.Option{ID: coID.Int64, Name: coName.String}
		}
		products = append(products, product)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating product rows: %v", ErrDatabaseError, err)
	}
	return products, totalCount, nil
}

// BarcodeExists reports whether userID already has a product with barcode.
// excludeID (0 for none) lets an update keep its own barcode.
func (r *productRepository) BarcodeExists(ctx context.Context, userID int64, barcode string, excludeID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM products WHERE user_id = $1 AND barcode = $2 AND id <> $3)`
	if err := r.db.QueryRowContext(ctx, query, userID, barcode, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: checking barcode uniqueness: %v", ErrDatabaseError, err)
	}
	return exists, nil
}

// UpdateProduct updates an existing product in the database.
func (r *productRepository) UpdateProduct(ctx context.Context, executor SQLExecutor, product *models.Product) error {
	query := `UPDATE products SET
	            category_id = $1, company_id = $2, name = $3, shelf_number = $4, barcode = $5,
	            purchase_price = $6, retail_price = $7, updated_at = $8
	          WHERE id = $9 AND user_id = $10`

	product.UpdatedAt = time.Now()
	result, err := executor.ExecContext(ctx, query,
		product.CategoryID, product.CompanyID, product.Name, product.ShelfNumber, product.Barcode,
		product.PurchasePrice, product.RetailPrice, product.UpdatedAt,
		product.ID, product.UserID,
	)
	if err != nil {
		return wrapWriteError(err, fmt.Sprintf("updating product ID %d", product.ID))
	}
	return expectAffected(result, fmt.Sprintf("updating product ID %d", product.ID))
}

// DeleteProduct removes a product from the database.
func (r *productRepository) DeleteProduct(ctx context.Context, executor SQLExecutor, id int64) error {
	result, err := executor.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return wrapWriteError(err, fmt.Sprintf("deleting product ID %d", id))
	}
	return expectAffected(result, fmt.Sprintf("deleting product ID %d", id))
}
