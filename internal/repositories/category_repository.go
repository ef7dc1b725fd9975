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

// CategoryRepository defines the interface for category-related database operations.
type CategoryRepository interface {
	CreateCategory(ctx context.Context, executor SQLExecutor, category *models.Category) (int64, error)
	GetCategoryByID(ctx context.Context, id int64) (*models.Category, error)
	GetCategories(ctx context.Context, userID int64, search string, page models.PageRequest) ([]models.Category, int, error) // Categories, total count, error
	SearchCategoryOptions(ctx context.Context, userID int64, search string, limit int) ([]models.Option, error)
	CategoryBelongsToUser(ctx context.Context, userID, categoryID int64) (bool, error)
	UpdateCategory(ctx context.Context, executor SQLExecutor, category *models.Category) error
	DeleteCategory(ctx context.Context, executor SQLExecutor, id int64) error
}

type categoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new instance of CategoryRepository.
func NewCategoryRepository(db *sql.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

const categoryColumns = `id, user_id, name, created_at, updated_at`

func scanCategory(row scanner, category *models.Category) error {
	return row.Scan(&category.ID, &category.UserID, &category.Name, &category.CreatedAt, &category.UpdatedAt)
}

// CreateCategory inserts a new category into the database.
func (r *categoryRepository) CreateCategory(ctx context.Context, executor SQLExecutor, category *models.Category) (int64, error) {
	query := `INSERT INTO categories (user_id, name, created_at, updated_at)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`

	currentTime := time.Now()
	category.CreatedAt = currentTime
	category.UpdatedAt = currentTime

	err := executor.QueryRowContext(ctx, query, category.UserID, category.Name, category.CreatedAt, category.UpdatedAt).Scan(&category.ID)
	if err != nil {
		return 0, wrapWriteError(err, "creating category")
	}
	return category.ID, nil
}

// GetCategoryByID retrieves a category by its ID regardless of owner.
func (r *categoryRepository) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	category := &models.Category{}
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`

	if err := scanCategory(r.db.QueryRowContext(ctx, query, id), category); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting category by ID %d: %v", ErrDatabaseError, id, err)
	}
	return category, nil
}

// GetCategories retrieves one page of a user's categories whose name contains search.
func (r *categoryRepository) GetCategories(ctx context.Context, userID int64, search string, page models.PageRequest) ([]models.Category, int, error) {
	pattern := utils.ContainsPattern(search)

	var totalCount int
	countQuery := `SELECT COUNT(*) FROM categories WHERE user_id = $1 AND name ILIKE $2`
	if err := r.db.QueryRowContext(ctx, countQuery, userID, pattern).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("%w: counting categories: %v", ErrDatabaseError, err)
	}

	categories := []models.Category{}
	if totalCount == 0 {
		return categories, 0, nil
	}

	query := `SELECT ` + categoryColumns + `
	          FROM categories
	          WHERE user_id = $1 AND name ILIKE $2
	          ORDER BY LOWER(name) ASC, id ASC
	          LIMIT $3 OFFSET $4`
	rows, err := r.db.QueryContext(ctx, query, userID, pattern, page.PerPage, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying categories: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var category models.Category
		if err := scanCategory(rows, &category); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning category: %v", ErrDatabaseError, err)
		}
		categories = append(categories, category)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating category rows: %v", ErrDatabaseError, err)
	}
	return categories, totalCount, nil
}

// SearchCategoryOptions returns at most limit {id, name} pairs, case-insensitively ordered.
func (r *categoryRepository) SearchCategoryOptions(ctx context.Context, userID int64, search string, limit int) ([]models.Option, error) {
	query := `SELECT id, name FROM categories
	          WHERE user_id = $1 AND name ILIKE $2
	          ORDER BY LOWER(name) ASC, id ASC
	          LIMIT $3`
	return queryOptions(ctx, r.db, query, "categories", userID, utils.ContainsPattern(search), limit)
}

// CategoryBelongsToUser reports whether categoryID exists and is owned by userID.
func (r *categoryRepository) CategoryBelongsToUser(ctx context.Context, userID, categoryID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1 AND user_id = $2)`
	if err := r.db.QueryRowContext(ctx, query, categoryID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: checking category %d ownership: %v", ErrDatabaseError, categoryID, err)
	}
	return exists, nil
}

// UpdateCategory updates the name of an existing category.
func (r *categoryRepository) UpdateCategory(ctx context.Context, executor SQLExecutor, category *models.Category) error {
	query := `UPDATE categories SET name = $1, updated_at = $2 WHERE id = $3 AND user_id = $4`

	category.UpdatedAt = time.Now()
	result, err := executor.ExecContext(ctx, query, category.Name, category.UpdatedAt, category.ID, category.UserID)
	if err != nil {
		return wrapWriteError(err, fmt.Sprintf("updating category ID %d", category.ID))
	}
	return expectAffected(result, fmt.Sprintf("updating category ID %d", category.ID))
}

// DeleteCategory removes a category that no product references.
func (r *categoryRepository) DeleteCategory(ctx context.Context, executor SQLExecutor, id int64) error {
	var count int
	checkQuery := `SELECT COUNT(*) FROM products WHERE category_id = $1`
	if err := executor.QueryRowContext(ctx, checkQuery, id).Scan(&count); err != nil {
		return fmt.Errorf("%w: checking if category %d is in use: %v", ErrDatabaseError, id, err)
	}
	if count > 0 {
		return fmt.Errorf("%w: category ID %d is referenced by %d product(s)", ErrForeignKey, id, count)
	}

	result, err := executor.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return wrapWriteError(err, fmt.Sprintf("deleting category ID %d", id))
	}
	return expectAffected(result, fmt.Sprintf("deleting category ID %d", id))
}

// queryOptions runs a two-column {id, name} query.
func queryOptions(ctx context.Context, db *sql.DB, query, table string, args ...interface{}) ([]models.Option, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying %s options: %v", ErrDatabaseError, table, err)
	}
	defer rows.Close()

	options := []models.Option{}
	for rows.Next() {
		var option models.Option
		if err := rows.Scan(&option.ID, &option.Name); err != nil {
			return nil, fmt.Errorf("%w: scanning %s option: %v", ErrDatabaseError, table, err)
		}
		options = append(options, option)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating %s options: %v", ErrDatabaseError, table, err)
	}
	return options, nil
}
