package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"inventory_backend/internal/models"
	"inventory_backend/internal/policy"
	"inventory_backend/internal/repositories"
	"inventory_backend/internal/validation"
	"inventory_backend/pkg/utils"
)

// CategoryRequest is the body of create and update category requests.
type CategoryRequest struct {
	Name string `json:"name" form:"name"`
}

// CategoryListResponse is one page of categories.
type CategoryListResponse struct {
	Categories []models.Category  `json:"categories"`
	Pagination models.Pagination `json:"pagination"`
	Search     string            `json:"search"`
}

// CategoryService manages the categories of the requesting user.
type CategoryService interface {
	ListCategories(ctx context.Context, userID int64, search string, page models.PageRequest) (*CategoryListResponse, error)
	QuickSearchCategories(ctx context.Context, userID int64, search string) ([]models.Option, error)
	CreateCategory(ctx context.Context, userID int64, req CategoryRequest) (*models.Category, error)
	UpdateCategory(ctx context.Context, userID, categoryID int64, req CategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, userID, categoryID int64) error
}

type categoryService struct {
	categoryRepo repositories.CategoryRepository
	db           *sql.DB
}

// NewCategoryService creates a new instance of CategoryService.
func NewCategoryService(repo repositories.CategoryRepository, db *sql.DB) CategoryService {
	return &categoryService{categoryRepo: repo, db: db}
}

func validateCategory(req CategoryRequest) error {
	errs := validation.New()
	errs.Check("name", strings.TrimSpace(req.Name), validation.Required(), validation.MaxLen(255))
	return errs.Err()
}

func (s *categoryService) ListCategories(ctx context.Context, userID int64, search string, page models.PageRequest) (*CategoryListResponse, error) {
	categories, total, err := s.categoryRepo.GetCategories(ctx, userID, search, page)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return &CategoryListResponse{
		Categories: categories,
		Pagination: models.NewPagination(total, page),
		Search:     search,
	}, nil
}

func (s *categoryService) QuickSearchCategories(ctx context.Context, userID int64, search string) ([]models.Option, error) {
	options, err := s.categoryRepo.SearchCategoryOptions(ctx, userID, search, QuickSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("searching categories: %w", err)
	}
	return options, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, userID int64, req CategoryRequest) (*models.Category, error) {
	if err := validateCategory(req); err != nil {
		return nil, err
	}

	category := &models.Category{UserID: userID, Name: strings.TrimSpace(req.Name)}
	if _, err := s.categoryRepo.CreateCategory(ctx, s.db, category); err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}
	utils.LogInfo("Category created", map[string]interface{}{"user_id": userID, "category_id": category.ID})
	return category, nil
}

// findOwned loads a category and checks that userID may modify it.
func (s *categoryService) findOwned(ctx context.Context, userID, categoryID int64) (*models.Category, error) {
	category, err := s.categoryRepo.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, translateRepoError(err, fmt.Sprintf("getting category %d", categoryID))
	}
	if err := policy.Authorize(userID, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, userID, categoryID int64, req CategoryRequest) (*models.Category, error) {
	category, err := s.findOwned(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}
	if err := validateCategory(req); err != nil {
		return nil, err
	}

	category.Name = strings.TrimSpace(req.Name)
	if err := s.categoryRepo.UpdateCategory(ctx, s.db, category); err != nil {
		return nil, translateRepoError(err, fmt.Sprintf("updating category %d", categoryID))
	}
	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, userID, categoryID int64) error {
	if _, err := s.findOwned(ctx, userID, categoryID); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.categoryRepo.DeleteCategory(ctx, tx, categoryID); err != nil {
		return translateRepoError(err, fmt.Sprintf("deleting category %d", categoryID))
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	utils.LogInfo("Category deleted", map[string]interface{}{"user_id": userID, "category_id": categoryID})
	return nil
}
