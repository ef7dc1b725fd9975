package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"inventory_backend/internal/models"
	"inventory_backend/internal/policy"
	"inventory_backend/internal/repositories"
	"inventory_backend/internal/validation"
	"inventory_backend/pkg/utils"
)

var (
	minPrice = decimal.Zero
	maxPrice = decimal.New(99999999, -2) // 999999.99
)

const barcodeTakenMessage = "The barcode has already been taken."

// ProductRequest is a decoded product for create and update.
// Pointer fields distinguish a missing value from zero.
type ProductRequest struct {
	Name          string           `json:"name"`
	CategoryID    *int64           `json:"category_id"`
	CompanyID     *int64           `json:"company_id"`
	ShelfNumber   string           `json:"shelf_number"`
	Barcode       string           `json:"barcode"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	RetailPrice   *decimal.Decimal `json:"retail_price"`
}

// ProductForm is a product as posted by a browser form or a JSON client.
// Ids, barcode and prices may arrive as strings or JSON numbers.
type ProductForm struct {
	Name          string            `json:"name" form:"name"`
	CategoryID    validation.Scalar `json:"category_id" form:"category_id"`
	CompanyID     validation.Scalar `json:"company_id" form:"company_id"`
	ShelfNumber   validation.Scalar `json:"shelf_number" form:"shelf_number"`
	Barcode       validation.Scalar `json:"barcode" form:"barcode"`
	PurchasePrice validation.Scalar `json:"purchase_price" form:"purchase_price"`
	RetailPrice   validation.Scalar `json:"retail_price" form:"retail_price"`
}

// Request converts the form. Ids and prices that do not parse are reported as
// field errors; missing values are left for the service to reject.
func (f ProductForm) Request() (ProductRequest, error) {
	errs := validation.New()
	req := ProductRequest{
		Name:          f.Name,
		CategoryID:    errs.ParseInt64("category_id", f.CategoryID),
		CompanyID:     errs.ParseInt64("company_id", f.CompanyID),
		ShelfNumber:   f.ShelfNumber.String(),
		Barcode:       f.Barcode.String(),
		PurchasePrice: errs.ParseDecimal("purchase_price", f.PurchasePrice),
		RetailPrice:   errs.ParseDecimal("retail_price", f.RetailPrice),
	}
	return req, errs.Err()
}

// ProductListResponse is one page of products plus the lookups a product form needs.
type ProductListResponse struct {
	Products   []models.Product  `json:"products"`
	Pagination models.Pagination `json:"pagination"`
	Search     string            `json:"search"`
	Categories []models.Option   `json:"categories"`
	Companies  []models.Option   `json:"companies"`
}

// ProductService manages the products of the requesting user.
type ProductService interface {
	ListProducts(ctx context.Context, userID int64, search string, page models.PageRequest) (*ProductListResponse, error)
	CreateProduct(ctx context.Context, userID int64, req ProductRequest) (*models.Product, error)
	UpdateProduct(ctx context.Context, userID, productID int64, req ProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, userID, productID int64) error
}

type productService struct {
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
	companyRepo  repositories.CompanyRepository
	db           *sql.DB
}

// NewProductService creates a new instance of ProductService.
func NewProductService(
	productRepo repositories.ProductRepository,
	categoryRepo repositories.CategoryRepository,
	companyRepo repositories.CompanyRepository,
	db *sql.DB,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		companyRepo:  companyRepo,
		db:           db,
	}
}

// validateProduct checks every field of req. excludeID is the product being
// updated (0 on create) so that it does not collide with its own barcode.
func (s *productService) validateProduct(ctx context.Context, userID, excludeID int64, req ProductRequest) error {
	errs := validation.New()
	errs.Check("name", strings.TrimSpace(req.Name), validation.Required(), validation.MaxLen(30))

	if errs.CheckID("category_id", req.CategoryID) {
		owned, err := s.categoryRepo.CategoryBelongsToUser(ctx, userID, *req.CategoryID)
		if err != nil {
			return fmt.Errorf("validating category: %w", err)
		}
		if !owned {
			errs.Add("category_id", "The selected category id is invalid.")
		}
	}
	if errs.CheckID("company_id", req.CompanyID) {
		owned, err := s.companyRepo.CompanyBelongsToUser(ctx, userID, *req.CompanyID)
		if err != nil {
			return fmt.Errorf("validating company: %w", err)
		}
		if !owned {
			errs.Add("company_id", "The selected company id is invalid.")
		}
	}

	errs.Check("shelf_number", strings.TrimSpace(req.ShelfNumber), validation.Required(), validation.MaxLen(8))

	barcode := strings.TrimSpace(req.Barcode)
	errs.Check("barcode", barcode, validation.Required(), validation.Numeric(), validation.MaxLen(32))
	if !errs.Has("barcode") {
		taken, err := s.productRepo.BarcodeExists(ctx, userID, barcode, excludeID)
		if err != nil {
			return fmt.Errorf("validating barcode: %w", err)
		}
		if taken {
			errs.Add("barcode", barcodeTakenMessage)
		}
	}

	retailRules := []validation.DecimalRule{validation.Between(minPrice, maxPrice)}
	if errs.CheckDecimal("purchase_price", req.PurchasePrice, validation.Between(minPrice, maxPrice)) {
		retailRules = append(retailRules, validation.AtLeast(*req.PurchasePrice, "purchase_price"))
	}
	errs.CheckDecimal("retail_price", req.RetailPrice, retailRules...)

	return errs.Err()
}

// applyProductRequest copies a validated request onto product.
func applyProductRequest(product *models.Product, req ProductRequest) {
	product.Name = strings.TrimSpace(req.Name)
	product.CategoryID = *req.CategoryID
	product.CompanyID = *req.CompanyID
	product.ShelfNumber = strings.TrimSpace(req.ShelfNumber)
	product.Barcode = strings.TrimSpace(req.Barcode)
	product.PurchasePrice = req.PurchasePrice.Round(2)
	product.RetailPrice = req.RetailPrice.Round(2)
}

// barcodeTaken converts a unique violation that slipped past the existence
// check (a concurrent insert) into the same field error.
func barcodeTaken(err error) error {
	if errors.Is(err, repositories.ErrDuplicateKey) {
		errs := validation.New()
		errs.Add("barcode", barcodeTakenMessage)
		return errs
	}
	return nil
}

func (s *productService) ListProducts(ctx context.Context, userID int64, search string, page models.PageRequest) (*ProductListResponse, error) {
	products, total, err := s.productRepo.GetProducts(ctx, userID, search, page)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	categories, err := s.categoryRepo.SearchCategoryOptions(ctx, userID, "", QuickSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("loading category options: %w", err)
	}
	companies, err := s.companyRepo.SearchCompanyOptions(ctx, userID, "", QuickSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("loading company options: %w", err)
	}

	return &ProductListResponse{
		Products:   products,
		Pagination: models.NewPagination(total, page),
		Search:     search,
		Categories: categories,
		Companies:  companies,
	}, nil
}

func (s *productService) CreateProduct(ctx context.Context, userID int64, req ProductRequest) (*models.Product, error) {
	if err := s.validateProduct(ctx, userID, 0, req); err != nil {
		return nil, err
	}

	product := &models.Product{UserID: userID}
	applyProductRequest(product, req)
	if _, err := s.productRepo.CreateProduct(ctx, s.db, product); err != nil {
		if verr := barcodeTaken(err); verr != nil {
			return nil, verr
		}
		return nil, fmt.Errorf("creating product: %w", err)
	}
	utils.LogInfo("Product created", map[string]interface{}{"user_id": userID, "product_id": product.ID})
	return product, nil
}

func (s *productService) findOwned(ctx context.Context, userID, productID int64) (*models.Product, error) {
	product, err := s.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		return nil, translateRepoError(err, fmt.Sprintf("getting product %d", productID))
	}
	if err := policy.Authorize(userID, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, userID, productID int64, req ProductRequest) (*models.Product, error) {
	product, err := s.findOwned(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if err := s.validateProduct(ctx, userID, productID, req); err != nil {
		return nil, err
	}

	applyProductRequest(product, req)
	if err := s.productRepo.UpdateProduct(ctx, s.db, product); err != nil {
		if verr := barcodeTaken(err); verr != nil {
			return nil, verr
		}
		return nil, translateRepoError(err, fmt.Sprintf("updating product %d", productID))
	}
	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, userID, productID int64) error {
	if _, err := s.findOwned(ctx, userID, productID); err != nil {
		return err
	}
	if err := s.productRepo.DeleteProduct(ctx, s.db, productID); err != nil {
		return translateRepoError(err, fmt.Sprintf("deleting product %d", productID))
	}
	utils.LogInfo("Product deleted", map[string]interface{}{"user_id": userID, "product_id": productID})
	return nil
}
