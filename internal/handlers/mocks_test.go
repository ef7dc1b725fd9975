package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"inventory_backend/internal/models"
	"inventory_backend/internal/services"
)

type mockCategoryService struct{ mock.Mock }

func (m *mockCategoryService) ListCategories(ctx context.Context, userID int64, search string, page models.PageRequest) (*services.CategoryListResponse, error) {
	args := m.Called(ctx, userID, search, page)
	resp, _ := args.Get(0).(*services.CategoryListResponse)
	return resp, args.Error(1)
}

func (m *mockCategoryService) QuickSearchCategories(ctx context.Context, userID int64, search string) ([]models.Option, error) {
	args := m.Called(ctx, userID, search)
	options, _ := args.Get(0).([]models.Option)
	return options, args.Error(1)
}

func (m *mockCategoryService) CreateCategory(ctx context.Context, userID int64, req services.CategoryRequest) (*models.Category, error) {
	args := m.Called(ctx, userID, req)
	category, _ := args.Get(0).(*models.Category)
	return category, args.Error(1)
}

func (m *mockCategoryService) UpdateCategory(ctx context.Context, userID, categoryID int64, req services.CategoryRequest) (*models.Category, error) {
	args := m.Called(ctx, userID, categoryID, req)
	category, _ := args.Get(0).(*models.Category)
	return category, args.Error(1)
}

func (m *mockCategoryService) DeleteCategory(ctx context.Context, userID, categoryID int64) error {
	return m.Called(ctx, userID, categoryID).Error(0)
}

type mockCompanyService struct{ mock.Mock }

func (m *mockCompanyService) ListCompanies(ctx context.Context, userID int64, search string, page models.PageRequest) (*services.CompanyListResponse, error) {
	args := m.Called(ctx, userID, search, page)
	resp, _ := args.Get(0).(*services.CompanyListResponse)
	return resp, args.Error(1)
}

func (m *mockCompanyService) QuickSearchCompanies(ctx context.Context, userID int64, search string) ([]models.Option, error) {
	args := m.Called(ctx, userID, search)
	options, _ := args.Get(0).([]models.Option)
	return options, args.Error(1)
}

func (m *mockCompanyService) CreateCompany(ctx context.Context, userID int64, req services.CompanyRequest) (*models.Company, error) {
	args := m.Called(ctx, userID, req)
	company, _ := args.Get(0).(*models.Company)
	return company, args.Error(1)
}

func (m *mockCompanyService) UpdateCompany(ctx context.Context, userID, companyID int64, req services.CompanyRequest) (*models.Company, error) {
	args := m.Called(ctx, userID, companyID, req)
	company, _ := args.Get(0).(*models.Company)
	return company, args.Error(1)
}

func (m *mockCompanyService) DeleteCompany(ctx context.Context, userID, companyID int64) error {
	return m.Called(ctx, userID, companyID).Error(0)
}

type mockProductService struct{ mock.Mock }

func (m *mockProductService) ListProducts(ctx context.Context, userID int64, search string, page models.PageRequest) (*services.ProductListResponse, error) {
	args := m.Called(ctx, userID, search, page)
	resp, _ := args.Get(0).(*services.ProductListResponse)
	return resp, args.Error(1)
}

func (m *mockProductService) CreateProduct(ctx context.Context, userID int64, req services.ProductRequest) (*models.Product, error) {
	args := m.Called(ctx, userID, req)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

func (m *mockProductService) UpdateProduct(ctx context.Context, userID, productID int64, req services.ProductRequest) (*models.Product, error) {
	args := m.Called(ctx, userID, productID, req)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

func (m *mockProductService) DeleteProduct(ctx context.Context, userID, productID int64) error {
	return m.Called(ctx, userID, productID).Error(0)
}

type mockSettingService struct{ mock.Mock }

func (m *mockSettingService) FindSetting(ctx context.Context, userID int64) (*models.Setting, error) {
	args := m.Called(ctx, userID)
	setting, _ := args.Get(0).(*models.Setting)
	return setting, args.Error(1)
}

func (m *mockSettingService) GetOrCreateSetting(ctx context.Context, userID int64) (*models.Setting, error) {
	args := m.Called(ctx, userID)
	setting, _ := args.Get(0).(*models.Setting)
	return setting, args.Error(1)
}

func (m *mockSettingService) SaveSetting(ctx context.Context, userID int64, req services.SettingRequest, logo *services.LogoUpload) (*models.Setting, error) {
	args := m.Called(ctx, userID, req, logo)
	setting, _ := args.Get(0).(*models.Setting)
	return setting, args.Error(1)
}
