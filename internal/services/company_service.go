package services

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"inventory_backend/internal/models"
	"inventory_backend/internal/policy"
	"inventory_backend/internal/repositories"
	"inventory_backend/internal/validation"
	"inventory_backend/pkg/utils"
)

// CompanyRequest is the body of create and update company requests.
// Empty optional fields are stored as NULL.
type CompanyRequest struct {
	Name        string `json:"name" form:"name"`
	Email       string `json:"email" form:"email"`
	PhoneNumber string `json:"phone_number" form:"phone_number"`
	Website     string `json:"website" form:"website"`
}

// CompanyListResponse is one page of companies.
type CompanyListResponse struct {
	Companies  []models.Company  `json:"companies"`
	Pagination models.Pagination `json:"pagination"`
	Search     string            `json:"search"`
}

// CompanyService manages the companies of the requesting user.
type CompanyService interface {
	ListCompanies(ctx context.Context, userID int64, search string, page models.PageRequest) (*CompanyListResponse, error)
	QuickSearchCompanies(ctx context.Context, userID int64, search string) ([]models.Option, error)
	CreateCompany(ctx context.Context, userID int64, req CompanyRequest) (*models.Company, error)
	UpdateCompany(ctx context.Context, userID, companyID int64, req CompanyRequest) (*models.Company, error)
	DeleteCompany(ctx context.Context, userID, companyID int64) error
}

type companyService struct {
	companyRepo repositories.CompanyRepository
	db          *sql.DB
}

// NewCompanyService creates a new instance of CompanyService.
func NewCompanyService(repo repositories.CompanyRepository, db *sql.DB) CompanyService {
	return &companyService{companyRepo: repo, db: db}
}

var phoneRegex = regexp.MustCompile(`^[0-9+\-\s]+$`)

func validateCompany(req CompanyRequest) error {
	errs := validation.New()
	errs.Check("name", strings.TrimSpace(req.Name), validation.Required(), validation.MaxLen(30))
	errs.Check("email", strings.TrimSpace(req.Email), validation.Optional(validation.Email(), validation.MaxLen(20)))
	errs.Check("phone_number", strings.TrimSpace(req.PhoneNumber), validation.Optional(validation.Matches(phoneRegex), validation.MaxLen(20)))
	errs.Check("website", strings.TrimSpace(req.Website), validation.Optional(validation.URL(), validation.MaxLen(20)))
	return errs.Err()
}

func applyCompanyRequest(company *models.Company, req CompanyRequest) {
	company.Name = strings.TrimSpace(req.Name)
	company.Email = utils.NewNullString(req.Email)
	company.PhoneNumber = utils.NewNullString(req.PhoneNumber)
	company.Website = utils.NewNullString(req.Website)
}

func (s *companyService) ListCompanies(ctx context.Context, userID int64, search string, page models.PageRequest) (*CompanyListResponse, error) {
	companies, total, err := s.companyRepo.GetCompanies(ctx, userID, search, page)
	if err != nil {
		return nil, fmt.Errorf("listing companies: %w", err)
	}
	return &CompanyListResponse{
		Companies:  companies,
		Pagination: models.NewPagination(total, page),
		Search:     search,
	}, nil
}

func (s *companyService) QuickSearchCompanies(ctx context.Context, userID int64, search string) ([]models.Option, error) {
	options, err := s.companyRepo.SearchCompanyOptions(ctx, userID, search, QuickSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("searching companies: %w", err)
	}
	return options, nil
}

func (s *companyService) CreateCompany(ctx context.Context, userID int64, req CompanyRequest) (*models.Company, error) {
	if err := validateCompany(req); err != nil {
		return nil, err
	}

	company := &models.Company{UserID: userID}
	applyCompanyRequest(company, req)
	if _, err := s.companyRepo.CreateCompany(ctx, s.db, company); err != nil {
		return nil, fmt.Errorf("creating company: %w", err)
	}
	utils.LogInfo("Company created", map[string]interface{}{"user_id": userID, "company_id": company.ID})
	return company, nil
}

func (s *companyService) findOwned(ctx context.Context, userID, companyID int64) (*models.Company, error) {
	company, err := s.companyRepo.GetCompanyByID(ctx, companyID)
	if err != nil {
		return nil, translateRepoError(err, fmt.Sprintf("getting company %d", companyID))
	}
	if err := policy.Authorize(userID, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *companyService) UpdateCompany(ctx context.Context, userID, companyID int64, req CompanyRequest) (*models.Company, error) {
	company, err := s.findOwned(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}
	if err := validateCompany(req); err != nil {
		return nil, err
	}

	applyCompanyRequest(company, req)
	if err := s.companyRepo.UpdateCompany(ctx, s.db, company); err != nil {
		return nil, translateRepoError(err, fmt.Sprintf("updating company %d", companyID))
	}
	return company, nil
}

func (s *companyService) DeleteCompany(ctx context.Context, userID, companyID int64) error {
	if _, err := s.findOwned(ctx, userID, companyID); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.companyRepo.DeleteCompany(ctx, tx, companyID); err != nil {
		return translateRepoError(err, fmt.Sprintf("deleting company %d", companyID))
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	utils.LogInfo("Company deleted", map[string]interface{}{"user_id": userID, "company_id": companyID})
	return nil
}
