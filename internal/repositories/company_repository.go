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

// CompanyRepository defines the interface for company-related database operations.
type CompanyRepository interface {
	CreateCompany(ctx context.Context, executor SQLExecutor, company *models.Company) (int64, error)
	GetCompanyByID(ctx context.Context, id int64) (*models.Company, error)
	GetCompanies(ctx context.Context, userID int64, search string, page models.PageRequest) ([]models.Company, int, error)
	SearchCompanyOptions(ctx context.Context, userID int64, search string, limit int) ([]models.Option, error)
	CompanyBelongsToUser(ctx context.Context, userID, companyID int64) (bool, error)
	UpdateCompany(ctx context.Context, executor SQLExecutor, company *models.Company) error
	DeleteCompany(ctx context.Context, executor SQLExecutor, id int64) error
}

type companyRepository struct {
	db *sql.DB
}

// NewCompanyRepository creates a new instance of CompanyRepository.
func NewCompanyRepository(db *sql.DB) CompanyRepository {
	return &companyRepository{db: db}
}

const companyColumns = `id, user_id, name, email, phone_number, website, created_at, updated_at`

func scanCompany(row scanner, company *models.Company) error {
	var email, phone, website sql.NullString
	if err := row.Scan(&company.ID, &company.UserID, &company.Name, &email, &phone, &website,
		&company.CreatedAt, &company.UpdatedAt); err != nil {
		return err
	}
	company.Email = nullStringPtr(email)
	company.PhoneNumber = nullStringPtr(phone)
	company.Website = nullStringPtr(website)
	return nil
}

func nullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// CreateCompany inserts a new company into the database.
func (r *companyRepository) CreateCompany(ctx context.Context, executor SQLExecutor, company *models.Company) (int64, error) {
	query := `INSERT INTO companies (user_id, name, email, phone_number, website, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id`

	currentTime := time.Now()
	company.CreatedAt = currentTime
	company.UpdatedAt = currentTime

	err := executor.QueryRowContext(ctx, query,
		company.UserID, company.Name, company.Email, company.PhoneNumber, company.Website,
		company.CreatedAt, company.UpdatedAt,
	).Scan(&company.ID)
	if err != nil {
		return 0, wrapWriteError(err, "creating company")
	}
	return company.ID, nil
}

// GetCompanyByID retrieves a company by its ID regardless of owner.
func (r *companyRepository) GetCompanyByID(ctx context.Context, id int64) (*models.Company, error) {
	company := &models.Company{}
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`

	if err := scanCompany(r.db.QueryRowContext(ctx, query, id), company); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting company by ID %d: %v", ErrDatabaseError, id, err)
	}
	return company, nil
}

// GetCompanies retrieves one page of a user's companies whose name contains search.
func (r *companyRepository) GetCompanies(ctx context.Context, userID int64, search string, page models.PageRequest) ([]models.Company, int, error) {
	pattern := utils.ContainsPattern(search)

	var totalCount int
	countQuery := `SELECT COUNT(*) FROM companies WHERE user_id = $1 AND name ILIKE $2`
	if err := r.db.QueryRowContext(ctx, countQuery, userID, pattern).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("%w: counting companies: %v", ErrDatabaseError, err)
	}

	companies := []models.Company{}
	if totalCount == 0 {
		return companies, 0, nil
	}

	query := `SELECT ` + companyColumns + `
	          FROM companies
	          WHERE user_id = $1 AND name ILIKE $2
	          ORDER BY LOWER(name) ASC, id ASC
	          LIMIT $3 OFFSET $4`
	rows, err := r.db.QueryContext(ctx, query, userID, pattern, page.PerPage, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying companies: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var company models.Company
		if err := scanCompany(rows, &company); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning company: %v", ErrDatabaseError, err)
		}
		companies = append(companies, company)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating company rows: %v", ErrDatabaseError, err)
	}
	return companies, totalCount, nil
}

// SearchCompanyOptions returns at most limit {id, name} pairs, case-insensitively ordered.
func (r *companyRepository) SearchCompanyOptions(ctx context.Context, userID int64, search string, limit int) ([]models.Option, error) {
	query := `SELECT id, name FROM companies
	          WHERE user_id = $1 AND name ILIKE $2
	          ORDER BY LOWER(name) ASC, id ASC
	          LIMIT $3`
	return queryOptions(ctx, r.db, query, "companies", userID, utils.ContainsPattern(search), limit)
}

// CompanyBelongsToUser reports whether companyID exists and is owned by userID.
func (r *companyRepository) CompanyBelongsToUser(ctx context.Context, userID, companyID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM companies WHERE id = $1 AND user_id = $2)`
	if err := r.db.QueryRowContext(ctx, query, companyID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: checking company %d ownership: %v", ErrDatabaseError, companyID, err)
	}
	return exists, nil
}

// UpdateCompany updates an existing company in the database.
func (r *companyRepository) UpdateCompany(ctx context.Context, executor SQLExecutor, company *models.Company) error {
	query := `UPDATE companies SET
	            name = $1, email = $2, phone_number = $3, website = $4, updated_at = $5
	          WHERE id = $6 AND user_id = $7`

	company.UpdatedAt = time.Now()
	result, err := executor.ExecContext(ctx, query,
		company.Name, company.Email, company.PhoneNumber, company.Website, company.UpdatedAt,
		company.ID, company.UserID,
	)
	if err != nil {
		return wrapWriteError(err, fmt.Sprintf("updating company ID %d", company.ID))
	}
	return expectAffected(result, fmt.Sprintf("updating company ID %d", company.ID))
}

// DeleteCompany removes a company that no product references.
func (r *companyRepository) DeleteCompany(ctx context.Context, executor SQLExecutor, id int64) error {
	var count int
	checkQuery := `SELECT COUNT(*) FROM products WHERE company_id = $1`
	if err := executor.QueryRowContext(ctx, checkQuery, id).Scan(&count); err != nil {
		return fmt.Errorf("%w: checking if company %d is in use: %v", ErrDatabaseError, id, err)
	}
	if count > 0 {
		return fmt.Errorf("%w: company ID %d is referenced by %d product(s)", ErrForeignKey, id, count)
	}

	result, err := executor.ExecContext(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return wrapWriteError(err, fmt.Sprintf("deleting company ID %d", id))
	}
	return expectAffected(result, fmt.Sprintf("deleting company ID %d", id))
}
