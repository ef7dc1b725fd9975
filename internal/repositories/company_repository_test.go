package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory_backend/internal/models"
)

func TestGetCompanyByIDMapsNullableColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCompanyRepository(db)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM companies WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "email", "phone_number", "website", "created_at", "updated_at"}).
			AddRow(3, 1, "Acme", "a@acme.io", nil, nil, now, now))

	company, err := repo.GetCompanyByID(context.Background(), 3)
	require.NoError(t, err)
	require.NotNil(t, company.Email)
	assert.Equal(t, "a@acme.io", *company.Email)
	assert.Nil(t, company.PhoneNumber)
	assert.Nil(t, company.Website)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCompaniesPage(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCompanyRepository(db)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM companies WHERE user_id = $1 AND name ILIKE $2")).
		WithArgs(int64(1), "%ac%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY LOWER(name) ASC, id ASC LIMIT $3 OFFSET $4")).
		WithArgs(int64(1), "%ac%", 5, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "email", "phone_number", "website", "created_at", "updated_at"}).
			AddRow(3, 1, "Acme", nil, "+1 555", "https://acme.io", now, now))

	companies, total, err := repo.GetCompanies(context.Background(), 1, "ac", models.NewPageRequest(1, 5))
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, companies, 1)
	assert.Nil(t, companies[0].Email)
	assert.Equal(t, "+1 555", *companies[0].PhoneNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCompany(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCompanyRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO companies")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))

	id, err := repo.CreateCompany(context.Background(), db, &models.Company{UserID: 1, Name: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, int64(21), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCompanyInUse(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCompanyRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM products WHERE company_id = $1")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	err = repo.DeleteCompany(context.Background(), db, 3)
	assert.True(t, errors.Is(err, ErrForeignKey))
	assert.NoError(t, mock.ExpectationsWereMet())
}
