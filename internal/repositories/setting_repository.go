package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"inventory_backend/internal/models"
)

// SettingRepository stores the single settings row of each user.
type SettingRepository interface {
	GetSettingByUserID(ctx context.Context, userID int64) (*models.Setting, error)
	// CreateSettingIfAbsent inserts setting unless the user already has a row.
	// It reports whether a row was inserted.
	CreateSettingIfAbsent(ctx context.Context, executor SQLExecutor, setting *models.Setting) (bool, error)
	// UpsertSetting creates or replaces the user's row. A nil BusinessLogo keeps the stored logo.
	UpsertSetting(ctx context.Context, executor SQLExecutor, setting *models.Setting) error
}

type settingRepository struct {
	db *sql.DB
}

// NewSettingRepository creates a new instance of SettingRepository.
func NewSettingRepository(db *sql.DB) SettingRepository {
	return &settingRepository{db: db}
}

const settingColumns = `id, user_id, business_name, business_location, business_contact, business_email,
	            business_logo, currency_symbol, stock_source_label, created_at, updated_at`

// GetSettingByUserID retrieves the settings row of userID.
func (r *settingRepository) GetSettingByUserID(ctx context.Context, userID int64) (*models.Setting, error) {
	s := &models.Setting{}
	var contact, email, logo sql.NullString
	query := `SELECT ` + settingColumns + ` FROM settings WHERE user_id = $1`

	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&s.ID, &s.UserID, &s.BusinessName, &s.BusinessLocation, &contact, &email,
		&logo, &s.CurrencySymbol, &s.StockSourceLabel, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting settings for user %d: %v", ErrDatabaseError, userID, err)
	}
	s.BusinessContact = nullStringPtr(contact)
	s.BusinessEmail = nullStringPtr(email)
	s.BusinessLogo = nullStringPtr(logo)
	return s, nil
}

// CreateSettingIfAbsent relies on the unique user_id constraint so that two concurrent
// first reads still leave exactly one row.
func (r *settingRepository) CreateSettingIfAbsent(ctx context.Context, executor SQLExecutor, setting *models.Setting) (bool, error) {
	query := `INSERT INTO settings
	            (user_id, business_name, business_location, business_contact, business_email,
	             business_logo, currency_symbol, stock_source_label, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          ON CONFLICT (user_id) DO NOTHING`

	currentTime := time.Now()
	result, err := executor.ExecContext(ctx, query,
		setting.UserID, setting.BusinessName, setting.BusinessLocation, setting.BusinessContact,
		setting.BusinessEmail, setting.BusinessLogo, setting.CurrencySymbol, setting.StockSourceLabel,
		currentTime, currentTime,
	)
	if err != nil {
		return false, wrapWriteError(err, fmt.Sprintf("creating settings for user %d", setting.UserID))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: getting rows affected for settings of user %d: %v", ErrDatabaseError, setting.UserID, err)
	}
	return rowsAffected == 1, nil
}

// UpsertSetting creates or updates the user's settings row.
func (r *settingRepository) UpsertSetting(ctx context.Context, executor SQLExecutor, setting *models.Setting) error {
	query := `INSERT INTO settings
	            (user_id, business_name, business_location, business_contact, business_email,
	             business_logo, currency_symbol, stock_source_label, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
	          ON CONFLICT (user_id) DO UPDATE SET
	            business_name = EXCLUDED.business_name,
	            business_location = EXCLUDED.business_location,
	            business_contact = EXCLUDED.business_contact,
	            business_email = EXCLUDED.business_email,
	            business_logo = COALESCE(EXCLUDED.business_logo, settings.business_logo),
	            currency_symbol = EXCLUDED.currency_symbol,
	            stock_source_label = EXCLUDED.stock_source_label,
	            updated_at = EXCLUDED.updated_at
	          RETURNING id, business_logo, created_at, updated_at`

	var logo sql.NullString
	err := executor.QueryRowContext(ctx, query,
		setting.UserID, setting.BusinessName, setting.BusinessLocation, setting.BusinessContact,
		setting.BusinessEmail, setting.BusinessLogo, setting.CurrencySymbol, setting.StockSourceLabel,
		time.Now(),
	).Scan(&setting.ID, &logo, &setting.CreatedAt, &setting.UpdatedAt)
	if err != nil {
		return wrapWriteError(err, fmt.Sprintf("saving settings for user %d", setting.UserID))
	}
	setting.BusinessLogo = nullStringPtr(logo)
	return nil
}
