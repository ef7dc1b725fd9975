package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"inventory_backend/internal/metrics"
	"inventory_backend/internal/models"
	"inventory_backend/internal/repositories"
	"inventory_backend/internal/storage"
	"inventory_backend/internal/validation"
	"inventory_backend/pkg/utils"
)

// LogoNamespace is the blob store namespace of business logos.
const LogoNamespace = "logos"

var allowedLogoExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true,
}

// ErrSettingsSave is returned for any non-validation failure of SaveSetting.
var ErrSettingsSave = errors.New("an error occurred while saving settings")

// SettingRequest is the multipart form of the settings page.
type SettingRequest struct {
	BusinessName     string `form:"business_name" json:"business_name"`
	BusinessLocation string `form:"business_location" json:"business_location"`
	BusinessContact  string `form:"business_contact" json:"business_contact"`
	BusinessEmail    string `form:"business_email" json:"business_email"`
	CurrencySymbol   string `form:"currency_symbol" json:"currency_symbol"`
	StockSourceLabel string `form:"stock_source_label" json:"stock_source_label"`
}

// LogoUpload is an uploaded logo file.
type LogoUpload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// SettingService reads and writes the single settings row of a user.
type SettingService interface {
	// FindSetting has no side effects; it returns ErrNotFound when the user has no row yet.
	FindSetting(ctx context.Context, userID int64) (*models.Setting, error)
	// GetOrCreateSetting returns the user's row, inserting the defaults first if needed.
	GetOrCreateSetting(ctx context.Context, userID int64) (*models.Setting, error)
	SaveSetting(ctx context.Context, userID int64, req SettingRequest, logo *LogoUpload) (*models.Setting, error)
}

type settingService struct {
	settingRepo  repositories.SettingRepository
	store        storage.BlobStore
	db           *sql.DB
	maxLogoBytes int64
}

// NewSettingService creates a new instance of SettingService.
func NewSettingService(repo repositories.SettingRepository, store storage.BlobStore, db *sql.DB, maxLogoBytes int64) SettingService {
	return &settingService{settingRepo: repo, store: store, db: db, maxLogoBytes: maxLogoBytes}
}

func (s *settingService) withLogoURL(setting *models.Setting) *models.Setting {
	if setting.BusinessLogo != nil && *setting.BusinessLogo != "" {
		setting.BusinessLogoURL = s.store.URL(*setting.BusinessLogo)
	}
	return setting
}

func (s *settingService) FindSetting(ctx context.Context, userID int64) (*models.Setting, error) {
	setting, err := s.settingRepo.GetSettingByUserID(ctx, userID)
	if err != nil {
		return nil, translateRepoError(err, fmt.Sprintf("getting settings of user %d", userID))
	}
	return s.withLogoURL(setting), nil
}

func (s *settingService) GetOrCreateSetting(ctx context.Context, userID int64) (*models.Setting, error) {
	setting, err := s.FindSetting(ctx, userID)
	if err == nil {
		return setting, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	created, err := s.settingRepo.CreateSettingIfAbsent(ctx, s.db, models.DefaultSetting(userID))
	if err != nil {
		return nil, fmt.Errorf("creating default settings of user %d: %w", userID, err)
	}
	if created {
		utils.LogInfo("Default settings created", map[string]interface{}{"user_id": userID})
	}
	// Re-read even when another request won the insert.
	return s.FindSetting(ctx, userID)
}

func (s *settingService) validate(req SettingRequest, logo *LogoUpload) error {
	errs := validation.New()
	errs.Check("business_name", strings.TrimSpace(req.BusinessName), validation.Required(), validation.MaxLen(30))
	errs.Check("business_location", strings.TrimSpace(req.BusinessLocation), validation.Required(), validation.MaxLen(50))
	errs.Check("business_contact", strings.TrimSpace(req.BusinessContact), validation.Optional(validation.MaxLen(15)))
	errs.Check("business_email", strings.TrimSpace(req.BusinessEmail), validation.Optional(validation.MaxLen(20)))
	errs.Check("currency_symbol", strings.TrimSpace(req.CurrencySymbol), validation.Required(), validation.MaxLen(5))
	errs.Check("stock_source_label", strings.TrimSpace(req.StockSourceLabel), validation.Required(), validation.MaxLen(20))

	if logo != nil {
		ext := strings.ToLower(filepath.Ext(logo.Filename))
		switch {
		case !allowedLogoExtensions[ext]:
			errs.Add("business_logo", "The business logo field must be an image.")
		case s.maxLogoBytes > 0 && logo.Size > s.maxLogoBytes:
			errs.Add("business_logo", fmt.Sprintf("The business logo field must not be greater than %d kilobytes.", s.maxLogoBytes/1024))
		}
	}
	return errs.Err()
}

// discardLogo removes a logo written by a save that did not commit.
func (s *settingService) discardLogo(userID int64, relPath string) {
	if relPath == "" {
		return
	}
	if err := s.store.Delete(relPath); err != nil {
		utils.LogError(err, "Service: failed to remove uncommitted logo", map[string]interface{}{"user_id": userID, "path": relPath})
	}
}

func (s *settingService) failSave(userID int64, err error) error {
	utils.LogError(err, "Service: failed to save settings", map[string]interface{}{"user_id": userID})
	return fmt.Errorf("%w: %v", ErrSettingsSave, err)
}

// SaveSetting stores the logo first, then upserts the row in one transaction.
// If the transaction does not commit the new logo is deleted again.
func (s *settingService) SaveSetting(ctx context.Context, userID int64, req SettingRequest, logo *LogoUpload) (*models.Setting, error) {
	if err := s.validate(req, logo); err != nil {
		return nil, err
	}

	previous, err := s.settingRepo.GetSettingByUserID(ctx, userID)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, s.failSave(userID, err)
	}

	var newLogo string
	if logo != nil {
		newLogo, err = s.store.Put(LogoNamespace, logo.Filename, logo.Content)
		if err != nil {
			return nil, s.failSave(userID, err)
		}
	}

	setting := &models.Setting{
		UserID:           userID,
		BusinessName:     strings.TrimSpace(req.BusinessName),
		BusinessLocation: strings.TrimSpace(req.BusinessLocation),
		BusinessContact:  utils.NewNullString(req.BusinessContact),
		BusinessEmail:    utils.NewNullString(req.BusinessEmail),
		CurrencySymbol:   strings.TrimSpace(req.CurrencySymbol),
		StockSourceLabel: strings.TrimSpace(req.StockSourceLabel),
	}
	if newLogo != "" {
		setting.BusinessLogo = &newLogo
	}

	defer metrics.TrackDBOperation("settings_save")(time.Now())

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.discardLogo(userID, newLogo)
		return nil, s.failSave(userID, fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback()

	if err := s.settingRepo.UpsertSetting(ctx, tx, setting); err != nil {
		s.discardLogo(userID, newLogo)
		return nil, s.failSave(userID, err)
	}
	if err := tx.Commit(); err != nil {
		s.discardLogo(userID, newLogo)
		return nil, s.failSave(userID, fmt.Errorf("failed to commit transaction: %w", err))
	}

	if newLogo != "" && previous != nil && previous.BusinessLogo != nil && *previous.BusinessLogo != newLogo {
		if err := s.store.Delete(*previous.BusinessLogo); err != nil {
			utils.LogWarn("Service: failed to remove replaced logo", map[string]interface{}{"user_id": userID, "path": *previous.BusinessLogo, "error": err.Error()})
		}
	}

	utils.LogInfo("Settings saved", map[string]interface{}{"user_id": userID})
	return s.withLogoURL(setting), nil
}
