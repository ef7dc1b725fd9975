package models

import "time"

// Setting holds per-user business details shown on receipts and in the UI.
// There is exactly one row per user.
type Setting struct {
	ID               int64     `json:"id" db:"id"`
	UserID           int64     `json:"user_id" db:"user_id"`
	BusinessName     string    `json:"business_name" db:"business_name"`
	BusinessLocation string    `json:"business_location" db:"business_location"`
	BusinessContact  *string   `json:"business_contact" db:"business_contact"`
	BusinessEmail    *string   `json:"business_email" db:"business_email"`
	BusinessLogo     *string   `json:"business_logo" db:"business_logo"` // blob store path
	BusinessLogoURL  string    `json:"business_logo_url,omitempty" db:"-"`
	CurrencySymbol   string    `json:"currency_symbol" db:"currency_symbol"`
	StockSourceLabel string    `json:"stock_source_label" db:"stock_source_label"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// DefaultSetting returns the values a user starts with before saving their own.
func DefaultSetting(userID int64) *Setting {
	contact := "99999999"
	email := "email@example.com"
	return &Setting{
		UserID:           userID,
		BusinessName:     "Your Business name",
		BusinessLocation: "Your Business Location",
		BusinessContact:  &contact,
		BusinessEmail:    &email,
		CurrencySymbol:   "PKR",
		StockSourceLabel: DefaultStockSourceLabel,
	}
}

// DefaultStockSourceLabel is the column default for settings.stock_source_label.
const DefaultStockSourceLabel = "Distributor"
