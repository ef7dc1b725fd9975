package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a stock item belonging to one category and bought from one company.
type Product struct {
	ID            int64           `json:"id" db:"id"`
	UserID        int64           `json:"user_id" db:"user_id"`
	CategoryID    int64           `json:"category_id" db:"category_id"`
	CompanyID     int64           `json:"company_id" db:"company_id"`
	Name          string          `json:"name" db:"name"`
	ShelfNumber   string          `json:"shelf_number" db:"shelf_number"`
	Barcode       string          `json:"barcode" db:"barcode"`
	PurchasePrice decimal.Decimal `json:"purchase_price" db:"purchase_price"`
	RetailPrice   decimal.Decimal `json:"retail_price" db:"retail_price"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
	Category      *Option         `json:"category,omitempty"` // joined for list views
	Company       *Option         `json:"company,omitempty"`
}

// OwnerID implements policy.Owned.
func (p *Product) OwnerID() int64 { return p.UserID }
