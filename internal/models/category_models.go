package models

import "time"

// Category groups products for a single user.
type Category struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// OwnerID implements policy.Owned.
func (c *Category) OwnerID() int64 { return c.UserID }

// Option is an {id, name} pair, used for quick search results and form dropdowns.
type Option struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
