package models

import "math"

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// Pagination describes one page of a list view.
type Pagination struct {
	Total       int `json:"total"`
	CurrentPage int `json:"currentPage"`
	LastPage    int `json:"lastPage"`
	PerPage     int `json:"perPage"`
}

// PageRequest is a normalized page/perPage pair.
type PageRequest struct {
	Page    int
	PerPage int
}

// NewPageRequest clamps perPage to [1, MaxPerPage] and page to >= 1, capped so
// that Offset cannot overflow.
func NewPageRequest(page, perPage int) PageRequest {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	if maxPage := math.MaxInt/perPage - 1; page > maxPage {
		page = maxPage
	}
	return PageRequest{Page: page, PerPage: perPage}
}

// Offset is the number of rows skipped before this page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// NewPagination builds the pagination block for total matching rows.
func NewPagination(total int, req PageRequest) Pagination {
	last := 1
	if total > 0 {
		last = (total + req.PerPage - 1) / req.PerPage
	}
	return Pagination{
		Total:       total,
		CurrentPage: req.Page,
		LastPage:    last,
		PerPage:     req.PerPage,
	}
}
