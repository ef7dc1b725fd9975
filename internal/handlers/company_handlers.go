package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inventory_backend/internal/metrics"
	"inventory_backend/internal/services"
)

const companiesPath = "/companies"

// CompanyHandler holds the company service.
type CompanyHandler struct {
	companyService services.CompanyService
}

// NewCompanyHandler creates a new CompanyHandler.
func NewCompanyHandler(cs services.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: cs}
}

// GetCompanies handles the paginated company list.
func (h *CompanyHandler) GetCompanies(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	search, page := listQuery(c)

	resp, err := h.companyService.ListCompanies(c.Request.Context(), userID, search, page)
	if err != nil {
		respondServiceError(c, err, "Company", "fetch companies")
		return
	}
	c.JSON(http.StatusOK, struct {
		*services.CompanyListResponse
		Flash string `json:"flash,omitempty"`
	}{resp, popFlash(c)})
}

// SearchCompanies returns up to ten {id, name} pairs as a bare JSON array.
func (h *CompanyHandler) SearchCompanies(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	options, err := h.companyService.QuickSearchCompanies(c.Request.Context(), userID, c.Query("search"))
	if err != nil {
		respondServiceError(c, err, "Company", "search companies")
		return
	}
	c.JSON(http.StatusOK, options)
}

// CreateCompany handles the creation of a new company.
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req services.CompanyRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	company, err := h.companyService.CreateCompany(c.Request.Context(), userID, req)
	metrics.RecordOperation("company", "create", err)
	if err != nil {
		respondServiceError(c, err, "Company", "create company")
		return
	}
	respondMutation(c, http.StatusCreated, "Company created successfully.", companiesPath, company)
}

// UpdateCompany handles updating a company.
func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	companyID, ok := parseIDParam(c, "company")
	if !ok {
		return
	}
	var req services.CompanyRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	company, err := h.companyService.UpdateCompany(c.Request.Context(), userID, companyID, req)
	metrics.RecordOperation("company", "update", err)
	if err != nil {
		respondServiceError(c, err, "Company", "update company")
		return
	}
	respondMutation(c, http.StatusOK, "Company updated successfully.", companiesPath, company)
}

// DeleteCompany handles deleting a company.
func (h *CompanyHandler) DeleteCompany(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	companyID, ok := parseIDParam(c, "company")
	if !ok {
		return
	}

	err := h.companyService.DeleteCompany(c.Request.Context(), userID, companyID)
	metrics.RecordOperation("company", "delete", err)
	if err != nil {
		respondServiceError(c, err, "Company", "delete company")
		return
	}
	respondMutation(c, http.StatusOK, "Company deleted successfully.", companiesPath, nil)
}
