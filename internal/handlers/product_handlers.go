package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inventory_backend/internal/metrics"
	"inventory_backend/internal/services"
)

const productsPath = "/products"

// ProductHandler holds the product service.
type ProductHandler struct {
	productService services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(ps services.ProductService) *ProductHandler {
	return &ProductHandler{productService: ps}
}

// GetProducts handles the paginated product list, including the category and
// company lookups of the product form.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	search, page := listQuery(c)

	resp, err := h.productService.ListProducts(c.Request.Context(), userID, search, page)
	if err != nil {
		respondServiceError(c, err, "Product", "fetch products")
		return
	}
	c.JSON(http.StatusOK, struct {
		*services.ProductListResponse
		Flash string `json:"flash,omitempty"`
	}{resp, popFlash(c)})
}

// bindProduct reads a form or JSON product. Values that do not parse are
// answered with 422 field errors like any other validation failure.
func bindProduct(c *gin.Context, operation string) (services.ProductRequest, bool) {
	var form services.ProductForm
	if err := c.ShouldBind(&form); err != nil {
		respondBindError(c, err)
		return services.ProductRequest{}, false
	}
	req, err := form.Request()
	if err != nil {
		metrics.RecordOperation("product", operation, err)
		respondServiceError(c, err, "Product", operation+" product")
		return services.ProductRequest{}, false
	}
	return req, true
}

// CreateProduct handles the creation of a new product.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	req, ok := bindProduct(c, "create")
	if !ok {
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), userID, req)
	metrics.RecordOperation("product", "create", err)
	if err != nil {
		respondServiceError(c, err, "Product", "create product")
		return
	}
	respondMutation(c, http.StatusCreated, "Product created successfully.", productsPath, product)
}

// UpdateProduct handles updating a product.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "product")
	if !ok {
		return
	}
	req, ok := bindProduct(c, "update")
	if !ok {
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), userID, productID, req)
	metrics.RecordOperation("product", "update", err)
	if err != nil {
		respondServiceError(c, err, "Product", "update product")
		return
	}
	respondMutation(c, http.StatusOK, "Product updated successfully.", productsPath, product)
}

// DeleteProduct handles deleting a product.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "product")
	if !ok {
		return
	}

	err := h.productService.DeleteProduct(c.Request.Context(), userID, productID)
	metrics.RecordOperation("product", "delete", err)
	if err != nil {
		respondServiceError(c, err, "Product", "delete product")
		return
	}
	respondMutation(c, http.StatusOK, "Product deleted successfully.", productsPath, nil)
}
