package router

import (
	"github.com/gin-gonic/gin"

	"inventory_backend/internal/handlers"
)

// SetupCategoryRoutes sets up the category routes.
func SetupCategoryRoutes(authenticatedGroup *gin.RouterGroup, categoryHandler *handlers.CategoryHandler) {
	categoryRoutes := authenticatedGroup.Group("/categories")
	{
		categoryRoutes.GET("", categoryHandler.GetCategories)
		categoryRoutes.GET("/search", categoryHandler.SearchCategories)
		categoryRoutes.POST("", categoryHandler.CreateCategory)
		categoryRoutes.PUT("/:id", categoryHandler.UpdateCategory)
		categoryRoutes.DELETE("/:id", categoryHandler.DeleteCategory)
	}
}

// SetupCompanyRoutes sets up the company routes.
func SetupCompanyRoutes(authenticatedGroup *gin.RouterGroup, companyHandler *handlers.CompanyHandler) {
	companyRoutes := authenticatedGroup.Group("/companies")
	{
		companyRoutes.GET("", companyHandler.GetCompanies)
		companyRoutes.GET("/search", companyHandler.SearchCompanies)
		companyRoutes.POST("", companyHandler.CreateCompany)
		companyRoutes.PUT("/:id", companyHandler.UpdateCompany)
		companyRoutes.DELETE("/:id", companyHandler.DeleteCompany)
	}
}

// SetupProductRoutes sets up the product routes.
func SetupProductRoutes(authenticatedGroup *gin.RouterGroup, productHandler *handlers.ProductHandler) {
	productRoutes := authenticatedGroup.Group("/products")
	{
		productRoutes.GET("", productHandler.GetProducts)
		productRoutes.POST("", productHandler.CreateProduct)
		productRoutes.PUT("/:id", productHandler.UpdateProduct)
		productRoutes.DELETE("/:id", productHandler.DeleteProduct)
	}
}

// SetupSettingsRoutes sets up the per-user application settings routes.
func SetupSettingsRoutes(authenticatedGroup *gin.RouterGroup, settingHandler *handlers.SettingHandler) {
	settingsRoutes := authenticatedGroup.Group("/settings")
	{
		settingsRoutes.GET("/app", settingHandler.GetApplicationSettings)
		settingsRoutes.POST("/app", settingHandler.SaveApplicationSettings)
	}
}
