package router

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"inventory_backend/internal/config"
	"inventory_backend/internal/handlers"
	"inventory_backend/internal/metrics"
	"inventory_backend/internal/middleware"
	"inventory_backend/internal/repositories"
	"inventory_backend/internal/services"
	"inventory_backend/internal/storage"
	"inventory_backend/pkg/utils"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB, cfg *config.Config, store storage.BlobStore, jwtManager *utils.JWTManager) {
	// Initialize Repositories
	categoryRepo := repositories.NewCategoryRepository(db)
	companyRepo := repositories.NewCompanyRepository(db)
	productRepo := repositories.NewProductRepository(db)
	settingRepo := repositories.NewSettingRepository(db)

	// Initialize Services
	categoryService := services.NewCategoryService(categoryRepo, db)
	companyService := services.NewCompanyService(companyRepo, db)
	productService := services.NewProductService(productRepo, categoryRepo, companyRepo, db)
	settingService := services.NewSettingService(settingRepo, store, db, cfg.Storage.MaxLogoBytes)

	// Initialize Handlers
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	companyHandler := handlers.NewCompanyHandler(companyService)
	productHandler := handlers.NewProductHandler(productService)
	settingHandler := handlers.NewSettingHandler(settingService)

	// Public routes
	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	engine.GET("/metrics", gin.WrapH(metrics.Handler()))
	engine.Static(cfg.Storage.URLPrefix, cfg.Storage.Dir)

	// Setup authenticated routes
	authenticated := engine.Group("")
	authenticated.Use(middleware.AuthMiddleware(jwtManager))
	{
		SetupCategoryRoutes(authenticated, categoryHandler)
		SetupCompanyRoutes(authenticated, companyHandler)
		SetupProductRoutes(authenticated, productHandler)
		SetupSettingsRoutes(authenticated, settingHandler)
	}
}
