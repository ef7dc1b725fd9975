// Command seed creates a demo user with sample inventory and prints an access token for it.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"inventory_backend/internal/config"
	"inventory_backend/internal/database"
	"inventory_backend/internal/models"
	"inventory_backend/internal/repositories"
	"inventory_backend/internal/services"
	"inventory_backend/internal/storage"
	"inventory_backend/pkg/utils"
)

var (
	categoryNames = []string{"Electronics", "Groceries", "Stationery", "Hardware", "Cosmetics", "Beverages"}
	companyNames  = []string{"Acme Traders", "Globex", "Initech", "Umbrella Supply", "Stark Wholesale"}
	productNames  = []string{"Cable", "Charger", "Notebook", "Pen", "Hammer", "Shampoo", "Juice", "Rice", "Soap", "Battery"}
)

func main() {
	email := flag.String("email", "demo@example.com", "email of the demo user")
	password := flag.String("password", "password", "password of the demo user")
	productCount := flag.Int("products", 25, "number of products to create")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	utils.InitLogger(cfg.Log.Level, cfg.Log.Format)

	db, err := database.Open(cfg.DB)
	if err != nil {
		utils.LogError(err, "Seed: failed to open database")
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	userRepo := repositories.NewUserRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	companyRepo := repositories.NewCompanyRepository(db)

	user, err := ensureUser(ctx, userRepo, db, *email, *password)
	if err != nil {
		utils.LogError(err, "Seed: failed to create user")
		os.Exit(1)
	}

	categoryService := services.NewCategoryService(categoryRepo, db)
	companyService := services.NewCompanyService(companyRepo, db)
	productService := services.NewProductService(repositories.NewProductRepository(db), categoryRepo, companyRepo, db)
	store, err := storage.NewLocalStore(cfg.Storage.Dir, cfg.Storage.URLPrefix)
	if err != nil {
		utils.LogError(err, "Seed: failed to open storage")
		os.Exit(1)
	}
	settingService := services.NewSettingService(repositories.NewSettingRepository(db), store, db, cfg.Storage.MaxLogoBytes)

	if err := seed(ctx, user.ID, *productCount, categoryService, companyService, productService); err != nil {
		utils.LogError(err, "Seed: failed to seed inventory", map[string]interface{}{"user_id": user.ID})
		os.Exit(1)
	}
	if _, err := settingService.GetOrCreateSetting(ctx, user.ID); err != nil {
		utils.LogError(err, "Seed: failed to create settings", map[string]interface{}{"user_id": user.ID})
		os.Exit(1)
	}

	token, err := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TTL).GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		utils.LogError(err, "Seed: failed to sign token")
		os.Exit(1)
	}
	fmt.Println(token)
}

func ensureUser(ctx context.Context, repo repositories.UserRepository, executor repositories.SQLExecutor, email, password string) (*models.User, error) {
	user, err := repo.FindUserByEmail(ctx, email)
	if err == nil {
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
			return nil, fmt.Errorf("user %s exists with a different password", email)
		}
		return user, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	user = &models.User{Name: "Demo", Email: email}
	if _, err := repo.CreateUser(ctx, executor, user, string(hash)); err != nil {
		return nil, err
	}
	utils.LogInfo("Seed: user created", map[string]interface{}{"user_id": user.ID, "email": email})
	return user, nil
}

func seed(ctx context.Context, userID int64, productCount int,
	categoryService services.CategoryService,
	companyService services.CompanyService,
	productService services.ProductService,
) error {
	var categoryIDs, companyIDs []int64
	for _, name := range categoryNames {
		category, err := categoryService.CreateCategory(ctx, userID, services.CategoryRequest{Name: name})
		if err != nil {
			return fmt.Errorf("category %q: %w", name, err)
		}
		categoryIDs = append(categoryIDs, category.ID)
	}
	for _, name := range companyNames {
		company, err := companyService.CreateCompany(ctx, userID, services.CompanyRequest{Name: name})
		if err != nil {
			return fmt.Errorf("company %q: %w", name, err)
		}
		companyIDs = append(companyIDs, company.ID)
	}

	// Barcodes are prefixed with the run time so repeated runs do not collide.
	prefix := time.Now().Unix()
	for i := 0; i < productCount; i++ {
		req := randomProduct(i, prefix, categoryIDs, companyIDs)
		if _, err := productService.CreateProduct(ctx, userID, req); err != nil {
			return fmt.Errorf("product %q: %w", req.Name, err)
		}
	}
	utils.LogInfo("Seed: inventory created", map[string]interface{}{
		"user_id": userID, "categories": len(categoryIDs), "companies": len(companyIDs), "products": productCount,
	})
	return nil
}

func randomProduct(i int, prefix int64, categoryIDs, companyIDs []int64) services.ProductRequest {
	purchase := decimal.New(int64(100+rand.Intn(99900)), -2) // 1.00 to 999.99
	markup := decimal.NewFromFloat(1.1 + rand.Float64()*0.4)
	retail := purchase.Mul(markup).Round(2)

	categoryID := categoryIDs[rand.Intn(len(categoryIDs))]
	companyID := companyIDs[rand.Intn(len(companyIDs))]
	return services.ProductRequest{
		Name:          fmt.Sprintf("%s %d", productNames[i%len(productNames)], i+1),
		CategoryID:    &categoryID,
		CompanyID:     &companyID,
		ShelfNumber:   fmt.Sprintf("%c-%d", 'A'+rune(rand.Intn(6)), 1+rand.Intn(20)),
		Barcode:       fmt.Sprintf("%d%04d", prefix, i),
		PurchasePrice: &purchase,
		RetailPrice:   &retail,
	}
}
