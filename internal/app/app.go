package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/breska/backoffice/internal/adapters/cache/rediscache"
	"github.com/breska/backoffice/internal/adapters/httpserver"
	"github.com/breska/backoffice/internal/adapters/repo/postgres"
	"github.com/breska/backoffice/internal/adapters/storage/localfs"
	"github.com/breska/backoffice/internal/auth"
	"github.com/breska/backoffice/internal/domain"
	"github.com/breska/backoffice/internal/usecase"
)

type App struct {
	DB *gorm.DB

	AuthUC      *usecase.AuthUC
	ProductUC   *usecase.ProductUC
	CategoryUC  *usecase.CategoryUC
	CollectUC   *usecase.CollectionUC
	CustomerUC  *usecase.CustomerUC
	OrderUC     *usecase.OrderUC
	StockUC     *usecase.StockUC
	DashboardUC *usecase.DashboardUC
	ContentUC   *usecase.ContentUC
	MediaUC     *usecase.MediaUC

	Storage    domain.FileStorage
	UploadsDir string
}

func NewApp(db *gorm.DB) (*App, error) {
	prodRepo := postgres.NewProductRepo(db)
	catRepo := postgres.NewCategoryRepo(db)
	collRepo := postgres.NewCollectionRepo(db)
	custRepo := postgres.NewCustomerRepo(db)
	orderRepo := postgres.NewOrderRepo(db)
	stockRepo := postgres.NewStockRepo(db)
	userRepo := postgres.NewUserRepo(db)
	mediaRepo := postgres.NewMediaRepo(db)
	sectionRepo := postgres.NewHomeSectionRepo(db)
	settingRepo := postgres.NewSettingRepo(db)

	storageDir := os.Getenv("STORAGE_DIR")
	if storageDir == "" {
		storageDir = "uploads"
	}
	_ = os.MkdirAll(storageDir, 0755)
	storage := localfs.New(storageDir)

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = os.Getenv("SECRET_KEY")
	}
	if secret == "" {
		secret = "dev-insecure-secret"
		log.Warn().Msg("JWT_SECRET not set, using development secret")
	}
	ttl := 7 * 24 * time.Hour
	if raw := os.Getenv("JWT_TTL_HOURS"); raw != "" {
		if h, err := strconv.Atoi(raw); err == nil && h > 0 {
			ttl = time.Duration(h) * time.Hour
		}
	}
	tokens := auth.NewTokens(secret, ttl)

	// Dashboard caching is optional: no REDIS_ADDR means no cache.
	var cache domain.Cache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		redisDB := 0
		if raw := os.Getenv("REDIS_DB"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil {
				redisDB = n
			}
		}
		if c := rediscache.New(addr, os.Getenv("REDIS_PASSWORD"), redisDB); c != nil {
			cache = c
		}
	}

	a := &App{DB: db, Storage: storage, UploadsDir: storageDir}
	a.AuthUC = &usecase.AuthUC{Users: userRepo, Tokens: tokens}
	a.ProductUC = &usecase.ProductUC{Products: prodRepo}
	a.CategoryUC = &usecase.CategoryUC{Categories: catRepo}
	a.CollectUC = &usecase.CollectionUC{Collections: collRepo}
	a.CustomerUC = &usecase.CustomerUC{Customers: custRepo}
	a.OrderUC = &usecase.OrderUC{Orders: orderRepo, Customers: custRepo, Products: prodRepo, Stock: stockRepo}
	a.StockUC = &usecase.StockUC{Stock: stockRepo, Products: prodRepo, Categories: catRepo}
	a.DashboardUC = &usecase.DashboardUC{Orders: orderRepo, Customers: custRepo, Products: prodRepo, Cache: cache}
	a.ContentUC = &usecase.ContentUC{Sections: sectionRepo, Settings: settingRepo}
	a.MediaUC = &usecase.MediaUC{Media: mediaRepo, Storage: storage}
	return a, nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(httpserver.Deps{
		Auth:        a.AuthUC,
		Products:    a.ProductUC,
		Categories:  a.CategoryUC,
		Collections: a.CollectUC,
		Customers:   a.CustomerUC,
		Orders:      a.OrderUC,
		Stock:       a.StockUC,
		Dashboard:   a.DashboardUC,
		Content:     a.ContentUC,
		Media:       a.MediaUC,
		UploadsDir:  a.UploadsDir,
	})
}

func (a *App) Migrate() error {
	if err := a.DB.AutoMigrate(
		&domain.User{}, &domain.Category{}, &domain.Collection{},
		&domain.Product{}, &domain.ProductVariant{},
		&domain.Customer{}, &domain.Order{}, &domain.OrderItem{},
		&domain.StockMovement{}, &domain.MediaFile{},
		&domain.HomeSection{}, &domain.Setting{},
	); err != nil {
		return err
	}

	_ = a.DB.Exec("ALTER TABLE orders ADD COLUMN IF NOT EXISTS internal_notes TEXT").Error
	_ = a.DB.Exec("ALTER TABLE orders ADD COLUMN IF NOT EXISTS tracking_number VARCHAR(80)").Error
	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_stock_movements_product_created ON stock_movements(product_id, created_at)").Error
	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_order_items_product_id ON order_items(product_id)").Error

	return a.seedAdmin()
}

// seedAdmin creates a first admin user from env so a fresh deploy is usable.
func (a *App) seedAdmin() error {
	email := strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}
	ctx := context.Background()
	users := postgres.NewUserRepo(a.DB)
	if _, err := users.FindByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	u := &domain.User{Email: email, Password: hash, Name: "Admin", Role: domain.RoleSuperAdmin}
	if err := users.Create(ctx, u); err != nil {
		return err
	}
	log.Info().Str("email", email).Msg("seeded admin user")
	return nil
}
