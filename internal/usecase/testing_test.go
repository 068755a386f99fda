package usecase

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/breska/backoffice/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{}, &domain.Category{}, &domain.Collection{},
		&domain.Product{}, &domain.ProductVariant{},
		&domain.Customer{}, &domain.Order{}, &domain.OrderItem{},
		&domain.StockMovement{}, &domain.MediaFile{},
		&domain.HomeSection{}, &domain.Setting{},
	))
	return db
}
