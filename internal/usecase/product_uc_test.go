package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/breska/backoffice/internal/adapters/repo/postgres"
	"github.com/breska/backoffice/internal/domain"
)

func newProductUC(t *testing.T) (*ProductUC, *gorm.DB) {
	db := newTestDB(t)
	return &ProductUC{Products: postgres.NewProductRepo(db)}, db
}

func TestCreateProductDefaults(t *testing.T) {
	uc, _ := newProductUC(t)

	p, err := uc.Create(context.Background(), &domain.Product{
		Name:  "Cargador Rápido 20W",
		Price: 9800,
		Stock: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, "cargador-rapido-20w", p.Slug)
	assert.Equal(t, domain.ProductStatusDraft, p.Status)
	assert.Equal(t, domain.DefaultLowStock, p.LowStock)
	assert.Equal(t, 12, p.Stock)
}

func TestCreateProductWithVariantsZeroesOwnStock(t *testing.T) {
	uc, _ := newProductUC(t)

	p, err := uc.Create(context.Background(), &domain.Product{
		Name:  "Funda",
		Price: 4000,
		Stock: 33,
		Variants: []domain.ProductVariant{
			{Name: "Negro", Stock: 5},
			{Name: "Azul", Stock: 8},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock)
	require.Len(t, p.Variants, 2)
}

func TestCreateProductValidation(t *testing.T) {
	uc, _ := newProductUC(t)

	_, err := uc.Create(context.Background(), &domain.Product{Name: "  ", Price: 10})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Create(context.Background(), &domain.Product{Name: "X", Price: -1})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Create(context.Background(), &domain.Product{
		Name: "X", Price: 1,
		Variants: []domain.ProductVariant{{Name: "", Stock: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdateProductReplacesVariants(t *testing.T) {
	uc, db := newProductUC(t)
	created, err := uc.Create(context.Background(), &domain.Product{
		Name:  "Funda",
		Price: 4000,
		Variants: []domain.ProductVariant{
			{Name: "Negro", Stock: 5},
			{Name: "Azul", Stock: 8},
		},
	})
	require.NoError(t, err)

	updated, err := uc.Update(context.Background(), created.ID, &domain.Product{
		Name:  "Funda Premium",
		Price: 4500,
	}, []domain.ProductVariant{{Name: "Rojo", Stock: 2}})
	require.NoError(t, err)
	assert.Equal(t, "Funda Premium", updated.Name)
	require.Len(t, updated.Variants, 1)
	assert.Equal(t, "Rojo", updated.Variants[0].Name)

	var count int64
	require.NoError(t, db.Model(&domain.ProductVariant{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpdateProductKeepsVariantsWhenNil(t *testing.T) {
	uc, _ := newProductUC(t)
	created, err := uc.Create(context.Background(), &domain.Product{
		Name:     "Funda",
		Price:    4000,
		Variants: []domain.ProductVariant{{Name: "Negro", Stock: 5}},
	})
	require.NoError(t, err)

	updated, err := uc.Update(context.Background(), created.ID, &domain.Product{
		Name:  "Funda",
		Price: 4200,
	}, nil)
	require.NoError(t, err)
	require.Len(t, updated.Variants, 1)
}

func TestDeleteProductWithOrderItemsConflicts(t *testing.T) {
	uc, db := newProductUC(t)
	created, err := uc.Create(context.Background(), &domain.Product{Name: "Funda", Price: 4000})
	require.NoError(t, err)

	cust := seedCustomer(t, db)
	order := &domain.Order{
		ID:          uuid.New(),
		OrderNumber: "BRK-1",
		CustomerID:  cust.ID,
		Items: []domain.OrderItem{
			{ID: uuid.New(), ProductID: created.ID, Quantity: 1, UnitPrice: 4000, TotalPrice: 4000},
		},
	}
	require.NoError(t, db.Create(order).Error)

	err = uc.Delete(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// gone once no order references it
	require.NoError(t, db.Where("order_id = ?", order.ID).Delete(&domain.OrderItem{}).Error)
	require.NoError(t, uc.Delete(context.Background(), created.ID))
	_, err = uc.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "funda-silicona", Slugify("Funda Silicona"))
	assert.Equal(t, "camara-nocturna", Slugify("Cámara  Nocturna!"))
	assert.Equal(t, "iphone-15-pro-256gb", Slugify("iPhone 15 Pro / 256GB"))
	assert.Equal(t, "", Slugify("  "))
}
