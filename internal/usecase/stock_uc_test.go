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

func newStockUC(t *testing.T) (*StockUC, *gorm.DB) {
	db := newTestDB(t)
	return &StockUC{
		Stock:      postgres.NewStockRepo(db),
		Products:   postgres.NewProductRepo(db),
		Categories: postgres.NewCategoryRepo(db),
	}, db
}

func seedProduct(t *testing.T, db *gorm.DB, stock int, variants ...domain.ProductVariant) *domain.Product {
	t.Helper()
	p := &domain.Product{
		ID:       uuid.New(),
		Name:     "Funda Silicona",
		Slug:     "funda-silicona-" + uuid.NewString()[:8],
		Price:    4500,
		Stock:    stock,
		LowStock: 5,
		IsActive: true,
		Status:   domain.ProductStatusActive,
		Variants: variants,
	}
	for i := range p.Variants {
		if p.Variants[i].ID == uuid.Nil {
			p.Variants[i].ID = uuid.New()
		}
		p.Variants[i].ProductID = p.ID
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func TestSetStockProduct(t *testing.T) {
	uc, db := newStockUC(t)
	p := seedProduct(t, db, 10)

	require.NoError(t, uc.SetStock(context.Background(), p.ID, nil, 25, "Recuento"))

	var got domain.Product
	require.NoError(t, db.First(&got, "id = ?", p.ID).Error)
	assert.Equal(t, 25, got.Stock)

	var m domain.StockMovement
	require.NoError(t, db.First(&m, "product_id = ?", p.ID).Error)
	assert.Equal(t, domain.MovementIn, m.Type)
	assert.Equal(t, 15, m.Quantity)
	assert.Equal(t, 10, m.PreviousStock)
	assert.Equal(t, 25, m.NewStock)
	assert.Equal(t, "Recuento", m.Reason)
	assert.Nil(t, m.VariantID)
}

func TestSetStockVariantRecomputesProductTotal(t *testing.T) {
	uc, db := newStockUC(t)
	p := seedProduct(t, db, 0,
		domain.ProductVariant{Name: "Negro", Stock: 3},
		domain.ProductVariant{Name: "Azul", Stock: 7},
	)

	require.NoError(t, uc.SetStock(context.Background(), p.ID, &p.Variants[0].ID, 10, ""))

	var v domain.ProductVariant
	require.NoError(t, db.First(&v, "id = ?", p.Variants[0].ID).Error)
	assert.Equal(t, 10, v.Stock)

	var got domain.Product
	require.NoError(t, db.First(&got, "id = ?", p.ID).Error)
	assert.Equal(t, 17, got.Stock)

	var m domain.StockMovement
	require.NoError(t, db.First(&m, "variant_id = ?", p.Variants[0].ID).Error)
	assert.Equal(t, domain.MovementIn, m.Type)
	assert.Equal(t, 7, m.Quantity)
	assert.Equal(t, defaultAdjustReason, m.Reason)
}

func TestSetStockSameValueStillWritesMovement(t *testing.T) {
	uc, db := newStockUC(t)
	p := seedProduct(t, db, 8)

	require.NoError(t, uc.SetStock(context.Background(), p.ID, nil, 8, ""))

	var m domain.StockMovement
	require.NoError(t, db.First(&m, "product_id = ?", p.ID).Error)
	assert.Equal(t, domain.MovementOut, m.Type)
	assert.Equal(t, 0, m.Quantity)
	assert.Equal(t, 8, m.PreviousStock)
	assert.Equal(t, 8, m.NewStock)
}

func TestSetStockRejectsNegative(t *testing.T) {
	uc, db := newStockUC(t)
	p := seedProduct(t, db, 5)

	err := uc.SetStock(context.Background(), p.ID, nil, -1, "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	var count int64
	require.NoError(t, db.Model(&domain.StockMovement{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSetStockUnknownProduct(t *testing.T) {
	uc, _ := newStockUC(t)
	err := uc.SetStock(context.Background(), uuid.New(), nil, 1, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBulkSetStockCountsSuccessesOnly(t *testing.T) {
	uc, db := newStockUC(t)
	a := seedProduct(t, db, 1)
	b := seedProduct(t, db, 2)

	updates := []domain.StockUpdate{
		{ProductID: a.ID, NewStock: 5},
		{ProductID: uuid.New(), NewStock: 9}, // unknown, skipped
		{ProductID: b.ID, NewStock: 0},
	}
	n, err := uc.BulkSetStock(context.Background(), updates, "")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var gotA, gotB domain.Product
	require.NoError(t, db.First(&gotA, "id = ?", a.ID).Error)
	require.NoError(t, db.First(&gotB, "id = ?", b.ID).Error)
	assert.Equal(t, 5, gotA.Stock)
	assert.Equal(t, 0, gotB.Stock)
}

func TestSyncAllCorrectsDriftedTotals(t *testing.T) {
	uc, db := newStockUC(t)
	drifted := seedProduct(t, db, 99,
		domain.ProductVariant{Name: "Negro", Stock: 2},
		domain.ProductVariant{Name: "Azul", Stock: 3},
	)
	inSync := seedProduct(t, db, 4, domain.ProductVariant{Name: "Rojo", Stock: 4})
	simple := seedProduct(t, db, 7)

	n, err := uc.SyncAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	var got domain.Product
	require.NoError(t, db.First(&got, "id = ?", drifted.ID).Error)
	assert.Equal(t, 5, got.Stock)

	// untouched rows stay as they were
	got = domain.Product{}
	require.NoError(t, db.First(&got, "id = ?", inSync.ID).Error)
	assert.Equal(t, 4, got.Stock)
	got = domain.Product{}
	require.NoError(t, db.First(&got, "id = ?", simple.ID).Error)
	assert.Equal(t, 7, got.Stock)

	// idempotent
	n, err = uc.SyncAll(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAlertsFlagsLowAndOutOfStock(t *testing.T) {
	uc, db := newStockUC(t)
	low := seedProduct(t, db, 3)
	out := seedProduct(t, db, 0)
	seedProduct(t, db, 50)
	withVariants := seedProduct(t, db, 0,
		domain.ProductVariant{Name: "Negro", Stock: 0},
		domain.ProductVariant{Name: "Azul", Stock: 40},
	)

	alerts, err := uc.Alerts(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 3)

	byProduct := map[uuid.UUID]domain.StockAlert{}
	for _, a := range alerts {
		byProduct[a.ProductID] = a
	}
	assert.Equal(t, "warning", byProduct[low.ID].Severity)
	assert.Equal(t, "critical", byProduct[out.ID].Severity)
	assert.Equal(t, "variant", byProduct[withVariants.ID].Kind)
	assert.Equal(t, "critical", byProduct[withVariants.ID].Severity)
}

func TestOverviewCountsActiveProducts(t *testing.T) {
	uc, db := newStockUC(t)
	seedProduct(t, db, 3)  // low
	seedProduct(t, db, 0)  // out (and low)
	seedProduct(t, db, 50) // healthy
	inactive := seedProduct(t, db, 0)
	require.NoError(t, db.Model(&domain.Product{}).Where("id = ?", inactive.ID).Update("is_active", false).Error)
	require.NoError(t, db.Create(&domain.Category{ID: uuid.New(), Name: "Fundas", Slug: "fundas", IsActive: true}).Error)

	ov, err := uc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), ov.TotalProducts)
	assert.Equal(t, int64(2), ov.LowStockProducts)
	assert.Equal(t, int64(1), ov.OutOfStockProducts)
	assert.Equal(t, int64(1), ov.TotalCategories)
}

func TestMovementsFilterByProduct(t *testing.T) {
	uc, db := newStockUC(t)
	a := seedProduct(t, db, 1)
	b := seedProduct(t, db, 1)
	require.NoError(t, uc.SetStock(context.Background(), a.ID, nil, 5, ""))
	require.NoError(t, uc.SetStock(context.Background(), b.ID, nil, 9, ""))

	list, total, err := uc.Movements(context.Background(), domain.MovementFilter{ProductID: &a.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, a.ID, list[0].ProductID)
}
