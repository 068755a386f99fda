package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/breska/backoffice/internal/domain"
)

type StockRepo struct{ db *gorm.DB }

func NewStockRepo(db *gorm.DB) *StockRepo { return &StockRepo{db: db} }

// InTx opens one database transaction and hands the caller a store scoped to
// it. Stock write and ledger row commit together or not at all.
func (r *StockRepo) InTx(ctx context.Context, fn func(domain.StockTx) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&stockTx{tx: tx})
	})
}

func (r *StockRepo) Movements(ctx context.Context, f domain.MovementFilter) ([]domain.StockMovement, int64, error) {
	var list []domain.StockMovement
	q := r.db.WithContext(ctx).Model(&domain.StockMovement{})
	if f.ProductID != nil {
		q = q.Where("product_id = ?", *f.ProductID)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = 50
	}
	offset := (f.Page - 1) * f.PageSize
	if err := q.Order("created_at desc").Offset(offset).Limit(f.PageSize).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

type stockTx struct{ tx *gorm.DB }

func (s *stockTx) Product(id uuid.UUID) (*domain.Product, error) {
	var p domain.Product
	if err := s.tx.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *stockTx) Variant(id uuid.UUID) (*domain.ProductVariant, error) {
	var v domain.ProductVariant
	if err := s.tx.First(&v, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (s *stockTx) UpdateProductStock(id uuid.UUID, stock int) error {
	return s.tx.Model(&domain.Product{}).Where("id = ?", id).UpdateColumn("stock", stock).Error
}

func (s *stockTx) UpdateVariantStock(id uuid.UUID, stock int) error {
	return s.tx.Model(&domain.ProductVariant{}).Where("id = ?", id).UpdateColumn("stock", stock).Error
}

func (s *stockTx) VariantStockSum(productID uuid.UUID) (int, error) {
	var sum *int
	err := s.tx.Model(&domain.ProductVariant{}).Where("product_id = ?", productID).
		Select("SUM(stock)").Scan(&sum).Error
	if err != nil {
		return 0, err
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}

func (s *stockTx) AddMovement(m *domain.StockMovement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	return s.tx.Create(m).Error
}
