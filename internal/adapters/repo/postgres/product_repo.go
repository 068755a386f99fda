package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/breska/backoffice/internal/domain"
)

type ProductRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.WithContext(ctx).Preload("Variants").First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int64, error) {
	var list []domain.Product
	q := r.db.WithContext(ctx).Model(&domain.Product{})
	switch f.Status {
	case "":
	case "active":
		q = q.Where("is_active = ? AND status = ?", true, domain.ProductStatusActive)
	default:
		q = q.Where("status = ?", f.Status)
	}
	if f.Query != "" {
		like := "%" + strings.TrimSpace(f.Query) + "%"
		q = q.Where("LOWER(name) LIKE LOWER(?) OR LOWER(sku) LIKE LOWER(?)", like, like)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.CollectionID != nil {
		q = q.Where("collection_id = ?", *f.CollectionID)
	}
	switch f.StockState {
	case "low_stock":
		q = q.Where("(NOT EXISTS (SELECT 1 FROM product_variants v WHERE v.product_id = products.id) AND stock <= low_stock)"+
			" OR EXISTS (SELECT 1 FROM product_variants v WHERE v.product_id = products.id AND v.stock <= ?)", domain.DefaultLowStock)
	case "out_of_stock":
		q = q.Where("(NOT EXISTS (SELECT 1 FROM product_variants v WHERE v.product_id = products.id) AND stock = 0)" +
			" OR (EXISTS (SELECT 1 FROM product_variants v WHERE v.product_id = products.id)" +
			" AND NOT EXISTS (SELECT 1 FROM product_variants v WHERE v.product_id = products.id AND v.stock > 0))")
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = 20
	}
	offset := (f.Page - 1) * f.PageSize
	if err := q.Order("updated_at desc").Offset(offset).Limit(f.PageSize).Preload("Variants").Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *ProductRepo) Search(ctx context.Context, query string, limit int) ([]domain.Product, error) {
	list := []domain.Product{}
	q := strings.TrimSpace(query)
	if q == "" {
		return list, nil
	}
	if limit <= 0 {
		limit = 10
	}
	like := "%" + q + "%"
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE LOWER(?) OR LOWER(sku) LIKE LOWER(?)", like, like).
		Limit(limit).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Create persists the product together with its variants in one transaction.
func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	for i := range p.Variants {
		if p.Variants[i].ID == uuid.Nil {
			p.Variants[i].ID = uuid.New()
		}
		p.Variants[i].ProductID = p.ID
	}
	return r.db.WithContext(ctx).Create(p).Error
}

// Update saves the product row and, when replaceVariants is set, swaps the
// variant set wholesale (the admin UI always posts the full list).
func (r *ProductRepo) Update(ctx context.Context, p *domain.Product, variants []domain.ProductVariant, replaceVariants bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Variants").Save(p).Error; err != nil {
			return err
		}
		if !replaceVariants {
			return nil
		}
		if err := tx.Where("product_id = ?", p.ID).Delete(&domain.ProductVariant{}).Error; err != nil {
			return err
		}
		for i := range variants {
			if variants[i].ID == uuid.Nil {
				variants[i].ID = uuid.New()
			}
			variants[i].ProductID = p.ID
		}
		if len(variants) == 0 {
			return nil
		}
		return tx.Create(&variants).Error
	})
}

func (r *ProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&domain.ProductVariant{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Product{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (r *ProductRepo) CountOrderItems(ctx context.Context, productID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.OrderItem{}).Where("product_id = ?", productID).Count(&n).Error
	return n, err
}

func (r *ProductRepo) ListWithVariants(ctx context.Context) ([]domain.Product, error) {
	var list []domain.Product
	if err := r.db.WithContext(ctx).Preload("Variants").Order("updated_at desc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
