package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/breska/backoffice/internal/domain"
)

type OrderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) *OrderRepo { return &OrderRepo{db: db} }

func (r *OrderRepo) List(ctx context.Context, f domain.OrderFilter) ([]domain.Order, int64, error) {
	var list []domain.Order
	q := r.db.WithContext(ctx).Model(&domain.Order{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
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
	if err := q.Order("created_at desc").Offset(offset).Limit(f.PageSize).
		Preload("Customer").Preload("Items").Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *OrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.WithContext(ctx).Preload("Customer").Preload("Items").
		First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// Create persists order and items in a single cascading insert.
func (r *OrderRepo) Create(ctx context.Context, o *domain.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	for i := range o.Items {
		if o.Items[i].ID == uuid.Nil {
			o.Items[i].ID = uuid.New()
		}
		o.Items[i].OrderID = o.ID
	}
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *OrderRepo) Save(ctx context.Context, o *domain.Order) error {
	return r.db.WithContext(ctx).Omit("Items", "Customer").Save(o).Error
}

func (r *OrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&domain.OrderItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Order{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (r *OrderRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Order{}).Count(&n).Error
	return n, err
}

func (r *OrderRepo) CountByStatus(ctx context.Context, status domain.OrderStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Order{}).Where("status = ?", status).Count(&n).Error
	return n, err
}

func (r *OrderRepo) RevenueSince(ctx context.Context, since time.Time, statuses []domain.OrderStatus) (float64, error) {
	var sum *float64
	err := r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("status IN ? AND created_at >= ?", statuses, since).
		Select("SUM(total)").Scan(&sum).Error
	if err != nil || sum == nil {
		return 0, err
	}
	return *sum, nil
}

func (r *OrderRepo) Recent(ctx context.Context, limit int) ([]domain.Order, error) {
	var list []domain.Order
	if limit <= 0 {
		limit = 10
	}
	if err := r.db.WithContext(ctx).Order("created_at desc").Limit(limit).
		Preload("Customer").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *OrderRepo) TopProducts(ctx context.Context, since time.Time, statuses []domain.OrderStatus, limit int) ([]domain.TopProduct, error) {
	if limit <= 0 {
		limit = 10
	}
	type row struct {
		ProductID uuid.UUID
		Name      string
		Sold      int
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&domain.OrderItem{}).
		Select("order_items.product_id AS product_id, MAX(order_items.product_name) AS name, SUM(order_items.quantity) AS sold").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status IN ? AND orders.created_at >= ?", statuses, since).
		Group("order_items.product_id").
		Order("sold desc").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.TopProduct, 0, len(rows))
	for _, rw := range rows {
		out = append(out, domain.TopProduct{ProductID: rw.ProductID, Name: rw.Name, Sold: rw.Sold})
	}
	return out, nil
}
