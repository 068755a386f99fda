package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ProductRepo interface {
	List(ctx context.Context, f ProductFilter) ([]Product, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	Search(ctx context.Context, q string, limit int) ([]Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product, variants []ProductVariant, replaceVariants bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountOrderItems(ctx context.Context, productID uuid.UUID) (int64, error)
	ListWithVariants(ctx context.Context) ([]Product, error)
}

type CategoryRepo interface {
	List(ctx context.Context) ([]Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	Save(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountProducts(ctx context.Context, id uuid.UUID) (int64, error)
	CountChildren(ctx context.Context, id uuid.UUID) (int64, error)
	CountActive(ctx context.Context) (int64, error)
}

type CollectionRepo interface {
	List(ctx context.Context) ([]Collection, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Collection, error)
	Save(ctx context.Context, c *Collection) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountProducts(ctx context.Context, id uuid.UUID) (int64, error)
}

type CustomerRepo interface {
	List(ctx context.Context, f CustomerFilter) ([]Customer, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	Save(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountOrders(ctx context.Context, id uuid.UUID) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type OrderRepo interface {
	List(ctx context.Context, f OrderFilter) ([]Order, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	Create(ctx context.Context, o *Order) error
	Save(ctx context.Context, o *Order) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status OrderStatus) (int64, error)
	RevenueSince(ctx context.Context, since time.Time, statuses []OrderStatus) (float64, error)
	Recent(ctx context.Context, limit int) ([]Order, error)
	TopProducts(ctx context.Context, since time.Time, statuses []OrderStatus, limit int) ([]TopProduct, error)
}

// StockRepo owns the stock unit of work: InTx opens one transaction, hands
// the business logic a scoped StockTx, and commits or rolls back on return.
type StockRepo interface {
	InTx(ctx context.Context, fn func(StockTx) error) error
	Movements(ctx context.Context, f MovementFilter) ([]StockMovement, int64, error)
}

type UserRepo interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	Create(ctx context.Context, u *User) error
}

type MediaRepo interface {
	List(ctx context.Context, f MediaFilter) ([]MediaFile, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*MediaFile, error)
	Create(ctx context.Context, m *MediaFile) error
	Save(ctx context.Context, m *MediaFile) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type HomeSectionRepo interface {
	List(ctx context.Context, onlyVisible bool) ([]HomeSection, error)
	FindByID(ctx context.Context, id uuid.UUID) (*HomeSection, error)
	Save(ctx context.Context, s *HomeSection) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type SettingRepo interface {
	List(ctx context.Context) ([]Setting, error)
	Upsert(ctx context.Context, s *Setting) error
	Delete(ctx context.Context, key string) error
}

// FileStorage abstracts where uploaded media bytes live.
type FileStorage interface {
	Save(folder, filename string, data []byte) (string, error)
	Remove(path string) error
}

// Cache is an optional read-through cache for expensive dashboard queries.
// A nil Cache disables caching.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
}
