package domain

import (
	"time"

	"github.com/google/uuid"
)

type ProductStatus string

const (
	ProductStatusDraft    ProductStatus = "DRAFT"
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusArchived ProductStatus = "ARCHIVED"
)

const DefaultLowStock = 5

type Product struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Slug         string           `gorm:"uniqueIndex;size:140"`
	Name         string           `gorm:"size:180"`
	Description  string           `gorm:"type:text"`
	ShortDesc    string           `gorm:"type:text"`
	Price        float64          `gorm:"type:decimal(12,2)"`
	ComparePrice *float64         `gorm:"type:decimal(12,2)"`
	Cost         *float64         `gorm:"type:decimal(12,2)"`
	SKU          string           `gorm:"size:120;index"`
	Barcode      string           `gorm:"size:60"`
	TrackStock   bool
	Stock        int              `gorm:"type:int;default:0"`
	LowStock     int              `gorm:"type:int;default:5"`
	Weight       *float64         `gorm:"type:decimal(8,2)"`
	Status       ProductStatus    `gorm:"type:varchar(20);default:'DRAFT';index"`
	IsActive     bool             `gorm:"default:false;index"`
	IsFeatured   bool             `gorm:"default:false"`
	Tags         []string         `gorm:"type:jsonb;serializer:json"`
	Images       []string         `gorm:"type:jsonb;serializer:json"`
	SEOTitle     string           `gorm:"size:180"`
	SEODesc      string           `gorm:"type:text"`
	CategoryID   *uuid.UUID       `gorm:"type:uuid;index"`
	CollectionID *uuid.UUID       `gorm:"type:uuid;index"`
	Variants     []ProductVariant `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasVariants reports whether variant rows are the stock source of truth.
func (p *Product) HasVariants() bool { return len(p.Variants) > 0 }

// TotalStock sums variant stocks, or falls back to the denormalized product
// counter for simple products.
func (p *Product) TotalStock() int {
	if !p.HasVariants() {
		return p.Stock
	}
	total := 0
	for _, v := range p.Variants {
		total += v.Stock
	}
	return total
}

func (p *Product) IsLowStock() bool {
	if p.HasVariants() {
		for _, v := range p.Variants {
			if v.Stock <= DefaultLowStock {
				return true
			}
		}
		return false
	}
	return p.Stock <= p.LowStock
}

func (p *Product) IsOutOfStock() bool { return p.TotalStock() == 0 }

type ProductVariant struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID         `gorm:"type:uuid;index"`
	Name      string            `gorm:"size:140"`
	SKU       string            `gorm:"size:120;index"`
	Price     *float64          `gorm:"type:decimal(12,2)"`
	Stock     int               `gorm:"type:int;default:0"`
	Options   map[string]string `gorm:"type:jsonb;serializer:json"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UnitPrice is the price an order line pays for this variant: the variant's
// own price when set, the product price otherwise.
func (v *ProductVariant) UnitPrice(p *Product) float64 {
	if v.Price != nil && *v.Price > 0 {
		return *v.Price
	}
	return p.Price
}

type ProductFilter struct {
	Page         int
	PageSize     int
	Query        string
	CategoryID   *uuid.UUID
	CollectionID *uuid.UUID
	Status       string // DRAFT/ACTIVE/ARCHIVED, or "active" for live products
	StockState   string // low_stock | out_of_stock
}
