package domain

import (
	"time"

	"github.com/google/uuid"
)

type MovementType string

const (
	MovementIn  MovementType = "IN"
	MovementOut MovementType = "OUT"
)

// StockMovement is the append-only stock ledger. Rows are historical fact:
// nothing updates or deletes them once written.
type StockMovement struct {
	ID            uuid.UUID    `gorm:"type:uuid;primaryKey"`
	ProductID     uuid.UUID    `gorm:"type:uuid;not null;index"`
	VariantID     *uuid.UUID   `gorm:"type:uuid;index"`
	Type          MovementType `gorm:"type:varchar(3);not null;index"`
	Quantity      int          `gorm:"not null"`
	PreviousStock int          `gorm:"not null"`
	NewStock      int          `gorm:"not null"`
	Reason        string       `gorm:"size:255"`
	Reference     *uuid.UUID   `gorm:"type:uuid;index"`
	CreatedAt     time.Time    `gorm:"index"`
}

type MovementFilter struct {
	ProductID *uuid.UUID
	Type      MovementType
	Page      int
	PageSize  int
}

type StockUpdate struct {
	ProductID uuid.UUID
	VariantID *uuid.UUID
	NewStock  int
}

type StockAlert struct {
	Kind         string // product | variant
	ProductID    uuid.UUID
	ProductName  string
	VariantID    *uuid.UUID
	VariantName  string
	SKU          string
	CurrentStock int
	LowStock     int
	Severity     string // critical | warning
}

type InventoryOverview struct {
	TotalProducts      int64
	LowStockProducts   int64
	OutOfStockProducts int64
	TotalCategories    int64
}

// StockTx is the scoped handle a stock unit of work runs against. Every
// method targets the same underlying transaction; the stock write and its
// ledger row either land together or not at all.
type StockTx interface {
	Product(id uuid.UUID) (*Product, error)
	Variant(id uuid.UUID) (*ProductVariant, error)
	UpdateProductStock(id uuid.UUID, stock int) error
	UpdateVariantStock(id uuid.UUID, stock int) error
	VariantStockSum(productID uuid.UUID) (int, error)
	AddMovement(m *StockMovement) error
}
