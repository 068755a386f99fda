package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// CanTransition encodes the order lifecycle: forward steps only, cancellation
// from any non-terminal state.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	if s == OrderStatusDelivered || s == OrderStatusCancelled {
		return false
	}
	if to == OrderStatusCancelled {
		return true
	}
	switch s {
	case OrderStatusPending:
		return to == OrderStatusConfirmed
	case OrderStatusConfirmed:
		return to == OrderStatusShipped
	case OrderStatusShipped:
		return to == OrderStatusDelivered
	}
	return false
}

type Order struct {
	ID             uuid.UUID   `gorm:"type:uuid;primaryKey"`
	OrderNumber    string      `gorm:"uniqueIndex;size:40"`
	CustomerID     uuid.UUID   `gorm:"type:uuid;index"`
	Customer       *Customer   `gorm:"foreignKey:CustomerID"`
	Status         OrderStatus `gorm:"type:varchar(20);default:'PENDING';index"`
	Subtotal       float64     `gorm:"type:decimal(12,2)"`
	ShippingCost   float64     `gorm:"type:decimal(12,2);default:0"`
	Total          float64     `gorm:"type:decimal(12,2)"`
	PaymentMethod  string      `gorm:"size:30"`
	PaymentStatus  string      `gorm:"size:30"`
	ShippingMethod string      `gorm:"size:30"`
	TrackingNumber string      `gorm:"size:80"`
	Notes          string      `gorm:"type:text"`
	InternalNotes  string      `gorm:"type:text"`
	Items          []OrderItem `gorm:"constraint:OnDelete:CASCADE"`
	ConfirmedAt    *time.Time
	ShippedAt      *time.Time
	DeliveredAt    *time.Time
	CancelledAt    *time.Time
	CreatedAt      time.Time `gorm:"index"`
	UpdatedAt      time.Time
}

// OrderItem snapshots product name/SKU/options at order time so historical
// orders survive later catalog edits.
type OrderItem struct {
	ID             uuid.UUID         `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID         `gorm:"type:uuid;index"`
	ProductID      uuid.UUID         `gorm:"type:uuid;index"`
	VariantID      *uuid.UUID        `gorm:"type:uuid;index"`
	Quantity       int               `gorm:"not null"`
	UnitPrice      float64           `gorm:"type:decimal(12,2)"`
	TotalPrice     float64           `gorm:"type:decimal(12,2)"`
	ProductName    string            `gorm:"size:180"`
	ProductSKU     string            `gorm:"size:120"`
	VariantOptions map[string]string `gorm:"type:jsonb;serializer:json"`
}

type OrderLineInput struct {
	ProductID uuid.UUID
	VariantID *uuid.UUID
	Quantity  int
}

type CreateOrderInput struct {
	CustomerID     uuid.UUID
	Items          []OrderLineInput
	ShippingCost   float64
	ShippingMethod string
	PaymentMethod  string
	Notes          string
	InternalNotes  string
}

type OrderUpdateInput struct {
	Status         OrderStatus
	PaymentStatus  string
	TrackingNumber string
	Notes          *string
	InternalNotes  *string
}

type OrderFilter struct {
	Status   OrderStatus
	Page     int
	PageSize int
}

type TopProduct struct {
	ProductID uuid.UUID
	Name      string
	Sold      int
}
