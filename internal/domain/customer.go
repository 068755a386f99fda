package domain

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName  string    `gorm:"size:100"`
	LastName   string    `gorm:"size:100"`
	Email      string    `gorm:"size:140;index"`
	Phone      string    `gorm:"size:60"`
	Province   string    `gorm:"size:80"`
	City       string    `gorm:"size:80"`
	Address    string    `gorm:"size:255"`
	OrderCount int64     `gorm:"-"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type CustomerFilter struct {
	Query    string
	Page     int
	PageSize int
}
