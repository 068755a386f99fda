package domain

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name         string     `gorm:"size:140"`
	Slug         string     `gorm:"uniqueIndex;size:140"`
	Description  string     `gorm:"type:text"`
	Image        string     `gorm:"size:255"`
	IsActive     bool       `gorm:"index"`
	ParentID     *uuid.UUID `gorm:"type:uuid;index"`
	Parent       *Category  `gorm:"foreignKey:ParentID"`
	Children     []Category `gorm:"foreignKey:ParentID"`
	ProductCount int64      `gorm:"-"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Collection struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"size:140"`
	Slug         string    `gorm:"uniqueIndex;size:140"`
	Description  string    `gorm:"type:text"`
	Image        string    `gorm:"size:255"`
	IsActive     bool      `gorm:"index"`
	ProductCount int64     `gorm:"-"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
