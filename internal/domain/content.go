package domain

import (
	"time"

	"github.com/google/uuid"
)

// HomeSection is a configurable block of the storefront home page (hero,
// category strip, featured collection, …). Content is free-form per section
// type and only serialized at the persistence boundary.
type HomeSection struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Title       string         `gorm:"size:180"`
	Description string         `gorm:"type:text"`
	Type        string         `gorm:"size:60;index"`
	Content     map[string]any `gorm:"type:jsonb;serializer:json"`
	IsVisible   bool           `gorm:"index"`
	SortOrder   int            `gorm:"type:int;default:0;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Setting struct {
	Key       string `gorm:"primaryKey;size:120"`
	Value     string `gorm:"type:text"`
	Type      string `gorm:"size:20;default:'string'"` // string | number | boolean | json
	UpdatedAt time.Time
}
