package domain

import (
	"time"

	"github.com/google/uuid"
)

type MediaFile struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Filename     string     `gorm:"size:255"`
	OriginalName string     `gorm:"size:255"`
	MimeType     string     `gorm:"size:100;index"`
	Size         int64      `gorm:"not null"`
	URL          string     `gorm:"size:255"`
	Alt          string     `gorm:"size:255"`
	Tags         []string   `gorm:"type:jsonb;serializer:json"`
	Folder       string     `gorm:"size:140;index;default:'/'"`
	UploadedBy   *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time  `gorm:"index"`
	UpdatedAt    time.Time
}

type MediaFilter struct {
	Folder   string
	Type     string // images | videos | documents | all
	Query    string
	Page     int
	PageSize int
}
