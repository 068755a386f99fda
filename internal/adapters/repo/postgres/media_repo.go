package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/breska/backoffice/internal/domain"
)

type MediaRepo struct{ db *gorm.DB }

func NewMediaRepo(db *gorm.DB) *MediaRepo { return &MediaRepo{db: db} }

func (r *MediaRepo) List(ctx context.Context, f domain.MediaFilter) ([]domain.MediaFile, int64, error) {
	var list []domain.MediaFile
	q := r.db.WithContext(ctx).Model(&domain.MediaFile{})
	if f.Folder != "" && f.Folder != "/" {
		q = q.Where("folder = ?", f.Folder)
	}
	if f.Query != "" {
		like := "%" + strings.TrimSpace(f.Query) + "%"
		q = q.Where("LOWER(filename) LIKE LOWER(?) OR LOWER(original_name) LIKE LOWER(?) OR LOWER(alt) LIKE LOWER(?)",
			like, like, like)
	}
	switch f.Type {
	case "", "all":
	case "images":
		q = q.Where("mime_type LIKE 'image/%'")
	case "videos":
		q = q.Where("mime_type LIKE 'video/%'")
	case "documents":
		q = q.Where("mime_type NOT LIKE 'image/%' AND mime_type NOT LIKE 'video/%'")
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = 100
	}
	offset := (f.Page - 1) * f.PageSize
	if err := q.Order("created_at desc").Offset(offset).Limit(f.PageSize).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *MediaRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.MediaFile, error) {
	var m domain.MediaFile
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *MediaRepo) Create(ctx context.Context, m *domain.MediaFile) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MediaRepo) Save(ctx context.Context, m *domain.MediaFile) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *MediaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&domain.MediaFile{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
