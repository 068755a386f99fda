package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/breska/backoffice/internal/domain"
)

type HomeSectionRepo struct{ db *gorm.DB }

func NewHomeSectionRepo(db *gorm.DB) *HomeSectionRepo { return &HomeSectionRepo{db: db} }

func (r *HomeSectionRepo) List(ctx context.Context, onlyVisible bool) ([]domain.HomeSection, error) {
	var list []domain.HomeSection
	q := r.db.WithContext(ctx).Order("sort_order asc")
	if onlyVisible {
		q = q.Where("is_visible = ?", true)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *HomeSectionRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.HomeSection, error) {
	var s domain.HomeSection
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *HomeSectionRepo) Save(ctx context.Context, s *domain.HomeSection) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *HomeSectionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&domain.HomeSection{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type SettingRepo struct{ db *gorm.DB }

func NewSettingRepo(db *gorm.DB) *SettingRepo { return &SettingRepo{db: db} }

func (r *SettingRepo) List(ctx context.Context) ([]domain.Setting, error) {
	var list []domain.Setting
	if err := r.db.WithContext(ctx).Order("key asc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *SettingRepo) Upsert(ctx context.Context, s *domain.Setting) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "type", "updated_at"}),
	}).Create(s).Error
}

func (r *SettingRepo) Delete(ctx context.Context, key string) error {
	res := r.db.WithContext(ctx).Delete(&domain.Setting{}, "key = ?", key)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
