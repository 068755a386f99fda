package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/breska/backoffice/internal/domain"
)

var homeSectionTypes = map[string]bool{
	"hero":                true,
	"featured_products":   true,
	"categories":          true,
	"featured_collection": true,
	"banner":              true,
	"testimonials":        true,
	"newsletter":          true,
}

// ContentUC manages the storefront home page sections and the key/value
// settings store.
type ContentUC struct {
	Sections domain.HomeSectionRepo
	Settings domain.SettingRepo
}

func (uc *ContentUC) ListSections(ctx context.Context, onlyVisible bool) ([]domain.HomeSection, error) {
	return uc.Sections.List(ctx, onlyVisible)
}

func (uc *ContentUC) GetSection(ctx context.Context, id uuid.UUID) (*domain.HomeSection, error) {
	return uc.Sections.FindByID(ctx, id)
}

func (uc *ContentUC) CreateSection(ctx context.Context, s *domain.HomeSection) (*domain.HomeSection, error) {
	if err := validateSection(s); err != nil {
		return nil, err
	}
	if err := uc.Sections.Save(ctx, s); err != nil {
		return nil, err
	}
	return uc.Sections.FindByID(ctx, s.ID)
}

func (uc *ContentUC) UpdateSection(ctx context.Context, id uuid.UUID, s *domain.HomeSection) (*domain.HomeSection, error) {
	existing, err := uc.Sections.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateSection(s); err != nil {
		return nil, err
	}
	s.ID = existing.ID
	s.CreatedAt = existing.CreatedAt
	if err := uc.Sections.Save(ctx, s); err != nil {
		return nil, err
	}
	return uc.Sections.FindByID(ctx, id)
}

func (uc *ContentUC) DeleteSection(ctx context.Context, id uuid.UUID) error {
	if _, err := uc.Sections.FindByID(ctx, id); err != nil {
		return err
	}
	return uc.Sections.Delete(ctx, id)
}

// ReorderSections assigns sort order by position in ids. Unknown ids fail the
// whole reorder so the page never ends up half shuffled.
func (uc *ContentUC) ReorderSections(ctx context.Context, ids []uuid.UUID) error {
	for i, id := range ids {
		s, err := uc.Sections.FindByID(ctx, id)
		if err != nil {
			return err
		}
		s.SortOrder = i
		if err := uc.Sections.Save(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func validateSection(s *domain.HomeSection) error {
	if strings.TrimSpace(s.Title) == "" {
		return fmt.Errorf("%w: section title is required", domain.ErrValidation)
	}
	if !homeSectionTypes[s.Type] {
		return fmt.Errorf("%w: unknown section type %q", domain.ErrValidation, s.Type)
	}
	return nil
}

func (uc *ContentUC) ListSettings(ctx context.Context) ([]domain.Setting, error) {
	return uc.Settings.List(ctx)
}

// SaveSettings upserts each key. Type defaults to string.
func (uc *ContentUC) SaveSettings(ctx context.Context, settings []domain.Setting) error {
	for _, s := range settings {
		if strings.TrimSpace(s.Key) == "" {
			return fmt.Errorf("%w: setting key is required", domain.ErrValidation)
		}
		if s.Type == "" {
			s.Type = "string"
		}
		if err := uc.Settings.Upsert(ctx, &s); err != nil {
			return err
		}
	}
	return nil
}

func (uc *ContentUC) DeleteSetting(ctx context.Context, key string) error {
	return uc.Settings.Delete(ctx, key)
}
