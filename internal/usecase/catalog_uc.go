package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/breska/backoffice/internal/domain"
)

type CategoryUC struct {
	Categories domain.CategoryRepo
}

func (uc *CategoryUC) List(ctx context.Context) ([]domain.Category, error) {
	return uc.Categories.List(ctx)
}

func (uc *CategoryUC) Get(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	return uc.Categories.FindByID(ctx, id)
}

func (uc *CategoryUC) Create(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	if strings.TrimSpace(c.Name) == "" {
		return nil, fmt.Errorf("%w: category name is required", domain.ErrValidation)
	}
	if c.Slug == "" {
		c.Slug = Slugify(c.Name)
	}
	if c.ParentID != nil {
		if _, err := uc.Categories.FindByID(ctx, *c.ParentID); err != nil {
			return nil, err
		}
	}
	if err := uc.Categories.Save(ctx, c); err != nil {
		return nil, err
	}
	return uc.Categories.FindByID(ctx, c.ID)
}

func (uc *CategoryUC) Update(ctx context.Context, id uuid.UUID, c *domain.Category) (*domain.Category, error) {
	existing, err := uc.Categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(c.Name) == "" {
		return nil, fmt.Errorf("%w: category name is required", domain.ErrValidation)
	}
	c.ID = existing.ID
	c.CreatedAt = existing.CreatedAt
	if c.Slug == "" {
		c.Slug = existing.Slug
	}
	if c.ParentID != nil {
		if *c.ParentID == id {
			return nil, fmt.Errorf("%w: category cannot be its own parent", domain.ErrValidation)
		}
		if _, err := uc.Categories.FindByID(ctx, *c.ParentID); err != nil {
			return nil, err
		}
	}
	if err := uc.Categories.Save(ctx, c); err != nil {
		return nil, err
	}
	return uc.Categories.FindByID(ctx, id)
}

// Delete refuses while products or child categories still hang off the node.
func (uc *CategoryUC) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := uc.Categories.FindByID(ctx, id); err != nil {
		return err
	}
	products, err := uc.Categories.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if products > 0 {
		return fmt.Errorf("%w: category has %d products", domain.ErrConflict, products)
	}
	children, err := uc.Categories.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if children > 0 {
		return fmt.Errorf("%w: category has %d subcategories", domain.ErrConflict, children)
	}
	return uc.Categories.Delete(ctx, id)
}

type CollectionUC struct {
	Collections domain.CollectionRepo
}

func (uc *CollectionUC) List(ctx context.Context) ([]domain.Collection, error) {
	return uc.Collections.List(ctx)
}

func (uc *CollectionUC) Get(ctx context.Context, id uuid.UUID) (*domain.Collection, error) {
	return uc.Collections.FindByID(ctx, id)
}

func (uc *CollectionUC) Create(ctx context.Context, c *domain.Collection) (*domain.Collection, error) {
	if strings.TrimSpace(c.Name) == "" {
		return nil, fmt.Errorf("%w: collection name is required", domain.ErrValidation)
	}
	if c.Slug == "" {
		c.Slug = Slugify(c.Name)
	}
	if err := uc.Collections.Save(ctx, c); err != nil {
		return nil, err
	}
	return uc.Collections.FindByID(ctx, c.ID)
}

func (uc *CollectionUC) Update(ctx context.Context, id uuid.UUID, c *domain.Collection) (*domain.Collection, error) {
	existing, err := uc.Collections.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(c.Name) == "" {
		return nil, fmt.Errorf("%w: collection name is required", domain.ErrValidation)
	}
	c.ID = existing.ID
	c.CreatedAt = existing.CreatedAt
	if c.Slug == "" {
		c.Slug = existing.Slug
	}
	if err := uc.Collections.Save(ctx, c); err != nil {
		return nil, err
	}
	return uc.Collections.FindByID(ctx, id)
}

func (uc *CollectionUC) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := uc.Collections.FindByID(ctx, id); err != nil {
		return err
	}
	products, err := uc.Collections.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if products > 0 {
		return fmt.Errorf("%w: collection has %d products", domain.ErrConflict, products)
	}
	return uc.Collections.Delete(ctx, id)
}
