package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/breska/backoffice/internal/domain"
)

// ProductUC owns the catalog: products and their variants.
type ProductUC struct {
	Products domain.ProductRepo
}

func (uc *ProductUC) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int64, error) {
	return uc.Products.List(ctx, f)
}

func (uc *ProductUC) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return uc.Products.FindByID(ctx, id)
}

func (uc *ProductUC) Search(ctx context.Context, q string, limit int) ([]domain.Product, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []domain.Product{}, nil
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return uc.Products.Search(ctx, q, limit)
}

func (uc *ProductUC) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	if p.Slug == "" {
		p.Slug = Slugify(p.Name)
	}
	if p.Status == "" {
		p.Status = domain.ProductStatusDraft
	}
	if p.LowStock <= 0 {
		p.LowStock = domain.DefaultLowStock
	}
	// Variant products keep their own counter at zero until the aggregator
	// recomputes it from the variant rows.
	if len(p.Variants) > 0 {
		p.Stock = 0
	}
	if err := uc.Products.Create(ctx, p); err != nil {
		return nil, err
	}
	return uc.Products.FindByID(ctx, p.ID)
}

// Update saves the product and, when variants is non-nil, replaces the
// variant set wholesale. Passing an empty non-nil slice removes them all.
func (uc *ProductUC) Update(ctx context.Context, id uuid.UUID, p *domain.Product, variants []domain.ProductVariant) (*domain.Product, error) {
	existing, err := uc.Products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	if p.Slug == "" {
		p.Slug = existing.Slug
	}
	if p.LowStock <= 0 {
		p.LowStock = existing.LowStock
	}
	replace := variants != nil
	if replace && len(variants) > 0 {
		p.Stock = 0
	}
	if err := uc.Products.Update(ctx, p, variants, replace); err != nil {
		return nil, err
	}
	return uc.Products.FindByID(ctx, id)
}

// Delete refuses when order items reference the product; those orders are
// history and their snapshots must keep a valid product id.
func (uc *ProductUC) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := uc.Products.FindByID(ctx, id); err != nil {
		return err
	}
	n, err := uc.Products.CountOrderItems(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: product has %d order items", domain.ErrConflict, n)
	}
	return uc.Products.Delete(ctx, id)
}

func validateProduct(p *domain.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: product name is required", domain.ErrValidation)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", domain.ErrValidation)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: stock cannot be negative", domain.ErrValidation)
	}
	for _, v := range p.Variants {
		if strings.TrimSpace(v.Name) == "" {
			return fmt.Errorf("%w: variant name is required", domain.ErrValidation)
		}
		if v.Stock < 0 {
			return fmt.Errorf("%w: variant stock cannot be negative", domain.ErrValidation)
		}
	}
	return nil
}

// Slugify lowercases, strips accents common in Spanish product names and
// collapses everything else into single hyphens.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	replacer := strings.NewReplacer(
		"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n", "ü", "u",
	)
	s = replacer.Replace(s)
	var b strings.Builder
	lastHyphen := true
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
