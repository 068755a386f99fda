package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/breska/backoffice/internal/domain"
)

// StockUC adjusts stock counters and keeps the movement ledger consistent
// with them. Every adjustment runs inside one transaction: counter write,
// ledger row and, for variants, the parent product aggregate.
type StockUC struct {
	Stock      domain.StockRepo
	Products   domain.ProductRepo
	Categories domain.CategoryRepo
}

const defaultAdjustReason = "Manual adjustment"

// SetStock moves one stock counter to an absolute value and records the
// movement. A write equal to the current value still produces an OUT row of
// quantity zero, matching the historical ledger behavior.
func (uc *StockUC) SetStock(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID, newStock int, reason string) error {
	u := domain.StockUpdate{ProductID: productID, VariantID: variantID, NewStock: newStock}
	return uc.Stock.InTx(ctx, func(tx domain.StockTx) error {
		return applyStockUpdate(tx, u, reason)
	})
}

// BulkSetStock applies each update in its own transaction: a failing entry is
// skipped and the ones before it stay applied. Returns the success count.
func (uc *StockUC) BulkSetStock(ctx context.Context, updates []domain.StockUpdate, reason string) (int, error) {
	if reason == "" {
		reason = "Bulk adjustment"
	}
	updated := 0
	for _, u := range updates {
		err := uc.Stock.InTx(ctx, func(tx domain.StockTx) error {
			return applyStockUpdate(tx, u, reason)
		})
		if err != nil {
			log.Warn().Err(err).Str("product", u.ProductID.String()).Msg("bulk stock update item failed")
			continue
		}
		updated++
	}
	return updated, nil
}

func applyStockUpdate(tx domain.StockTx, u domain.StockUpdate, reason string) error {
	if u.NewStock < 0 {
		return fmt.Errorf("%w: stock cannot be negative", domain.ErrValidation)
	}
	if reason == "" {
		reason = defaultAdjustReason
	}
	if u.VariantID != nil {
		v, err := tx.Variant(*u.VariantID)
		if err != nil {
			return err
		}
		prev := v.Stock
		if err := tx.UpdateVariantStock(v.ID, u.NewStock); err != nil {
			return err
		}
		if err := tx.AddMovement(&domain.StockMovement{
			ProductID:     v.ProductID,
			VariantID:     &v.ID,
			Type:          movementType(prev, u.NewStock),
			Quantity:      absInt(u.NewStock - prev),
			PreviousStock: prev,
			NewStock:      u.NewStock,
			Reason:        reason,
		}); err != nil {
			return err
		}
		// keep the denormalized product total in step within the same tx
		sum, err := tx.VariantStockSum(v.ProductID)
		if err != nil {
			return err
		}
		return tx.UpdateProductStock(v.ProductID, sum)
	}

	p, err := tx.Product(u.ProductID)
	if err != nil {
		return err
	}
	prev := p.Stock
	if err := tx.UpdateProductStock(p.ID, u.NewStock); err != nil {
		return err
	}
	return tx.AddMovement(&domain.StockMovement{
		ProductID:     p.ID,
		Type:          movementType(prev, u.NewStock),
		Quantity:      absInt(u.NewStock - prev),
		PreviousStock: prev,
		NewStock:      u.NewStock,
		Reason:        reason,
	})
}

func movementType(prev, next int) domain.MovementType {
	if next > prev {
		return domain.MovementIn
	}
	return domain.MovementOut
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// SyncAll reconciles every variant-carrying product's denormalized stock with
// the sum of its variants. Idempotent; returns how many rows were corrected.
func (uc *StockUC) SyncAll(ctx context.Context) (int, error) {
	products, err := uc.Products.ListWithVariants(ctx)
	if err != nil {
		return 0, err
	}
	synced := 0
	err = uc.Stock.InTx(ctx, func(tx domain.StockTx) error {
		for _, p := range products {
			if !p.HasVariants() {
				continue
			}
			total := 0
			for _, v := range p.Variants {
				total += v.Stock
			}
			if total == p.Stock {
				continue
			}
			if err := tx.UpdateProductStock(p.ID, total); err != nil {
				return err
			}
			synced++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return synced, nil
}

func (uc *StockUC) Movements(ctx context.Context, f domain.MovementFilter) ([]domain.StockMovement, int64, error) {
	return uc.Stock.Movements(ctx, f)
}

// Alerts lists every active product or variant at or below its threshold.
func (uc *StockUC) Alerts(ctx context.Context) ([]domain.StockAlert, error) {
	products, err := uc.Products.ListWithVariants(ctx)
	if err != nil {
		return nil, err
	}
	alerts := []domain.StockAlert{}
	for _, p := range products {
		if !p.IsActive {
			continue
		}
		if !p.HasVariants() {
			if p.Stock <= p.LowStock {
				alerts = append(alerts, domain.StockAlert{
					Kind:         "product",
					ProductID:    p.ID,
					ProductName:  p.Name,
					SKU:          p.SKU,
					CurrentStock: p.Stock,
					LowStock:     p.LowStock,
					Severity:     severity(p.Stock),
				})
			}
			continue
		}
		for _, v := range p.Variants {
			if v.Stock > domain.DefaultLowStock {
				continue
			}
			vid := v.ID
			alerts = append(alerts, domain.StockAlert{
				Kind:         "variant",
				ProductID:    p.ID,
				ProductName:  p.Name,
				VariantID:    &vid,
				VariantName:  v.Name,
				SKU:          v.SKU,
				CurrentStock: v.Stock,
				LowStock:     domain.DefaultLowStock,
				Severity:     severity(v.Stock),
			})
		}
	}
	return alerts, nil
}

func severity(stock int) string {
	if stock == 0 {
		return "critical"
	}
	return "warning"
}

func (uc *StockUC) Overview(ctx context.Context) (*domain.InventoryOverview, error) {
	products, err := uc.Products.ListWithVariants(ctx)
	if err != nil {
		return nil, err
	}
	ov := &domain.InventoryOverview{}
	for _, p := range products {
		if !p.IsActive {
			continue
		}
		ov.TotalProducts++
		if p.IsLowStock() {
			ov.LowStockProducts++
		}
		if p.IsOutOfStock() {
			ov.OutOfStockProducts++
		}
	}
	if uc.Categories != nil {
		n, err := uc.Categories.CountActive(ctx)
		if err != nil {
			return nil, err
		}
		ov.TotalCategories = n
	}
	return ov, nil
}
