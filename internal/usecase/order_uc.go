package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/breska/backoffice/internal/domain"
)

// OrderUC creates and advances orders, and keeps stock in step with them.
// The order row and its items land in one insert; stock decrements follow as
// a separate transaction per line, so a line against a vanished product does
// not take the whole order down with it.
type OrderUC struct {
	Orders    domain.OrderRepo
	Customers domain.CustomerRepo
	Products  domain.ProductRepo
	Stock     domain.StockRepo
}

func newOrderNumber() string {
	return fmt.Sprintf("BRK-%d", time.Now().UnixMilli())
}

func (uc *OrderUC) List(ctx context.Context, f domain.OrderFilter) ([]domain.Order, int64, error) {
	return uc.Orders.List(ctx, f)
}

func (uc *OrderUC) Get(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return uc.Orders.FindByID(ctx, id)
}

func (uc *OrderUC) Create(ctx context.Context, in domain.CreateOrderInput) (*domain.Order, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: order needs at least one item", domain.ErrValidation)
	}
	for _, line := range in.Items {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: item quantity must be positive", domain.ErrValidation)
		}
	}
	if _, err := uc.Customers.FindByID(ctx, in.CustomerID); err != nil {
		return nil, err
	}

	order := &domain.Order{
		OrderNumber:    newOrderNumber(),
		CustomerID:     in.CustomerID,
		Status:         domain.OrderStatusPending,
		ShippingCost:   in.ShippingCost,
		ShippingMethod: in.ShippingMethod,
		PaymentMethod:  in.PaymentMethod,
		PaymentStatus:  "PENDING",
		Notes:          in.Notes,
		InternalNotes:  in.InternalNotes,
	}
	for _, line := range in.Items {
		p, err := uc.Products.FindByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		item := domain.OrderItem{
			ProductID:   p.ID,
			Quantity:    line.Quantity,
			UnitPrice:   p.Price,
			ProductName: p.Name,
			ProductSKU:  p.SKU,
		}
		if line.VariantID != nil {
			v := findVariant(p, *line.VariantID)
			if v == nil {
				return nil, fmt.Errorf("%w: variant not found on product", domain.ErrNotFound)
			}
			vid := v.ID
			item.VariantID = &vid
			item.UnitPrice = v.UnitPrice(p)
			item.VariantOptions = v.Options
			if v.SKU != "" {
				item.ProductSKU = v.SKU
			}
		}
		item.TotalPrice = item.UnitPrice * float64(line.Quantity)
		order.Subtotal += item.TotalPrice
		order.Items = append(order.Items, item)
	}
	order.Total = order.Subtotal + order.ShippingCost

	if err := uc.Orders.Create(ctx, order); err != nil {
		return nil, err
	}

	// Decrement stock per line. There is no availability check: the
	// backoffice records what was sold, overselling shows up as negative
	// stock for a human to resolve.
	for _, item := range order.Items {
		if err := uc.moveStock(ctx, item, order, domain.MovementOut, "Order "+order.OrderNumber); err != nil {
			log.Error().Err(err).
				Str("order", order.OrderNumber).
				Str("product", item.ProductID.String()).
				Msg("stock decrement failed for order line")
		}
	}
	return uc.Orders.FindByID(ctx, order.ID)
}

func findVariant(p *domain.Product, id uuid.UUID) *domain.ProductVariant {
	for i := range p.Variants {
		if p.Variants[i].ID == id {
			return &p.Variants[i]
		}
	}
	return nil
}

// moveStock applies one order line to stock inside its own transaction:
// counter write, ledger row referencing the order, and for variant lines the
// parent product aggregate.
func (uc *OrderUC) moveStock(ctx context.Context, item domain.OrderItem, order *domain.Order, typ domain.MovementType, reason string) error {
	delta := item.Quantity
	if typ == domain.MovementOut {
		delta = -delta
	}
	ref := order.ID
	return uc.Stock.InTx(ctx, func(tx domain.StockTx) error {
		if item.VariantID != nil {
			v, err := tx.Variant(*item.VariantID)
			if err != nil {
				return err
			}
			next := v.Stock + delta
			if err := tx.UpdateVariantStock(v.ID, next); err != nil {
				return err
			}
			if err := tx.AddMovement(&domain.StockMovement{
				ProductID:     v.ProductID,
				VariantID:     &v.ID,
				Type:          typ,
				Quantity:      item.Quantity,
				PreviousStock: v.Stock,
				NewStock:      next,
				Reason:        reason,
				Reference:     &ref,
			}); err != nil {
				return err
			}
			sum, err := tx.VariantStockSum(v.ProductID)
			if err != nil {
				return err
			}
			return tx.UpdateProductStock(v.ProductID, sum)
		}
		p, err := tx.Product(item.ProductID)
		if err != nil {
			return err
		}
		next := p.Stock + delta
		if err := tx.UpdateProductStock(p.ID, next); err != nil {
			return err
		}
		return tx.AddMovement(&domain.StockMovement{
			ProductID:     p.ID,
			Type:          typ,
			Quantity:      item.Quantity,
			PreviousStock: p.Stock,
			NewStock:      next,
			Reason:        reason,
			Reference:     &ref,
		})
	})
}

func (uc *OrderUC) Update(ctx context.Context, id uuid.UUID, in domain.OrderUpdateInput) (*domain.Order, error) {
	order, err := uc.Orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Status != "" && in.Status != order.Status {
		if !order.Status.CanTransition(in.Status) {
			return nil, fmt.Errorf("%w: cannot move order from %s to %s", domain.ErrConflict, order.Status, in.Status)
		}
		order.Status = in.Status
		now := time.Now()
		switch in.Status {
		case domain.OrderStatusConfirmed:
			order.ConfirmedAt = &now
		case domain.OrderStatusShipped:
			order.ShippedAt = &now
		case domain.OrderStatusDelivered:
			order.DeliveredAt = &now
		case domain.OrderStatusCancelled:
			order.CancelledAt = &now
		}
	}
	if in.PaymentStatus != "" {
		order.PaymentStatus = in.PaymentStatus
	}
	if in.TrackingNumber != "" {
		order.TrackingNumber = in.TrackingNumber
	}
	if in.Notes != nil {
		order.Notes = *in.Notes
	}
	if in.InternalNotes != nil {
		order.InternalNotes = *in.InternalNotes
	}
	if err := uc.Orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return uc.Orders.FindByID(ctx, id)
}

// Delete removes a PENDING order and returns its items to stock with
// compensating IN movements. Orders past PENDING are history and stay.
func (uc *OrderUC) Delete(ctx context.Context, id uuid.UUID) error {
	order, err := uc.Orders.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if order.Status != domain.OrderStatusPending {
		return fmt.Errorf("%w: only pending orders can be deleted", domain.ErrConflict)
	}
	for _, item := range order.Items {
		if err := uc.moveStock(ctx, item, order, domain.MovementIn, "Order "+order.OrderNumber+" deleted"); err != nil {
			log.Error().Err(err).
				Str("order", order.OrderNumber).
				Str("product", item.ProductID.String()).
				Msg("stock restore failed while deleting order")
		}
	}
	return uc.Orders.Delete(ctx, id)
}
