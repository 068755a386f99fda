package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/breska/backoffice/internal/adapters/repo/postgres"
	"github.com/breska/backoffice/internal/domain"
)

func newOrderUC(t *testing.T) (*OrderUC, *gorm.DB) {
	db := newTestDB(t)
	return &OrderUC{
		Orders:    postgres.NewOrderRepo(db),
		Customers: postgres.NewCustomerRepo(db),
		Products:  postgres.NewProductRepo(db),
		Stock:     postgres.NewStockRepo(db),
	}, db
}

func seedCustomer(t *testing.T, db *gorm.DB) *domain.Customer {
	t.Helper()
	c := &domain.Customer{
		ID:        uuid.New(),
		FirstName: "Marta",
		LastName:  "Gomez",
		Email:     "marta@example.com",
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func TestCreateOrderDecrementsStockAndWritesLedger(t *testing.T) {
	uc, db := newOrderUC(t)
	cust := seedCustomer(t, db)
	p := seedProduct(t, db, 10)

	order, err := uc.Create(context.Background(), domain.CreateOrderInput{
		CustomerID:   cust.ID,
		Items:        []domain.OrderLineInput{{ProductID: p.ID, Quantity: 3}},
		ShippingCost: 1500,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "BRK-"))
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, 3*4500.0, order.Subtotal)
	assert.Equal(t, 3*4500.0+1500, order.Total)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Funda Silicona", order.Items[0].ProductName)

	var got domain.Product
	require.NoError(t, db.First(&got, "id = ?", p.ID).Error)
	assert.Equal(t, 7, got.Stock)

	var m domain.StockMovement
	require.NoError(t, db.First(&m, "product_id = ?", p.ID).Error)
	assert.Equal(t, domain.MovementOut, m.Type)
	assert.Equal(t, 3, m.Quantity)
	require.NotNil(t, m.Reference)
	assert.Equal(t, order.ID, *m.Reference)
}

func TestCreateOrderVariantLineUsesVariantPrice(t *testing.T) {
	uc, db := newOrderUC(t)
	cust := seedCustomer(t, db)
	price := 5200.0
	p := seedProduct(t, db, 0,
		domain.ProductVariant{Name: "Negro", Stock: 6, Price: &price, Options: map[string]string{"color": "negro"}},
		domain.ProductVariant{Name: "Azul", Stock: 4},
	)

	order, err := uc.Create(context.Background(), domain.CreateOrderInput{
		CustomerID: cust.ID,
		Items: []domain.OrderLineInput{
			{ProductID: p.ID, VariantID: &p.Variants[0].ID, Quantity: 2},
			{ProductID: p.ID, VariantID: &p.Variants[1].ID, Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.Len(t, order.Items, 2)

	byVariant := map[uuid.UUID]domain.OrderItem{}
	for _, it := range order.Items {
		byVariant[*it.VariantID] = it
	}
	assert.Equal(t, 5200.0, byVariant[p.Variants[0].ID].UnitPrice)
	assert.Equal(t, 4500.0, byVariant[p.Variants[1].ID].UnitPrice) // falls back to product price
	assert.Equal(t, "negro", byVariant[p.Variants[0].ID].VariantOptions["color"])

	var v domain.ProductVariant
	require.NoError(t, db.First(&v, "id = ?", p.Variants[0].ID).Error)
	assert.Equal(t, 4, v.Stock)

	// parent aggregate recomputed from variants
	var got domain.Product
	require.NoError(t, db.First(&got, "id = ?", p.ID).Error)
	assert.Equal(t, 7, got.Stock)
}

func TestCreateOrderAllowsOversell(t *testing.T) {
	uc, db := newOrderUC(t)
	cust := seedCustomer(t, db)
	p := seedProduct(t, db, 2)

	_, err := uc.Create(context.Background(), domain.CreateOrderInput{
		CustomerID: cust.ID,
		Items:      []domain.OrderLineInput{{ProductID: p.ID, Quantity: 5}},
	})
	require.NoError(t, err)

	var got domain.Product
	require.NoError(t, db.First(&got, "id = ?", p.ID).Error)
	assert.Equal(t, -3, got.Stock)
}

func TestCreateOrderValidation(t *testing.T) {
	uc, db := newOrderUC(t)
	cust := seedCustomer(t, db)
	p := seedProduct(t, db, 2)

	_, err := uc.Create(context.Background(), domain.CreateOrderInput{CustomerID: cust.ID})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Create(context.Background(), domain.CreateOrderInput{
		CustomerID: cust.ID,
		Items:      []domain.OrderLineInput{{ProductID: p.ID, Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Create(context.Background(), domain.CreateOrderInput{
		CustomerID: uuid.New(),
		Items:      []domain.OrderLineInput{{ProductID: p.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func createOrder(t *testing.T, uc *OrderUC, db *gorm.DB) *domain.Order {
	t.Helper()
	cust := seedCustomer(t, db)
	p := seedProduct(t, db, 10)
	order, err := uc.Create(context.Background(), domain.CreateOrderInput{
		CustomerID: cust.ID,
		Items:      []domain.OrderLineInput{{ProductID: p.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	return order
}

func TestOrderStatusTransitions(t *testing.T) {
	uc, db := newOrderUC(t)
	order := createOrder(t, uc, db)

	// skipping CONFIRMED is not allowed
	_, err := uc.Update(context.Background(), order.ID, domain.OrderUpdateInput{Status: domain.OrderStatusShipped})
	assert.ErrorIs(t, err, domain.ErrConflict)

	for _, next := range []domain.OrderStatus{
		domain.OrderStatusConfirmed,
		domain.OrderStatusShipped,
		domain.OrderStatusDelivered,
	} {
		updated, err := uc.Update(context.Background(), order.ID, domain.OrderUpdateInput{Status: next})
		require.NoError(t, err)
		assert.Equal(t, next, updated.Status)
	}

	var got domain.Order
	require.NoError(t, db.First(&got, "id = ?", order.ID).Error)
	assert.NotNil(t, got.ConfirmedAt)
	assert.NotNil(t, got.ShippedAt)
	assert.NotNil(t, got.DeliveredAt)

	// delivered is terminal
	_, err = uc.Update(context.Background(), order.ID, domain.OrderUpdateInput{Status: domain.OrderStatusCancelled})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCancelFromConfirmed(t *testing.T) {
	uc, db := newOrderUC(t)
	order := createOrder(t, uc, db)

	_, err := uc.Update(context.Background(), order.ID, domain.OrderUpdateInput{Status: domain.OrderStatusConfirmed})
	require.NoError(t, err)
	updated, err := uc.Update(context.Background(), order.ID, domain.OrderUpdateInput{Status: domain.OrderStatusCancelled})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, updated.Status)
	assert.NotNil(t, updated.CancelledAt)
}

func TestDeletePendingOrderRestoresStock(t *testing.T) {
	uc, db := newOrderUC(t)
	order := createOrder(t, uc, db)
	productID := order.Items[0].ProductID

	require.NoError(t, uc.Delete(context.Background(), order.ID))

	var got domain.Product
	require.NoError(t, db.First(&got, "id = ?", productID).Error)
	assert.Equal(t, 10, got.Stock)

	var in domain.StockMovement
	require.NoError(t, db.First(&in, "product_id = ? AND type = ?", productID, domain.MovementIn).Error)
	assert.Equal(t, 2, in.Quantity)

	var count int64
	require.NoError(t, db.Model(&domain.Order{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&domain.OrderItem{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteNonPendingOrderConflicts(t *testing.T) {
	uc, db := newOrderUC(t)
	order := createOrder(t, uc, db)

	_, err := uc.Update(context.Background(), order.ID, domain.OrderUpdateInput{Status: domain.OrderStatusConfirmed})
	require.NoError(t, err)

	err = uc.Delete(context.Background(), order.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}
