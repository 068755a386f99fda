package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/breska/backoffice/internal/domain"
)

type CustomerUC struct {
	Customers domain.CustomerRepo
}

func (uc *CustomerUC) List(ctx context.Context, f domain.CustomerFilter) ([]domain.Customer, int64, error) {
	return uc.Customers.List(ctx, f)
}

func (uc *CustomerUC) Get(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	return uc.Customers.FindByID(ctx, id)
}

func (uc *CustomerUC) Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	if err := validateCustomer(c); err != nil {
		return nil, err
	}
	if err := uc.Customers.Save(ctx, c); err != nil {
		return nil, err
	}
	return uc.Customers.FindByID(ctx, c.ID)
}

func (uc *CustomerUC) Update(ctx context.Context, id uuid.UUID, c *domain.Customer) (*domain.Customer, error) {
	existing, err := uc.Customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateCustomer(c); err != nil {
		return nil, err
	}
	c.ID = existing.ID
	c.CreatedAt = existing.CreatedAt
	if err := uc.Customers.Save(ctx, c); err != nil {
		return nil, err
	}
	return uc.Customers.FindByID(ctx, id)
}

// Delete refuses while orders reference the customer.
func (uc *CustomerUC) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := uc.Customers.FindByID(ctx, id); err != nil {
		return err
	}
	orders, err := uc.Customers.CountOrders(ctx, id)
	if err != nil {
		return err
	}
	if orders > 0 {
		return fmt.Errorf("%w: customer has %d orders", domain.ErrConflict, orders)
	}
	return uc.Customers.Delete(ctx, id)
}

func validateCustomer(c *domain.Customer) error {
	if strings.TrimSpace(c.FirstName) == "" || strings.TrimSpace(c.LastName) == "" {
		return fmt.Errorf("%w: first and last name are required", domain.ErrValidation)
	}
	if c.Email != "" && !emailRe.MatchString(c.Email) {
		return fmt.Errorf("%w: invalid email", domain.ErrValidation)
	}
	return nil
}
