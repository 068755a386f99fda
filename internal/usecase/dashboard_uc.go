package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/breska/backoffice/internal/domain"
)

// DashboardUC aggregates the numbers the admin landing page shows. The full
// computation fans out over several queries, so results sit behind a short
// lived cache when one is configured.
type DashboardUC struct {
	Orders    domain.OrderRepo
	Customers domain.CustomerRepo
	Products  domain.ProductRepo
	Cache     domain.Cache
}

const (
	dashboardCacheKey = "dashboard:stats"
	dashboardCacheTTL = 60 * time.Second
)

// revenueStatuses are the order states that count as money in: shipped or
// delivered, nothing earlier in the lifecycle.
var revenueStatuses = []domain.OrderStatus{
	domain.OrderStatusShipped,
	domain.OrderStatusDelivered,
}

type DashboardStats struct {
	TotalOrders    int64               `json:"totalOrders"`
	PendingOrders  int64               `json:"pendingOrders"`
	MonthlyRevenue float64             `json:"monthlyRevenue"`
	TotalCustomers int64               `json:"totalCustomers"`
	TotalProducts  int64               `json:"totalProducts"`
	LowStockCount  int64               `json:"lowStockCount"`
	RecentOrders   []domain.Order      `json:"recentOrders"`
	TopProducts    []domain.TopProduct `json:"topProducts"`
}

func (uc *DashboardUC) Stats(ctx context.Context) (*DashboardStats, error) {
	if uc.Cache != nil {
		if raw, err := uc.Cache.Get(ctx, dashboardCacheKey); err == nil && raw != nil {
			var cached DashboardStats
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	stats := &DashboardStats{}
	var err error
	if stats.TotalOrders, err = uc.Orders.Count(ctx); err != nil {
		return nil, err
	}
	if stats.PendingOrders, err = uc.Orders.CountByStatus(ctx, domain.OrderStatusPending); err != nil {
		return nil, err
	}
	since := time.Now().AddDate(0, 0, -30)
	if stats.MonthlyRevenue, err = uc.Orders.RevenueSince(ctx, since, revenueStatuses); err != nil {
		return nil, err
	}
	if stats.TotalCustomers, err = uc.Customers.Count(ctx); err != nil {
		return nil, err
	}
	products, err := uc.Products.ListWithVariants(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if !p.IsActive {
			continue
		}
		stats.TotalProducts++
		if p.IsLowStock() {
			stats.LowStockCount++
		}
	}
	if stats.RecentOrders, err = uc.Orders.Recent(ctx, 5); err != nil {
		return nil, err
	}
	if stats.TopProducts, err = uc.Orders.TopProducts(ctx, since, revenueStatuses, 5); err != nil {
		return nil, err
	}

	if uc.Cache != nil {
		if raw, err := json.Marshal(stats); err == nil {
			if err := uc.Cache.Set(ctx, dashboardCacheKey, raw, dashboardCacheTTL); err != nil {
				log.Warn().Err(err).Msg("dashboard cache write failed")
			}
		}
	}
	return stats, nil
}
