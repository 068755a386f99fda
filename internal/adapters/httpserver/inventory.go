package httpserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/breska/backoffice/internal/domain"
)

func (s *Server) apiInventoryOverview(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	ov, err := s.stock.Overview(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, ov)
}

type inventoryProductView struct {
	domain.Product
	TotalStock   int  `json:"totalStock"`
	IsLowStock   bool `json:"isLowStock"`
	IsOutOfStock bool `json:"isOutOfStock"`
}

func (s *Server) apiInventoryProducts(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	page, size := pageParams(r, 20)
	q := r.URL.Query()
	f := domain.ProductFilter{
		Page:       page,
		PageSize:   size,
		Query:      q.Get("q"),
		Status:     q.Get("status"),
		StockState: q.Get("stock"),
	}
	if id, err := uuid.Parse(q.Get("category")); err == nil {
		f.CategoryID = &id
	}
	list, total, err := s.products.List(r.Context(), f)
	if err != nil {
		writeErr(w, err)
		return
	}
	items := make([]inventoryProductView, 0, len(list))
	for i := range list {
		p := list[i]
		items = append(items, inventoryProductView{
			Product:      p,
			TotalStock:   p.TotalStock(),
			IsLowStock:   p.IsLowStock(),
			IsOutOfStock: p.IsOutOfStock(),
		})
	}
	writeJSON(w, 200, map[string]any{"items": items, "total": total, "page": page, "limit": size})
}

func (s *Server) apiInventoryAlerts(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	alerts, err := s.stock.Alerts(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, map[string]any{"items": alerts, "total": len(alerts)})
}

func (s *Server) apiStockMovements(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	page, size := pageParams(r, 50)
	f := domain.MovementFilter{
		Type:     domain.MovementType(r.URL.Query().Get("type")),
		Page:     page,
		PageSize: size,
	}
	if id, err := uuid.Parse(r.URL.Query().Get("product")); err == nil {
		f.ProductID = &id
	}
	list, total, err := s.stock.Movements(r.Context(), f)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, map[string]any{"items": list, "total": total, "page": page, "limit": size})
}

func (s *Server) apiSetStock(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	if r.Method != http.MethodPatch && r.Method != http.MethodPost && r.Method != http.MethodPut {
		methodNotAllowed(w)
		return
	}
	var req struct {
		ProductID uuid.UUID  `json:"product_id"`
		VariantID *uuid.UUID `json:"variant_id"`
		Stock     int        `json:"stock"`
		Reason    string     `json:"reason"`
	}
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid json")
		return
	}
	if err := s.stock.SetStock(r.Context(), req.ProductID, req.VariantID, req.Stock, req.Reason); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, map[string]bool{"updated": true})
}

func (s *Server) apiBulkSetStock(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	if r.Method != http.MethodPatch && r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req struct {
		Updates []struct {
			ProductID uuid.UUID  `json:"product_id"`
			VariantID *uuid.UUID `json:"variant_id"`
			Stock     int        `json:"stock"`
		} `json:"updates"`
		Reason string `json:"reason"`
	}
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid json")
		return
	}
	if len(req.Updates) == 0 {
		badRequest(w, "updates is required")
		return
	}
	updates := make([]domain.StockUpdate, 0, len(req.Updates))
	for _, u := range req.Updates {
		updates = append(updates, domain.StockUpdate{
			ProductID: u.ProductID,
			VariantID: u.VariantID,
			NewStock:  u.Stock,
		})
	}
	n, err := s.stock.BulkSetStock(r.Context(), updates, req.Reason)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, map[string]int{"updated": n})
}

func (s *Server) apiSyncStock(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	n, err := s.stock.SyncAll(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, map[string]int{"synced": n})
}

func (s *Server) apiInventoryExport(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	data, err := s.stock.ExportXLSX(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	name := fmt.Sprintf("inventory-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	_, _ = w.Write(data)
}

func (s *Server) apiDashboardStats(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	stats, err := s.dashboard.Stats(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, stats)
}
