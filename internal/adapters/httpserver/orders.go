package httpserver

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/breska/backoffice/internal/domain"
)

func (s *Server) apiOrders(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	switch r.Method {
	case http.MethodGet:
		page, size := pageParams(r, 20)
		list, total, err := s.orders.List(r.Context(), domain.OrderFilter{
			Status:   domain.OrderStatus(r.URL.Query().Get("status")),
			Page:     page,
			PageSize: size,
		})
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, 200, map[string]any{"items": list, "total": total, "page": page, "limit": size})
	case http.MethodPost:
		var req struct {
			CustomerID uuid.UUID `json:"customer_id"`
			Items      []struct {
				ProductID uuid.UUID  `json:"product_id"`
				VariantID *uuid.UUID `json:"variant_id"`
				Quantity  int        `json:"quantity"`
			} `json:"items"`
			ShippingCost   float64 `json:"shipping_cost"`
			ShippingMethod string  `json:"shipping_method"`
			PaymentMethod  string  `json:"payment_method"`
			Notes          string  `json:"notes"`
			InternalNotes  string  `json:"internal_notes"`
		}
		if err := decodeBody(r, &req); err != nil {
			badRequest(w, "invalid json")
			return
		}
		in := domain.CreateOrderInput{
			CustomerID:     req.CustomerID,
			ShippingCost:   req.ShippingCost,
			ShippingMethod: req.ShippingMethod,
			PaymentMethod:  req.PaymentMethod,
			Notes:          req.Notes,
			InternalNotes:  req.InternalNotes,
		}
		for _, it := range req.Items {
			in.Items = append(in.Items, domain.OrderLineInput{
				ProductID: it.ProductID,
				VariantID: it.VariantID,
				Quantity:  it.Quantity,
			})
		}
		created, err := s.orders.Create(r.Context(), in)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, 201, created)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) apiOrderByID(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	id, _, ok := pathID(r, "/api/orders/")
	if !ok {
		badRequest(w, "invalid order id")
		return
	}
	switch r.Method {
	case http.MethodGet:
		o, err := s.orders.Get(r.Context(), id)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, 200, o)
	case http.MethodPut, http.MethodPatch:
		var req struct {
			Status         string  `json:"status"`
			PaymentStatus  string  `json:"payment_status"`
			TrackingNumber string  `json:"tracking_number"`
			Notes          *string `json:"notes"`
			InternalNotes  *string `json:"internal_notes"`
		}
		if err := decodeBody(r, &req); err != nil {
			badRequest(w, "invalid json")
			return
		}
		updated, err := s.orders.Update(r.Context(), id, domain.OrderUpdateInput{
			Status:         domain.OrderStatus(req.Status),
			PaymentStatus:  req.PaymentStatus,
			TrackingNumber: req.TrackingNumber,
			Notes:          req.Notes,
			InternalNotes:  req.InternalNotes,
		})
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, 200, updated)
	case http.MethodDelete:
		if err := s.orders.Delete(r.Context(), id); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, 200, map[string]bool{"deleted": true})
	default:
		methodNotAllowed(w)
	}
}
