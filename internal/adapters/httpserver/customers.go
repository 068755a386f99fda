package httpserver

import (
	"net/http"

	"github.com/breska/backoffice/internal/domain"
)

type customerReq struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Province  string `json:"province"`
	City      string `json:"city"`
	Address   string `json:"address"`
}

func (req *customerReq) toDomain() *domain.Customer {
	return &domain.Customer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Province:  req.Province,
		City:      req.City,
		Address:   req.Address,
	}
}

func (s *Server) apiCustomers(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	switch r.Method {
	case http.MethodGet:
		page, size := pageParams(r, 20)
		list, total, err := s.customers.List(r.Context(), domain.CustomerFilter{
			Query:    r.URL.Query().Get("q"),
			Page:     page,
			PageSize: size,
		})
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, 200, map[string]any{"items": list, "total": total, "page": page, "limit": size})
	case http.MethodPost:
		var req customerReq
		if err := decodeBody(r, &req); err != nil {
			badRequest(w, "invalid json")
			return
		}
		created, err := s.customers.Create(r.Context(), req.toDomain())
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, 201, created)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) apiCustomerByID(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	id, _, ok := pathID(r, "/api/customers/")
	if !ok {
		badRequest(w, "invalid customer id")
		return
	}
	switch r.Method {
	case http.MethodGet:
		c, err := s.customers.Get(r.Context(), id)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, 200, c)
	case http.MethodPut:
		var req customerReq
		if err := decodeBody(r, &req); err != nil {
			badRequest(w, "invalid json")
			return
		}
		updated, err := s.customers.Update(r.Context(), id, req.toDomain())
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, 200, updated)
	case http.MethodDelete:
		if err := s.customers.Delete(r.Context(), id); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, 200, map[string]bool{"deleted": true})
	default:
		methodNotAllowed(w)
	}
}
