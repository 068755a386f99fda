package httpserver

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/breska/backoffice/internal/domain"
)

type variantReq struct {
	ID      *uuid.UUID        `json:"id"`
	Name    string            `json:"name"`
	SKU     string            `json:"sku"`
	Price   *float64          `json:"price"`
	Stock   int               `json:"stock"`
	Options map[string]string `json:"options"`
}

type productReq struct {
	Name         string        `json:"name"`
	Slug         string        `json:"slug"`
	Description  string        `json:"description"`
	ShortDesc    string        `json:"short_desc"`
	Price        float64       `json:"price"`
	ComparePrice *float64      `json:"compare_price"`
	Cost         *float64      `json:"cost"`
	SKU          string        `json:"sku"`
	Barcode      string        `json:"barcode"`
	TrackStock   *bool         `json:"track_stock"`
	Stock        int           `json:"stock"`
	LowStock     int           `json:"low_stock"`
	Weight       *float64      `json:"weight"`
	Status       string        `json:"status"`
	IsActive     bool          `json:"is_active"`
	IsFeatured   bool          `json:"is_featured"`
	Tags         []string      `json:"tags"`
	Images       []string      `json:"images"`
	SEOTitle     string        `json:"seo_title"`
	SEODesc      string        `json:"seo_desc"`
	CategoryID   *uuid.UUID    `json:"category_id"`
	CollectionID *uuid.UUID    `json:"collection_id"`
	Variants     *[]variantReq `json:"variants"`
}

func (req *productReq) toDomain() *domain.Product {
	p := &domain.Product{
		Name:         req.Name,
		Slug:         req.Slug,
		Description:  req.Description,
		ShortDesc:    req.ShortDesc,
		Price:        req.Price,
		ComparePrice: req.ComparePrice,
		Cost:         req.Cost,
		SKU:          req.SKU,
		Barcode:      req.Barcode,
		TrackStock:   true,
		Stock:        req.Stock,
		LowStock:     req.LowStock,
		Weight:       req.Weight,
		Status:       domain.ProductStatus(req.Status),
		IsActive:     req.IsActive,
		IsFeatured:   req.IsFeatured,
		Tags:         req.Tags,
		Images:       req.Images,
		SEOTitle:     req.SEOTitle,
		SEODesc:      req.SEODesc,
		CategoryID:   req.CategoryID,
		CollectionID: req.CollectionID,
	}
	if req.TrackStock != nil {
		p.TrackStock = *req.TrackStock
	}
	return p
}

func variantsToDomain(reqs []variantReq) []domain.ProductVariant {
	out := make([]domain.ProductVariant, 0, len(reqs))
	for _, v := range reqs {
		dv := domain.ProductVariant{
			Name:    v.Name,
			SKU:     v.SKU,
			Price:   v.Price,
			Stock:   v.Stock,
			Options: v.Options,
		}
		if v.ID != nil {
			dv.ID = *v.ID
		}
		out = append(out, dv)
	}
	return out
}

func (s *Server) apiProducts(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	switch r.Method {
	case http.MethodGet:
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
		if id, err := uuid.Parse(q.Get("collection")); err == nil {
			f.CollectionID = &id
		}
		list, total, err := s.products.List(r.Context(), f)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, 200, map[string]any{"items": list, "total": total, "page": page, "limit": size})
	case http.MethodPost:
		var req productReq
		if err := decodeBody(r, &req); err != nil {
			badRequest(w, "invalid json")
			return
		}
		p := req.toDomain()
		if req.Variants != nil {
			p.Variants = variantsToDomain(*req.Variants)
		}
		created, err := s.products.Create(r.Context(), p)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, 201, created)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) apiProductSearch(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	list, err := s.products.Search(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, map[string]any{"items": list})
}

func (s *Server) apiProductByID(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	id, _, ok := pathID(r, "/api/products/")
	if !ok {
		badRequest(w, "invalid product id")
		return
	}
	switch r.Method {
	case http.MethodGet:
		p, err := s.products.Get(r.Context(), id)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, 200, p)
	case http.MethodPut:
		var req productReq
		if err := decodeBody(r, &req); err != nil {
			badRequest(w, "invalid json")
			return
		}
		var variants []domain.ProductVariant
		if req.Variants != nil {
			variants = variantsToDomain(*req.Variants)
			if variants == nil {
				variants = []domain.ProductVariant{}
			}
		}
		updated, err := s.products.Update(r.Context(), id, req.toDomain(), variants)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, 200, updated)
	case http.MethodDelete:
		if err := s.products.Delete(r.Context(), id); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, 200, map[string]bool{"deleted": true})
	default:
		methodNotAllowed(w)
	}
}
