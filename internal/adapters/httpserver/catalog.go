package httpserver

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/breska/backoffice/internal/domain"
)

type categoryReq struct {
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
	IsActive    *bool      `json:"is_active"`
	ParentID    *uuid.UUID `json:"parent_id"`
}

func (req *categoryReq) toDomain() *domain.Category {
	c := &domain.Category{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Image:       req.Image,
		IsActive:    true,
		ParentID:    req.ParentID,
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	return c
}

func (s *Server) apiCategories(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	switch r.Method {
	case http.MethodGet:
		list, err := s.categories.List(r.Context())
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, 200, map[string]any{"items": list})
	case http.MethodPost:
		var req categoryReq
		if err := decodeBody(r, &req); err != nil {
			badRequest(w, "invalid json")
			return
		}
		created, err := s.categories.Create(r.Context(), req.toDomain())
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, 201, created)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) apiCategoryByID(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	id, _, ok := pathID(r, "/api/categories/")
	if !ok {
		badRequest(w, "invalid category id")
		return
	}
	switch r.Method {
	case http.MethodGet:
		c, err := s.categories.Get(r.Context(), id)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, 200, c)
	case http.MethodPut:
		var req categoryReq
		if err := decodeBody(r, &req); err != nil {
			badRequest(w, "invalid json")
			return
		}
		updated, err := s.categories.Update(r.Context(), id, req.toDomain())
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, 200, updated)
	case http.MethodDelete:
		if err := s.categories.Delete(r.Context(), id); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, 200, map[string]bool{"deleted": true})
	default:
		methodNotAllowed(w)
	}
}

type collectionReq struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Image       string `json:"image"`
	IsActive    *bool  `json:"is_active"`
}

func (req *collectionReq) toDomain() *domain.Collection {
	c := &domain.Collection{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Image:       req.Image,
		IsActive:    true,
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	return c
}

func (s *Server) apiCollections(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	switch r.Method {
	case http.MethodGet:
		list, err := s.collections.List(r.Context())
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, 200, map[string]any{"items": list})
	case http.MethodPost:
		var req collectionReq
		if err := decodeBody(r, &req); err != nil {
			badRequest(w, "invalid json")
			return
		}
		created, err := s.collections.Create(r.Context(), req.toDomain())
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, 201, created)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) apiCollectionByID(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	id, _, ok := pathID(r, "/api/collections/")
	if !ok {
		badRequest(w, "invalid collection id")
		return
	}
	switch r.Method {
	case http.MethodGet:
		c, err := s.collections.Get(r.Context(), id)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, 200, c)
	case http.MethodPut:
		var req collectionReq
		if err := decodeBody(r, &req); err != nil {
			badRequest(w, "invalid json")
			return
		}
		updated, err := s.collections.Update(r.Context(), id, req.toDomain())
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, 200, updated)
	case http.MethodDelete:
		if err := s.collections.Delete(r.Context(), id); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, 200, map[string]bool{"deleted": true})
	default:
		methodNotAllowed(w)
	}
}
