package httpserver

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/breska/backoffice/internal/domain"
)

type sectionReq struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Type        string         `json:"type"`
	Content     map[string]any `json:"content"`
	IsVisible   *bool          `json:"is_visible"`
	SortOrder   int            `json:"sort_order"`
}

func (req *sectionReq) toDomain() *domain.HomeSection {
	s := &domain.HomeSection{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Content:     req.Content,
		IsVisible:   true,
		SortOrder:   req.SortOrder,
	}
	if req.IsVisible != nil {
		s.IsVisible = *req.IsVisible
	}
	return s
}

func (s *Server) apiHomeSections(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	switch r.Method {
	case http.MethodGet:
		onlyVisible := r.URL.Query().Get("visible") == "true"
		list, err := s.content.ListSections(r.Context(), onlyVisible)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, 200, map[string]any{"items": list})
	case http.MethodPost:
		var req sectionReq
		if err := decodeBody(r, &req); err != nil {
			badRequest(w, "invalid json")
			return
		}
		created, err := s.content.CreateSection(r.Context(), req.toDomain())
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, 201, created)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) apiReorderSections(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req struct {
		IDs []uuid.UUID `json:"ids"`
	}
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid json")
		return
	}
	if err := s.content.ReorderSections(r.Context(), req.IDs); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, map[string]bool{"reordered": true})
}

func (s *Server) apiHomeSectionByID(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	id, _, ok := pathID(r, "/api/content/sections/")
	if !ok {
		badRequest(w, "invalid section id")
		return
	}
	switch r.Method {
	case http.MethodGet:
		sec, err := s.content.GetSection(r.Context(), id)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, 200, sec)
	case http.MethodPut:
		var req sectionReq
		if err := decodeBody(r, &req); err != nil {
			badRequest(w, "invalid json")
			return
		}
		updated, err := s.content.UpdateSection(r.Context(), id, req.toDomain())
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, 200, updated)
	case http.MethodDelete:
		if err := s.content.DeleteSection(r.Context(), id); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, 200, map[string]bool{"deleted": true})
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) apiSettings(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	switch r.Method {
	case http.MethodGet:
		list, err := s.content.ListSettings(r.Context())
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, 200, map[string]any{"items": list})
	case http.MethodPut, http.MethodPost:
		var req struct {
			Settings []struct {
				Key   string `json:"key"`
				Value string `json:"value"`
				Type  string `json:"type"`
			} `json:"settings"`
		}
		if err := decodeBody(r, &req); err != nil {
			badRequest(w, "invalid json")
			return
		}
		settings := make([]domain.Setting, 0, len(req.Settings))
		for _, kv := range req.Settings {
			settings = append(settings, domain.Setting{Key: kv.Key, Value: kv.Value, Type: kv.Type})
		}
		if err := s.content.SaveSettings(r.Context(), settings); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, 200, map[string]bool{"saved": true})
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) apiSettingByKey(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	key := strings.TrimPrefix(r.URL.Path, "/api/settings/")
	if key == "" {
		badRequest(w, "setting key is required")
		return
	}
	if r.Method != http.MethodDelete {
		methodNotAllowed(w)
		return
	}
	if err := s.content.DeleteSetting(r.Context(), key); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, map[string]bool{"deleted": true})
}
