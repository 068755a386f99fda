package httpserver

import (
	"io"
	"net/http"

	"github.com/breska/backoffice/internal/domain"
	"github.com/breska/backoffice/internal/usecase"
)

func (s *Server) apiMedia(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	page, size := pageParams(r, 24)
	q := r.URL.Query()
	list, total, err := s.media.List(r.Context(), domain.MediaFilter{
		Folder:   q.Get("folder"),
		Type:     q.Get("type"),
		Query:    q.Get("q"),
		Page:     page,
		PageSize: size,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 200, map[string]any{"items": list, "total": total, "page": page, "limit": size})
}

func (s *Server) apiMediaUpload(w http.ResponseWriter, r *http.Request) {
	user := s.requireAdmin(w, r)
	if user == nil {
		return
	}
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		badRequest(w, "invalid multipart body")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		badRequest(w, "file field is required")
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		badRequest(w, "could not read file")
		return
	}
	mime := header.Header.Get("Content-Type")
	uid := user.ID
	m, err := s.media.Upload(r.Context(), usecase.UploadInput{
		OriginalName: header.Filename,
		MimeType:     mime,
		Data:         data,
		Folder:       r.FormValue("folder"),
		Alt:          r.FormValue("alt"),
		UploadedBy:   &uid,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, 201, m)
}

func (s *Server) apiMediaByID(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	id, _, ok := pathID(r, "/api/media/")
	if !ok {
		badRequest(w, "invalid media id")
		return
	}
	switch r.Method {
	case http.MethodGet:
		m, err := s.media.Get(r.Context(), id)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, 200, m)
	case http.MethodPatch, http.MethodPut:
		var req struct {
			Alt  string   `json:"alt"`
			Tags []string `json:"tags"`
		}
		if err := decodeBody(r, &req); err != nil {
			badRequest(w, "invalid json")
			return
		}
		updated, err := s.media.UpdateMeta(r.Context(), id, req.Alt, req.Tags)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, 200, updated)
	case http.MethodDelete:
		if err := s.media.Delete(r.Context(), id); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, 200, map[string]bool{"deleted": true})
	default:
		methodNotAllowed(w)
	}
}
