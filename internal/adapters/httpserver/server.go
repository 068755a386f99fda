package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/breska/backoffice/internal/domain"
	"github.com/breska/backoffice/internal/usecase"
)

type Server struct {
	mux *http.ServeMux

	auth        *usecase.AuthUC
	products    *usecase.ProductUC
	categories  *usecase.CategoryUC
	collections *usecase.CollectionUC
	customers   *usecase.CustomerUC
	orders      *usecase.OrderUC
	stock       *usecase.StockUC
	dashboard   *usecase.DashboardUC
	content     *usecase.ContentUC
	media       *usecase.MediaUC

	uploadsDir string
}

type Deps struct {
	Auth        *usecase.AuthUC
	Products    *usecase.ProductUC
	Categories  *usecase.CategoryUC
	Collections *usecase.CollectionUC
	Customers   *usecase.CustomerUC
	Orders      *usecase.OrderUC
	Stock       *usecase.StockUC
	Dashboard   *usecase.DashboardUC
	Content     *usecase.ContentUC
	Media       *usecase.MediaUC
	UploadsDir  string
}

func New(d Deps) http.Handler {
	s := &Server{
		mux:         http.NewServeMux(),
		auth:        d.Auth,
		products:    d.Products,
		categories:  d.Categories,
		collections: d.Collections,
		customers:   d.Customers,
		orders:      d.Orders,
		stock:       d.Stock,
		dashboard:   d.Dashboard,
		content:     d.Content,
		media:       d.Media,
		uploadsDir:  d.UploadsDir,
	}
	s.routes()
	return Chain(s.mux,
		RateLimit(120),
		CORS,
		RequestID,
		Recovery,
		Logging,
	)
}

func (s *Server) routes() {
	s.mux.Handle("/uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.uploadsDir))))

	s.mux.HandleFunc("/health", s.handleHealth)

	s.mux.HandleFunc("/api/auth/login", s.apiLogin)
	s.mux.HandleFunc("/api/auth/register", s.apiRegister)
	s.mux.HandleFunc("/api/auth/me", s.apiMe)

	s.mux.HandleFunc("/api/products", s.apiProducts)
	s.mux.HandleFunc("/api/products/search", s.apiProductSearch)
	s.mux.HandleFunc("/api/products/", s.apiProductByID)

	s.mux.HandleFunc("/api/categories", s.apiCategories)
	s.mux.HandleFunc("/api/categories/", s.apiCategoryByID)
	s.mux.HandleFunc("/api/collections", s.apiCollections)
	s.mux.HandleFunc("/api/collections/", s.apiCollectionByID)

	s.mux.HandleFunc("/api/customers", s.apiCustomers)
	s.mux.HandleFunc("/api/customers/", s.apiCustomerByID)

	s.mux.HandleFunc("/api/orders", s.apiOrders)
	s.mux.HandleFunc("/api/orders/", s.apiOrderByID)

	s.mux.HandleFunc("/api/inventory/overview", s.apiInventoryOverview)
	s.mux.HandleFunc("/api/inventory/products", s.apiInventoryProducts)
	s.mux.HandleFunc("/api/inventory/stock", s.apiSetStock)
	s.mux.HandleFunc("/api/inventory/stock/bulk", s.apiBulkSetStock)
	s.mux.HandleFunc("/api/inventory/export", s.apiInventoryExport)
	s.mux.HandleFunc("/api/stock/movements", s.apiStockMovements)
	s.mux.HandleFunc("/api/stock/alerts", s.apiInventoryAlerts)
	s.mux.HandleFunc("/api/stock/sync-stock", s.apiSyncStock)

	s.mux.HandleFunc("/api/dashboard", s.apiDashboardStats)

	s.mux.HandleFunc("/api/content/sections", s.apiHomeSections)
	s.mux.HandleFunc("/api/content/sections/reorder", s.apiReorderSections)
	s.mux.HandleFunc("/api/content/sections/", s.apiHomeSectionByID)

	s.mux.HandleFunc("/api/settings", s.apiSettings)
	s.mux.HandleFunc("/api/settings/", s.apiSettingByKey)

	s.mux.HandleFunc("/api/media", s.apiMedia)
	s.mux.HandleFunc("/api/media/upload", s.apiMediaUpload)
	s.mux.HandleFunc("/api/media/", s.apiMediaByID)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, 200, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr maps domain sentinels to status codes and always answers with an
// {"error": ...} body.
func writeErr(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	msg := "internal error"
	switch {
	case errors.Is(err, domain.ErrValidation):
		code, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrNotFound):
		code, msg = http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrConflict):
		code, msg = http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		code, msg = http.StatusUnauthorized, err.Error()
	}
	writeJSON(w, code, map[string]string{"error": msg})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
}

// requireAdmin resolves the bearer token, writing 401 itself when it cannot.
func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) *domain.User {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
		return nil
	}
	user, err := s.auth.VerifyToken(r.Context(), strings.TrimPrefix(h, "Bearer "))
	if err != nil {
		writeErr(w, err)
		return nil
	}
	return user
}

// pathID extracts the trailing uuid from paths like /api/orders/{id}.
func pathID(r *http.Request, prefix string) (uuid.UUID, string, bool) {
	rest := strings.TrimPrefix(r.URL.Path, prefix)
	seg, tail, _ := strings.Cut(rest, "/")
	id, err := uuid.Parse(seg)
	if err != nil {
		return uuid.Nil, "", false
	}
	return id, tail, true
}

func pageParams(r *http.Request, defSize int) (int, int) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	size, _ := strconv.Atoi(q.Get("limit"))
	if size < 1 || size > 200 {
		size = defSize
	}
	return page, size
}

func decodeBody(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
