package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/breska/backoffice/internal/adapters/repo/postgres"
	"github.com/breska/backoffice/internal/auth"
	"github.com/breska/backoffice/internal/domain"
	"github.com/breska/backoffice/internal/usecase"
)

type testEnv struct {
	handler http.Handler
	db      *gorm.DB
	token   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{}, &domain.Category{}, &domain.Collection{},
		&domain.Product{}, &domain.ProductVariant{},
		&domain.Customer{}, &domain.Order{}, &domain.OrderItem{},
		&domain.StockMovement{}, &domain.MediaFile{},
		&domain.HomeSection{}, &domain.Setting{},
	))

	prodRepo := postgres.NewProductRepo(db)
	catRepo := postgres.NewCategoryRepo(db)
	custRepo := postgres.NewCustomerRepo(db)
	orderRepo := postgres.NewOrderRepo(db)
	stockRepo := postgres.NewStockRepo(db)
	userRepo := postgres.NewUserRepo(db)

	tokens := auth.NewTokens("test-secret", time.Hour)
	authUC := &usecase.AuthUC{Users: userRepo, Tokens: tokens}

	admin, err := authUC.Register(context.Background(), "admin@example.com", "super-secreto", "Admin")
	require.NoError(t, err)
	token, _, err := tokens.Generate(admin.ID, admin.Email)
	require.NoError(t, err)

	h := New(Deps{
		Auth:        authUC,
		Products:    &usecase.ProductUC{Products: prodRepo},
		Categories:  &usecase.CategoryUC{Categories: catRepo},
		Collections: &usecase.CollectionUC{Collections: postgres.NewCollectionRepo(db)},
		Customers:   &usecase.CustomerUC{Customers: custRepo},
		Orders:      &usecase.OrderUC{Orders: orderRepo, Customers: custRepo, Products: prodRepo, Stock: stockRepo},
		Stock:       &usecase.StockUC{Stock: stockRepo, Products: prodRepo, Categories: catRepo},
		Dashboard:   &usecase.DashboardUC{Orders: orderRepo, Customers: custRepo, Products: prodRepo},
		Content:     &usecase.ContentUC{Sections: postgres.NewHomeSectionRepo(db), Settings: postgres.NewSettingRepo(db)},
		Media:       &usecase.MediaUC{Media: postgres.NewMediaRepo(db)},
		UploadsDir:  t.TempDir(),
	})
	return &testEnv{handler: h, db: db, token: token}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, out any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Authorization", "Bearer "+e.token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	if out != nil && rec.Code < 300 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}

func TestRequiresBearerToken(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "error")
}

func TestHealthIsPublic(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginEndpoint(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		bytes.NewBufferString(`{"email":"admin@example.com","password":"super-secreto"}`))
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Token)
	assert.Equal(t, "admin@example.com", body.User.Email)

	req = httptest.NewRequest(http.MethodPost, "/api/auth/login",
		bytes.NewBufferString(`{"email":"admin@example.com","password":"wrong"}`))
	rec = httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProductLifecycleOverHTTP(t *testing.T) {
	env := newTestEnv(t)

	var created domain.Product
	rec := env.do(t, http.MethodPost, "/api/products", map[string]any{
		"name":      "Funda Silicona",
		"price":     4500,
		"stock":     10,
		"is_active": true,
		"status":    "ACTIVE",
	}, &created)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "funda-silicona", created.Slug)

	var fetched domain.Product
	rec = env.do(t, http.MethodGet, "/api/products/"+created.ID.String(), nil, &fetched)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created.ID, fetched.ID)

	rec = env.do(t, http.MethodGet, "/api/products/"+uuid.NewString(), nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/products/"+created.ID.String(), nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStockEndpointWritesMovement(t *testing.T) {
	env := newTestEnv(t)

	var created domain.Product
	rec := env.do(t, http.MethodPost, "/api/products", map[string]any{
		"name": "Cable USB-C", "price": 2000, "stock": 4,
	}, &created)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/inventory/stock", map[string]any{
		"product_id": created.ID, "stock": 20, "reason": "Reposición",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var movements struct {
		Items []domain.StockMovement `json:"items"`
		Total int64                  `json:"total"`
	}
	rec = env.do(t, http.MethodGet, "/api/stock/movements?product="+created.ID.String(), nil, &movements)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, int64(1), movements.Total)
	assert.Equal(t, domain.MovementIn, movements.Items[0].Type)
	assert.Equal(t, 16, movements.Items[0].Quantity)

	rec = env.do(t, http.MethodPost, "/api/inventory/stock", map[string]any{
		"product_id": created.ID, "stock": -5,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderTransitionConflictsOverHTTP(t *testing.T) {
	env := newTestEnv(t)

	var cust domain.Customer
	rec := env.do(t, http.MethodPost, "/api/customers", map[string]any{
		"first_name": "Marta", "last_name": "Gomez",
	}, &cust)
	require.Equal(t, http.StatusCreated, rec.Code)

	var prod domain.Product
	rec = env.do(t, http.MethodPost, "/api/products", map[string]any{
		"name": "Funda", "price": 4000, "stock": 5,
	}, &prod)
	require.Equal(t, http.StatusCreated, rec.Code)

	var order domain.Order
	rec = env.do(t, http.MethodPost, "/api/orders", map[string]any{
		"customer_id": cust.ID,
		"items":       []map[string]any{{"product_id": prod.ID, "quantity": 2}},
	}, &order)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, domain.OrderStatusPending, order.Status)

	// PENDING cannot jump straight to SHIPPED
	rec = env.do(t, http.MethodPut, "/api/orders/"+order.ID.String(), map[string]any{
		"status": "SHIPPED",
	}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodPut, "/api/orders/"+order.ID.String(), map[string]any{
		"status": "CONFIRMED",
	}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// confirmed orders cannot be deleted
	rec = env.do(t, http.MethodDelete, "/api/orders/"+order.ID.String(), nil, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCategoryDeleteConflict(t *testing.T) {
	env := newTestEnv(t)

	var cat domain.Category
	rec := env.do(t, http.MethodPost, "/api/categories", map[string]any{"name": "Fundas"}, &cat)
	require.Equal(t, http.StatusCreated, rec.Code)

	var prod domain.Product
	rec = env.do(t, http.MethodPost, "/api/products", map[string]any{
		"name": "Funda", "price": 4000, "category_id": cat.ID,
	}, &prod)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/categories/"+cat.ID.String(), nil, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSettingsUpsertOverHTTP(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPut, "/api/settings", map[string]any{
		"settings": []map[string]any{
			{"key": "store_name", "value": "Breska"},
			{"key": "free_shipping_from", "value": "50000", "type": "number"},
		},
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// second write updates in place
	rec = env.do(t, http.MethodPut, "/api/settings", map[string]any{
		"settings": []map[string]any{{"key": "store_name", "value": "Breska Store"}},
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Items []domain.Setting `json:"items"`
	}
	rec = env.do(t, http.MethodGet, "/api/settings", nil, &got)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, got.Items, 2)

	byKey := map[string]domain.Setting{}
	for _, s := range got.Items {
		byKey[s.Key] = s
	}
	assert.Equal(t, "Breska Store", byKey["store_name"].Value)
	assert.Equal(t, "number", byKey["free_shipping_from"].Type)
}
