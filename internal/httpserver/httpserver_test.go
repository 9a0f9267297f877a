package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fabian692/ecommerce/internal/models"
	"github.com/fabian692/ecommerce/internal/repo"
	"github.com/fabian692/ecommerce/internal/service"
)

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.CartItem{}, &models.RefreshToken{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	jwtSecret := []byte("test-jwt-secret")
	gormRepo := &repo.GormRepo{DB: db}

	authService := &service.AuthService{
		Repo:          gormRepo,
		JWTSecret:     jwtSecret,
		RefreshSecret: []byte("test-refresh-secret"),
	}

	e := echo.New()
	Register(e, &Deps{
		AuthHandler:    &AuthHTTP{Svc: authService},
		ProductHandler: &ProductHTTP{Svc: &service.CatalogService{Repo: gormRepo}},
		CartHandler:    &CartHTTP{Svc: &service.CartService{Repo: gormRepo}},
		JWTSecret:      jwtSecret,
	})

	require.NoError(t, authService.EnsureAdmin(context.Background(), "admin123"))

	return &testEnv{T: t, E: e, DB: db}
}

func (env *testEnv) doJSON(method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) login(username, password string) []*http.Cookie {
	env.T.Helper()

	rec := env.doJSON(http.MethodPost, "/api/v1/login", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(env.T, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.NotEmpty(env.T, cookies)
	return cookies
}

func (env *testEnv) loginCustomer(username string) []*http.Cookie {
	env.T.Helper()

	rec := env.doJSON(http.MethodPost, "/api/v1/register", map[string]string{
		"username": username,
		"password": "password",
	})
	require.Equal(env.T, http.StatusCreated, rec.Code)

	return env.login(username, "password")
}

func (env *testEnv) loginAdmin() []*http.Cookie {
	env.T.Helper()
	return env.login("admin", "admin123")
}

func (env *testEnv) createProduct(name string, price float64, stock uint) models.Product {
	env.T.Helper()

	rec := env.doJSON(http.MethodPost, "/api/v1/admin/products", map[string]any{
		"name":        name,
		"description": "test_description",
		"price":       price,
		"stock":       stock,
	}, env.loginAdmin()...)
	require.Equal(env.T, http.StatusCreated, rec.Code)

	var prod models.Product
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &prod))
	return prod
}
