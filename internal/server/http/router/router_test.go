package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/polkiloo/smartxerox/internal/config"
	"github.com/polkiloo/smartxerox/internal/domain/model"
	"github.com/polkiloo/smartxerox/internal/server/http/handlers"
	"github.com/polkiloo/smartxerox/internal/test/facades"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := facades.PrintShopFacadeStub{
		OrderFacadeStub: facades.OrderFacadeStub{
			ByPhoneFn: func(_ context.Context, phone string) ([]model.Order, error) {
				return []model.Order{{ID: "1", PhoneNumber: phone, Status: model.OrderStatusReady}}, nil
			},
		},
	}
	return Setup(facade, &config.Config{MaxUploadSize: 1 << 20}, logger)
}

func do(engine *gin.Engine, method, path, token string, body []byte) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	return resp
}

func TestSetupHealthReportsDatabase(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := facades.PrintShopFacadeStub{HealthFacadeStub: facades.HealthFacadeStub{HealthErr: assert.AnError}}
	engine := Setup(facade, &config.Config{MaxUploadSize: 1 << 20}, logger)

	assert.Equal(t, http.StatusServiceUnavailable, do(engine, http.MethodGet, "/", "", nil).Code)
}

func TestSetupPublicRoutes(t *testing.T) {
	engine := newEngine()

	assert.Equal(t, http.StatusOK, do(engine, http.MethodGet, "/", "", nil).Code)
	assert.Equal(t, http.StatusOK, do(engine, http.MethodGet, "/api/orders/9876543210", "", nil).Code)
	assert.Equal(t, http.StatusOK, do(engine, http.MethodDelete, "/api/orders/abc", "", nil).Code)

	body, _ := json.Marshal(map[string]string{"email": "a@b.c", "password": "secret1"})
	assert.Equal(t, http.StatusOK, do(engine, http.MethodPost, "/api/auth/login", "", body).Code)
	assert.Equal(t, http.StatusOK, do(engine, http.MethodPost, "/api/admin/login", "", body).Code)
}

func TestSetupProtectedRoutes(t *testing.T) {
	engine := newEngine()
	status, _ := json.Marshal(map[string]string{"status": "Ready"})
	bulk, _ := json.Marshal(map[string]any{"order_ids": []string{"a"}, "status": "Ready"})

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		body   []byte
		want   int
	}{
		{"profile without token", http.MethodGet, "/api/auth/profile", "", nil, http.StatusUnauthorized},
		{"profile as student", http.MethodGet, "/api/auth/profile", "student-token", nil, http.StatusOK},
		{"orders without token", http.MethodGet, "/api/admin/orders", "", nil, http.StatusUnauthorized},
		{"orders as student", http.MethodGet, "/api/admin/orders", "student-token", nil, http.StatusForbidden},
		{"orders as admin", http.MethodGet, "/api/admin/orders", "admin-token", nil, http.StatusOK},
		{"groups as admin", http.MethodGet, "/api/admin/orders/groups", "admin-token", nil, http.StatusOK},
		{"status as admin", http.MethodPut, "/api/admin/orders/abc/status", "admin-token", status, http.StatusOK},
		{"bulk as admin", http.MethodPut, "/api/admin/orders/bulk-status", "admin-token", bulk, http.StatusOK},
		{"stats as admin", http.MethodGet, "/api/admin/stats", "admin-token", nil, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := do(engine, tc.method, tc.path, tc.token, tc.body)
			assert.Equal(t, tc.want, resp.Code, resp.Body.String())
		})
	}
}

func TestSetupCompressesResponses(t *testing.T) {
	engine := newEngine()
	req := httptest.NewRequest(http.MethodGet, "/api/orders/9876543210", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "gzip", resp.Header().Get("Content-Encoding"))
}

func TestModuleProvidesEngine(t *testing.T) {
	var engine *gin.Engine
	app := fxtest.New(t,
		fx.Provide(func() handlers.PrintShopFacade { return facades.PrintShopFacadeStub{} }),
		fx.Supply(
			&config.Config{MaxUploadSize: 1 << 20},
			slog.New(slog.NewJSONHandler(io.Discard, nil)),
		),
		Module,
		fx.Populate(&engine),
	)
	app.RequireStart().RequireStop()
	require.NotNil(t, engine)
}
