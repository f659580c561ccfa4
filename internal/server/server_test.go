package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recetario/backend/config"
	"github.com/recetario/backend/internal/export"
	"github.com/recetario/backend/internal/logger"
	"github.com/recetario/backend/internal/mocks"
	"github.com/recetario/backend/internal/testhelpers"
	"github.com/recetario/backend/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) *Server {
	cfg := &config.Config{
		ServerHost:  "127.0.0.1",
		ServerPort:  "0",
		JWTSecret:   "test-secret",
		JWTTTL:      time.Hour,
		CORSOrigins: []string{"http://localhost:5173"},
		Storage:     config.StorageConfig{ImagesBucket: "images", PDFBucket: "pdfs"},
		RateLimit:   config.RateLimitConfig{Enabled: true, RecipeCreates: 1, Exports: 1, Window: time.Hour},
	}

	return New(cfg, Dependencies{
		DB:       testhelpers.NewSQLiteDB(t),
		Store:    new(mocks.MockObjectStore),
		Renderer: export.NewPDFRenderer(),
		Logger:   logger.Discard(),
	})
}

func TestNew(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"not found"}`, w.Body.String())
}

func TestEndToEnd_WithoutRedis(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	post := func(path, token, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	require.Equal(t, http.StatusCreated, post("/api/v1/register", "", `{"username":"ana","email":"ana@example.com","password":"secret1"}`).Code)

	w := post("/api/v1/token", "", `{"username":"ana","password":"secret1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var tokenResp types.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tokenResp))
	token := tokenResp.AccessToken

	body := `{"title":"Pan","ingredients":[{"name":"harina"}],"instructions":"Amasar.","country":"Chile"}`
	// limits are disabled without redis, so both creates go through
	assert.Equal(t, http.StatusCreated, post("/api/v1/recipes", token, body).Code)
	assert.Equal(t, http.StatusCreated, post("/api/v1/recipes", token, body).Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/recipes/1/pdf", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
}

func TestStartShutdown(t *testing.T) {
	srv := newTestServer(t)

	done := make(chan error, 1)
	go func() { done <- srv.Start() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
