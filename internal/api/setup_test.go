package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/recetario/backend/internal/logger"
	"github.com/recetario/backend/internal/mocks"
	"github.com/recetario/backend/internal/models"
	"github.com/recetario/backend/internal/repository"
	"github.com/recetario/backend/internal/service"
	"github.com/recetario/backend/internal/testhelpers"
)

const (
	testImagesBucket = "images"
	testPDFBucket    = "pdfs"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router   *gin.Engine
	db       *gorm.DB
	auth     *service.AuthService
	renderer *mocks.MockRenderer
	store    *mocks.MockObjectStore
}

// setupTestRouter wires every handler over real services backed by an
// in-memory database. Rendering and object storage are mocked.
func setupTestRouter(t *testing.T) *testEnv {
	t.Helper()
	RegisterValidators()

	db := testhelpers.NewSQLiteDB(t)
	repo := repository.New(db)
	log := logger.Discard()

	env := &testEnv{
		db:       db,
		auth:     service.NewAuthService(repo, "test-secret", time.Hour, log),
		renderer: new(mocks.MockRenderer),
		store:    new(mocks.MockObjectStore),
	}

	exportService := service.NewExportService(repo, env.renderer, env.store, testPDFBucket, log)

	router := gin.New()
	router.GET("/health", HealthHandler(repo))
	v1 := router.Group("/api/v1")
	NewAuthHandler(env.auth, log).RegisterRoutes(v1)
	NewRecipeHandler(service.NewRecipeService(repo, nil, log), exportService, env.auth, nil, nil, log).RegisterRoutes(v1)
	NewCookbookHandler(service.NewCookbookService(repo, log), exportService, env.auth, nil, log).RegisterRoutes(v1)
	NewRatingHandler(service.NewRatingService(repo), env.auth, log).RegisterRoutes(v1)
	NewUploadHandler(service.NewUploadService(env.store, testImagesBucket, log), env.auth, log).RegisterRoutes(v1)
	env.router = router

	return env
}

// createUserAndToken inserts a user and returns a bearer token for it.
func (e *testEnv) createUserAndToken(t *testing.T, username string) (*models.User, string) {
	t.Helper()
	user := testhelpers.CreateUser(t, e.db, username)
	token, err := e.auth.GenerateToken(user)
	require.NoError(t, err)
	return user, token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, w)["error"]
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, w)["code"]
}
