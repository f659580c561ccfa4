package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recetario/backend/internal/types"
)

func TestRegisterAndLogin(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do(t, http.MethodPost, "/api/v1/register", "", map[string]string{
		"username": "ana",
		"email":    "ana@example.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	user := decode[map[string]any](t, w)
	assert.Equal(t, "ana", user["username"])
	assert.NotContains(t, user, "hashed_password")

	// OAuth2 password flow form
	form := url.Values{"username": {"ana"}, "password": {"secret1"}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token := decode[types.TokenResponse](t, rec)
	assert.Equal(t, "bearer", token.TokenType)
	require.NotEmpty(t, token.AccessToken)

	me := env.do(t, http.MethodGet, "/api/v1/users/me", token.AccessToken, nil)
	require.Equal(t, http.StatusOK, me.Code)
	assert.Equal(t, "ana@example.com", decode[map[string]any](t, me)["email"])
}

func TestRegister_Errors(t *testing.T) {
	env := setupTestRouter(t)
	env.createUserAndToken(t, "taken")

	tests := []struct {
		name   string
		body   map[string]string
		status int
		code   string
		want   string
	}{
		{"short password", map[string]string{"username": "bob", "email": "bob@example.com", "password": "123"}, http.StatusBadRequest, "invalid_request", ""},
		{"bad email", map[string]string{"username": "bob", "email": "nope", "password": "secret1"}, http.StatusBadRequest, "invalid_request", ""},
		{"duplicate username", map[string]string{"username": "taken", "email": "new@example.com", "password": "secret1"}, http.StatusConflict, "conflict", "username already registered"},
		{"duplicate email", map[string]string{"username": "other", "email": "taken@example.com", "password": "secret1"}, http.StatusConflict, "conflict", "email already registered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/v1/register", "", tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Equal(t, tt.code, errorCode(t, w))
			if tt.want != "" {
				assert.Contains(t, errorMessage(t, w), tt.want)
			}
		})
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do(t, http.MethodPost, "/api/v1/token", "", map[string]string{"username": "ghost", "password": "whatever"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
	assert.Equal(t, "incorrect username or password", errorMessage(t, w))
	assert.Equal(t, "invalid_credentials", errorCode(t, w))
}

func TestMe_RequiresToken(t *testing.T) {
	env := setupTestRouter(t)

	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/api/v1/users/me", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/api/v1/users/me", "garbage", nil).Code)
}

func TestHealth(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","database":"ok"}`, w.Body.String())
}
