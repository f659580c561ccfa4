package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/recetario/backend/internal/service"
)

// Stable machine-readable codes sent next to the human message. Clients
// should branch on these rather than on the status or the message text.
const (
	codeNotFound           = "not_found"
	codeForbidden          = "forbidden"
	codeUnauthenticated    = "unauthenticated"
	codeInvalidCredentials = "invalid_credentials"
	codeValidationFailed   = "validation_failed"
	codeConflict           = "conflict"
	codeInvalidRequest     = "invalid_request"
	codeUploadFailed       = "upload_failed"
	codeRenderFailed       = "render_failed"
	codeInternal           = "internal"
)

// errorResponse is the body of every error reply.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// respondError maps service errors onto HTTP statuses with an
// {"error": ..., "code": ...} body.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	_ = c.Error(err)

	status, body := statusFor(err)
	if status == http.StatusInternalServerError && logger != nil {
		logger.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "code", body.Code, "error", err)
	}
	c.AbortWithStatusJSON(status, body)
}

func statusFor(err error) (int, errorResponse) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, errorResponse{err.Error(), codeNotFound}
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, errorResponse{"not enough permissions", codeForbidden}
	case errors.Is(err, service.ErrUnauthenticated), errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized, errorResponse{"could not validate credentials", codeUnauthenticated}
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{"incorrect username or password", codeInvalidCredentials}
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest, errorResponse{err.Error(), codeValidationFailed}
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict, errorResponse{err.Error(), codeConflict}
	case errors.Is(err, service.ErrUploadFailed):
		return http.StatusInternalServerError, errorResponse{"failed to upload file", codeUploadFailed}
	case errors.Is(err, service.ErrRenderFailed):
		return http.StatusInternalServerError, errorResponse{"failed to generate PDF", codeRenderFailed}
	default:
		return http.StatusInternalServerError, errorResponse{"internal server error", codeInternal}
	}
}

// badRequest rejects a request that failed binding or form parsing.
func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{err.Error(), codeInvalidRequest})
}

// pathID parses the :id route parameter. It writes a 400 and returns false
// when the value is not a positive integer.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{"invalid id", codeInvalidRequest})
		return 0, false
	}
	return uint(id), true
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
