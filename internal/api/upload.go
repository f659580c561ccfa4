package api

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recetario/backend/internal/middleware"
	"github.com/recetario/backend/internal/service"
	"github.com/recetario/backend/internal/types"
)

type UploadHandler struct {
	uploadService service.IUploadService
	auth          middleware.TokenValidator
	logger        *slog.Logger
}

func NewUploadHandler(uploadService service.IUploadService, auth middleware.TokenValidator, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{uploadService: uploadService, auth: auth, logger: logger}
}

func (h *UploadHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/upload", middleware.AuthMiddleware(h.auth), h.UploadImage)
}

// UploadImage stores the multipart "file" field in the images bucket.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		badRequest(c, fmt.Errorf("file is required: %w", err))
		return
	}
	if fileHeader.Size > service.MaxImageSize {
		respondError(c, h.logger, fmt.Errorf("%w: file exceeds %d bytes", service.ErrValidation, service.MaxImageSize))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, h.logger, fmt.Errorf("failed to open upload: %w", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, service.MaxImageSize+1))
	if err != nil {
		respondError(c, h.logger, fmt.Errorf("failed to read upload: %w", err))
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	url, err := h.uploadService.UploadImage(c.Request.Context(), data, fileHeader.Filename, contentType)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, types.URLResponse{URL: url})
}
