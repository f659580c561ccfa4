package service

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/recetario/backend/internal/storage"
)

const MaxImageSize = 10 << 20

// UploadService stores user images under random names.
type UploadService struct {
	store  storage.ObjectStore
	bucket string
	logger *slog.Logger
}

var _ IUploadService = (*UploadService)(nil)

func NewUploadService(store storage.ObjectStore, bucket string, logger *slog.Logger) *UploadService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UploadService{
		store:  store,
		bucket: bucket,
		logger: logger.With("component", "upload"),
	}
}

// UploadImage stores an image as "<uuid>.<ext>" and returns its public URL.
func (s *UploadService) UploadImage(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: file must be an image", ErrValidation)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: file is empty", ErrValidation)
	}
	if len(data) > MaxImageSize {
		return "", fmt.Errorf("%w: file exceeds %d bytes", ErrValidation, MaxImageSize)
	}

	name := uuid.NewString()
	if ext := strings.TrimPrefix(filepath.Ext(filename), "."); ext != "" {
		name += "." + strings.ToLower(ext)
	}

	url, err := s.store.Store(ctx, data, s.bucket, name, contentType)
	if err != nil {
		s.logger.ErrorContext(ctx, "image upload failed", "bucket", s.bucket, "path", name, "error", err)
		return "", ErrUploadFailed
	}
	return url, nil
}
