package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/recetario/backend/config"
)

// ObjectStore writes bytes under bucket/path and returns a public URL.
// Writing the same path again overwrites the object.
type ObjectStore interface {
	Store(ctx context.Context, data []byte, bucket, path, contentType string) (string, error)
}

// New builds the store selected by cfg.Backend.
func New(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (ObjectStore, error) {
	switch cfg.Backend {
	case config.StorageS3, "":
		store, err := NewS3Store(ctx, cfg.S3, logger)
		if err != nil {
			return nil, err
		}
		if cfg.S3.CreateBuckets {
			for _, bucket := range []string{cfg.ImagesBucket, cfg.PDFBucket} {
				if err := store.EnsureBucket(ctx, bucket); err != nil {
					return nil, err
				}
			}
		}
		return store, nil
	case config.StorageCloudinary:
		return NewCloudinaryStore(cfg.Cloudinary, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
