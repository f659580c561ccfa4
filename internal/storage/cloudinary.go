package storage

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/recetario/backend/config"
)

// CloudinaryStore maps buckets to folders and paths to public ids.
type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	logger *slog.Logger
}

var _ ObjectStore = (*CloudinaryStore)(nil)

func NewCloudinaryStore(cfg config.CloudinaryConfig, logger *slog.Logger) (*CloudinaryStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		cld *cloudinary.Cloudinary
		err error
	)
	if cfg.URL != "" {
		cld, err = cloudinary.NewFromURL(cfg.URL)
	} else {
		cld, err = cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}

	return &CloudinaryStore{
		cld:    cld,
		logger: logger.With("component", "cloudinary"),
	}, nil
}

func (s *CloudinaryStore) Store(ctx context.Context, data []byte, bucket, objectPath, contentType string) (string, error) {
	params := cloudinaryParams(bucket, objectPath, contentType)

	result, err := s.cld.Upload.Upload(ctx, data, params)
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to Cloudinary: %w", objectPath, err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("cloudinary rejected %s: %s", objectPath, result.Error.Message)
	}

	s.logger.InfoContext(ctx, "object stored", "folder", bucket, "public_id", params.PublicID, "bytes", len(data))
	return result.SecureURL, nil
}

// cloudinaryParams builds the upload parameters. Images lose their extension
// since Cloudinary derives the format; everything else is uploaded raw with
// the full name so downloads keep it.
func cloudinaryParams(bucket, objectPath, contentType string) uploader.UploadParams {
	publicID := objectPath
	resourceType := "raw"
	if strings.HasPrefix(contentType, "image/") {
		resourceType = "image"
		publicID = strings.TrimSuffix(objectPath, path.Ext(objectPath))
	}

	return uploader.UploadParams{
		Folder:       bucket,
		PublicID:     publicID,
		ResourceType: resourceType,
		Overwrite:    api.Bool(true),
		Invalidate:   api.Bool(true),
	}
}
