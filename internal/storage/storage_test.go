package storage

import (
	"context"
	"testing"

	"github.com/recetario/backend/config"
	"github.com/recetario/backend/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.S3Config
		want string
	}{
		{
			name: "aws virtual host",
			cfg:  config.S3Config{Region: "eu-west-1"},
			want: "https://recetarios-pdf.s3.eu-west-1.amazonaws.com/recipe_1_Flan.pdf",
		},
		{
			name: "custom endpoint",
			cfg:  config.S3Config{Region: "us-east-1", Endpoint: "http://localhost:9000/"},
			want: "http://localhost:9000/recetarios-pdf/recipe_1_Flan.pdf",
		},
		{
			name: "public base url wins",
			cfg: config.S3Config{
				Endpoint:      "https://project.supabase.co/storage/v1/s3",
				PublicBaseURL: "https://project.supabase.co/storage/v1/object/public",
			},
			want: "https://project.supabase.co/storage/v1/object/public/recetarios-pdf/recipe_1_Flan.pdf",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, publicURL(tt.cfg, "recetarios-pdf", "recipe_1_Flan.pdf"))
		})
	}
}

func TestPublicURL_EscapesSegments(t *testing.T) {
	got := publicURL(config.S3Config{Endpoint: "http://minio:9000"}, "b", "dir/Crème brûlée.pdf")
	assert.Equal(t, "http://minio:9000/b/dir/Cr%C3%A8me%20br%C3%BBl%C3%A9e.pdf", got)
}

func TestCloudinaryParams(t *testing.T) {
	img := cloudinaryParams("recetario-images", "abc.png", "image/png")
	assert.Equal(t, "recetario-images", img.Folder)
	assert.Equal(t, "abc", img.PublicID)
	assert.Equal(t, "image", img.ResourceType)
	require.NotNil(t, img.Overwrite)
	assert.True(t, *img.Overwrite)

	pdf := cloudinaryParams("recetarios-pdf", "recipe_1_Flan.pdf", "application/pdf")
	assert.Equal(t, "recipe_1_Flan.pdf", pdf.PublicID)
	assert.Equal(t, "raw", pdf.ResourceType)
}

func TestNew_UnknownBackend(t *testing.T) {
	_, err := New(context.Background(), config.StorageConfig{Backend: "ftp"}, logger.Discard())
	assert.Error(t, err)
}

func TestNew_Cloudinary(t *testing.T) {
	store, err := New(context.Background(), config.StorageConfig{
		Backend: config.StorageCloudinary,
		Cloudinary: config.CloudinaryConfig{
			CloudName: "demo",
			APIKey:    "key",
			APISecret: "secret",
		},
	}, logger.Discard())
	require.NoError(t, err)
	assert.IsType(t, &CloudinaryStore{}, store)
}

func TestNew_S3(t *testing.T) {
	store, err := New(context.Background(), config.StorageConfig{
		Backend: config.StorageS3,
		S3: config.S3Config{
			Region:          "us-east-1",
			Endpoint:        "http://localhost:9000",
			AccessKeyID:     "minio",
			SecretAccessKey: "minio123",
			UsePathStyle:    true,
		},
	}, logger.Discard())
	require.NoError(t, err)
	assert.IsType(t, &S3Store{}, store)
}
