package config

const (
	StorageS3         = "s3"
	StorageCloudinary = "cloudinary"
)

// StorageConfig selects and configures the object store for images and PDFs.
type StorageConfig struct {
	Backend      string `env:"STORAGE_BACKEND" envDefault:"s3"`
	ImagesBucket string `env:"IMAGES_BUCKET" envDefault:"recetario-images"`
	PDFBucket    string `env:"PDF_BUCKET" envDefault:"recetarios-pdf"`

	S3         S3Config
	Cloudinary CloudinaryConfig
}

// S3Config holds the settings of an S3 or S3-compatible store
// (MinIO, Supabase storage) reached through a custom endpoint.
type S3Config struct {
	Region          string `env:"AWS_REGION" envDefault:"us-east-1"`
	Endpoint        string `env:"S3_ENDPOINT"`
	AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
	UsePathStyle    bool   `env:"S3_USE_PATH_STYLE" envDefault:"false"`
	PublicBaseURL   string `env:"S3_PUBLIC_BASE_URL"`
	CreateBuckets   bool   `env:"S3_CREATE_BUCKETS" envDefault:"false"`
}

type CloudinaryConfig struct {
	CloudName string `env:"CLOUDINARY_CLOUD_NAME"`
	APIKey    string `env:"CLOUDINARY_API_KEY"`
	APISecret string `env:"CLOUDINARY_API_SECRET"`
	URL       string `env:"CLOUDINARY_URL"`
}
