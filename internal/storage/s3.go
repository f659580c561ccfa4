package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/recetario/backend/config"
)

// S3Store uploads to AWS S3 or to any S3-compatible endpoint.
type S3Store struct {
	client   *s3.Client
	uploader *manager.Uploader
	cfg      config.S3Config
	logger   *slog.Logger
}

var _ ObjectStore = (*S3Store)(nil)

// NewS3Store creates the client. Static credentials are used when given,
// otherwise the default AWS credential chain applies.
func NewS3Store(ctx context.Context, cfg config.S3Config, logger *slog.Logger) (*S3Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &S3Store{
		client:   client,
		uploader: manager.NewUploader(client),
		cfg:      cfg,
		logger:   logger.With("component", "s3"),
	}, nil
}

func (s *S3Store) Store(ctx context.Context, data []byte, bucket, path, contentType string) (string, error) {
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(path),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to bucket %s: %w", path, bucket, err)
	}

	publicURL := s.PublicURL(bucket, path)
	s.logger.InfoContext(ctx, "object stored", "bucket", bucket, "path", path, "bytes", len(data))
	return publicURL, nil
}

// PublicURL builds the address an object is served from. S3_PUBLIC_BASE_URL
// takes precedence, then the custom endpoint, then the AWS virtual host.
func (s *S3Store) PublicURL(bucket, path string) string {
	return publicURL(s.cfg, bucket, path)
}

func publicURL(cfg config.S3Config, bucket, path string) string {
	escaped := escapePath(path)
	switch {
	case cfg.PublicBaseURL != "":
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(cfg.PublicBaseURL, "/"), bucket, escaped)
	case cfg.Endpoint != "":
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(cfg.Endpoint, "/"), bucket, escaped)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, cfg.Region, escaped)
	}
}

func escapePath(path string) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

// EnsureBucket creates the bucket when it does not exist yet and waits for
// it to become available.
func (s *S3Store) EnsureBucket(ctx context.Context, bucket string) error {
	headCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := s.client.HeadBucket(headCtx, &s3.HeadBucketInput{Bucket: aws.String(bucket)})
	if err == nil {
		return nil
	}
	var notFound *types.NotFound
	if !errors.As(err, &notFound) {
		s.logger.WarnContext(ctx, "bucket check failed, trying to create it", "bucket", bucket, "error", err)
	}

	input := &s3.CreateBucketInput{Bucket: aws.String(bucket)}
	if s.cfg.Region != "" && s.cfg.Region != "us-east-1" {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(s.cfg.Region),
		}
	}
	if _, err := s.client.CreateBucket(ctx, input); err != nil {
		var owned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &owned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
	}

	waiter := s3.NewBucketExistsWaiter(s.client)
	if err := waiter.Wait(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)}, 30*time.Second); err != nil {
		return fmt.Errorf("failed waiting for bucket %s: %w", bucket, err)
	}

	s.logger.InfoContext(ctx, "bucket created", "bucket", bucket)
	return nil
}
