package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/BerylCAtieno/opticours-api/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const bucketCheckTimeout = 10 * time.Second

type s3Storage struct {
	client *minio.Client
	bucket string
}

// NewS3Storage connects to an S3-compatible endpoint and creates the course
// bucket on first use.
func NewS3Storage(cfg *config.Config) (Storage, error) {
	client, err := minio.New(cfg.S3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3AccessKeyID, cfg.S3SecretAccessKey, ""),
		Secure: cfg.S3UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), bucketCheckTimeout)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.S3BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.S3BucketName, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.S3BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.S3BucketName, err)
		}
	}

	return &s3Storage{client: client, bucket: cfg.S3BucketName}, nil
}

func (s *s3Storage) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

func (s *s3Storage) Download(ctx context.Context, key string) ([]byte, error) {
	object, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, s.wrap(key, err)
	}
	defer object.Close()

	// GetObject is lazy; a missing key only surfaces on the first read.
	data, err := io.ReadAll(object)
	if err != nil {
		return nil, s.wrap(key, err)
	}
	return data, nil
}

// Delete treats a missing key as already deleted.
func (s *s3Storage) Delete(ctx context.Context, key string) error {
	err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil && !isNoSuchKey(err) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *s3Storage) wrap(key string, err error) error {
	if isNoSuchKey(err) {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, key)
	}
	return fmt.Errorf("failed to download %s: %w", key, err)
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}
