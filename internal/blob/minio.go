package blob

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/concavehq/concave/internal/config"
	"github.com/concavehq/concave/internal/logging"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

type minioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStore connects to an S3 compatible endpoint and ensures the
// bucket exists.
func NewMinioStore(ctx context.Context, cfg *config.BlobConfig) (Store, error) {
	endpoint := cfg.Endpoint
	useSSL := cfg.UseSSL
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		endpoint = u.Host
		if u.Scheme == "https" {
			useSSL = true
		}
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: useSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create blob client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
	}

	return &minioStore{client: client, bucket: cfg.Bucket}, nil
}

func (m *minioStore) Put(ctx context.Context, path string, r io.Reader, size int64, contentType string) error {
	_, err := m.client.PutObject(ctx, m.bucket, path, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func (m *minioStore) Delete(ctx context.Context, path string) error {
	return m.client.RemoveObject(ctx, m.bucket, path, minio.RemoveObjectOptions{})
}

func (m *minioStore) SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, m.bucket, path, ttl, url.Values{})
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func (m *minioStore) SignedURLs(ctx context.Context, paths []string, ttl time.Duration) (map[string]string, error) {
	urls := make(map[string]string, len(paths))
	for _, path := range paths {
		u, err := m.client.PresignedGetObject(ctx, m.bucket, path, ttl, url.Values{})
		if err != nil {
			logging.FromContext(ctx).Warn("sign url failed", zap.String("path", path), zap.Error(err))
			continue
		}
		urls[path] = u.String()
	}
	return urls, nil
}
