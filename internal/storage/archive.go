package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Shivanisinghay/Epsilon/internal/config"
)

// Archive mirrors generated media to an S3-compatible bucket so a copy
// survives the 24h local sweep. It is optional: a nil *Archive is a no-op.
type Archive struct {
	client *minio.Client
	bucket string
	region string
}

func NewArchive(cfg config.ArchiveConfig) (*Archive, error) {
	endpoint := cfg.Endpoint
	useSSL := cfg.UseSSL

	if strings.HasPrefix(endpoint, "http") {
		u, err := url.Parse(endpoint)
		if err != nil {
			return nil, fmt.Errorf("parse endpoint: %w", err)
		}
		endpoint = u.Host
		useSSL = u.Scheme == "https"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: useSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio: %w", err)
	}

	return &Archive{
		client: client,
		bucket: cfg.Bucket,
		region: cfg.Region,
	}, nil
}

func (a *Archive) EnsureBucket(ctx context.Context) error {
	if a == nil {
		return nil
	}
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("bucket exists %s: %w", a.bucket, err)
	}
	if !exists {
		if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{Region: a.region}); err != nil {
			return fmt.Errorf("create bucket %s: %w", a.bucket, err)
		}
	}
	return nil
}

// Put uploads one generated file under a media-kind prefix.
func (a *Archive) Put(ctx context.Context, kind string, filename string, contentType string, data []byte) error {
	if a == nil {
		return nil
	}
	objectKey := fmt.Sprintf("%s/%s", kind, filename)
	_, err := a.client.PutObject(ctx, a.bucket, objectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", objectKey, err)
	}
	return nil
}
