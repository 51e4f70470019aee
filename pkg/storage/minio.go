package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// bucket stores blobs as objects in a MinIO or S3 bucket.
type bucket struct {
	client  *minio.Client
	name    string
	region  string
	maxSize int64
	logger  *slog.Logger
}

func newMinIO(cfg *Config, logger *slog.Logger) (*bucket, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio: %w", err)
	}

	return &bucket{
		client:  client,
		name:    cfg.Bucket,
		region:  cfg.Region,
		maxSize: cfg.MaxObjectSizeBytes(),
		logger:  logger,
	}, nil
}

func (b *bucket) Init(ctx context.Context) error {
	exists, err := b.client.BucketExists(ctx, b.name)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", b.name, err)
	}
	if exists {
		return nil
	}

	if err := b.client.MakeBucket(ctx, b.name, minio.MakeBucketOptions{Region: b.region}); err != nil {
		return fmt.Errorf("make bucket %s: %w", b.name, err)
	}
	b.logger.Info("bucket created", "bucket", b.name)
	return nil
}

func (b *bucket) Store(ctx context.Context, key string, data []byte) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}
	if err := checkSize(data, b.maxSize); err != nil {
		return err
	}

	opts := minio.PutObjectOptions{ContentType: contentType(key)}
	if _, err := b.client.PutObject(ctx, b.name, key, bytes.NewReader(data), int64(len(data)), opts); err != nil {
		return fmt.Errorf("put object: %w", mapMinIOError(err))
	}
	return nil
}

func (b *bucket) Retrieve(ctx context.Context, key string) ([]byte, error) {
	key, err := cleanKey(key)
	if err != nil {
		return nil, err
	}

	obj, err := b.client.GetObject(ctx, b.name, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, mapMinIOError(err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, mapMinIOError(err)
	}
	return data, nil
}

func (b *bucket) Delete(ctx context.Context, key string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}

	if err := b.client.RemoveObject(ctx, b.name, key, minio.RemoveObjectOptions{}); err != nil {
		if err := mapMinIOError(err); errors.Is(err, ErrNotFound) {
			return nil
		}
		return fmt.Errorf("remove object: %w", mapMinIOError(err))
	}
	return nil
}

func (b *bucket) Validate(ctx context.Context, key string) (bool, error) {
	key, err := cleanKey(key)
	if err != nil {
		return false, err
	}

	if _, err := b.client.StatObject(ctx, b.name, key, minio.StatObjectOptions{}); err != nil {
		if err := mapMinIOError(err); errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("stat object: %w", mapMinIOError(err))
	}
	return true, nil
}

func mapMinIOError(err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return ErrNotFound
	case "AccessDenied":
		return ErrPermissionDenied
	default:
		return err
	}
}

func contentType(key string) string {
	if t := mime.TypeByExtension(path.Ext(key)); t != "" {
		return t
	}
	return "application/octet-stream"
}
