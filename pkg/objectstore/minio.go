// Package objectstore stores item images in an S3-compatible bucket.
package objectstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/theEquinoxDev/LocalLoop/pkg/config"
)

// ErrForeignURL is returned by Remove for URLs this store did not issue.
var ErrForeignURL = errors.New("objectstore: url not owned by this bucket")

const publicReadPolicy = `{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`

// Store uploads objects to one bucket and hands out their public URLs.
type Store struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// New connects to the configured endpoint, creating the bucket with a
// public-read policy when it does not exist.
func New(ctx context.Context, cfg *config.Config) (*Store, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioRootUser, cfg.MinioRootPassword, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("objectstore: new client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("objectstore: check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("objectstore: make bucket: %w", err)
		}
		if err := client.SetBucketPolicy(ctx, cfg.MinioBucket, fmt.Sprintf(publicReadPolicy, cfg.MinioBucket)); err != nil {
			return nil, fmt.Errorf("objectstore: set bucket policy: %w", err)
		}
	}

	return &Store{
		client:    client,
		bucket:    cfg.MinioBucket,
		publicURL: strings.TrimRight(cfg.MinioPublicURL, "/"),
	}, nil
}

// Put uploads data under key and returns the object's public URL.
func (s *Store) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "public, max-age=31536000, immutable",
	})
	if err != nil {
		return "", fmt.Errorf("objectstore: put %s: %w", key, err)
	}
	return s.URLFor(key), nil
}

// Remove deletes the object behind a URL previously returned by Put.
// Removing an object that no longer exists is not an error.
func (s *Store) Remove(ctx context.Context, url string) error {
	key, ok := s.KeyFromURL(url)
	if !ok {
		return fmt.Errorf("%w: %s", ErrForeignURL, url)
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("objectstore: remove %s: %w", key, err)
	}
	return nil
}

// Ping checks that the bucket is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if _, err := s.client.BucketExists(ctx, s.bucket); err != nil {
		return fmt.Errorf("objectstore: ping: %w", err)
	}
	return nil
}

// URLFor returns the public URL of key.
func (s *Store) URLFor(key string) string {
	return s.publicURL + "/" + s.bucket + "/" + key
}

// KeyFromURL reverses URLFor.
func (s *Store) KeyFromURL(url string) (string, bool) {
	prefix := s.publicURL + "/" + s.bucket + "/"
	key, ok := strings.CutPrefix(url, prefix)
	return key, ok && key != ""
}
