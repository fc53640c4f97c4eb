// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

/*
Package storage provides the object-storage collaborator for audio and cover
delivery.

The API never serves media bytes itself. Domains persist opaque storage keys
(e.g. "audio/processed/<song-id>.m4a") and this package exchanges a key for a
time-limited presigned GET URL when an authorized listener wants to stream.
*/
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Options configures the MinIO/S3-compatible client.
type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Presigner exchanges stored object keys for time-limited fetch URLs.
type Presigner struct {
	client *minio.Client
	bucket string
}

// NewPresigner connects to the object store and verifies the media bucket
// exists. It does not create buckets: provisioning is an ops concern, and a
// missing bucket at boot means a misconfigured environment.
func NewPresigner(ctx context.Context, opts Options, logger *slog.Logger) (*Presigner, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: failed to create client: %w", err)
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(checkCtx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("storage: bucket check failed: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("storage: bucket %q does not exist", opts.Bucket)
	}

	logger.Info("object storage connected",
		slog.String("endpoint", opts.Endpoint),
		slog.String("bucket", opts.Bucket),
	)

	return &Presigner{client: client, bucket: opts.Bucket}, nil
}

// PresignedGetURL returns a time-limited URL for fetching the object at key.
//
// The key is treated as opaque: callers own the naming scheme.
func (p *Presigner) PresignedGetURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if key == "" {
		return "", fmt.Errorf("storage: empty object key")
	}

	signed, err := p.client.PresignedGetObject(ctx, p.bucket, key, ttl, url.Values{})
	if err != nil {
		return "", fmt.Errorf("storage: presign failed for %q: %w", key, err)
	}

	return signed.String(), nil
}
