// Package service contains the core logic between the HTTP layer and the
// two stores
package service

import (
	"context"
	"io"
)

// BlobStore is the subset of the S3 client the services need. Keeping it
// an interface lets tests swap in an in-memory store.
type BlobStore interface {
	Put(ctx context.Context, bucket, key string, body io.Reader, size int64, contentType string) error
	Get(ctx context.Context, bucket, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, bucket, key string) error
}
