// Package blob abstracts the binary object store behind the small surface
// the drive needs: uploads, deletes and time-boxed signed download URLs.
package blob

import (
	"context"
	"io"
	"time"
)

type Store interface {
	Put(ctx context.Context, path string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, path string) error
	// SignedURL returns a download URL valid for ttl.
	SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error)
	// SignedURLs signs many paths at once. Paths that fail to sign are
	// absent from the result rather than failing the call.
	SignedURLs(ctx context.Context, paths []string, ttl time.Duration) (map[string]string, error)
}
