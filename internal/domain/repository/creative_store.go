package repository

import (
	"context"
	"io"

	"adradar/internal/errors"
)

// ErrCreativeNotFound is returned when a stored creative binary does not exist.
var ErrCreativeNotFound = errors.New("creative not found")

// CreativeStore stores and serves uploaded creative binaries keyed by
// "<adID>/<filename>". The match core only needs that retrieval exists at the
// URL it embeds; the backing bucket is an infrastructure concern.
type CreativeStore interface {
	// Save writes the binary under the given key, overwriting any previous one.
	Save(ctx context.Context, key string, r io.Reader, contentType string) error

	// Open returns a reader for a stored binary, or ErrCreativeNotFound.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}
