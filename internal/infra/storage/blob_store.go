// Package storage provides the blob-backed creative store.
package storage

import (
	"context"
	"io"
	"log/slog"

	"adradar/config"
	"adradar/internal/domain/lifecycle"
	"adradar/internal/domain/repository"
	"adradar/internal/errors"

	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// bucket driver
	_ "gocloud.dev/blob/memblob"  // mem:// bucket driver, used in tests
	"gocloud.dev/gcerrors"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// BlobStore persists creative binaries in a gocloud blob bucket.
// Keys follow the "<adID>/<filename>" convention.
type BlobStore struct {
	bucket *blob.Bucket
}

// New opens the configured bucket and registers its lifecycle hooks.
func New(params Params) (repository.CreativeStore, error) {
	bucketURL := ""
	if params.Config.Storage != nil {
		bucketURL = params.Config.Storage.BucketURL
	}
	if bucketURL == "" {
		return nil, errors.New("storage.bucketURL is required")
	}

	openCtx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	bucket, err := blob.OpenBucket(openCtx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %q", bucketURL)
	}

	params.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			params.Logger.Info("creative store ready", slog.String("bucket", bucketURL))

			return nil
		},
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return &BlobStore{bucket: bucket}, nil
}

// NewWithBucket wraps an already-open bucket. Used by tests.
func NewWithBucket(bucket *blob.Bucket) *BlobStore {
	return &BlobStore{bucket: bucket}
}

// Save streams one creative into the bucket under the given key.
func (s *BlobStore) Save(ctx context.Context, key string, body io.Reader, contentType string) error {
	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{
		ContentType: contentType,
	})
	if err != nil {
		return errors.Wrapf(err, "failed to open writer for %q", key)
	}

	if _, err := io.Copy(writer, body); err != nil {
		// Abort the write so a partial object is not committed.
		_ = writer.Close()

		return errors.Wrapf(err, "failed to write creative %q", key)
	}

	if err := writer.Close(); err != nil {
		return errors.Wrapf(err, "failed to commit creative %q", key)
	}

	return nil
}

// Open returns a reader over a stored creative. The caller closes it.
func (s *BlobStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	reader, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, repository.ErrCreativeNotFound
		}

		return nil, errors.Wrapf(err, "failed to open creative %q", key)
	}

	return reader, nil
}
