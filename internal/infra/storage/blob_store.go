// Package storage implements the object store for fixture assets on top of
// the portable blob API, so the same code serves a local directory during
// development and an in-memory bucket in tests.
package storage

import (
	"context"
	"log/slog"
	"strings"

	"clubharness/config"
	"clubharness/internal/domain/service"
	"clubharness/internal/errors"

	"go.uber.org/fx"
	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	// Driver for the bucket URL scheme the harness supports.
	_ "gocloud.dev/blob/fileblob"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// blobStore implements the ObjectStore interface over a blob bucket.
type blobStore struct {
	bucket    *blob.Bucket
	publicURL string
	logger    *slog.Logger
}

// New opens the configured bucket and registers its shutdown hook.
func New(params Params) (service.ObjectStore, error) {
	if params.Config.Storage == nil || params.Config.Storage.BucketURL == "" {
		return nil, errors.New("storage bucket URL is required")
	}

	bucket, err := blob.OpenBucket(context.Background(), params.Config.Storage.BucketURL)
	if err != nil {
		return nil, errors.Wrap(err, "open storage bucket")
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return newBlobStore(bucket, params.Config.Storage.PublicURL, params.Logger), nil
}

// newBlobStore wires an already-open bucket; tests use it with an in-memory driver.
func newBlobStore(bucket *blob.Bucket, publicURL string, logger *slog.Logger) service.ObjectStore {
	return &blobStore{
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		logger:    logger,
	}
}

// Upload writes the blob under the given key and returns its URL.
func (s *blobStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	err := s.bucket.WriteAll(ctx, key, data, &blob.WriterOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", errors.Wrapf(err, "upload %s", key)
	}
	s.logger.Debug("Uploaded fixture asset", slog.String("key", key), slog.Int("bytes", len(data)))

	return s.publicURL + "/" + key, nil
}

// Delete removes the blob under the given key. A missing blob is treated as
// already deleted; teardown must be repeatable.
func (s *blobStore) Delete(ctx context.Context, key string) error {
	err := s.bucket.Delete(ctx, key)
	if err != nil && gcerrors.Code(err) != gcerrors.NotFound {
		return errors.Wrapf(err, "delete %s", key)
	}

	return nil
}
