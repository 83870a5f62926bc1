package storage

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

func newMemStore(t *testing.T) *blobStore {
	t.Helper()

	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	store := newBlobStore(bucket, "https://assets.test.com/fixtures/", slog.New(slog.NewTextHandler(io.Discard, nil)))

	return store.(*blobStore)
}

func TestBlobStore_UploadReturnsPublicURL(t *testing.T) {
	store := newMemStore(t)

	url, err := store.Upload(context.Background(), "items/photo-1.png", []byte{0x89, 0x50}, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://assets.test.com/fixtures/items/photo-1.png", url)

	data, err := store.bucket.ReadAll(context.Background(), "items/photo-1.png")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 0x50}, data)
}

func TestBlobStore_DeleteIsRepeatable(t *testing.T) {
	store := newMemStore(t)
	ctx := context.Background()

	_, err := store.Upload(ctx, "items/photo-2.png", []byte("png"), "image/png")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "items/photo-2.png"))

	// Second delete hits a missing key and must still succeed.
	require.NoError(t, store.Delete(ctx, "items/photo-2.png"))
}
