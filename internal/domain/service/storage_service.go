package service

import "context"

// ObjectStore uploads fixture assets (item photos) to object storage.
type ObjectStore interface {
	// Upload writes the blob under the given key and returns its URL.
	Upload(ctx context.Context, key string, data []byte, contentType string) (url string, err error)

	// Delete removes the blob under the given key. Deleting a missing blob
	// is not an error.
	Delete(ctx context.Context, key string) error
}
