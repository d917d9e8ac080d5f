// Package blob persists raw uploaded artifacts in an S3-compatible object
// store and hands back opaque locators.
package blob

import "context"

// Store persists and retrieves raw bytes. Locators are opaque to callers;
// only the store knows how to resolve them.
type Store interface {
	Put(ctx context.Context, data []byte, category, contentType string) (string, error)
	Get(ctx context.Context, locator string) ([]byte, error)
}
