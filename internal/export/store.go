package export

import "context"

// Store persists exported screen reports. Implementations: Dir for a
// local directory, S3 for S3-compatible object storage.
type Store interface {
	// Write stores data under name, overwriting any previous export.
	Write(ctx context.Context, name string, data []byte) error

	// Read returns a previously written export.
	Read(ctx context.Context, name string) ([]byte, error)

	// List returns the names of stored exports under the prefix.
	List(ctx context.Context, prefix string) ([]string, error)

	// Exists reports whether an export with this name is stored.
	Exists(ctx context.Context, name string) (bool, error)
}
