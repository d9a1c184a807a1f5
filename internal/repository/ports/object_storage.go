package ports

import (
	"context"
	"io"
)

// ObjectStorage stores uploaded submission files. Implementations return a
// URL the file can be fetched from afterwards.
type ObjectStorage interface {
	Upload(ctx context.Context, objectName, contentType string, reader io.Reader, size int64) (string, error)
}
