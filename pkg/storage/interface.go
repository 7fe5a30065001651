package storage

import (
	"context"
	"io"
)

// Source opens the content to be hashed by path. Implementations return
// errors wrapping fs.ErrNotExist when the path does not exist.
type Source interface {
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}
