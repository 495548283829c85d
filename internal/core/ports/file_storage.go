package ports

import (
	"context"
	"io"
)

// FileStorage stores uploaded files (avatars) in an object store and returns
// a publicly reachable URL.
type FileStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}
