package media

import (
	"context"
	"io"
)

// File is an upload candidate as received from a multipart form.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// Uploader stores images on the CDN and removes them again. Implementations
// must return the publicly reachable HTTPS URL of the stored image.
type Uploader interface {
	Upload(ctx context.Context, f File) (string, error)
	Delete(ctx context.Context, imageURL string) error
}
