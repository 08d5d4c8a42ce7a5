package application

import (
	"context"
	"io"
)

// FileUpload is one multipart part, streamed straight from the request.
type FileUpload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
}

// MediaStore uploads user-supplied images to an external object store and
// returns a durable public URL. Injected as a constructed instance, never
// process-wide state.
type MediaStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}
