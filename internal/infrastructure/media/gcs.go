package media

import (
	"context"
	"io"

	"cloud.google.com/go/storage"

	"github.com/clipstream/clipstream-backend/internal/application"
	"github.com/clipstream/clipstream-backend/pkg/helpers"
)

// GCSStore backs the application's media store with a Google Cloud Storage
// bucket.
type GCSStore struct {
	Client *storage.Client
	Bucket string
}

func NewGCSStore(client *storage.Client, bucket string) *GCSStore {
	return &GCSStore{Client: client, Bucket: bucket}
}

func (s *GCSStore) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	return helpers.UploadObject(ctx, s.Client, s.Bucket, objectPath, contentType, r)
}

var _ application.MediaStore = (*GCSStore)(nil)
