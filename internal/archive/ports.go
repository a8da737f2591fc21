package archive

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// Store is the object-storage surface the archiver needs.
type Store interface {
	PutObject(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}

// Service mirrors uploaded recordings into object storage for durability.
// Mirroring is best effort and never blocks or fails the upload path.
type Service interface {
	MirrorRecording(ctx context.Context, userID uuid.UUID, filename, contentType, path string)
}
