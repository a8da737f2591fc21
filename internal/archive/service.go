package archive

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

type service struct {
	store Store
}

// NewService returns a no-op archiver when no store is configured.
func NewService(store Store) Service {
	return &service{store: store}
}

func (s *service) MirrorRecording(ctx context.Context, userID uuid.UUID, filename, contentType, path string) {
	if s.store == nil {
		return
	}

	f, err := os.Open(path)
	if err != nil {
		log.Printf("[archive] open %s: %v", path, err)
		return
	}
	defer f.Close()

	var size int64 = -1
	if fi, err := f.Stat(); err == nil {
		size = fi.Size()
	}

	key := objectKey(userID, filename)
	if _, err := s.store.PutObject(ctx, key, f, size, contentType); err != nil {
		log.Printf("[archive] mirror %s: %v", key, err)
		return
	}
	log.Printf("[archive] mirrored %s", key)
}

func objectKey(userID uuid.UUID, filename string) string {
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s/%s/%s", userID, date, filepath.Base(filename))
}
