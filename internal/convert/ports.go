package convert

import (
	"context"

	"github.com/google/uuid"
)

// Runner executes an external command. Injected so tests can fake ffmpeg.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// MetadataStore propagates a converted path/format/size into the recording
// row. Satisfied by the recording repo.
type MetadataStore interface {
	UpdateConverted(ctx context.Context, id uuid.UUID, path, format string, size int64) error
}

// Service normalizes audio into the canonical codec (mp3, 128 kbps, 44.1 kHz).
type Service interface {
	// EnsureMP3 returns a path guaranteed to be canonical when possible.
	// It never fails: on transcoder error or missing binary it logs and
	// returns the original path so downstream stages fail visibly.
	EnsureMP3(ctx context.Context, path string, recordingID string) string
}
