package recording

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// Recording lifecycle statuses.
const (
	StatusUploaded   = "uploaded"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusError      = "error"
)

// Audio roles inside a dual-recording request.
const (
	RoleRelationship = "relationship"
	RoleContent      = "content"
)

type Recording struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	ContactID *uuid.UUID `json:"contact_id,omitempty"`
	Title     string     `json:"title"`
	Filename  string     `json:"filename"`
	FilePath  string     `json:"file_path"`
	FileSize  int64      `json:"file_size"`
	AudioType *string    `json:"audio_type,omitempty"`
	Status    string     `json:"status"`
	Format    string     `json:"format"`
	Duration  *float64   `json:"duration,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// ResolvedPair is the output of dual resolution: both paths tagged by role.
type ResolvedPair struct {
	RelationshipPath string
	ContentPath      string
}

type Repo interface {
	Create(ctx context.Context, rec *Recording) error
	GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*Recording, error)
	// GetByIDsForUser returns all recordings from the id set owned by the user,
	// in store order (callers must not rely on it).
	GetByIDsForUser(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) ([]Recording, error)
	// GetOwners reports who owns each id from the set, regardless of the caller.
	GetOwners(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]uuid.UUID, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Recording, error)
	UpdateConverted(ctx context.Context, id uuid.UUID, path, format string, size int64) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type Service interface {
	SaveUpload(ctx context.Context, userID uuid.UUID, contactID *uuid.UUID, title, filename, contentType, audioType string, file io.Reader) (*Recording, error)
	Get(ctx context.Context, id, userID uuid.UUID) (*Recording, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Recording, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error

	// ResolveDual maps the two recording ids to validated on-disk paths, each
	// tagged with its semantic role. Fails only with the typed errors from
	// errors.go (plus InvalidIDError for malformed ids).
	ResolveDual(ctx context.Context, relationshipID, contentID string, userID uuid.UUID) (*ResolvedPair, error)
}
