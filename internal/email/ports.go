package email

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ApprovedEmail is a generated email the user accepted. The pipeline itself
// persists nothing; approval is a separate, explicit act.
type ApprovedEmail struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	ContactID   uuid.UUID `json:"contact_id"`
	RecordingID uuid.UUID `json:"recording_id"`
	Content     string    `json:"email_content"`
	CreatedAt   time.Time `json:"created_at"`
}

type Repo interface {
	Create(ctx context.Context, e *ApprovedEmail) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]ApprovedEmail, error)
}

type Service interface {
	Approve(ctx context.Context, userID, contactID, recordingID uuid.UUID, content string) (*ApprovedEmail, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]ApprovedEmail, error)
}
