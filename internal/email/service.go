package email

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

type service struct {
	repo Repo
}

func NewService(repo Repo) Service {
	return &service{repo: repo}
}

func (s *service) Approve(ctx context.Context, userID, contactID, recordingID uuid.UUID, content string) (*ApprovedEmail, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errors.New("email content is empty")
	}

	e := &ApprovedEmail{
		ID:          uuid.New(),
		UserID:      userID,
		ContactID:   contactID,
		RecordingID: recordingID,
		Content:     content,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID) ([]ApprovedEmail, error) {
	return s.repo.ListByUser(ctx, userID)
}
