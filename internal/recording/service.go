package recording

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"voicecrm-backend/internal/alerts"

	"github.com/google/uuid"
)

type service struct {
	repo      Repo
	uploadDir string
	notifier  alerts.Notificator
}

func NewService(repo Repo, uploadDir string, notifier alerts.Notificator) Service {
	return &service{
		repo:      repo,
		uploadDir: uploadDir,
		notifier:  notifier,
	}
}

func (s *service) SaveUpload(
	ctx context.Context,
	userID uuid.UUID,
	contactID *uuid.UUID,
	title, filename, contentType, audioType string,
	file io.Reader,
) (*Recording, error) {

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".webm"
	}

	id := uuid.New()
	dstPath := filepath.Join(s.uploadDir, id.String()+ext)

	dst, err := os.Create(dstPath)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	size, err := io.Copy(dst, file)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dstPath)
		return nil, fmt.Errorf("write file: %w", err)
	}

	if contentType == "" {
		contentType = "audio/" + strings.TrimPrefix(ext, ".")
	}

	rec := &Recording{
		ID:        id,
		UserID:    userID,
		ContactID: contactID,
		Title:     title,
		Filename:  filename,
		FilePath:  dstPath,
		FileSize:  size,
		Status:    StatusUploaded,
		Format:    contentType,
	}
	if audioType != "" {
		rec.AudioType = &audioType
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		os.Remove(dstPath)
		s.notifier.Notify(ctx, err, fmt.Sprintf("failed to persist recording for user %s", userID))
		return nil, fmt.Errorf("save recording: %w", err)
	}

	return rec, nil
}

func (s *service) Get(ctx context.Context, id, userID uuid.UUID) (*Recording, error) {
	return s.repo.GetByIDForUser(ctx, id, userID)
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID) ([]Recording, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Delete removes the row and, best effort, the file on disk. Deletion is
// always explicit; nothing in the pipeline deletes recordings.
func (s *service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	rec, err := s.repo.GetByIDForUser(ctx, id, userID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return err
	}
	if rec.FilePath != "" {
		if err := os.Remove(rec.FilePath); err != nil && !os.IsNotExist(err) {
			log.Printf("[recording] file cleanup failed for %s: %v", id, err)
		}
	}
	return nil
}
