package email

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) Repo {
	return &repo{db: db}
}

func (r *repo) Create(ctx context.Context, e *ApprovedEmail) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO approved_emails (id, user_id, contact_id, recording_id, email_content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, e.ID, e.UserID, e.ContactID, e.RecordingID, e.Content, time.Now()).Scan(&e.CreatedAt)
}

func (r *repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]ApprovedEmail, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, contact_id, recording_id, email_content, created_at
		FROM approved_emails
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []ApprovedEmail
	for rows.Next() {
		var e ApprovedEmail
		if err := rows.Scan(&e.ID, &e.UserID, &e.ContactID, &e.RecordingID, &e.Content, &e.CreatedAt); err != nil {
			return nil, err
		}
		emails = append(emails, e)
	}
	return emails, rows.Err()
}
