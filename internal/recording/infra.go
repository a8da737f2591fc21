package recording

import (
	"context"
	"database/sql"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) Repo {
	return &repo{db: db}
}

const recordingColumns = `id, user_id, contact_id, title, filename, file_path, file_size, audio_type, status, format, duration, created_at`

func (r *repo) Create(ctx context.Context, rec *Recording) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO audio_recordings
			(id, user_id, contact_id, title, filename, file_path, file_size, audio_type, status, format, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
		RETURNING created_at
	`, rec.ID, rec.UserID, rec.ContactID, rec.Title, rec.Filename, rec.FilePath,
		rec.FileSize, rec.AudioType, rec.Status, rec.Format, time.Now(),
	).Scan(&rec.CreatedAt)
}

func scanRecording(row interface{ Scan(...any) error }) (*Recording, error) {
	var rec Recording
	if err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.ContactID,
		&rec.Title,
		&rec.Filename,
		&rec.FilePath,
		&rec.FileSize,
		&rec.AudioType,
		&rec.Status,
		&rec.Format,
		&rec.Duration,
		&rec.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repo) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*Recording, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+recordingColumns+`
		FROM audio_recordings
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	return scanRecording(row)
}

func (r *repo) GetByIDsForUser(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) ([]Recording, error) {
	idStrs := make([]string, len(ids))
	for i, id := range ids {
		idStrs[i] = id.String()
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+recordingColumns+`
		FROM audio_recordings
		WHERE id = ANY($1) AND user_id = $2
	`, pq.Array(idStrs), userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []Recording
	for rows.Next() {
		rec, err := scanRecording(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, *rec)
	}
	return recs, rows.Err()
}

func (r *repo) GetOwners(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]uuid.UUID, error) {
	idStrs := make([]string, len(ids))
	for i, id := range ids {
		idStrs[i] = id.String()
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id
		FROM audio_recordings
		WHERE id = ANY($1)
	`, pq.Array(idStrs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	owners := make(map[uuid.UUID]uuid.UUID)
	for rows.Next() {
		var id, owner uuid.UUID
		if err := rows.Scan(&id, &owner); err != nil {
			return nil, err
		}
		owners[id] = owner
	}
	return owners, rows.Err()
}

func (r *repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]Recording, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+recordingColumns+`
		FROM audio_recordings
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []Recording
	for rows.Next() {
		rec, err := scanRecording(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, *rec)
	}
	return recs, rows.Err()
}

func (r *repo) UpdateConverted(ctx context.Context, id uuid.UUID, path, format string, size int64) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE audio_recordings
		SET file_path = $2,
		    filename = $3,
		    format = $4,
		    file_size = $5,
		    updated_at = NOW()
		WHERE id = $1
	`, id, path, filepath.Base(path), format, size)
	return err
}

func (r *repo) Delete(ctx context.Context, id, userID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM audio_recordings
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
