package auth

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

func (r *repo) CreateUser(ctx context.Context, u *User) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO users (id, username, email, password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING created_at
	`, u.ID, u.Username, u.Email, u.PasswordHash, time.Now()).Scan(&u.CreatedAt)
}

func (r *repo) GetUserByLogin(ctx context.Context, login string) (*User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, email, password, photo_url, created_at
		FROM users
		WHERE username = $1 OR email = $1
	`, login).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.PhotoURL, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repo) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, email, password, photo_url, created_at
		FROM users
		WHERE id = $1
	`, id).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.PhotoURL, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repo) CreateSession(ctx context.Context, s *Session) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, refresh_token, created_at, expires_at, is_active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
	`, s.ID, s.UserID, s.RefreshToken, time.Now(), s.ExpiresAt)
	return err
}

func (r *repo) GetActiveSession(ctx context.Context, refreshToken string) (*Session, error) {
	var s Session
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, refresh_token, created_at, expires_at, is_active
		FROM sessions
		WHERE refresh_token = $1 AND is_active AND expires_at > NOW()
	`, refreshToken).Scan(&s.ID, &s.UserID, &s.RefreshToken, &s.CreatedAt, &s.ExpiresAt, &s.IsActive)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repo) DeactivateSession(ctx context.Context, refreshToken string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE sessions SET is_active = FALSE
		WHERE refresh_token = $1
	`, refreshToken)
	return err
}

func (r *repo) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM sessions
		WHERE expires_at < NOW() OR NOT is_active
	`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
