package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	PhotoURL     *string   `json:"photo_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type Session struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	RefreshToken string
	CreatedAt    time.Time
	ExpiresAt    time.Time
	IsActive     bool
}

type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

type Repo interface {
	CreateUser(ctx context.Context, u *User) error
	// GetUserByLogin accepts a username or an email.
	GetUserByLogin(ctx context.Context, login string) (*User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)

	CreateSession(ctx context.Context, s *Session) error
	GetActiveSession(ctx context.Context, refreshToken string) (*Session, error)
	DeactivateSession(ctx context.Context, refreshToken string) error
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}

type Service interface {
	SignUp(ctx context.Context, username, email, password string) (*Tokens, error)
	Login(ctx context.Context, login, password string) (*Tokens, error)
	Refresh(ctx context.Context, refreshToken string) (*Tokens, error)
	Logout(ctx context.Context, refreshToken string) error
	CurrentUser(ctx context.Context, userID uuid.UUID) (*User, error)

	// ValidateAccessToken verifies the signature and expiry and returns the
	// authenticated user id.
	ValidateAccessToken(token string) (uuid.UUID, error)

	CleanupExpiredSessions(ctx context.Context) error
}
