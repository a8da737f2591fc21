package contact

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Contact struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Name       string    `json:"name"`
	Email      *string   `json:"email,omitempty"`
	Company    *string   `json:"company,omitempty"`
	Position   *string   `json:"position,omitempty"`
	Notes      *string   `json:"notes,omitempty"`
	IsFavorite bool      `json:"is_favorite"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Update struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Company  *string `json:"company,omitempty"`
	Position *string `json:"position,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

type Repo interface {
	Create(ctx context.Context, c *Contact) error
	GetByID(ctx context.Context, id, userID uuid.UUID) (*Contact, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Contact, error)
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]Contact, error)
	Update(ctx context.Context, id, userID uuid.UUID, upd Update) (*Contact, error)
	SetFavorite(ctx context.Context, id, userID uuid.UUID, favorite bool) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, c *Contact) (*Contact, error)
	Get(ctx context.Context, id, userID uuid.UUID) (*Contact, error)
	List(ctx context.Context, userID uuid.UUID) ([]Contact, error)
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]Contact, error)
	Update(ctx context.Context, id, userID uuid.UUID, upd Update) (*Contact, error)
	SetFavorite(ctx context.Context, id, userID uuid.UUID, favorite bool) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}
