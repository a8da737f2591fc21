package contact

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

func (s *service) Create(ctx context.Context, userID uuid.UUID, c *Contact) (*Contact, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return nil, errors.New("contact name is required")
	}
	c.ID = uuid.New()
	c.UserID = userID
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Get(ctx context.Context, id, userID uuid.UUID) (*Contact, error) {
	return s.repo.GetByID(ctx, id, userID)
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]Contact, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) ListFavorites(ctx context.Context, userID uuid.UUID) ([]Contact, error) {
	return s.repo.ListFavorites(ctx, userID)
}

func (s *service) Update(ctx context.Context, id, userID uuid.UUID, upd Update) (*Contact, error) {
	return s.repo.Update(ctx, id, userID, upd)
}

func (s *service) SetFavorite(ctx context.Context, id, userID uuid.UUID, favorite bool) error {
	return s.repo.SetFavorite(ctx, id, userID, favorite)
}

func (s *service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return s.repo.Delete(ctx, id, userID)
}
