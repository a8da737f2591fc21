package contact

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

const contactColumns = `id, user_id, name, email, company, position, notes, is_favorite, created_at, updated_at`

func scanContact(row interface{ Scan(...any) error }) (*Contact, error) {
	var c Contact
	if err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.Name,
		&c.Email,
		&c.Company,
		&c.Position,
		&c.Notes,
		&c.IsFavorite,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repo) Create(ctx context.Context, c *Contact) error {
	now := time.Now()
	return r.db.QueryRowContext(ctx, `
		INSERT INTO crm_contacts (id, user_id, name, email, company, position, notes, is_favorite, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, $8, $8)
		RETURNING created_at, updated_at
	`, c.ID, c.UserID, c.Name, c.Email, c.Company, c.Position, c.Notes, now,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
}

func (r *repo) GetByID(ctx context.Context, id, userID uuid.UUID) (*Contact, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+contactColumns+`
		FROM crm_contacts
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	return scanContact(row)
}

func (r *repo) list(ctx context.Context, query string, args ...any) ([]Contact, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *c)
	}
	return contacts, rows.Err()
}

func (r *repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]Contact, error) {
	return r.list(ctx, `
		SELECT `+contactColumns+`
		FROM crm_contacts
		WHERE user_id = $1
		ORDER BY name ASC
	`, userID)
}

func (r *repo) ListFavorites(ctx context.Context, userID uuid.UUID) ([]Contact, error) {
	return r.list(ctx, `
		SELECT `+contactColumns+`
		FROM crm_contacts
		WHERE user_id = $1 AND is_favorite
		ORDER BY name ASC
	`, userID)
}

func (r *repo) Update(ctx context.Context, id, userID uuid.UUID, upd Update) (*Contact, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE crm_contacts
		SET name = COALESCE($3, name),
		    email = COALESCE($4, email),
		    company = COALESCE($5, company),
		    position = COALESCE($6, position),
		    notes = COALESCE($7, notes),
		    updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING `+contactColumns+`
	`, id, userID, upd.Name, upd.Email, upd.Company, upd.Position, upd.Notes)
	return scanContact(row)
}

func (r *repo) SetFavorite(ctx context.Context, id, userID uuid.UUID, favorite bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE crm_contacts
		SET is_favorite = $3, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`, id, userID, favorite)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, id, userID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM crm_contacts
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
