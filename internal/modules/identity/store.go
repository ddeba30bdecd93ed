// README: User store backed by PostgreSQL.
package identity

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"omaga/internal/types"
)

type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

const userColumns = `id, email, name, wa_number, role, profile_picture_url, password_hash, created_at, updated_at`

func (s *PGStore) Create(ctx context.Context, u *User) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO users (id, email, name, wa_number, role, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		string(u.ID), u.Email, u.Name, u.WaNumber, string(u.Role), u.PasswordHash, u.CreatedAt, u.UpdatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrEmailTaken
	}
	return err
}

func (s *PGStore) GetByID(ctx context.Context, id types.ID) (*User, error) {
	return s.getWhere(ctx, `id = $1`, string(id))
}

func (s *PGStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.getWhere(ctx, `email = $1`, email)
}

func (s *PGStore) getWhere(ctx context.Context, where string, arg any) (*User, error) {
	row := s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg)
	var u User
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.WaNumber, &u.Role,
		&u.ProfilePictureURL, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *PGStore) UpdateProfile(ctx context.Context, id types.ID, upd ProfileUpdate) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE users
		SET name = COALESCE($2, name),
		    wa_number = COALESCE($3, wa_number),
		    profile_picture_url = COALESCE($4, profile_picture_url),
		    updated_at = NOW()
		WHERE id = $1`,
		string(id), upd.Name, upd.WaNumber, upd.ProfilePictureURL,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PGStore) UpdatePassword(ctx context.Context, id types.ID, passwordHash string) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`,
		string(id), passwordHash,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
