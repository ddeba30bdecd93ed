// README: Driver store backed by PostgreSQL.
package driver

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"omaga/internal/types"
)

type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) GetByID(ctx context.Context, id types.ID) (*Record, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, user_id, status, created_at
		FROM drivers
		WHERE id = $1`,
		string(id),
	)
	var r Record
	err := row.Scan(&r.ID, &r.UserID, &r.Status, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *PGStore) GetByUserID(ctx context.Context, userID types.ID) (*Record, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, user_id, status, created_at
		FROM drivers
		WHERE user_id = $1`,
		string(userID),
	)
	var r Record
	err := row.Scan(&r.ID, &r.UserID, &r.Status, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *PGStore) Create(ctx context.Context, r *Record) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO drivers (id, user_id, status, created_at)
		VALUES ($1, $2, $3, $4)`,
		string(r.ID), string(r.UserID), string(r.Status), r.CreatedAt,
	)
	return err
}

func (s *PGStore) SetStatus(ctx context.Context, id types.ID, status Availability) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE drivers SET status = $2, updated_at = NOW() WHERE id = $1`,
		string(id), string(status),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PGStore) ListOnline(ctx context.Context) ([]OnlineDriver, error) {
	rows, err := s.db.Query(ctx, `
		SELECT d.id, d.user_id, u.name, u.wa_number
		FROM drivers d
		JOIN users u ON u.id = d.user_id
		WHERE d.status = 'online'
		ORDER BY u.name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OnlineDriver
	for rows.Next() {
		var d OnlineDriver
		if err := rows.Scan(&d.ID, &d.UserID, &d.Name, &d.WaNumber); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
