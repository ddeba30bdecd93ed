// README: Report store backed by PostgreSQL.
package report

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"omaga/internal/types"
)

type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Create(ctx context.Context, r *Report) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO reports (id, order_id, user_id, report_message, is_anonymous, resolved, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		string(r.ID), string(r.OrderID), string(r.UserID), r.Message, r.IsAnonymous, r.Resolved, r.CreatedAt,
	)
	return err
}

func (s *PGStore) List(ctx context.Context) ([]AdminReport, error) {
	rows, err := s.db.Query(ctx, `
		SELECT r.id, r.order_id, r.user_id, r.report_message, r.is_anonymous, r.resolved, r.created_at,
		       u.name, o.pickup_addr, o.dest_addr
		FROM reports r
		JOIN users u ON u.id = r.user_id
		JOIN orders o ON o.id = r.order_id
		ORDER BY r.created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AdminReport
	for rows.Next() {
		var ar AdminReport
		var name string
		if err := rows.Scan(
			&ar.ID, &ar.OrderID, &ar.UserID, &ar.Message, &ar.IsAnonymous, &ar.Resolved, &ar.CreatedAt,
			&name, &ar.PickupAddr, &ar.DestAddr,
		); err != nil {
			return nil, err
		}
		ar.ReporterName = &name
		out = append(out, ar)
	}
	return out, rows.Err()
}

func (s *PGStore) Resolve(ctx context.Context, id types.ID) error {
	tag, err := s.db.Exec(ctx, `UPDATE reports SET resolved = TRUE WHERE id = $1`, string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
