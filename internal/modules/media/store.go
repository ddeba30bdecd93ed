// README: Media store: user picture URL and order_images rows.
package media

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

func (s *PGStore) SetProfilePicture(ctx context.Context, userID types.ID, url string) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE users SET profile_picture_url = $2, updated_at = NOW() WHERE id = $1`,
		string(userID), url,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PGStore) CreateOrderImage(ctx context.Context, img *OrderImage) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO order_images (id, order_id, user_id, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		string(img.ID), string(img.OrderID), string(img.UserID), img.URL, img.CreatedAt,
	)
	return err
}
