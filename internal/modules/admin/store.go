// README: Admin store: aggregate queries and transactional role changes.
package admin

import (
	"context"
	"errors"

	"github.com/google/uuid"
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

func (s *PGStore) Overview(ctx context.Context) (*OverviewStats, error) {
	row := s.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM drivers),
			(SELECT COUNT(*) FROM drivers WHERE status = 'online'),
			(SELECT COUNT(*) FROM orders),
			(SELECT COUNT(*) FROM orders WHERE status = 'completed'),
			(SELECT COUNT(*) FROM orders WHERE status = 'pending')`,
	)
	var st OverviewStats
	if err := row.Scan(
		&st.TotalUsers, &st.TotalDrivers, &st.ActiveDrivers,
		&st.TotalOrders, &st.CompletedOrders, &st.PendingOrders,
	); err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *PGStore) ListUsers(ctx context.Context) ([]UserSummary, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, email, name, wa_number, role, created_at
		FROM users
		ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []UserSummary
	for rows.Next() {
		var u UserSummary
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.WaNumber, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

const orderSummaryQuery = `
	SELECT o.id, o.type, o.pickup_addr, o.dest_addr, o.status,
	       cu.name, du.name, o.created_at, o.completed_at
	FROM orders o
	JOIN users cu ON cu.id = o.customer_id
	LEFT JOIN drivers d ON d.id = o.driver_id
	LEFT JOIN users du ON du.id = d.user_id`

func (s *PGStore) ListOrders(ctx context.Context) ([]OrderSummary, error) {
	rows, err := s.db.Query(ctx, orderSummaryQuery+` ORDER BY o.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrderSummaries(rows)
}

func (s *PGStore) ListDriverOrders(ctx context.Context, driverUserID types.ID) ([]OrderSummary, error) {
	rows, err := s.db.Query(ctx,
		orderSummaryQuery+` WHERE d.user_id = $1 ORDER BY o.created_at DESC`,
		string(driverUserID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrderSummaries(rows)
}

func scanOrderSummaries(rows pgx.Rows) ([]OrderSummary, error) {
	var out []OrderSummary
	for rows.Next() {
		var o OrderSummary
		if err := rows.Scan(
			&o.ID, &o.Kind, &o.PickupAddr, &o.DestAddr, &o.Status,
			&o.CustomerName, &o.DriverName, &o.CreatedAt, &o.CompletedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (s *PGStore) Promote(ctx context.Context, userID types.ID) error {
	return pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		role, err := lockRole(ctx, tx, userID)
		if err != nil {
			return err
		}
		if role != types.RoleCustomer {
			return ErrRoleConflict
		}
		if _, err := tx.Exec(ctx, `
			UPDATE users SET role = 'driver', updated_at = NOW() WHERE id = $1`,
			string(userID),
		); err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO drivers (id, user_id, status, created_at)
			VALUES ($1, $2, 'offline', NOW())`,
			uuid.NewString(), string(userID),
		)
		return err
	})
}

func (s *PGStore) Demote(ctx context.Context, userID types.ID) (types.ID, error) {
	var driverID types.ID
	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		role, err := lockRole(ctx, tx, userID)
		if err != nil {
			return err
		}
		if role != types.RoleDriver {
			return ErrRoleConflict
		}
		if _, err := tx.Exec(ctx, `
			UPDATE users SET role = 'customer', updated_at = NOW() WHERE id = $1`,
			string(userID),
		); err != nil {
			return err
		}
		row := tx.QueryRow(ctx, `DELETE FROM drivers WHERE user_id = $1 RETURNING id`, string(userID))
		if err := row.Scan(&driverID); errors.Is(err, pgx.ErrNoRows) {
			// Driver role without a record: nothing to delete.
			return nil
		} else if err != nil {
			return err
		}
		return nil
	})
	return driverID, err
}

func lockRole(ctx context.Context, tx pgx.Tx, userID types.ID) (types.Role, error) {
	row := tx.QueryRow(ctx, `SELECT role FROM users WHERE id = $1 FOR UPDATE`, string(userID))
	var role types.Role
	err := row.Scan(&role)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	return role, err
}
