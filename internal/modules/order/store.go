// README: Order store backed by PostgreSQL; conditional writes decide races.
package order

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"omaga/internal/types"
)

// CustomerOrder is the row shape of the customer dashboard query: the order
// joined with the assigned driver's display fields, when there is one.
type CustomerOrder struct {
	Order
	DriverName    *string
	DriverContact *string
}

// DriverOrder is the row shape of the driver work-list query: the order joined
// with the requesting customer's display fields.
type DriverOrder struct {
	Order
	CustomerName    string
	CustomerContact string
}

type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

const orderColumns = `
	id, customer_id, driver_id, preferred_driver_id, type,
	pickup_addr, dest_addr, notes, status, created_at, completed_at`

func (s *PGStore) Create(ctx context.Context, o *Order) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO orders (
			id, customer_id, driver_id, preferred_driver_id, type,
			pickup_addr, dest_addr, notes, status, created_at
		) VALUES ($1, $2, NULL, $3, $4, $5, $6, $7, $8, $9)`,
		string(o.ID),
		string(o.CustomerID),
		idPtr(o.PreferredDriverID),
		string(o.Kind),
		o.PickupAddr,
		o.DestAddr,
		o.Notes,
		string(o.Status),
		o.CreatedAt,
	)
	return err
}

func (s *PGStore) Get(ctx context.Context, id types.ID) (*Order, error) {
	row := s.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, string(id))
	o, err := scanOrderWith(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return o, err
}

// Assign sets driver and status together in one row update. The WHERE clause
// is the whole concurrency story: only the first writer matches it.
func (s *PGStore) Assign(ctx context.Context, id, driverID types.ID) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE orders
		SET driver_id = $2, status = 'accepted', updated_at = NOW()
		WHERE id = $1 AND status = 'pending' AND driver_id IS NULL`,
		string(id), string(driverID),
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *PGStore) UpdateStatus(ctx context.Context, id types.ID, from, to Status, setCompleted bool) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE orders
		SET status = $3,
		    completed_at = CASE WHEN $4 THEN NOW() ELSE completed_at END,
		    updated_at = NOW()
		WHERE id = $1 AND status = $2`,
		string(id), string(from), string(to), setCompleted,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *PGStore) ListByCustomer(ctx context.Context, customerID types.ID) ([]CustomerOrder, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+prefixed("o")+`, u.name, u.wa_number
		FROM orders o
		LEFT JOIN drivers d ON d.id = o.driver_id
		LEFT JOIN users u ON u.id = d.user_id
		WHERE o.customer_id = $1
		ORDER BY o.created_at DESC`,
		string(customerID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CustomerOrder
	for rows.Next() {
		var co CustomerOrder
		o, err := scanOrderWith(rows, &co.DriverName, &co.DriverContact)
		if err != nil {
			return nil, err
		}
		co.Order = *o
		out = append(out, co)
	}
	return out, rows.Err()
}

// ListByDriver returns the driver's own orders plus every still-pending order,
// which is the pool a driver may accept from.
func (s *PGStore) ListByDriver(ctx context.Context, driverID types.ID) ([]DriverOrder, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+prefixed("o")+`, u.name, u.wa_number
		FROM orders o
		JOIN users u ON u.id = o.customer_id
		WHERE o.driver_id = $1 OR o.status = 'pending'
		ORDER BY o.created_at DESC`,
		string(driverID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DriverOrder
	for rows.Next() {
		var do DriverOrder
		o, err := scanOrderWith(rows, &do.CustomerName, &do.CustomerContact)
		if err != nil {
			return nil, err
		}
		do.Order = *o
		out = append(out, do)
	}
	return out, rows.Err()
}

func (s *PGStore) AppendEvent(ctx context.Context, e *Event) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO order_events (order_id, from_status, to_status, actor_role, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		string(e.OrderID),
		string(e.From),
		string(e.To),
		string(e.ActorRole),
		idPtr(e.ActorID),
		e.CreatedAt,
	)
	return err
}

func prefixed(alias string) string {
	return alias + `.id, ` + alias + `.customer_id, ` + alias + `.driver_id, ` +
		alias + `.preferred_driver_id, ` + alias + `.type, ` + alias + `.pickup_addr, ` +
		alias + `.dest_addr, ` + alias + `.notes, ` + alias + `.status, ` +
		alias + `.created_at, ` + alias + `.completed_at`
}

func scanOrderWith(row pgx.Row, extra ...any) (*Order, error) {
	var o Order
	var driverID, preferredID, notes *string
	dest := []any{
		&o.ID, &o.CustomerID, &driverID, &preferredID, &o.Kind,
		&o.PickupAddr, &o.DestAddr, &notes, &o.Status, &o.CreatedAt, &o.CompletedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if driverID != nil {
		d := types.ID(*driverID)
		o.DriverID = &d
	}
	if preferredID != nil {
		p := types.ID(*preferredID)
		o.PreferredDriverID = &p
	}
	if notes != nil {
		o.Notes = *notes
	}
	return &o, nil
}

func idPtr(v *types.ID) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}
