// README: Admin service: overview, listings, role changes, CSV export.
package admin

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"

	"omaga/internal/modules/driver"
	"omaga/internal/types"
)

var (
	ErrNotFound = errors.New("user not found")
	// ErrRoleConflict is returned when a role change does not apply to the
	// user's current role (promote targets customers, demote targets drivers).
	ErrRoleConflict = errors.New("role change does not apply")
)

type Store interface {
	Overview(ctx context.Context) (*OverviewStats, error)
	ListUsers(ctx context.Context) ([]UserSummary, error)
	ListOrders(ctx context.Context) ([]OrderSummary, error)
	ListDriverOrders(ctx context.Context, driverUserID types.ID) ([]OrderSummary, error)
	// Promote flips customer→driver and creates the offline driver record,
	// both inside one transaction.
	Promote(ctx context.Context, userID types.ID) error
	// Demote flips driver→customer and deletes the driver record, returning
	// the deleted record's id so the online mirror can be cleaned up.
	Demote(ctx context.Context, userID types.ID) (types.ID, error)
}

type Service struct {
	store  Store
	online driver.OnlineSet
}

func NewService(store Store, online driver.OnlineSet) *Service {
	return &Service{store: store, online: online}
}

func (s *Service) Overview(ctx context.Context) (*OverviewStats, error) {
	return s.store.Overview(ctx)
}

func (s *Service) ListUsers(ctx context.Context) ([]UserSummary, error) {
	return s.store.ListUsers(ctx)
}

func (s *Service) ListOrders(ctx context.Context) ([]OrderSummary, error) {
	return s.store.ListOrders(ctx)
}

func (s *Service) ListDriverOrders(ctx context.Context, driverUserID types.ID) ([]OrderSummary, error) {
	return s.store.ListDriverOrders(ctx, driverUserID)
}

func (s *Service) Promote(ctx context.Context, userID types.ID) error {
	return s.store.Promote(ctx, userID)
}

func (s *Service) Demote(ctx context.Context, userID types.ID) error {
	driverID, err := s.store.Demote(ctx, userID)
	if err != nil {
		return err
	}
	// A demoted driver may still sit in the online mirror.
	return s.online.Remove(ctx, driverID)
}

// ExportUsersCSV renders the user table the way the dashboard's download did.
func (s *Service) ExportUsersCSV(ctx context.Context) ([]byte, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"ID", "Nama", "Email", "WhatsApp", "Role", "Tanggal Daftar"})
	for _, u := range users {
		_ = w.Write([]string{
			string(u.ID), u.Name, u.Email, u.WaNumber, string(u.Role),
			u.CreatedAt.Format("2006-01-02"),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
