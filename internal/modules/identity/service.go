// README: Identity service: credential sign-up/sign-in, sessions, profile edits.
package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"omaga/internal/types"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrBadRequest         = errors.New("bad request")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
)

type Store interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id types.ID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateProfile(ctx context.Context, id types.ID, upd ProfileUpdate) error
	UpdatePassword(ctx context.Context, id types.ID, passwordHash string) error
}

// Revocations is the sign-out list: a jti stays revoked until its token would
// have expired anyway.
type Revocations interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type Service struct {
	store   Store
	tokens  *TokenManager
	revoked Revocations
}

func NewService(store Store, tokens *TokenManager, revoked Revocations) *Service {
	return &Service{store: store, tokens: tokens, revoked: revoked}
}

type SignUpCommand struct {
	Name     string
	Email    string
	WaNumber string
	Password string
}

func (s *Service) SignUp(ctx context.Context, cmd SignUpCommand) (*User, string, error) {
	if cmd.Name == "" || cmd.Email == "" || cmd.WaNumber == "" || len(cmd.Password) < 6 {
		return nil, "", ErrBadRequest
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}
	now := time.Now()
	u := &User{
		ID:           types.ID(uuid.NewString()),
		Email:        cmd.Email,
		Name:         cmd.Name,
		WaNumber:     cmd.WaNumber,
		Role:         types.RoleCustomer,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Create(ctx, u); err != nil {
		return nil, "", err
	}
	token, err := s.tokens.Issue(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *Service) SignIn(ctx context.Context, email, password string) (*User, string, error) {
	u, err := s.store.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *Service) SignOut(ctx context.Context, rawToken string) error {
	claims, err := s.tokens.Parse(rawToken)
	if err != nil {
		return ErrUnauthenticated
	}
	return s.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

// Authenticate resolves a bearer token to its principal. A valid token whose
// user row is gone counts as unauthenticated, which forces a client sign-out.
func (s *Service) Authenticate(ctx context.Context, rawToken string) (*User, error) {
	claims, err := s.tokens.Parse(rawToken)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrUnauthenticated
	}
	u, err := s.store.GetByID(ctx, types.ID(claims.Subject))
	if errors.Is(err, ErrNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) UpdateProfile(ctx context.Context, id types.ID, upd ProfileUpdate) (*User, error) {
	if upd.Name == nil && upd.WaNumber == nil && upd.ProfilePictureURL == nil {
		return s.store.GetByID(ctx, id)
	}
	if err := s.store.UpdateProfile(ctx, id, upd); err != nil {
		return nil, err
	}
	return s.store.GetByID(ctx, id)
}

func (s *Service) UpdatePassword(ctx context.Context, id types.ID, newPassword string) error {
	if len(newPassword) < 6 {
		return ErrBadRequest
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.store.UpdatePassword(ctx, id, string(hash))
}

func (s *Service) Get(ctx context.Context, id types.ID) (*User, error) {
	return s.store.GetByID(ctx, id)
}
