package service

import (
	"context"
	"errors"
	"strings"

	"github.com/goodluckurom/portfolio/internal/site/domain"
	"github.com/goodluckurom/portfolio/internal/site/store"
	"github.com/goodluckurom/portfolio/pkg/cryptox"
	"github.com/goodluckurom/portfolio/pkg/idx"
	"github.com/goodluckurom/portfolio/pkg/sessionx"
)

var (
	// ErrInvalidCredentials covers unknown email and wrong password alike,
	// so sign-in responses don't reveal which one it was.
	ErrInvalidCredentials = errors.New("service: invalid email or password")

	ErrEmailTaken = errors.New("service: email already registered")
)

// AuthService handles registration and sign-in. Sign-in is the only place
// tokens are minted; everything after that is stateless verification.
type AuthService struct {
	Store store.Store
	Codec *sessionx.Codec

	// AdminEmail is the bootstrap address: registering with it yields the
	// ADMIN role. Every other registration is a plain USER.
	AdminEmail string
}

// Register creates a new user. The email-uniqueness check and the insert
// run in one transaction so concurrent registrations cannot race past the
// check.
func (s *AuthService) Register(ctx context.Context, email, name, password string) (domain.User, error) {
	email = normalizeEmail(email)

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	role := domain.RoleUser
	if s.AdminEmail != "" && email == normalizeEmail(s.AdminEmail) {
		role = domain.RoleAdmin
	}

	user := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         role,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Users().GetUserByEmail(ctx, email)
		if err == nil {
			return ErrEmailTaken
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		return tx.Users().CreateUser(ctx, user)
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		return domain.User{}, ErrEmailTaken
	}
	if err != nil {
		return domain.User{}, err
	}

	return user, nil
}

// Login checks the credentials and, on success, returns a freshly signed
// session token plus the session it encodes. The token caches the user's
// role as of now; see sessionx.Session for the freshness trade-off.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, sessionx.Session, error) {
	user, err := s.Store.Users().GetUserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return "", sessionx.Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", sessionx.Session{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return "", sessionx.Session{}, ErrInvalidCredentials
	}

	sess := SessionFor(user)
	token, err := s.Codec.Sign(sess)
	if err != nil {
		return "", sessionx.Session{}, err
	}

	return token, sess, nil
}

// SessionFor builds the session payload for a user row.
func SessionFor(u domain.User) sessionx.Session {
	return sessionx.Session{
		UserID:    u.ID,
		Email:     u.Email,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		Role:      sessionx.Role(u.Role),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
