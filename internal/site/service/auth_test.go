package service

import (
	"context"
	"testing"

	"github.com/goodluckurom/portfolio/internal/site/domain"
	"github.com/goodluckurom/portfolio/internal/site/store/drivers/sqlite"
	"github.com/goodluckurom/portfolio/pkg/sessionx"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())

	codec, err := sessionx.NewCodec("test-secret")
	require.NoError(t, err)

	return &AuthService{
		Store:      st,
		Codec:      codec,
		AdminEmail: "owner@example.com",
	}
}

func TestRegisterAssignsRoles(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(t)

	t.Run("configured email becomes admin", func(t *testing.T) {
		user, err := svc.Register(ctx, "owner@example.com", "Owner", "correct horse battery")
		require.NoError(t, err)
		require.Equal(t, domain.RoleAdmin, user.Role)
	})

	t.Run("admin email match is case-insensitive", func(t *testing.T) {
		svc := newTestAuthService(t)
		user, err := svc.Register(ctx, "  OWNER@Example.COM ", "Owner", "correct horse battery")
		require.NoError(t, err)
		require.Equal(t, domain.RoleAdmin, user.Role)
		require.Equal(t, "owner@example.com", user.Email)
	})

	t.Run("everyone else is a plain user", func(t *testing.T) {
		user, err := svc.Register(ctx, "visitor@example.com", "Visitor", "correct horse battery")
		require.NoError(t, err)
		require.Equal(t, domain.RoleUser, user.Role)
	})
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(t)

	_, err := svc.Register(ctx, "alice@example.com", "Alice", "correct horse battery")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice@example.com", "Other Alice", "different password")
	require.ErrorIs(t, err, ErrEmailTaken)

	// Same address, different casing: still the same account.
	_, err = svc.Register(ctx, "ALICE@example.com", "Shouty Alice", "different password")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterStoresHashNotPassword(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(t)

	password := "correct horse battery"
	user, err := svc.Register(ctx, "alice@example.com", "Alice", password)
	require.NoError(t, err)

	stored, err := svc.Store.Users().GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotEmpty(t, stored.PasswordHash)
	require.NotContains(t, stored.PasswordHash, password)
}

func TestLoginRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(t)

	user, err := svc.Register(ctx, "alice@example.com", "Alice", "correct horse battery")
	require.NoError(t, err)

	token, sess, err := svc.Login(ctx, "alice@example.com", "correct horse battery")
	require.NoError(t, err)
	require.Equal(t, user.ID, sess.UserID)
	require.Equal(t, sessionx.RoleUser, sess.Role)

	// The token verifies with the same codec and carries the same session.
	verified, err := svc.Codec.Verify(token)
	require.NoError(t, err)
	require.Equal(t, sess, verified)
}

func TestLoginFailuresAreUniform(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(t)

	_, err := svc.Register(ctx, "alice@example.com", "Alice", "correct horse battery")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "alice@example.com", "wrong password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "whatever")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
