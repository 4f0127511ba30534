package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-music-catalog/internal/domain/entity"
	"github.com/oksasatya/go-music-catalog/internal/domain/errs"
	"github.com/oksasatya/go-music-catalog/pkg/helpers"
)

func TestRegister_LoginAndAuthenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.auth.Register(ctx, "  alice ", "secret1")
	require.NoError(t, err)
	require.Equal(t, "alice", res.User.Username)
	require.NotEqual(t, "secret1", res.User.PasswordHash)
	require.NotEmpty(t, res.Token)
	require.WithinDuration(t, time.Now().Add(time.Hour), res.ExpiresAt, time.Minute)

	login, err := f.auth.Login(ctx, "alice", "secret1")
	require.NoError(t, err)

	id, err := f.auth.Authenticate(ctx, helpers.BearerPrefix+login.Token)
	require.NoError(t, err)
	require.Equal(t, res.User.ID, id.User.ID)
	require.NotEmpty(t, id.SessionID)
}

func TestRegister_DuplicateUsernameConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, "alice", "secret1")
	require.NoError(t, err)
	_, err = f.auth.Register(ctx, "alice", "other-pass")
	require.ErrorIs(t, err, errs.ErrConflict)

	u, err := f.store.Users().GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.True(t, helpers.CompareHashAndPassword(u.PasswordHash, "secret1"))
}

func TestRegister_RequiresCredentials(t *testing.T) {
	f := newFixture(t)
	_, err := f.auth.Register(context.Background(), "   ", "secret1")
	require.ErrorIs(t, err, errs.ErrInvalid)
	_, err = f.auth.Register(context.Background(), "alice", "")
	require.ErrorIs(t, err, errs.ErrInvalid)
}

func TestLogin_BadCredentials(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "alice", false)

	_, err := f.auth.Login(ctx, "alice", "wrong")
	require.ErrorIs(t, err, errs.ErrUnauthenticated)
	_, err = f.auth.Login(ctx, "nobody", "secret1")
	require.ErrorIs(t, err, errs.ErrUnauthenticated)
}

func TestAuthenticate_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res, err := f.auth.Register(ctx, "alice", "secret1")
	require.NoError(t, err)

	other := helpers.NewJWTManager("another-secret", time.Hour)
	forged, _, err := other.GenerateAccessToken(res.User.ID, "sid")
	require.NoError(t, err)

	expiredMgr := helpers.NewJWTManager("test-secret", -time.Minute)
	expired, _, err := expiredMgr.GenerateAccessToken(res.User.ID, "sid")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing prefix", res.Token},
		{"empty", ""},
		{"garbage", "Bearer not-a-jwt"},
		{"bad signature", "Bearer " + forged},
		{"expired", "Bearer " + expired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.auth.Authenticate(ctx, tt.header)
			require.ErrorIs(t, err, errs.ErrUnauthenticated)
		})
	}
}

func TestVerifyToken_DeletedUserIsUnauthenticated(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res, err := f.auth.Register(ctx, "alice", "secret1")
	require.NoError(t, err)

	require.NoError(t, f.auth.DeleteUser(ctx, "alice"))
	_, err = f.auth.VerifyToken(ctx, res.Token)
	require.ErrorIs(t, err, errs.ErrUnauthenticated)
}

func TestLogout_RevokesSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res, err := f.auth.Register(ctx, "alice", "secret1")
	require.NoError(t, err)

	id, err := f.auth.VerifyToken(ctx, res.Token)
	require.NoError(t, err)
	require.NoError(t, f.auth.Logout(ctx, id))

	_, err = f.auth.VerifyToken(ctx, res.Token)
	require.ErrorIs(t, err, errs.ErrUnauthenticated)
}

func TestVerifyToken_SessionStoreDownFailsClosed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res, err := f.auth.Register(ctx, "alice", "secret1")
	require.NoError(t, err)

	f.sessions.existsErr = errors.New("redis: connection refused")
	_, err = f.auth.VerifyToken(ctx, res.Token)
	require.ErrorIs(t, err, errs.ErrUnauthenticated)
}

func TestVerifyToken_WithoutSessionStore(t *testing.T) {
	f := newFixture(t)
	f.auth.Sessions = nil
	ctx := context.Background()
	res, err := f.auth.Register(ctx, "alice", "secret1")
	require.NoError(t, err)

	id, err := f.auth.VerifyToken(ctx, res.Token)
	require.NoError(t, err)
	require.NoError(t, f.auth.Logout(ctx, id))
	_, err = f.auth.VerifyToken(ctx, res.Token)
	require.NoError(t, err)
}

func TestRequireAdmin(t *testing.T) {
	require.ErrorIs(t, RequireAdmin(nil), errs.ErrUnauthenticated)
	require.ErrorIs(t, RequireAdmin(&entity.User{}), errs.ErrForbidden)
	require.NoError(t, RequireAdmin(&entity.User{IsAdmin: true}))
}

func TestEnsureAdmin_CreatesThenPromotes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, created, err := f.auth.EnsureAdmin(ctx, "root", "toor123")
	require.NoError(t, err)
	require.True(t, created)
	require.True(t, u.IsAdmin)

	f.user(t, "bob", false)
	u, created, err = f.auth.EnsureAdmin(ctx, "bob", "")
	require.NoError(t, err)
	require.False(t, created)
	require.True(t, f.reload(t, u.ID).IsAdmin)

	_, _, err = f.auth.EnsureAdmin(ctx, "carol", "")
	require.ErrorIs(t, err, errs.ErrInvalid)
}

func TestSetAdmin_Revoke(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.user(t, "alice", true)

	u, err := f.auth.SetAdmin(ctx, "alice", false)
	require.NoError(t, err)
	require.False(t, u.IsAdmin)
	require.False(t, f.reload(t, admin.ID).IsAdmin)

	_, err = f.auth.SetAdmin(ctx, "nobody", true)
	require.ErrorIs(t, err, errs.ErrNotFound)
}
