package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/music-library/internal/domain"
	"github.com/spec-kit/music-library/internal/events"
	apperrors "github.com/spec-kit/music-library/pkg/util"
)

func TestRegisterAssignsAdminToFirstAccountOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.auth.Register(ctx, "a@x.com", "pw-a")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, first.Role)
	assert.NotEqual(t, "pw-a", first.PasswordHash)

	second, err := env.auth.Register(ctx, "b@x.com", "pw-b")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleViewer, second.Role)

	assert.Len(t, env.eventsOf(events.EventAccountRegistered), 2)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, "a@x.com", "pw-1")
	require.NoError(t, err)

	_, err = env.auth.Register(ctx, " A@X.com ", "pw-2")
	requireCode(t, err, apperrors.CodeConflict)

	count, err := env.accounts.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, "", "pw")
	requireCode(t, err, apperrors.CodeValidation)
	_, err = env.auth.Register(ctx, "a@x.com", "")
	requireCode(t, err, apperrors.CodeValidation)
}

func TestConcurrentFirstRegistrationsYieldOneAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := env.auth.Register(ctx, fmt.Sprintf("u%d@x.com", i), "pw")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	admins, err := env.users.List(ctx, UserFilter{Role: "admin", Limit: 100})
	require.NoError(t, err)
	assert.Len(t, admins, 1)
}

func TestAuthenticate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.auth.Register(ctx, "a@x.com", "pw")
	require.NoError(t, err)

	t.Run("unknown email", func(t *testing.T) {
		_, err := env.auth.Authenticate(ctx, "nobody@x.com", "pw")
		requireCode(t, err, apperrors.CodeNotFound)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := env.auth.Authenticate(ctx, "a@x.com", "nope")
		requireCode(t, err, apperrors.CodeUnauthorized)
	})

	t.Run("success", func(t *testing.T) {
		session, err := env.auth.Authenticate(ctx, "a@x.com", "pw")
		require.NoError(t, err)
		assert.NotEmpty(t, session.Token)
		assert.Equal(t, "a@x.com", session.Account.Email)

		identity, err := env.auth.Verify(ctx, session.Token)
		require.NoError(t, err)
		assert.Equal(t, session.Account.ID, identity.AccountID)
		assert.Equal(t, domain.RoleAdmin, identity.Role)
		assert.Equal(t, session.ExpiresAt.Unix(), identity.ExpiresAt.Unix())
	})
}

func TestInvalidatedTokenFailsVerification(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.auth.Register(ctx, "a@x.com", "pw")
	require.NoError(t, err)

	session, err := env.auth.Authenticate(ctx, "a@x.com", "pw")
	require.NoError(t, err)
	_, err = env.auth.Verify(ctx, session.Token)
	require.NoError(t, err)

	require.NoError(t, env.auth.Invalidate(ctx, session.Token))
	require.NoError(t, env.auth.Invalidate(ctx, session.Token))

	_, err = env.auth.Verify(ctx, session.Token)
	requireCode(t, err, apperrors.CodeUnauthorized)

	other, err := env.auth.Authenticate(ctx, "a@x.com", "pw")
	require.NoError(t, err)
	_, err = env.auth.Verify(ctx, other.Token)
	assert.NoError(t, err, "logging out one session must not affect another")

	assert.Len(t, env.eventsOf(events.EventAccountLoggedOut), 2)
}

func TestInvalidateValidation(t *testing.T) {
	env := newTestEnv(t)
	requireCode(t, env.auth.Invalidate(context.Background(), "  "), apperrors.CodeValidation)
	assert.NoError(t, env.auth.Invalidate(context.Background(), "garbage"))
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Verify(ctx, "")
	requireCode(t, err, apperrors.CodeUnauthorized)
	_, err = env.auth.Verify(ctx, "not.a.jwt")
	requireCode(t, err, apperrors.CodeUnauthorized)
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	account, err := env.auth.Register(ctx, "a@x.com", "old")
	require.NoError(t, err)

	requireCode(t, env.auth.ChangePassword(ctx, account.ID, "", "new"), apperrors.CodeValidation)
	requireCode(t, env.auth.ChangePassword(ctx, account.ID, "wrong", "new"), apperrors.CodeUnauthorized)
	requireCode(t, env.auth.ChangePassword(ctx, "not-a-uuid", "old", "new"), apperrors.CodeNotFound)

	require.NoError(t, env.auth.ChangePassword(ctx, account.ID, "old", "new"))

	_, err = env.auth.Authenticate(ctx, "a@x.com", "old")
	requireCode(t, err, apperrors.CodeUnauthorized)
	_, err = env.auth.Authenticate(ctx, "a@x.com", "new")
	assert.NoError(t, err)
}
