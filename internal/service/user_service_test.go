package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/music-library/internal/domain"
	apperrors "github.com/spec-kit/music-library/pkg/util"
)

func TestUserServiceCreate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	editor, err := env.users.Create(ctx, UserCreateInput{Email: "e@x.com", Password: "pw", Role: "editor"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleEditor, editor.Role)

	viewer, err := env.users.Create(ctx, UserCreateInput{Email: "v@x.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleViewer, viewer.Role)

	_, err = env.users.Create(ctx, UserCreateInput{Email: "root@x.com", Password: "pw", Role: "Admin"})
	requireCode(t, err, apperrors.CodeForbidden)

	_, err = env.users.Create(ctx, UserCreateInput{Email: "x@x.com", Password: "pw", Role: "owner"})
	requireCode(t, err, apperrors.CodeValidation)

	_, err = env.users.Create(ctx, UserCreateInput{Email: "e@x.com", Password: "pw"})
	requireCode(t, err, apperrors.CodeConflict)
}

func TestUserServiceListFiltersByRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, "admin@x.com", "pw")
	require.NoError(t, err)
	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		_, err := env.users.Create(ctx, UserCreateInput{Email: email, Password: "pw", Role: "Editor"})
		require.NoError(t, err)
	}

	editors, err := env.users.List(ctx, UserFilter{Role: "Editor", Limit: 2})
	require.NoError(t, err)
	assert.Len(t, editors, 2)

	all, err := env.users.List(ctx, UserFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	_, err = env.users.List(ctx, UserFilter{Role: "owner"})
	requireCode(t, err, apperrors.CodeValidation)
}

func TestUserServiceUpdateRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	account, err := env.users.Create(ctx, UserCreateInput{Email: "v@x.com", Password: "pw"})
	require.NoError(t, err)

	updated, err := env.users.UpdateRole(ctx, account.ID, "Editor")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleEditor, updated.Role)

	_, err = env.users.UpdateRole(ctx, account.ID, "Admin")
	requireCode(t, err, apperrors.CodeValidation)

	_, err = env.users.UpdateRole(ctx, uuid.NewString(), "Viewer")
	requireCode(t, err, apperrors.CodeNotFound)
}

func TestUserServiceDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	account, err := env.users.Create(ctx, UserCreateInput{Email: "v@x.com", Password: "pw"})
	require.NoError(t, err)

	require.NoError(t, env.users.Delete(ctx, account.ID))
	requireCode(t, env.users.Delete(ctx, account.ID), apperrors.CodeNotFound)
	requireCode(t, env.users.Delete(ctx, "42"), apperrors.CodeNotFound)
}
