package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/pyhx/internal/common"
	"github.com/dmitrijs2005/pyhx/internal/cryptox"
	"github.com/dmitrijs2005/pyhx/internal/logging"
	"github.com/dmitrijs2005/pyhx/internal/shell/models"
	"github.com/dmitrijs2005/pyhx/internal/shell/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

var (
	root = models.Identity{Username: "root", Role: models.RoleAdmin}
	bob  = models.Identity{Username: "bob", Role: models.RoleUser}
)

func setupAuth(t *testing.T) (AuthService, *users.JSONRepository) {
	t.Helper()
	repo := users.NewJSONRepository(filepath.Join(t.TempDir(), "users.json"), logging.NewNopLogger())
	return NewAuthService(repo, logging.NewNopLogger()), repo
}

func storedDigest(t *testing.T, repo *users.JSONRepository, name string) string {
	t.Helper()
	u, _ := repo.Load(context.Background())
	id, ok := u.Get(name)
	require.True(t, ok)
	return id.PasswordHash
}

// ---- tests ----

func TestFreshStore_OffersOnlyRoot(t *testing.T) {
	svc, _ := setupAuth(t)
	ctx := context.Background()

	names, healed := svc.Usernames(ctx)
	assert.True(t, healed)
	assert.Equal(t, []string{"root"}, names)

	id, err := svc.Login(ctx, "root", []byte("root"))
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, id.Role)

	_, healed = svc.Usernames(ctx)
	assert.False(t, healed)
}

func TestLogin_Failures(t *testing.T) {
	svc, _ := setupAuth(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "root", []byte("wrong"))
	require.ErrorIs(t, err, common.ErrAuthFailure)

	_, err = svc.Login(ctx, "ghost", []byte("root"))
	require.ErrorIs(t, err, common.ErrAuthFailure)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("wrong current never mutates", func(t *testing.T) {
		svc, repo := setupAuth(t)
		before := storedDigest(t, repo, "root")

		err := svc.ChangePassword(ctx, "root", []byte("nope"), []byte("new"), []byte("new"))
		require.ErrorIs(t, err, common.ErrAuthFailure)
		assert.Equal(t, before, storedDigest(t, repo, "root"))
	})

	t.Run("mismatched confirmation never mutates", func(t *testing.T) {
		svc, repo := setupAuth(t)
		before := storedDigest(t, repo, "root")

		err := svc.ChangePassword(ctx, "root", []byte("root"), []byte("new1"), []byte("new2"))
		require.ErrorIs(t, err, common.ErrValidation)
		assert.Equal(t, before, storedDigest(t, repo, "root"))
	})

	t.Run("success", func(t *testing.T) {
		svc, repo := setupAuth(t)

		require.NoError(t, svc.ChangePassword(ctx, "root", []byte("root"), []byte("s3cret"), []byte("s3cret")))
		assert.Equal(t, cryptox.HashPassword([]byte("s3cret")), storedDigest(t, repo, "root"))

		_, err := svc.Login(ctx, "root", []byte("s3cret"))
		require.NoError(t, err)
	})
}

func TestAddUser(t *testing.T) {
	svc, _ := setupAuth(t)
	ctx := context.Background()

	require.NoError(t, svc.AddUser(ctx, root, "bob", []byte("pw"), models.RoleUser))

	names, _ := svc.Usernames(ctx)
	assert.Equal(t, []string{"root", "bob"}, names)

	id, err := svc.Login(ctx, "bob", []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, id.Role)

	err = svc.AddUser(ctx, root, "bob", []byte("pw"), models.RoleUser)
	require.ErrorIs(t, err, common.ErrValidation)

	err = svc.AddUser(ctx, bob, "eve", []byte("pw"), models.RoleAdmin)
	require.ErrorIs(t, err, common.ErrPermissionDenied)

	err = svc.AddUser(ctx, root, "", []byte("pw"), models.RoleUser)
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("root always rejected, even by another admin", func(t *testing.T) {
		svc, _ := setupAuth(t)
		require.NoError(t, svc.AddUser(ctx, root, "anna", []byte("pw"), models.RoleAdmin))
		anna := models.Identity{Username: "anna", Role: models.RoleAdmin}

		require.ErrorIs(t, svc.CheckDelete(ctx, anna, "root"), common.ErrPermissionDenied)
		require.ErrorIs(t, svc.DeleteUser(ctx, anna, "root"), common.ErrPermissionDenied)

		names, _ := svc.Usernames(ctx)
		assert.Contains(t, names, "root")
	})

	t.Run("self deletion rejected", func(t *testing.T) {
		svc, _ := setupAuth(t)
		require.NoError(t, svc.AddUser(ctx, root, "anna", []byte("pw"), models.RoleAdmin))
		anna := models.Identity{Username: "anna", Role: models.RoleAdmin}

		require.ErrorIs(t, svc.DeleteUser(ctx, anna, "anna"), common.ErrValidation)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, _ := setupAuth(t)
		require.ErrorIs(t, svc.DeleteUser(ctx, root, "ghost"), common.ErrNotFound)
	})

	t.Run("non-admin", func(t *testing.T) {
		svc, _ := setupAuth(t)
		require.NoError(t, svc.AddUser(ctx, root, "bob", []byte("pw"), models.RoleUser))
		require.ErrorIs(t, svc.DeleteUser(ctx, bob, "bob"), common.ErrPermissionDenied)
	})

	t.Run("success", func(t *testing.T) {
		svc, _ := setupAuth(t)
		require.NoError(t, svc.AddUser(ctx, root, "bob", []byte("pw"), models.RoleUser))
		require.NoError(t, svc.CheckDelete(ctx, root, "bob"))
		require.NoError(t, svc.DeleteUser(ctx, root, "bob"))

		names, _ := svc.Usernames(ctx)
		assert.Equal(t, []string{"root"}, names)
	})
}
