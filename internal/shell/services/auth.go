// Package services contains the application services of the PyHx shell.
// This file defines the authentication service: login, password change and
// user management on top of the credential store.
package services

import (
	"context"

	"github.com/dmitrijs2005/pyhx/internal/common"
	"github.com/dmitrijs2005/pyhx/internal/cryptox"
	"github.com/dmitrijs2005/pyhx/internal/logging"
	"github.com/dmitrijs2005/pyhx/internal/shell/models"
	"github.com/dmitrijs2005/pyhx/internal/shell/repositories/users"
)

// AuthService defines authentication operations for the shell.
//
// Contract:
//   - Usernames: list known accounts in store order; healed reports that the
//     store was just recreated with the default root account.
//   - Login: verify a password for a username.
//   - ChangePassword: re-verify the current password, require matching new
//     passwords, then persist. No mutation on any failure.
//   - AddUser / CheckDelete / DeleteUser: admin-only user management.
//
// Every store mutation is a read-modify-write of the whole store.
type AuthService interface {
	Usernames(ctx context.Context) (names []string, healed bool)
	Login(ctx context.Context, username string, password []byte) (models.Identity, error)
	ChangePassword(ctx context.Context, username string, current, next, confirm []byte) error
	AddUser(ctx context.Context, actor models.Identity, username string, password []byte, role models.Role) error
	CheckDelete(ctx context.Context, actor models.Identity, username string) error
	DeleteUser(ctx context.Context, actor models.Identity, username string) error
}

type authService struct {
	repo users.Repository
	log  logging.Logger
}

// NewAuthService constructs an AuthService bound to the given credential store.
func NewAuthService(repo users.Repository, log logging.Logger) AuthService {
	return &authService{repo: repo, log: log}
}

func (a *authService) Usernames(ctx context.Context) ([]string, bool) {
	u, healed := a.repo.Load(ctx)
	return u.Names(), healed
}

// Login returns the stored identity when password matches. Unknown users and
// wrong passwords both yield ErrAuthFailure.
func (a *authService) Login(ctx context.Context, username string, password []byte) (models.Identity, error) {
	u, _ := a.repo.Load(ctx)

	id, ok := u.Get(username)
	if !ok || !cryptox.VerifyPassword(password, id.PasswordHash) {
		a.log.Info(ctx, "login rejected", "user", username)
		return models.Identity{}, common.ErrAuthFailure
	}

	a.log.Info(ctx, "login accepted", "user", username, "role", id.Role)
	return id, nil
}

func (a *authService) ChangePassword(ctx context.Context, username string, current, next, confirm []byte) error {
	u, _ := a.repo.Load(ctx)

	id, ok := u.Get(username)
	if !ok || !cryptox.VerifyPassword(current, id.PasswordHash) {
		return common.ErrAuthFailure
	}
	if string(next) != string(confirm) {
		return common.Errorf(common.ErrValidation, "passwords do not match")
	}

	id.PasswordHash = cryptox.HashPassword(next)
	u.Put(id)

	if err := a.repo.Save(ctx, u); err != nil {
		return err
	}

	a.log.Info(ctx, "password changed", "user", username)
	return nil
}

func (a *authService) AddUser(ctx context.Context, actor models.Identity, username string, password []byte, role models.Role) error {
	if !actor.IsAdmin() {
		return common.ErrPermissionDenied
	}
	if username == "" {
		return common.Errorf(common.ErrValidation, "username must not be empty")
	}

	u, _ := a.repo.Load(ctx)
	if err := u.Add(models.Identity{
		Username:     username,
		PasswordHash: cryptox.HashPassword(password),
		Role:         role,
	}); err != nil {
		return common.Errorf(common.ErrValidation, "user '%s' already exists", username)
	}

	if err := a.repo.Save(ctx, u); err != nil {
		return err
	}

	a.log.Info(ctx, "user added", "actor", actor.Username, "user", username, "role", role)
	return nil
}

// CheckDelete reports whether actor may delete username without changing
// anything.
func (a *authService) CheckDelete(ctx context.Context, actor models.Identity, username string) error {
	u, _ := a.repo.Load(ctx)
	return checkDelete(u, actor, username)
}

func checkDelete(u *models.Users, actor models.Identity, username string) error {
	if !actor.IsAdmin() {
		return common.ErrPermissionDenied
	}
	if _, ok := u.Get(username); !ok {
		return common.Errorf(common.ErrNotFound, "user '%s' not found", username)
	}
	if username == models.RootUsername {
		return common.Errorf(common.ErrPermissionDenied, "the '%s' user cannot be deleted", models.RootUsername)
	}
	if username == actor.Username {
		return common.Errorf(common.ErrValidation, "you cannot delete yourself")
	}
	return nil
}

func (a *authService) DeleteUser(ctx context.Context, actor models.Identity, username string) error {
	u, _ := a.repo.Load(ctx)
	if err := checkDelete(u, actor, username); err != nil {
		return err
	}

	u.Remove(username)
	if err := a.repo.Save(ctx, u); err != nil {
		return err
	}

	a.log.Info(ctx, "user deleted", "actor", actor.Username, "user", username)
	return nil
}
