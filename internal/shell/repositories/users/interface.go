// Package users persists the credential store: an insertion-ordered mapping
// from username to password digest and role.
package users

import (
	"context"

	"github.com/dmitrijs2005/pyhx/internal/shell/models"
)

type Repository interface {
	// Load never fails. A missing, unreadable or empty store is replaced by a
	// single root/root admin account, and healed reports that this happened.
	Load(ctx context.Context) (users *models.Users, healed bool)

	// Save overwrites the store. Failures wrap common.ErrIOFailure.
	Save(ctx context.Context, users *models.Users) error
}
