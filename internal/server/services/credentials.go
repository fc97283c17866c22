// Package services contains server-side auth logic: credential verification
// and the session manager that owns the refresh-token lifecycle.
package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/yshalenyk/ordertrack/internal/common"
	"github.com/yshalenyk/ordertrack/internal/server/models"
	"github.com/yshalenyk/ordertrack/internal/server/password"
	"github.com/yshalenyk/ordertrack/internal/server/repositories/repomanager"
)

// CredentialVerifier checks a username/password pair against the staff
// directory. It holds no state beyond its collaborators and has no side
// effects.
type CredentialVerifier struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	hasher password.Hasher
}

func NewCredentialVerifier(db *sql.DB, repos repomanager.RepositoryManager, hasher password.Hasher) *CredentialVerifier {
	return &CredentialVerifier{db: db, repos: repos, hasher: hasher}
}

// Verify returns the matching user or common.ErrInvalidCredentials. An
// unknown username and a wrong password are indistinguishable to the caller.
func (v *CredentialVerifier) Verify(ctx context.Context, username, plain string) (*models.User, error) {
	repo := v.repos.Users(v.db)

	user, err := repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, common.ErrorInternal
	}

	if !v.hasher.Compare(user.PasswordHash, plain) {
		return nil, common.ErrInvalidCredentials
	}

	return user, nil
}
