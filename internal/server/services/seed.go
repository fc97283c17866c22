package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/yshalenyk/ordertrack/internal/common"
	"github.com/yshalenyk/ordertrack/internal/server/models"
	"github.com/yshalenyk/ordertrack/internal/server/password"
	"github.com/yshalenyk/ordertrack/internal/server/repositories/repomanager"
)

// EnsureAdmin creates the bootstrap admin account when the directory does
// not contain it yet. Safe to run on every startup.
func EnsureAdmin(ctx context.Context, db *sql.DB, repos repomanager.RepositoryManager,
	hasher password.Hasher, username, plain string) error {
	repo := repos.Users(db)

	_, err := repo.FindByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("admin lookup: %w", err)
	}

	hash, err := hasher.Hash(plain)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	if _, err := repo.Create(ctx, &models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}); err != nil {
		return fmt.Errorf("creating admin: %w", err)
	}
	return nil
}
