// Package users declares the repository contract over the staff directory
// consumed by the credential verifier and the session manager.
package users

import (
	"context"

	"github.com/yshalenyk/ordertrack/internal/server/models"
)

// Repository defines lookups over staff identities. The auth core treats
// the directory as read-only; Create exists for startup seeding.
type Repository interface {
	// Create inserts a new user and returns it with the generated id.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// FindByUsername looks a user up by username.
	// Implementations return common.ErrorNotFound when the user is absent.
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// FindByID looks a user up by its opaque id.
	// Implementations return common.ErrorNotFound when the user is absent.
	FindByID(ctx context.Context, id string) (*models.User, error)
}
