// Package refreshtokens provides the server-side repository for the
// revocable records behind issued refresh tokens.
package refreshtokens

import (
	"context"
	"time"

	"github.com/yshalenyk/ordertrack/internal/server/models"
)

// Repository defines operations for issuing, retrieving, and revoking
// refresh-token records. Records are never deleted here; they stay around
// for audit and expiry-based housekeeping outside this core.
type Repository interface {
	// Create inserts a new active record and returns the generated record id.
	// A token-hash collision surfaces as an error from the unique index.
	Create(ctx context.Context, userID, tokenHash string, expiresAt time.Time) (string, error)

	// FindByHash returns the record whose token hash matches.
	// Implementations return common.ErrorNotFound when the hash is absent.
	FindByHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)

	// Revoke flips the revoked flag on the record with the given id only if
	// it is currently non-revoked and unexpired, and reports whether this
	// call performed the flip. Under concurrent rotation of the same token
	// exactly one caller observes true.
	Revoke(ctx context.Context, id string) (bool, error)

	// RevokeAllForUser revokes every active record owned by userID.
	RevokeAllForUser(ctx context.Context, userID string) error
}
