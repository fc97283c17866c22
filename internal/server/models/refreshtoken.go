package models

import "time"

// RefreshToken is the persisted, revocable record behind one issued refresh
// token. TokenHash is the SHA-256 of the raw bearer string; the raw value is
// never stored. Records are only ever mutated by flipping Revoked to true.
type RefreshToken struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
}

// Active reports whether the record can still be used: not revoked and not
// past its expiry at the given instant.
func (t *RefreshToken) Active(now time.Time) bool {
	return !t.Revoked && t.ExpiresAt.After(now)
}
