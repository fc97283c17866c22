// Package token implements signing and verification of the two credential
// kinds issued by the auth core. Access and refresh tokens use independent
// HS256 signing contexts, each with its own secret and lifetime.
//
// Verification here is purely cryptographic/structural. Whether a refresh
// token's record is still live is store policy, layered on top by the
// session manager.
package token

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yshalenyk/ordertrack/internal/common"
	"github.com/yshalenyk/ordertrack/internal/server/models"
)

// Identity is the claim set recovered from a verified access token.
type Identity struct {
	UserID string
	Role   models.Role
}

type accessClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

type refreshClaims struct {
	jwt.RegisteredClaims
}

// Codec signs and verifies access and refresh tokens.
type Codec struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewCodec(accessSecret, refreshSecret []byte, accessTTL, refreshTTL time.Duration) *Codec {
	return &Codec{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// SignAccess mints a short-lived access token embedding the user's id and
// role. It only fails on infrastructure-level signing errors.
func (c *Codec) SignAccess(user *models.User) (string, error) {
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.accessTTL)),
		},
		Role: string(user.Role),
	})
	return tok.SignedString(c.accessSecret)
}

// VerifyAccess checks the access token's signature, structure, and expiry
// and returns the embedded identity. Every failure is common.ErrInvalidToken.
func (c *Codec) VerifyAccess(tokenString string) (*Identity, error) {
	claims := &accessClaims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, c.keyFunc(c.accessSecret))
	if err != nil || !tok.Valid {
		return nil, common.ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, common.ErrInvalidToken
	}
	return &Identity{UserID: claims.Subject, Role: models.Role(claims.Role)}, nil
}

// SignRefresh mints a fresh refresh token for the user. The envelope carries
// the subject and a random hex jti, so every issuance is a brand-new bearer
// secret. The caller persists HashToken(raw), never the raw string.
func (c *Codec) SignRefresh(user *models.User) (string, time.Time, error) {
	jti, err := common.MakeRandHexString(16)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("generating token id: %w", err)
	}

	now := time.Now()
	expiresAt := now.Add(c.refreshTTL)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	raw, err := tok.SignedString(c.refreshSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return raw, expiresAt, nil
}

// VerifyRefresh checks the refresh envelope's signature and structure and
// returns the claimed subject. It does not consult any store.
func (c *Codec) VerifyRefresh(tokenString string) (string, error) {
	claims := &refreshClaims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, c.keyFunc(c.refreshSecret))
	if err != nil || !tok.Valid {
		return "", common.ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", common.ErrInvalidToken
	}
	return claims.Subject, nil
}

func (c *Codec) keyFunc(secret []byte) jwt.Keyfunc {
	return func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	}
}

// HashToken returns the hex-encoded SHA-256 of a raw token string. The store
// is keyed by this hash so a database leak never exposes usable secrets.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
