// Package guard gates protected requests on a verified access token and,
// optionally, role membership. It never touches the refresh-token store.
package guard

import (
	"github.com/yshalenyk/ordertrack/internal/common"
	"github.com/yshalenyk/ordertrack/internal/server/models"
	"github.com/yshalenyk/ordertrack/internal/server/token"
)

type Guard struct {
	codec *token.Codec
}

func New(codec *token.Codec) *Guard {
	return &Guard{codec: codec}
}

// Identify verifies the bearer credential and returns the embedded
// identity. A missing or unverifiable credential returns
// common.ErrUnauthorized. No side effects.
func (g *Guard) Identify(tokenString string) (*token.Identity, error) {
	if tokenString == "" {
		return nil, common.ErrUnauthorized
	}

	identity, err := g.codec.VerifyAccess(tokenString)
	if err != nil {
		return nil, common.ErrUnauthorized
	}
	return identity, nil
}

// Allowed reports whether identity's role is a member of allowedRoles. An
// empty allow-list admits every verified identity.
func (g *Guard) Allowed(identity *token.Identity, allowedRoles ...models.Role) bool {
	if len(allowedRoles) == 0 {
		return true
	}
	for _, role := range allowedRoles {
		if identity.Role == role {
			return true
		}
	}
	return false
}

// Authorize combines Identify and Allowed for callers that do not need to
// tell the two failures apart; both collapse into common.ErrUnauthorized.
func (g *Guard) Authorize(tokenString string, allowedRoles ...models.Role) (*token.Identity, error) {
	identity, err := g.Identify(tokenString)
	if err != nil {
		return nil, err
	}
	if !g.Allowed(identity, allowedRoles...) {
		return nil, common.ErrUnauthorized
	}
	return identity, nil
}
