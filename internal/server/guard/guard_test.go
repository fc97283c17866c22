package guard

import (
	"errors"
	"testing"
	"time"

	"github.com/yshalenyk/ordertrack/internal/common"
	"github.com/yshalenyk/ordertrack/internal/server/models"
	"github.com/yshalenyk/ordertrack/internal/server/token"
)

func newGuardWithToken(t *testing.T, role models.Role) (*Guard, string) {
	t.Helper()
	codec := token.NewCodec([]byte("access"), []byte("refresh"), time.Hour, time.Hour)
	tok, err := codec.SignAccess(&models.User{ID: "u1", Username: "alice", Role: role})
	if err != nil {
		t.Fatalf("SignAccess error: %v", err)
	}
	return New(codec), tok
}

func TestAuthorize_MissingToken(t *testing.T) {
	g, _ := newGuardWithToken(t, models.RoleAdmin)

	if _, err := g.Authorize(""); !errors.Is(err, common.ErrUnauthorized) {
		t.Fatalf("expected common.ErrUnauthorized, got %v", err)
	}
}

func TestAuthorize_InvalidToken(t *testing.T) {
	g, _ := newGuardWithToken(t, models.RoleAdmin)

	if _, err := g.Authorize("garbage"); !errors.Is(err, common.ErrUnauthorized) {
		t.Fatalf("expected common.ErrUnauthorized, got %v", err)
	}
}

func TestAuthorize_NoRoleRestriction(t *testing.T) {
	g, tok := newGuardWithToken(t, models.RoleDriver)

	id, err := g.Authorize(tok)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.UserID != "u1" || id.Role != models.RoleDriver {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestIdentify_VerifiesWithoutRoleCheck(t *testing.T) {
	g, tok := newGuardWithToken(t, models.RoleDriver)

	id, err := g.Identify(tok)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.UserID != "u1" || id.Role != models.RoleDriver {
		t.Fatalf("unexpected identity: %+v", id)
	}

	if _, err := g.Identify("garbage"); !errors.Is(err, common.ErrUnauthorized) {
		t.Fatalf("expected common.ErrUnauthorized, got %v", err)
	}
}

func TestAllowed_RoleMembership(t *testing.T) {
	g, tok := newGuardWithToken(t, models.RoleDriver)

	id, err := g.Identify(tok)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !g.Allowed(id) {
		t.Fatalf("empty allow-list must admit every verified identity")
	}
	if g.Allowed(id, models.RoleAdmin) {
		t.Fatalf("driver must not pass an admin-only allow-list")
	}
	if !g.Allowed(id, models.RoleAdmin, models.RoleDriver) {
		t.Fatalf("driver must pass an allow-list containing driver")
	}
}

func TestAuthorize_RoleMembership(t *testing.T) {
	tests := []struct {
		name    string
		role    models.Role
		allowed []models.Role
		wantErr bool
	}{
		{"admin allowed for admin-only", models.RoleAdmin, []models.Role{models.RoleAdmin}, false},
		{"driver rejected for admin-only", models.RoleDriver, []models.Role{models.RoleAdmin}, true},
		{"inventory rejected for admin+cs", models.RoleInventory, []models.Role{models.RoleAdmin, models.RoleCS}, true},
		{"cs allowed for admin+cs", models.RoleCS, []models.Role{models.RoleAdmin, models.RoleCS}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, tok := newGuardWithToken(t, tc.role)
			id, err := g.Authorize(tok, tc.allowed...)
			if tc.wantErr {
				if !errors.Is(err, common.ErrUnauthorized) {
					t.Fatalf("expected common.ErrUnauthorized, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id.Role != tc.role {
				t.Fatalf("role mismatch: got %q want %q", id.Role, tc.role)
			}
		})
	}
}
