// Package models holds the persisted entities shared by repositories and
// services.
package models

import "time"

// Role is a staff role stamped into access-token claims.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleDriver    Role = "driver"
	RoleCS        Role = "cs"
	RoleInventory Role = "inventory"
)

// Valid reports whether r is one of the known staff roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDriver, RoleCS, RoleInventory:
		return true
	}
	return false
}

// User is an identity record in the staff directory. The auth core reads it
// to verify credentials and stamp role claims; it never updates it.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
