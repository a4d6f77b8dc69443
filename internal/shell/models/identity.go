// Package models defines the in-memory types of the PyHx shell: stored
// identities and the live session that wraps one of them.
package models

import "fmt"

// Role is the privilege level of an identity.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// RootUsername names the account that is synthesized on first run and can
// never be deleted.
const RootUsername = "root"

// ParseRole accepts the stored role names only.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleUser:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Identity is a stored username with its password digest and role.
type Identity struct {
	Username     string
	PasswordHash string
	Role         Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
