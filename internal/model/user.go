// Package model defines the data structures used throughout the application.
package model

import "fmt"

// Role decides what a user may do. Bookies publish games, events and
// results; punters browse them.
type Role string

const (
	RoleBookie Role = "Bookie"
	RolePunter Role = "Punter"
)

// ParseRole accepts the exact role names used on the wire.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleBookie, RolePunter:
		return Role(s), nil
	}
	return "", fmt.Errorf("model: unknown role %q", s)
}

// User is a registered account.
//
// WHY PasswordHash HAS json:"-":
// The bcrypt hash must never leave the server, not even in a /me response.
// The "-" tag makes encoding/json skip the field entirely.
type User struct {
	ID           int64  `json:"id"       db:"id"`
	Email        string `json:"email"    db:"email"`
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-"        db:"password"`
	Role         Role   `json:"role"     db:"role"`
}
