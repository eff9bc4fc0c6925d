package auth

import (
	"time"

	"github.com/google/uuid"
)

// Role is a closed set of access levels. Anything outside RoleUser/RoleAdmin
// is rejected at the boundary by ParseRole.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole maps an inbound string to a Role. Empty input falls back to
// RoleUser so registration without an explicit role stays valid.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), true
	case "":
		return RoleUser, true
	default:
		return "", false
	}
}

func (r Role) String() string { return string(r) }

// User is a domain entity representing a system user. PasswordHash never
// leaves the auth package; handlers see Public() views only.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// PublicUser is the externally visible projection of User.
type PublicUser struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// Identity is the per-request resolved caller, attached by the auth
// middleware after token verification and discarded at request end.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Name   string
	Role   Role
}
