package domain

import (
	"errors"
	"time"
)

// Role is one of the fixed Airflow RBAC roles. There is no implicit
// ordering between roles; every authorization rule lists the roles it
// accepts explicitly.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleOp     Role = "OP"
	RoleUser   Role = "USER"
	RoleViewer Role = "VIEWER"
	RolePublic Role = "PUBLIC"
)

// Roles lists every known role.
var Roles = []Role{RoleAdmin, RoleOp, RoleUser, RoleViewer, RolePublic}

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrUserInactive       = errors.New("user is inactive")
)

// User models a local gateway account. Every user carries its own pair of
// Airflow credentials; those are embedded into issued tokens and must never
// appear in logs or API responses.
type User struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	FirstName       string    `json:"first_name,omitempty"`
	LastName        string    `json:"last_name,omitempty"`
	Email           string    `json:"email,omitempty"`
	PasswordHash    string    `json:"-"`
	Role            Role      `json:"role"`
	Active          bool      `json:"active"`
	AirflowUsername string    `json:"-"`
	AirflowPassword string    `json:"-"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
