package entity

import (
	"database/sql"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCompany Role = "company"
	RoleStudent Role = "student"
)

// Valid reports whether r is one of the three known roles. Anything else is
// treated as an unprivileged session by the access guards.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCompany, RoleStudent:
		return true
	}
	return false
}

type User struct {
	ID                uint64
	Username          string
	PasswordHash      string
	Email             string
	Role              Role
	ResetToken        sql.NullString
	ResetTokenExpires sql.NullTime
}

// Principal is the identity resolved from a session for one request.
type Principal struct {
	Username string
	Role     Role
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

func (p *Principal) IsCompanyOrAdmin() bool {
	return p != nil && (p.Role == RoleAdmin || p.Role == RoleCompany)
}
