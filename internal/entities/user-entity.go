package entities

import "fleet-rental/pkg/types"

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleManager  UserRole = "manager"
	RoleObserver UserRole = "observer"
)

type User struct {
	ID           uint64   `json:"id" db:"id"`
	Username     string   `json:"username" db:"username"`
	PasswordHash string   `json:"-" db:"password_hash"`
	Role         UserRole `json:"role" db:"role"`

	types.BaseEntity
}
