package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserRole is the account-level role of a platform participant.
type UserRole string

const (
	UserRoleTenant   UserRole = "tenant"
	UserRoleProvider UserRole = "provider"
	UserRoleManager  UserRole = "manager"
)

// User represents a platform account (tenant, provider or manager).
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
