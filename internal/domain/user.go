package domain

import "time"

// Role determines what a user may do. Agents review suggestions and manage
// the knowledge base; admins additionally manage settings.
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
	RoleAdmin Role = "admin"
)

// User is the domain model for anyone who signs in.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsStaff reports whether the role grants agent-level access.
func (r Role) IsStaff() bool {
	return r == RoleAgent || r == RoleAdmin
}
