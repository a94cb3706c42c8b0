package domain

import "time"

// Role represents a user role.
type Role string

// User roles.
const (
	RoleEmployee   Role = "employee"
	RoleSpecialist Role = "specialist"
)

// HasPermission reports whether the role satisfies the minimum required role.
// Specialists can do everything employees can.
func (r Role) HasPermission(min Role) bool {
	if min == RoleEmployee {
		return r == RoleEmployee || r == RoleSpecialist
	}
	return r == RoleSpecialist
}

// IsValid checks if the role is valid.
func (r Role) IsValid() bool {
	return r == RoleEmployee || r == RoleSpecialist
}

// User represents an account that reports or handles incidents.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	DisplayName  string    `json:"display_name"`
	Email        string    `json:"email"`
	CreatedAt    time.Time `json:"created_at"`
}

// SafeUser is the credential-free projection of a user returned by the API.
type SafeUser struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Role        Role      `json:"role"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
}

// Safe returns the user without credentials.
func (u *User) Safe() *SafeUser {
	return &SafeUser{
		ID:          u.ID,
		Username:    u.Username,
		Role:        u.Role,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		CreatedAt:   u.CreatedAt,
	}
}
