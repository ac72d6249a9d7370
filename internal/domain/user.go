package domain

import "time"

// Role separates regular users from administrators. Administrators are
// exempt from the access gate's quiz-validity requirement.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents an account in the domain.
type User struct {
	ID              string
	Email           string
	Name            string
	Role            Role
	ProfilePhotoURL string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
