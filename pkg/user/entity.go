package user

import "time"

// Role determines a user's permissions and access level.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is a domain entity representing a registered identity.
// UserCode is the opaque public identifier: assigned once at creation,
// never reassigned, and the only key exposed outside the service.
type User struct {
	UserCode     string
	Username     string
	Email        string
	PhoneNumber  string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Profile is the public projection of a User returned by the API.
// It never carries the password hash.
type Profile struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// ProfileOf builds the public projection of u.
func ProfileOf(u User) Profile {
	return Profile{Username: u.Username, Email: u.Email, Role: u.Role}
}
