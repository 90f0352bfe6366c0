package domain

import (
	"regexp"
	"time"
)

// Role is the authorization level of a user. The set is closed: every
// authorization check switches exhaustively over these three values.
type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleGuest      Role = "guest"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperadmin, RoleAdmin, RoleGuest:
		return true
	}
	return false
}

// Privileged reports whether r may mutate resources it does not own.
func (r Role) Privileged() bool {
	switch r {
	case RoleSuperadmin, RoleAdmin:
		return true
	case RoleGuest:
		return false
	}
	return false
}

// Principal is the authenticated identity extracted from a bearer token.
// It is passed explicitly into every service call that needs it.
type Principal struct {
	Email string
	Role  Role
}

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// User models a registered animator account. Password holds the bcrypt
// hash, never the plaintext.
type User struct {
	ID        string     `json:"id,omitempty"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Password  string     `json:"-"`
	Role      Role       `json:"role"`
	Games     []Game     `json:"games,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// NewUser validates the candidate fields and constructs a User.
// Validation is fail-fast: the first violated rule is returned and no
// partially constructed value is observable.
func NewUser(id, username, email, password string, role Role) (*User, error) {
	if username == "" {
		return nil, Required("Username")
	}
	if !usernamePattern.MatchString(username) {
		return nil, Invalid("Username may only contain letters, numbers, '-' and '_'.")
	}
	if email == "" {
		return nil, Required("Email")
	}
	if !emailPattern.MatchString(email) {
		return nil, Invalid("Email is invalid.")
	}
	if password == "" {
		return nil, Required("Password")
	}
	if role == "" {
		role = RoleGuest
	}
	if !role.Valid() {
		return nil, Invalid("Role must be one of superadmin, admin or guest.")
	}

	return &User{
		ID:        id,
		Username:  username,
		Email:     email,
		Password:  password,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Public is the reduced projection of a user exposed to non-privileged
// viewers.
type PublicUser struct {
	ID       string `json:"id,omitempty"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Public collapses the full record to its public-safe subset.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Username: u.Username}
}

// Equals compares two users structurally. The games association is
// compared positionally: the same games in a different order are unequal.
func (u *User) Equals(other *User) bool {
	if other == nil {
		return false
	}
	if u.Username != other.Username ||
		u.Email != other.Email ||
		u.Password != other.Password ||
		u.Role != other.Role {
		return false
	}
	if len(u.Games) != len(other.Games) {
		return false
	}
	for i := range u.Games {
		if !u.Games[i].Equals(&other.Games[i]) {
			return false
		}
	}
	return u.CreatedAt.Equal(other.CreatedAt) && equalTimePtr(u.UpdatedAt, other.UpdatedAt)
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
