package ports

import (
	"context"

	"github.com/jeugdwerk/games-api/internal/core/domain"
)

// SignupInput carries the data needed to create a new account. Role is
// optional and defaults to guest.
type SignupInput struct {
	Username string
	Email    string
	Password string
	Role     domain.Role
}

// AuthResult is returned on successful authentication.
type AuthResult struct {
	Token string
	Email string
	Role  domain.Role
}

// UserProfile is the role-dependent view of a user returned by
// GetByUsername. For non-privileged viewers only ID, Username and Email
// are populated and Reduced is true.
type UserProfile struct {
	User    *domain.User
	Public  domain.PublicUser
	Reduced bool
}

// UserService defines account use-cases.
type UserService interface {
	Create(ctx context.Context, input SignupInput) (*domain.User, error)
	// Authenticate verifies email+password and issues a signed token
	// carrying {email, role}. Unknown email and wrong password produce
	// the identical error.
	Authenticate(ctx context.Context, email, password string) (*AuthResult, error)
	// GetMe resolves the caller's own record from the principal email.
	GetMe(ctx context.Context, principal domain.Principal) (*domain.User, error)
	// GetByUsername returns the full record for privileged callers and a
	// reduced projection for everyone else.
	GetByUsername(ctx context.Context, principal domain.Principal, username string) (*UserProfile, error)
	// GetAll lists every account; privileged callers only.
	GetAll(ctx context.Context, principal domain.Principal) ([]domain.User, error)
}
