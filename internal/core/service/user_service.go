package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jeugdwerk/games-api/internal/api/metrics"
	"github.com/jeugdwerk/games-api/internal/core/domain"
	"github.com/jeugdwerk/games-api/internal/core/ports"
)

const bcryptCost = 12

// UserService implements signup, login and profile lookups.
type UserService struct {
	repo      ports.UserRepository
	jwtSecret string
	jwtIssuer string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewUserService(repo ports.UserRepository, jwtSecret, jwtIssuer string, tokenTTL time.Duration, logger zerolog.Logger) *UserService {
	if tokenTTL <= 0 {
		tokenTTL = 8 * time.Hour
	}
	return &UserService{
		repo:      repo,
		jwtSecret: jwtSecret,
		jwtIssuer: jwtIssuer,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// Create registers a new account. The password is bcrypt-hashed before it
// reaches the repository; the role defaults to guest when omitted.
func (s *UserService) Create(ctx context.Context, input ports.SignupInput) (*domain.User, error) {
	if existing, err := s.repo.GetByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, domain.Conflict(fmt.Sprintf("User with username %s already exists.", input.Username))
	} else if err != nil && !domain.IsNotFound(err) {
		return nil, err
	}
	if existing, err := s.repo.GetByUsername(ctx, input.Username); err == nil && existing != nil {
		return nil, domain.Conflict(fmt.Sprintf("User with username %s already exists.", input.Username))
	} else if err != nil && !domain.IsNotFound(err) {
		return nil, err
	}

	if input.Password == "" {
		return nil, domain.Required("Password")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := domain.NewUser("", input.Username, input.Email, string(hash), input.Role)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		s.logger.Error().Err(err).Str("username", input.Username).Msg("failed to create user")
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Str("role", string(created.Role)).Msg("user created")
	return created, nil
}

// Authenticate verifies the credentials and issues a signed token. Unknown
// email and wrong password both return domain.ErrInvalidCredentials so the
// response cannot be used to enumerate accounts.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsNotFound(err) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("email", email).Msg("user authenticated")

	return &ports.AuthResult{Token: token, Email: user.Email, Role: user.Role}, nil
}

// GetMe resolves the caller's own record from the principal email.
func (s *UserService) GetMe(ctx context.Context, principal domain.Principal) (*domain.User, error) {
	return s.repo.GetByEmail(ctx, principal.Email)
}

// GetByUsername returns the full record for admin/superadmin callers and
// the reduced {id, email, username} projection for everyone else.
func (s *UserService) GetByUsername(ctx context.Context, principal domain.Principal, username string) (*ports.UserProfile, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if principal.Role.Privileged() {
		return &ports.UserProfile{User: user}, nil
	}
	return &ports.UserProfile{Public: user.Public(), Reduced: true}, nil
}

// GetAll lists every account; guests are refused.
func (s *UserService) GetAll(ctx context.Context, principal domain.Principal) ([]domain.User, error) {
	if !principal.Role.Privileged() {
		return nil, domain.Forbidden("You are not allowed to list users.")
	}
	return s.repo.GetAll(ctx)
}

func (s *UserService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"email": user.Email,
		"role":  string(user.Role),
		"iss":   s.jwtIssuer,
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
