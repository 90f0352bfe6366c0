package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/jeugdwerk/games-api/internal/core/domain"
	"github.com/jeugdwerk/games-api/internal/core/ports"
)

type stubUserService struct {
	createFn        func(ctx context.Context, input ports.SignupInput) (*domain.User, error)
	authenticateFn  func(ctx context.Context, email, password string) (*ports.AuthResult, error)
	getMeFn         func(ctx context.Context, principal domain.Principal) (*domain.User, error)
	getByUsernameFn func(ctx context.Context, principal domain.Principal, username string) (*ports.UserProfile, error)
	getAllFn        func(ctx context.Context, principal domain.Principal) ([]domain.User, error)
}

func (s *stubUserService) Create(ctx context.Context, input ports.SignupInput) (*domain.User, error) {
	return s.createFn(ctx, input)
}

func (s *stubUserService) Authenticate(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.authenticateFn(ctx, email, password)
}

func (s *stubUserService) GetMe(ctx context.Context, principal domain.Principal) (*domain.User, error) {
	return s.getMeFn(ctx, principal)
}

func (s *stubUserService) GetByUsername(ctx context.Context, principal domain.Principal, username string) (*ports.UserProfile, error) {
	return s.getByUsernameFn(ctx, principal, username)
}

func (s *stubUserService) GetAll(ctx context.Context, principal domain.Principal) ([]domain.User, error) {
	return s.getAllFn(ctx, principal)
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestUserHandler_Signup_Success(t *testing.T) {
	stub := &stubUserService{
		createFn: func(_ context.Context, input ports.SignupInput) (*domain.User, error) {
			if input.Username != "alice" || input.Email != "alice@example.com" {
				t.Fatalf("unexpected input: %+v", input)
			}
			user, err := domain.NewUser("u1", input.Username, input.Email, "hash", input.Role)
			if err != nil {
				t.Fatalf("NewUser returned error: %v", err)
			}
			return user, nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/users/signup",
		`{"username":"alice","email":"alice@example.com","password":"secret"}`)

	if err := handler.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["username"] != "alice" || resp["role"] != "guest" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, ok := resp["password"]; ok {
		t.Fatalf("password must never be serialised")
	}
}

func TestUserHandler_Signup_InvalidBody(t *testing.T) {
	stub := &stubUserService{
		createFn: func(_ context.Context, _ ports.SignupInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewUserHandler(stub)

	// Missing email and password fails schema validation before the
	// service is consulted.
	c, _ := newTestContext(t, http.MethodPost, "/users/signup", `{"username":"alice"}`)

	err := handler.Signup(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestUserHandler_Login_Success(t *testing.T) {
	stub := &stubUserService{
		authenticateFn: func(_ context.Context, email, password string) (*ports.AuthResult, error) {
			if email != "alice@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &ports.AuthResult{Token: "token123", Email: email, Role: domain.RoleAdmin}, nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/users/login",
		`{"email":"alice@example.com","password":"secret"}`)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" || resp["role"] != "admin" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestUserHandler_Login_PropagatesCredentialError(t *testing.T) {
	stub := &stubUserService{
		authenticateFn: func(_ context.Context, _, _ string) (*ports.AuthResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewUserHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/users/login",
		`{"email":"alice@example.com","password":"bad"}`)

	// The handler returns the sentinel untouched; the central error
	// handler maps it to 401.
	if err := handler.Login(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUserHandler_Me_RequiresClaims(t *testing.T) {
	stub := &stubUserService{
		getMeFn: func(_ context.Context, _ domain.Principal) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewUserHandler(stub)

	c, _ := newTestContext(t, http.MethodGet, "/users/me", "")

	err := handler.Me(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestUserHandler_Me_Success(t *testing.T) {
	stub := &stubUserService{
		getMeFn: func(_ context.Context, principal domain.Principal) (*domain.User, error) {
			if principal.Email != "alice@example.com" || principal.Role != domain.RoleGuest {
				t.Fatalf("unexpected principal: %+v", principal)
			}
			user, err := domain.NewUser("u1", "alice", principal.Email, "hash", principal.Role)
			if err != nil {
				t.Fatalf("NewUser returned error: %v", err)
			}
			return user, nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/users/me", "")
	c.Set("email", "alice@example.com")
	c.Set("role", "guest")

	if err := handler.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_GetByUsername_ReducedProjection(t *testing.T) {
	stub := &stubUserService{
		getByUsernameFn: func(_ context.Context, _ domain.Principal, username string) (*ports.UserProfile, error) {
			return &ports.UserProfile{
				Public:  domain.PublicUser{ID: "u1", Email: "bob@example.com", Username: username},
				Reduced: true,
			}, nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/users/username/bob", "")
	c.SetParamNames("username")
	c.SetParamValues("bob")
	c.Set("email", "alice@example.com")
	c.Set("role", "guest")

	if err := handler.GetByUsername(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["username"] != "bob" || resp["email"] != "bob@example.com" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, ok := resp["role"]; ok {
		t.Fatalf("reduced projection must not expose the role")
	}
}
