package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"newsdesk/internal/apperr"
	"newsdesk/internal/auth"
	"newsdesk/internal/domain"
	"newsdesk/internal/repository"
)

const (
	// msgInvalidCredentials is shared by every login failure so callers cannot
	// tell an unknown email from a wrong password.
	msgInvalidCredentials = "invalid credentials"
	msgUserExists         = "user already exists"
)

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// TokenIssuer signs bearer tokens for an identity.
type TokenIssuer interface {
	Issue(identity auth.Identity) (string, error)
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token string
	User  *domain.User
}

// UserService describes user lifecycle operations.
type UserService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	CreateUser(ctx context.Context, username, email, password string, isAdmin bool) (*domain.User, error)
	SetAdmin(ctx context.Context, email string, isAdmin bool) (*domain.User, error)
}

type userService struct {
	users    repository.UserRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
	validate *validator.Validate
}

func NewUserService(users repository.UserRepository, hasher PasswordHasher, tokens TokenIssuer) UserService {
	return &userService{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		validate: validator.New(),
	}
}

func (s *userService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	return s.CreateUser(ctx, username, email, password, false)
}

func (s *userService) CreateUser(ctx context.Context, username, email, password string, isAdmin bool) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = normalizeEmail(email)

	if username == "" {
		return nil, apperr.Validation("username", "username is required")
	}
	if email == "" {
		return nil, apperr.Validation("email", "email is required")
	}
	if err := s.validate.Var(email, "email"); err != nil {
		return nil, apperr.Validation("email", "email must be a valid email address")
	}
	if strings.TrimSpace(password) == "" {
		return nil, apperr.Validation("password", "password is required")
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperr.Conflict(msgUserExists)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      isAdmin,
	}
	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict(msgUserExists)
		}
		return nil, err
	}

	return sanitizeUser(user), nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperr.Authentication(msgInvalidCredentials)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Authentication(msgInvalidCredentials)
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, apperr.Authentication(msgInvalidCredentials)
	}

	token, err := s.tokens.Issue(IdentityOf(user))
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, User: sanitizeUser(user)}, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) SetAdmin(ctx context.Context, email string, isAdmin bool) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	if err := s.users.SetAdmin(ctx, user.ID, isAdmin); err != nil {
		return nil, err
	}
	user.IsAdmin = isAdmin
	return sanitizeUser(user), nil
}

// IdentityOf projects a user onto the claims carried by its tokens.
func IdentityOf(user *domain.User) auth.Identity {
	return auth.Identity{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		IsAdmin:  user.IsAdmin,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
