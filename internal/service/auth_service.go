package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"auth-service/internal/domain"
	"auth-service/internal/repository"
)

var (
	// ErrFieldsRequired indicates a registration request with a missing field.
	ErrFieldsRequired = errors.New("all fields are required")
	// ErrCredentialsRequired indicates a login request with a missing field.
	ErrCredentialsRequired = errors.New("credentials are required")
	// ErrUserExists is returned when registering with a taken username or email.
	ErrUserExists = errors.New("username or email already exists")
	// ErrUserNotFound is returned when the login identifier matches no account.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials indicates the supplied password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// DefaultBcryptCost matches the hashing work factor the service has always used.
const DefaultBcryptCost = 10

// AuthService describes the account provisioning and credential verification operations.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	Login(ctx context.Context, identifier, password string) (*domain.User, error)
}

type authService struct {
	users      repository.UserRepository
	bcryptCost int
}

func NewAuthService(users repository.UserRepository, bcryptCost int) AuthService {
	if bcryptCost <= 0 {
		bcryptCost = DefaultBcryptCost
	}
	return &authService{
		users:      users,
		bcryptCost: bcryptCost,
	}
}

func (s *authService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" || email == "" || password == "" {
		return nil, ErrFieldsRequired
	}

	// Advisory pre-check for a friendly conflict message. The uniqueness
	// constraint enforced on Create is the authoritative guard.
	if _, err := s.users.FindByUsernameOrEmail(ctx, username, email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return sanitizeUser(user), nil
}

func (s *authService) Login(ctx context.Context, identifier, password string) (*domain.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, ErrCredentialsRequired
	}

	user, err := s.users.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return sanitizeUser(user), nil
}

// sanitizeUser strips the password hash before the user leaves the service.
func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
