package repository

import (
	"context"
	"errors"

	"auth-service/internal/domain"
)

var (
	// ErrNotFound is returned when no account matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicate is returned when an insert violates the username or email uniqueness constraint.
	ErrDuplicate = errors.New("user already exists")
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (int64, error)
	FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error)
}
