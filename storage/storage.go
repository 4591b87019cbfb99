package storage

import (
	"context"

	"pacman-backend/models"
)

// UserRepository is the account store. GetByUsername returns (nil, nil)
// when no such user exists; lookups are case-insensitive.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}
