package storage

import (
	"context"
	"strings"
	"sync"

	"pacman-backend/models"
)

// MemoryUserRepository keeps users in process memory. Used by tests and as
// the fallback store when no Mongo URI is configured.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]*models.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]*models.User)}
}

func (r *MemoryUserRepository) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[strings.ToLower(username)]
	if !ok {
		return nil, nil
	}
	cp := *user
	return &cp, nil
}

func (r *MemoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *user
	r.users[strings.ToLower(user.Username)] = &cp
	return nil
}
