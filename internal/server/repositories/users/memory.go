package users

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"pocketledger/internal/common"
	"pocketledger/internal/server/models"
)

// MemoryRepository is an in-memory Repository used by tests. It is safe
// for concurrent use and enforces the same username uniqueness the
// Postgres index does.
type MemoryRepository struct {
	mu    sync.Mutex
	users []*models.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, common.ErrUsernameTaken
		}
	}

	stored := *user
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now()
	r.users = append(r.users, &stored)

	out := stored
	return &out, nil
}

func (r *MemoryRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, common.ErrNotFound
}

var _ Repository = (*MemoryRepository)(nil)
