package users

import (
	"context"

	"pocketledger/internal/server/models"
)

// Repository stores credential records. GetByUsername returns
// common.ErrNotFound for absent users; Create returns
// common.ErrUsernameTaken when the username is already held.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}
