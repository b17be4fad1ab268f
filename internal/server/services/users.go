// Package services contains the business logic between the HTTP layer and
// the repositories: credential handling and token issuance in UserService,
// owner-scoped ledger operations in EntryService.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"pocketledger/internal/common"
	"pocketledger/internal/server/auth"
	"pocketledger/internal/server/config"
	"pocketledger/internal/server/models"
	"pocketledger/internal/server/repositories/users"
)

const minCredentialLength = 4

// UserService registers accounts, verifies login credentials and issues
// and verifies bearer tokens.
type UserService struct {
	repo                  users.Repository
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	bcryptCost            int
}

func NewUserService(repo users.Repository, cfg *config.Config) *UserService {
	return &UserService{
		repo:                  repo,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		bcryptCost:            cfg.BcryptCost,
	}
}

// Register creates an account with a bcrypt hash of the password. The
// plaintext is neither stored nor logged. Username uniqueness is enforced
// by the persistence layer; a duplicate surfaces as ErrUsernameTaken.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {

	var violations []string
	if len(username) < minCredentialLength {
		violations = append(violations, "username must be at least 4 characters")
	}
	if len(password) < minCredentialLength {
		violations = append(violations, "password must be at least 4 characters")
	}
	if len(violations) > 0 {
		return nil, common.NewValidationError(violations...)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrUsernameTaken) {
			return nil, common.ErrUsernameTaken
		}
		return nil, common.ErrInternal
	}

	return user, nil
}

// Login verifies the password against the stored bcrypt hash and mints a
// bearer token carrying the owner identity. "user not found" and "invalid
// password" stay distinct on purpose; see the design notes.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {

	var violations []string
	if username == "" {
		violations = append(violations, "username is required")
	}
	if password == "" {
		violations = append(violations, "password is required")
	}
	if len(violations) > 0 {
		return "", common.NewValidationError(violations...)
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrUserNotFound
		}
		return "", common.ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", common.ErrInvalidPassword
	}

	token, err := auth.GenerateToken(user.ID, user.Username, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", common.ErrInternal
	}

	return token, nil
}

// VerifyToken checks the signature and expiry of a bearer token and
// returns the identity embedded in it. Verification is stateless.
func (s *UserService) VerifyToken(tokenString string) (*models.Identity, error) {
	if tokenString == "" {
		return nil, common.ErrNoToken
	}

	claims, err := auth.ParseToken(tokenString, s.jwtSecret)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	return &models.Identity{UserID: claims.UserID, Username: claims.Username}, nil
}
