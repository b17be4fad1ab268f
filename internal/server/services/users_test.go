package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"pocketledger/internal/common"
	"pocketledger/internal/server/config"
	"pocketledger/internal/server/models"
)

// --- test fakes ---

type fakeUsersRepo struct {
	created   *models.User
	createErr error

	getOut *models.User
	getErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = u
	out := *u
	out.ID = "u-1"
	return &out, nil
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func newUserService(t *testing.T, repo *fakeUsersRepo) *UserService {
	t.Helper()
	cfg := &config.Config{
		SecretKey:             "k",
		TokenValidityDuration: time.Hour,
		BcryptCost:            bcrypt.MinCost, // keep the tests fast
	}
	return NewUserService(repo, cfg)
}

// --- register ---

func TestRegister_Success(t *testing.T) {
	repo := &fakeUsersRepo{}
	s := newUserService(t, repo)

	user, err := s.Register(context.Background(), "alice", "pass1234")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if user.ID != "u-1" || user.Username != "alice" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestRegister_NeverStoresPlaintext(t *testing.T) {
	repo := &fakeUsersRepo{}
	s := newUserService(t, repo)

	_, err := s.Register(context.Background(), "alice", "pass1234")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if repo.created.PasswordHash == "pass1234" {
		t.Fatalf("plaintext password persisted")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(repo.created.PasswordHash), []byte("pass1234")); err != nil {
		t.Fatalf("stored hash does not verify the password: %v", err)
	}
}

func TestRegister_ValidationCollectsEveryViolation(t *testing.T) {
	s := newUserService(t, &fakeUsersRepo{})

	_, err := s.Register(context.Background(), "ab", "12")

	var ve *common.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Violations) != 2 {
		t.Fatalf("expected 2 violations, got %v", ve.Violations)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	repo := &fakeUsersRepo{createErr: common.ErrUsernameTaken}
	s := newUserService(t, repo)

	_, err := s.Register(context.Background(), "alice", "pass1234")
	if !errors.Is(err, common.ErrUsernameTaken) {
		t.Fatalf("want common.ErrUsernameTaken, got %v", err)
	}
}

// --- login ---

func storedUser(t *testing.T, username, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	return &models.User{ID: "u-1", Username: username, PasswordHash: string(hash)}
}

func TestLogin_Success(t *testing.T) {
	repo := &fakeUsersRepo{getOut: storedUser(t, "alice", "pass1234")}
	s := newUserService(t, repo)

	token, err := s.Login(context.Background(), "alice", "pass1234")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a token")
	}

	identity, err := s.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken error: %v", err)
	}
	if identity.UserID != "u-1" || identity.Username != "alice" {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}

func TestLogin_UserNotFound(t *testing.T) {
	repo := &fakeUsersRepo{getErr: common.ErrNotFound}
	s := newUserService(t, repo)

	_, err := s.Login(context.Background(), "ghost", "whatever")
	if !errors.Is(err, common.ErrUserNotFound) {
		t.Fatalf("want common.ErrUserNotFound, got %v", err)
	}
}

func TestLogin_InvalidPassword(t *testing.T) {
	repo := &fakeUsersRepo{getOut: storedUser(t, "alice", "pass1234")}
	s := newUserService(t, repo)

	_, err := s.Login(context.Background(), "alice", "wrong")
	if !errors.Is(err, common.ErrInvalidPassword) {
		t.Fatalf("want common.ErrInvalidPassword, got %v", err)
	}
}

func TestLogin_EmptyCredentials(t *testing.T) {
	s := newUserService(t, &fakeUsersRepo{})

	_, err := s.Login(context.Background(), "", "")

	var ve *common.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Violations) != 2 {
		t.Fatalf("expected 2 violations, got %v", ve.Violations)
	}
}

// --- token verification ---

func TestVerifyToken_Missing(t *testing.T) {
	s := newUserService(t, &fakeUsersRepo{})

	_, err := s.VerifyToken("")
	if !errors.Is(err, common.ErrNoToken) {
		t.Fatalf("want common.ErrNoToken, got %v", err)
	}
}

func TestVerifyToken_Expired(t *testing.T) {
	repo := &fakeUsersRepo{getOut: storedUser(t, "alice", "pass1234")}
	cfg := &config.Config{
		SecretKey:             "k",
		TokenValidityDuration: -1 * time.Second,
		BcryptCost:            bcrypt.MinCost,
	}
	s := NewUserService(repo, cfg)

	token, err := s.Login(context.Background(), "alice", "pass1234")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}

	_, err = s.VerifyToken(token)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("want common.ErrInvalidToken, got %v", err)
	}
}

func TestVerifyToken_Garbage(t *testing.T) {
	s := newUserService(t, &fakeUsersRepo{})

	_, err := s.VerifyToken("not.a.jwt")
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("want common.ErrInvalidToken, got %v", err)
	}
}
