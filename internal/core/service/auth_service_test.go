package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/skyops/airflow-gateway/internal/core/domain"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if u, ok := r.users[username]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.Username]; ok {
		return nil, domain.ErrUserExists
	}
	r.users[user.Username] = user
	return user, nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func repoWith(t *testing.T, users ...*domain.User) *stubUserRepo {
	t.Helper()
	repo := &stubUserRepo{users: map[string]*domain.User{}}
	for _, u := range users {
		repo.users[u.Username] = u
	}
	return repo
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(h)
}

func TestAuthService_Login(t *testing.T) {
	user := testUser()
	user.PasswordHash = hash(t, "op-pass")

	svc := NewAuthService(repoWith(t, user), NewTokenService("secret", time.Hour))

	token, got, err := svc.Login(context.Background(), "op_user", "op-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatalf("empty token")
	}
	if got.Username != "op_user" || got.Role != domain.RoleOp {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestAuthService_WrongPassword(t *testing.T) {
	user := testUser()
	user.PasswordHash = hash(t, "op-pass")

	svc := NewAuthService(repoWith(t, user), NewTokenService("secret", time.Hour))

	if _, _, err := svc.Login(context.Background(), "op_user", "nope"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthService_UnknownUserMasked(t *testing.T) {
	svc := NewAuthService(repoWith(t), NewTokenService("secret", time.Hour))

	// An unknown username must be indistinguishable from a wrong password.
	if _, _, err := svc.Login(context.Background(), "ghost", "whatever"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthService_InactiveUser(t *testing.T) {
	user := testUser()
	user.Active = false
	user.PasswordHash = hash(t, "op-pass")

	svc := NewAuthService(repoWith(t, user), NewTokenService("secret", time.Hour))

	if _, _, err := svc.Login(context.Background(), "op_user", "op-pass"); !errors.Is(err, domain.ErrUserInactive) {
		t.Fatalf("err = %v, want ErrUserInactive", err)
	}
}

func TestAuthService_EmptyInput(t *testing.T) {
	svc := NewAuthService(repoWith(t), NewTokenService("secret", time.Hour))

	if _, _, err := svc.Login(context.Background(), "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}
