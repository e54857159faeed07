package ports

import (
	"context"

	"github.com/skyops/airflow-gateway/internal/core/domain"
)

// AuthService authenticates local users and issues bearer tokens.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}

// TokenService issues and validates signed, stateless bearer tokens.
type TokenService interface {
	Issue(user *domain.User) (string, error)
	Validate(token string) (*domain.TokenClaims, error)
}

// ActiveDirectory answers whether a token subject still resolves to an
// active local account. Implementations may cache lookups.
type ActiveDirectory interface {
	IsActive(ctx context.Context, username string) (bool, error)
}
