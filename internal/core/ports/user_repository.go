package ports

import (
	"context"

	"github.com/skyops/airflow-gateway/internal/core/domain"
)

// UserRepository defines the interface for local account persistence.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
}
