package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/skyops/airflow-gateway/internal/core/domain"
	"github.com/skyops/airflow-gateway/internal/core/ports"
)

// SeedConfig controls first-run account creation.
type SeedConfig struct {
	// AdminPassword is the initial password shared by the seeded accounts.
	AdminPassword string
	// AirflowUsername/AirflowPassword is the downstream pair embedded in
	// every seeded account.
	AirflowUsername string
	AirflowPassword string
}

// SeedUsers creates one default account per role when the credential store
// is empty. An already-populated store is left untouched.
func SeedUsers(ctx context.Context, repo ports.UserRepository, cfg SeedConfig, log zerolog.Logger) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		log.Info().Int64("users", count).Msg("credential store already populated, skipping seed")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	now := time.Now().UTC()
	seeds := []domain.User{
		{Username: "admin", FirstName: "System", LastName: "Administrator", Email: "admin@example.com", Role: domain.RoleAdmin},
		{Username: "op_user", FirstName: "Op", LastName: "User", Email: "op_user@example.com", Role: domain.RoleOp},
		{Username: "user_user", FirstName: "User", LastName: "User", Email: "user_user@example.com", Role: domain.RoleUser},
		{Username: "viewer_user", FirstName: "Viewer", LastName: "User", Email: "viewer_user@example.com", Role: domain.RoleViewer},
		{Username: "public_user", FirstName: "Public", LastName: "User", Email: "public_user@example.com", Role: domain.RolePublic},
	}

	for _, seed := range seeds {
		seed.PasswordHash = string(hash)
		seed.Active = true
		seed.AirflowUsername = cfg.AirflowUsername
		seed.AirflowPassword = cfg.AirflowPassword
		seed.CreatedAt = now
		seed.UpdatedAt = now

		if _, err := repo.Create(ctx, &seed); err != nil {
			return fmt.Errorf("seed user %s: %w", seed.Username, err)
		}
		log.Info().Str("username", seed.Username).Str("role", string(seed.Role)).Msg("seeded default user")
	}
	return nil
}
