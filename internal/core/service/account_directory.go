package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/skyops/airflow-gateway/internal/core/domain"
	"github.com/skyops/airflow-gateway/internal/core/ports"
)

// AccountDirectory resolves token subjects back to local accounts so the
// authentication gate can drop tokens whose user has since been deactivated
// or deleted. Lookups go through a short-TTL cache to keep the per-request
// cost off the credential store; cache failures fall through to the store.
type AccountDirectory struct {
	repo  ports.UserRepository
	cache ports.ActiveFlagCache
	log   zerolog.Logger
}

func NewAccountDirectory(repo ports.UserRepository, cache ports.ActiveFlagCache, log zerolog.Logger) *AccountDirectory {
	return &AccountDirectory{repo: repo, cache: cache, log: log}
}

// IsActive reports whether username maps to an active account. Unknown
// users are inactive, not an error.
func (d *AccountDirectory) IsActive(ctx context.Context, username string) (bool, error) {
	if d.cache != nil {
		active, ok, err := d.cache.Lookup(ctx, username)
		if err != nil {
			d.log.Warn().Err(err).Msg("active-flag cache lookup failed")
		} else if ok {
			return active, nil
		}
	}

	user, err := d.repo.FindByUsername(ctx, username)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return false, nil
		}
		return false, err
	}

	if d.cache != nil {
		if err := d.cache.Store(ctx, username, user.Active); err != nil {
			d.log.Warn().Err(err).Msg("active-flag cache store failed")
		}
	}
	return user.Active, nil
}
