package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/skyops/airflow-gateway/internal/api/metrics"
	"github.com/skyops/airflow-gateway/internal/core/domain"
	"github.com/skyops/airflow-gateway/internal/core/ports"
)

// principalKey is the echo context key the resolved principal is stored
// under.
const principalKey = "principal"

// Skipper decides whether the gate is bypassed for a request (used for the
// login endpoint, which by definition carries no token yet).
type Skipper func(c echo.Context) bool

// AuthConfig configures the authentication gate.
type AuthConfig struct {
	// Tokens validates bearer tokens.
	Tokens ports.TokenService
	// Directory re-checks that a token subject still resolves to an
	// active account. Optional; nil skips the re-check.
	Directory ports.ActiveDirectory
	// Skipper, when set, bypasses the gate entirely.
	Skipper Skipper
	Logger  zerolog.Logger
}

// Auth is the authentication gate. It resolves a per-request principal and
// never rejects: a missing, malformed, expired or otherwise invalid token
// yields the anonymous principal and the pipeline continues. Turning "no
// valid identity" into an error response is the authorization matrix's job,
// not this one's.
func Auth(cfg AuthConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.Skipper != nil && cfg.Skipper(c) {
				return next(c)
			}

			c.Set(principalKey, domain.Anonymous)

			token, ok := bearerToken(c)
			if !ok {
				return next(c)
			}

			claims, err := cfg.Tokens.Validate(token)
			if err != nil {
				metrics.TokenRejectionsTotal.WithLabelValues(rejectionReason(err)).Inc()
				cfg.Logger.Debug().Err(err).Msg("bearer token rejected, continuing as anonymous")
				return next(c)
			}

			if cfg.Directory != nil {
				active, err := cfg.Directory.IsActive(c.Request().Context(), claims.Username)
				if err != nil {
					cfg.Logger.Warn().Err(err).Msg("active-account re-check failed, continuing as anonymous")
					return next(c)
				}
				if !active {
					metrics.TokenRejectionsTotal.WithLabelValues("inactive_user").Inc()
					cfg.Logger.Debug().Str("username", claims.Username).Msg("token subject inactive, continuing as anonymous")
					return next(c)
				}
			}

			c.Set(principalKey, claims.Principal())
			return next(c)
		}
	}
}

// PrincipalFrom returns the principal resolved by the authentication gate,
// or Anonymous when the gate did not run.
func PrincipalFrom(c echo.Context) domain.Principal {
	if p, ok := c.Get(principalKey).(domain.Principal); ok {
		return p
	}
	return domain.Anonymous
}

// bearerToken extracts the bearer credential from the Authorization header.
func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func rejectionReason(err error) string {
	switch err {
	case domain.ErrTokenExpired:
		return "expired"
	case domain.ErrTokenSignature:
		return "signature"
	default:
		return "malformed"
	}
}
