package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/skyops/airflow-gateway/internal/core/domain"
)

// TokenService issues and validates HS256-signed bearer tokens. Issuance is
// deterministic for a given user and clock: there is no per-token nonce, so
// two tokens issued at the same instant are byte-identical.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// tokenClaims is the wire layout of the JWT payload. The Airflow basic-auth
// pair travels inside the token so the outbound gateway can proxy with the
// subject's own downstream identity.
type tokenClaims struct {
	Role            string `json:"role"`
	AirflowUsername string `json:"airflow_username"`
	AirflowPassword string `json:"airflow_password"`
	jwt.RegisteredClaims
}

// Issue builds and signs a token for the given user.
func (s *TokenService) Issue(user *domain.User) (string, error) {
	now := s.now().UTC()
	claims := tokenClaims{
		Role:            string(user.Role),
		AirflowUsername: user.AirflowUsername,
		AirflowPassword: user.AirflowPassword,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Validate parses and verifies a token, returning its claims. Failures map
// to the token error set; messages never include the embedded downstream
// password.
func (s *TokenService) Validate(token string) (*domain.TokenClaims, error) {
	claims := tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, domain.ErrTokenSignature
		default:
			return nil, domain.ErrTokenMalformed
		}
	}
	if !parsed.Valid {
		return nil, domain.ErrTokenSignature
	}

	out := &domain.TokenClaims{
		Username:        claims.Subject,
		Role:            domain.Role(claims.Role),
		AirflowUsername: claims.AirflowUsername,
		AirflowPassword: claims.AirflowPassword,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
