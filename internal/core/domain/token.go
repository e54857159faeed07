package domain

import "time"

// TokenClaims is the decoded payload of a gateway bearer token. Besides the
// local identity it carries the Airflow basic-auth pair the token subject
// proxies with; the token is therefore a bearer secret and the pair must
// never appear in logs or responses.
type TokenClaims struct {
	Username        string
	Role            Role
	AirflowUsername string
	AirflowPassword string
	IssuedAt        time.Time
	ExpiresAt       time.Time
}

// Principal converts validated claims into a per-request principal.
func (c *TokenClaims) Principal() Principal {
	return NewPrincipal(c.Username, c.Role, c.AirflowUsername, c.AirflowPassword)
}
