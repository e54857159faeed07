package domain

// Principal is the per-request identity derived from a validated bearer
// token. It is built once by the authentication middleware and passed down
// the call chain; it is never stored across requests.
//
// A zero Principal is anonymous. The authentication stage is fail-open:
// a missing or invalid token yields Anonymous and the authorization matrix
// decides whether the request may proceed.
type Principal struct {
	Username string
	Role     Role

	// AirflowUsername and AirflowPassword are the downstream credentials
	// carried inside the token. They live only for the request and must
	// never be logged or serialized.
	AirflowUsername string
	AirflowPassword string

	authenticated bool
}

// Anonymous is the principal used when no valid identity is present.
var Anonymous = Principal{}

// NewPrincipal builds an authenticated principal from validated claims.
func NewPrincipal(username string, role Role, airflowUsername, airflowPassword string) Principal {
	return Principal{
		Username:        username,
		Role:            role,
		AirflowUsername: airflowUsername,
		AirflowPassword: airflowPassword,
		authenticated:   true,
	}
}

// Authenticated reports whether the principal carries a validated identity.
func (p Principal) Authenticated() bool { return p.authenticated }
