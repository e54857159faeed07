package domain

import (
	"errors"
	"fmt"
)

// Token validation failures. The authentication middleware treats all of
// them as "no identity"; they surface to callers only through the 401 the
// authorization matrix produces for anonymous requests.
var (
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenSignature = errors.New("token signature mismatch")
	ErrTokenExpired   = errors.New("token has expired")
)

// AuthenticationError maps to 401: the caller presented no usable identity.
type AuthenticationError struct {
	Reason string
}

func (e *AuthenticationError) Error() string {
	if e.Reason == "" {
		return "authentication required"
	}
	return e.Reason
}

// AuthorizationError maps to 403: the caller is known but its role is not
// allowed on the requested route.
type AuthorizationError struct {
	Role Role
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("role %s is not permitted to perform this action", e.Role)
}

// NotFoundError maps to 404. Resource is the human-readable name the
// outbound call was made for, e.g. "DAG example_dag".
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

// BadRequestError maps to 400, for both local validation failures and
// downstream 400 responses.
type BadRequestError struct {
	Detail string
}

func (e *BadRequestError) Error() string { return e.Detail }

// ConflictError maps to 409.
type ConflictError struct {
	Resource string
	Detail   string
}

func (e *ConflictError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Resource + " operation resulted in a conflict"
}

// UpstreamError carries a non-2xx Airflow response that is not covered by a
// more specific mapping. Server-side statuses (5xx) render as 502; anything
// else passes the original status through. The raw body is preserved so the
// downstream failure is never silently swallowed.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("airflow returned status %d: %s", e.Status, e.Body)
}

// ServerSide reports whether the upstream failure was a 5xx.
func (e *UpstreamError) ServerSide() bool { return e.Status >= 500 }

// ConnectivityError maps to 504: the outbound call produced no HTTP
// response at all (connection refused, timeout, cancelled context).
type ConnectivityError struct {
	Err error
}

func (e *ConnectivityError) Error() string {
	return "airflow is unreachable: " + e.Err.Error()
}

func (e *ConnectivityError) Unwrap() error { return e.Err }
