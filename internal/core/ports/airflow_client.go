package ports

import "context"

// BasicCredentials is a downstream basic-auth pair. A zero value means
// "use the statically configured default pair".
type BasicCredentials struct {
	Username string
	Password string
}

// Empty reports whether no credentials are set.
func (c BasicCredentials) Empty() bool { return c.Username == "" && c.Password == "" }

// AirflowRequest describes one outbound call against the Airflow REST API.
type AirflowRequest struct {
	// Method is the HTTP verb (GET, POST, PATCH, DELETE).
	Method string
	// Path is a template relative to the Airflow API base, with named
	// placeholders: "/dags/{dagId}/dagRuns/{dagRunId}".
	Path string
	// PathParams substitute the placeholders. An unresolved placeholder is
	// a programming error and fails before any network activity.
	PathParams map[string]string
	// Query parameters; entries with empty values are omitted.
	Query map[string]string
	// Body is JSON-encoded when non-nil.
	Body any
	// Resource is a human-readable name used only in error messages,
	// e.g. "DAG example_dag".
	Resource string
	// Credentials authenticate the call. Empty falls back to the
	// configured default pair.
	Credentials BasicCredentials
}

// AirflowClient executes calls against the Airflow REST API, decoding the
// JSON response into out (which may be nil for empty responses) and mapping
// failures into the domain error taxonomy. Exactly one attempt per call.
type AirflowClient interface {
	Do(ctx context.Context, req AirflowRequest, out any) error
}
