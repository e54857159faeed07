package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/skyops/airflow-gateway/internal/core/domain"
)

func render(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dags", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return rec.Code, body.Error
}

func TestErrorHandler_Taxonomy(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"authentication", &domain.AuthenticationError{}, http.StatusUnauthorized},
		{"authorization", &domain.AuthorizationError{Role: domain.RoleViewer}, http.StatusForbidden},
		{"not found", &domain.NotFoundError{Resource: "DAG etl"}, http.StatusNotFound},
		{"bad request", &domain.BadRequestError{Detail: "state is required"}, http.StatusBadRequest},
		{"conflict", &domain.ConflictError{Resource: "DAG run"}, http.StatusConflict},
		{"connectivity", &domain.ConnectivityError{Err: errors.New("refused")}, http.StatusGatewayTimeout},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"inactive user", domain.ErrUserInactive, http.StatusUnauthorized},
	}

	for _, tc := range cases {
		code, _ := render(t, tc.err)
		if code != tc.code {
			t.Errorf("%s: code = %d, want %d", tc.name, code, tc.code)
		}
	}
}

func TestErrorHandler_ServerSideUpstreamIs502(t *testing.T) {
	code, msg := render(t, &domain.UpstreamError{Status: 503, Body: "scheduler crashed at 0xdeadbeef"})
	if code != http.StatusBadGateway {
		t.Fatalf("code = %d, want 502", code)
	}
	if strings.Contains(msg, "0xdeadbeef") {
		t.Fatalf("5xx upstream detail leaked to the client: %q", msg)
	}
}

func TestErrorHandler_ClientSideUpstreamPassesThrough(t *testing.T) {
	code, msg := render(t, &domain.UpstreamError{Status: http.StatusTooManyRequests, Body: "rate limited"})
	if code != http.StatusTooManyRequests {
		t.Fatalf("code = %d, want 429", code)
	}
	if msg != "rate limited" {
		t.Fatalf("msg = %q", msg)
	}
}

func TestErrorHandler_InactiveAndInvalidLookAlike(t *testing.T) {
	_, invalidMsg := render(t, domain.ErrInvalidCredentials)
	_, inactiveMsg := render(t, domain.ErrUserInactive)
	if invalidMsg != inactiveMsg {
		t.Fatalf("login failures must be indistinguishable: %q vs %q", invalidMsg, inactiveMsg)
	}
}

func TestErrorHandler_UnexpectedErrorIsOpaque(t *testing.T) {
	code, msg := render(t, errors.New("pq: password authentication failed for user airflow"))
	if code != http.StatusInternalServerError {
		t.Fatalf("code = %d, want 500", code)
	}
	if msg != "internal server error" {
		t.Fatalf("internal detail leaked: %q", msg)
	}
}
