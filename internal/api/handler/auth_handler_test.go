package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/skyops/airflow-gateway/internal/core/domain"
)

type stubAuthService struct {
	token string
	user  *domain.User
	err   error
}

func (s *stubAuthService) Login(_ context.Context, _, _ string) (string, *domain.User, error) {
	if s.err != nil {
		return "", nil, s.err
	}
	return s.token, s.user, nil
}

func postLogin(t *testing.T, svc *stubAuthService, body string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	return rec, NewAuthHandler(svc).Login(c)
}

func TestAuthHandler_Login(t *testing.T) {
	svc := &stubAuthService{
		token: "signed-token",
		user: &domain.User{
			Username:        "op_user",
			FirstName:       "Op",
			Email:           "op@example.com",
			Role:            domain.RoleOp,
			AirflowUsername: "airflow",
			AirflowPassword: "airflow-secret",
			PasswordHash:    "$2a$10$hash",
		},
	}

	rec, err := postLogin(t, svc, `{"username":"op_user","password":"op-pass"}`)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["token"] != "signed-token" || resp["username"] != "op_user" || resp["role"] != "OP" {
		t.Fatalf("unexpected response: %v", resp)
	}

	// Neither hashes nor downstream credentials may ever serialize.
	raw := rec.Body.String()
	for _, secret := range []string{"airflow-secret", "$2a$10$hash", "password_hash", "airflow_password"} {
		if strings.Contains(raw, secret) {
			t.Fatalf("response leaked %q: %s", secret, raw)
		}
	}
}

func TestAuthHandler_MissingFields(t *testing.T) {
	_, err := postLogin(t, &stubAuthService{}, `{"username":"op_user"}`)
	var bad *domain.BadRequestError
	if !errors.As(err, &bad) {
		t.Fatalf("err = %v, want BadRequestError", err)
	}
}

func TestAuthHandler_ServiceErrorPassesThrough(t *testing.T) {
	_, err := postLogin(t, &stubAuthService{err: domain.ErrInvalidCredentials}, `{"username":"op_user","password":"nope"}`)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}
