package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/skyops/airflow-gateway/internal/core/domain"
)

func testUser() *domain.User {
	return &domain.User{
		Username:        "op_user",
		Role:            domain.RoleOp,
		Active:          true,
		AirflowUsername: "airflow",
		AirflowPassword: "airflow-secret",
	}
}

func TestTokenService_RoundTrip(t *testing.T) {
	s := NewTokenService("secret", time.Hour)

	token, err := s.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := s.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Username != "op_user" {
		t.Fatalf("username = %q, want op_user", claims.Username)
	}
	if claims.Role != domain.RoleOp {
		t.Fatalf("role = %q, want OP", claims.Role)
	}
	if claims.AirflowUsername != "airflow" || claims.AirflowPassword != "airflow-secret" {
		t.Fatalf("airflow credentials not carried through")
	}
	if !claims.ExpiresAt.After(claims.IssuedAt) {
		t.Fatalf("expiry %v not after issue %v", claims.ExpiresAt, claims.IssuedAt)
	}
}

func TestTokenService_DeterministicIssuance(t *testing.T) {
	s := NewTokenService("secret", time.Hour)
	fixed := time.Unix(1700000000, 0)
	s.now = func() time.Time { return fixed }

	a, err := s.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	b, err := s.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if a != b {
		t.Fatalf("same user and clock produced different tokens")
	}
}

func TestTokenService_TamperedSignature(t *testing.T) {
	s := NewTokenService("secret", time.Hour)

	token, err := s.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Flip one character of the signature segment.
	parts := strings.Split(token, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	parts[2] = string(sig)

	if _, err := s.Validate(strings.Join(parts, ".")); !errors.Is(err, domain.ErrTokenSignature) {
		t.Fatalf("err = %v, want ErrTokenSignature", err)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Validate(token); !errors.Is(err, domain.ErrTokenSignature) {
		t.Fatalf("err = %v, want ErrTokenSignature", err)
	}
}

func TestTokenService_Expired(t *testing.T) {
	s := NewTokenService("secret", time.Minute)

	token, err := s.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Move the validation clock past the expiry.
	s.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	if _, err := s.Validate(token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("err = %v, want ErrTokenExpired", err)
	}
}

func TestTokenService_Malformed(t *testing.T) {
	s := NewTokenService("secret", time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := s.Validate(token); !errors.Is(err, domain.ErrTokenMalformed) {
			t.Fatalf("Validate(%q) err = %v, want ErrTokenMalformed", token, err)
		}
	}
}
