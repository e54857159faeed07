package airflow

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/skyops/airflow-gateway/internal/core/domain"
	"github.com/skyops/airflow-gateway/internal/core/ports"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(Config{
		BaseURL:         srv.URL,
		DefaultUsername: "default-user",
		DefaultPassword: "default-pass",
	}, zerolog.Nop())
	return client, srv
}

func TestClient_DecodesJSON(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/dags/etl" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"dag_id":"etl","is_paused":false}`))
	})

	var out domain.Dag
	err := client.Do(context.Background(), ports.AirflowRequest{
		Method:     http.MethodGet,
		Path:       "/dags/{dagId}",
		PathParams: map[string]string{"dagId": "etl"},
		Resource:   "DAG etl",
	}, &out)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if out.DagID != "etl" {
		t.Fatalf("dag id = %q", out.DagID)
	}
}

func TestClient_PlainTextIntoString(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("task log line 1\ntask log line 2\n"))
	})

	var out string
	err := client.Do(context.Background(), ports.AirflowRequest{
		Method:   http.MethodGet,
		Path:     "/logs/1",
		Resource: "task logs",
	}, &out)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if out != "task log line 1\ntask log line 2\n" {
		t.Fatalf("body = %q", out)
	}
}

func TestClient_DefaultBasicAuth(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "default-user" || pass != "default-pass" {
			t.Errorf("basic auth = %q/%q", user, pass)
		}
		_, _ = w.Write([]byte(`{}`))
	})

	err := client.Do(context.Background(), ports.AirflowRequest{
		Method:   http.MethodGet,
		Path:     "/dags",
		Resource: "DAGs",
	}, nil)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
}

func TestClient_PrincipalBasicAuthWins(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		user, pass, _ := r.BasicAuth()
		if user != "alice" || pass != "alice-pw" {
			t.Errorf("basic auth = %q/%q, want principal pair", user, pass)
		}
		_, _ = w.Write([]byte(`{}`))
	})

	err := client.Do(context.Background(), ports.AirflowRequest{
		Method:      http.MethodGet,
		Path:        "/dags",
		Resource:    "DAGs",
		Credentials: ports.BasicCredentials{Username: "alice", Password: "alice-pw"},
	}, nil)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
}

func TestClient_OmitsEmptyQueryValues(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("state") != "running" {
			t.Errorf("state = %q", q.Get("state"))
		}
		if _, present := q["limit"]; present {
			t.Errorf("empty limit must be omitted, got query %q", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{}`))
	})

	err := client.Do(context.Background(), ports.AirflowRequest{
		Method:   http.MethodGet,
		Path:     "/dags",
		Query:    map[string]string{"state": "running", "limit": ""},
		Resource: "DAGs",
	}, nil)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
}

func TestClient_UnresolvedPlaceholderNeverReachesNetwork(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("request must not reach the network")
	})

	err := client.Do(context.Background(), ports.AirflowRequest{
		Method:   http.MethodGet,
		Path:     "/dags/{dagId}",
		Resource: "DAG",
	}, nil)
	if !errors.Is(err, ErrUnresolvedPlaceholder) {
		t.Fatalf("err = %v, want ErrUnresolvedPlaceholder", err)
	}
}

func TestClient_ErrorMapping(t *testing.T) {
	cases := []struct {
		status int
		check  func(t *testing.T, err error)
	}{
		{http.StatusNotFound, func(t *testing.T, err error) {
			var nf *domain.NotFoundError
			if !errors.As(err, &nf) {
				t.Fatalf("err = %v, want NotFoundError", err)
			}
			if nf.Resource != "DAG etl" {
				t.Fatalf("resource = %q", nf.Resource)
			}
		}},
		{http.StatusBadRequest, func(t *testing.T, err error) {
			var bad *domain.BadRequestError
			if !errors.As(err, &bad) {
				t.Fatalf("err = %v, want BadRequestError", err)
			}
		}},
		{http.StatusConflict, func(t *testing.T, err error) {
			var conflict *domain.ConflictError
			if !errors.As(err, &conflict) {
				t.Fatalf("err = %v, want ConflictError", err)
			}
		}},
		{http.StatusBadGateway, func(t *testing.T, err error) {
			var upstream *domain.UpstreamError
			if !errors.As(err, &upstream) {
				t.Fatalf("err = %v, want UpstreamError", err)
			}
			if !upstream.ServerSide() {
				t.Fatalf("502 must count as server side")
			}
		}},
		{http.StatusInternalServerError, func(t *testing.T, err error) {
			var upstream *domain.UpstreamError
			if !errors.As(err, &upstream) {
				t.Fatalf("err = %v, want UpstreamError", err)
			}
			if upstream.Body != "airflow exploded" {
				t.Fatalf("body = %q, upstream detail must be preserved", upstream.Body)
			}
		}},
	}

	for _, tc := range cases {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			_, _ = w.Write([]byte("airflow exploded"))
		})

		err := client.Do(context.Background(), ports.AirflowRequest{
			Method:     http.MethodGet,
			Path:       "/dags/{dagId}",
			PathParams: map[string]string{"dagId": "etl"},
			Resource:   "DAG etl",
		}, nil)
		tc.check(t, err)
	}
}

func TestClient_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewClient(Config{BaseURL: url}, zerolog.Nop())

	err := client.Do(context.Background(), ports.AirflowRequest{
		Method:   http.MethodGet,
		Path:     "/dags",
		Resource: "DAGs",
	}, nil)
	var conn *domain.ConnectivityError
	if !errors.As(err, &conn) {
		t.Fatalf("err = %v, want ConnectivityError", err)
	}
}

func TestClient_CancelledContext(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.Do(ctx, ports.AirflowRequest{
		Method:   http.MethodGet,
		Path:     "/dags",
		Resource: "DAGs",
	}, nil)
	var conn *domain.ConnectivityError
	if !errors.As(err, &conn) {
		t.Fatalf("err = %v, want ConnectivityError", err)
	}
}
