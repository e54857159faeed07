// Package airflow implements the outbound gateway to the Airflow REST API:
// a single generic executor that substitutes path templates, injects
// basic-auth credentials, and maps response statuses onto the domain error
// taxonomy.
package airflow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/skyops/airflow-gateway/internal/api/metrics"
	"github.com/skyops/airflow-gateway/internal/core/domain"
	"github.com/skyops/airflow-gateway/internal/core/ports"
)

const (
	apiPrefix      = "/api/v1"
	defaultTimeout = 30 * time.Second

	// maxErrorBody caps how much of a failed response is kept in the error.
	maxErrorBody = 16 << 10
)

// ErrUnresolvedPlaceholder marks a path template whose placeholders were not
// all substituted. It is a programming error: the call never reaches the
// network and surfaces as a 500, not as an upstream failure.
var ErrUnresolvedPlaceholder = errors.New("unresolved path placeholder")

// Config captures the settings of the outbound Airflow client.
type Config struct {
	// BaseURL is the root of the Airflow installation, without /api/v1.
	BaseURL string
	// DefaultUsername/DefaultPassword authenticate calls whose principal
	// carries no credentials of its own.
	DefaultUsername string
	DefaultPassword string
	// Timeout bounds every single call. Zero means defaultTimeout.
	Timeout time.Duration
}

// Client is the concrete ports.AirflowClient. It performs exactly one
// attempt per call; retries, if wanted, are composed by callers.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	defaultUser string
	defaultPass string
	timeout     time.Duration
	log         zerolog.Logger
}

func NewClient(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/") + apiPrefix,
		httpClient:  &http.Client{},
		defaultUser: cfg.DefaultUsername,
		defaultPass: cfg.DefaultPassword,
		timeout:     timeout,
		log:         log,
	}
}

// Do executes one call against Airflow. A 2xx response is decoded into out:
// a *string receives the raw body (task logs are plain text), any other
// non-nil out is decoded as JSON, nil discards the body. Non-2xx statuses
// and transport failures map onto the domain error taxonomy.
func (c *Client) Do(ctx context.Context, req ports.AirflowRequest, out any) error {
	target, err := c.buildURL(req)
	if err != nil {
		return err
	}

	var body io.Reader
	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(callCtx, req.Method, target, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")

	user, pass := c.defaultUser, c.defaultPass
	if !req.Credentials.Empty() {
		user, pass = req.Credentials.Username, req.Credentials.Password
	}
	httpReq.SetBasicAuth(user, pass)

	c.log.Debug().Str("method", req.Method).Str("path", req.Path).Msg("airflow request")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		metrics.AirflowRequestsTotal.WithLabelValues(req.Method, "unreachable").Inc()
		return &domain.ConnectivityError{Err: err}
	}
	defer resp.Body.Close()

	metrics.AirflowRequestsTotal.WithLabelValues(req.Method, fmt.Sprintf("%d", resp.StatusCode)).Inc()
	metrics.AirflowRequestDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return decodeResponse(resp.Body, out)
	}
	return c.mapError(resp, req.Resource)
}

// buildURL expands the path template and appends non-empty query
// parameters. Every placeholder must resolve; a leftover one is a local
// programming error and fails before any network activity.
func (c *Client) buildURL(req ports.AirflowRequest) (string, error) {
	path := req.Path
	for name, value := range req.PathParams {
		path = strings.ReplaceAll(path, "{"+name+"}", url.PathEscape(value))
	}
	if open := strings.IndexByte(path, '{'); open >= 0 {
		end := strings.IndexByte(path[open:], '}')
		placeholder := path[open:]
		if end >= 0 {
			placeholder = path[open : open+end+1]
		}
		return "", fmt.Errorf("%w: %s in %s", ErrUnresolvedPlaceholder, placeholder, req.Path)
	}

	target := c.baseURL + path
	query := url.Values{}
	for key, value := range req.Query {
		if value != "" {
			query.Set(key, value)
		}
	}
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return target, nil
}

func decodeResponse(body io.Reader, out any) error {
	switch dst := out.(type) {
	case nil:
		_, _ = io.Copy(io.Discard, body)
		return nil
	case *string:
		raw, err := io.ReadAll(body)
		if err != nil {
			return &domain.ConnectivityError{Err: err}
		}
		*dst = string(raw)
		return nil
	default:
		if err := json.NewDecoder(body).Decode(out); err != nil {
			return fmt.Errorf("decode airflow response: %w", err)
		}
		return nil
	}
}

// mapError converts a non-2xx Airflow response into a typed domain error.
// The raw body is preserved in the error detail so downstream failures are
// never silently swallowed.
func (c *Client) mapError(resp *http.Response, resource string) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	detail := strings.TrimSpace(string(raw))

	switch resp.StatusCode {
	case http.StatusNotFound:
		return &domain.NotFoundError{Resource: resource}
	case http.StatusBadRequest:
		if detail == "" {
			detail = "invalid request for " + resource
		}
		return &domain.BadRequestError{Detail: detail}
	case http.StatusConflict:
		return &domain.ConflictError{Resource: resource, Detail: detail}
	default:
		return &domain.UpstreamError{Status: resp.StatusCode, Body: detail}
	}
}
