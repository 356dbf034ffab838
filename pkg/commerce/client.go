package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/harborcommerce/backoffice-backend/pkg/config"
	pkgerrors "github.com/harborcommerce/backoffice-backend/pkg/errors"
	"github.com/harborcommerce/backoffice-backend/pkg/logger"
	"github.com/harborcommerce/backoffice-backend/pkg/metrics"
)

const (
	defaultTimeout             = 10 * time.Second
	errorBodyReadLimit   int64 = 1024
	maxGraphQLErrorCount       = 5
)

var (
	errEndpointRequired    = errors.New("commerce endpoint is required")
	errAccessTokenRequired = errors.New("commerce access token is required")
	errLoggerRequired      = errors.New("commerce logger is required")
)

// Client speaks the platform Admin GraphQL API. Every call is one POST with
// a fixed query document; there is no pagination, retrying, or caching here.
type Client struct {
	httpClient  *http.Client
	endpoint    string
	accessToken string
	logger      *logger.Logger
	metrics     *metrics.UpstreamMetrics
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithEndpoint overrides the configured GraphQL endpoint.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(endpoint)
		if trimmed != "" {
			c.endpoint = trimmed
		}
	}
}

// NewClient builds the platform API client and validates the credentials.
func NewClient(cfg config.UpstreamConfig, logg *logger.Logger, upstreamMetrics *metrics.UpstreamMetrics, opts ...Option) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, errEndpointRequired
	}

	accessToken := strings.TrimSpace(cfg.AccessToken)
	if accessToken == "" {
		return nil, errAccessTokenRequired
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := &Client{
		httpClient:  &http.Client{Timeout: timeout},
		endpoint:    endpoint,
		accessToken: accessToken,
		logger:      logg,
		metrics:     upstreamMetrics,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: timeout}
	}

	return client, nil
}

// Ping issues a minimal query to verify connectivity and credentials.
func (c *Client) Ping(ctx context.Context) error {
	var data struct {
		Shop struct {
			Name string `json:"name"`
		} `json:"shop"`
	}
	return c.execute(ctx, "Ping", pingQuery, nil, &data)
}

const pingQuery = `query Ping { shop { name } }`

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
	Path    []any  `json:"path,omitempty"`
}

type graphQLEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors,omitempty"`
}

// execute posts one GraphQL document and decodes the data payload into out.
func (c *Client) execute(ctx context.Context, operation, query string, variables map[string]any, out any) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "commerce client not configured")
	}

	c.log(ctx, "request", operation, variables)
	start := time.Now()

	payload, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("marshal %s request", operation))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("build %s request", operation))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.fail(ctx, operation, err)
		upErr := &pkgerrors.UpstreamError{Operation: operation, Err: err}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, upErr, fmt.Sprintf("execute %s request", operation))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		statusErr := fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
		c.fail(ctx, operation, statusErr)
		upErr := &pkgerrors.UpstreamError{Operation: operation, HTTPStatus: resp.StatusCode, Err: statusErr}
		return pkgerrors.Wrap(domainCodeForStatus(resp.StatusCode), upErr, fmt.Sprintf("%s request failed", operation))
	}

	var envelope graphQLEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		c.fail(ctx, operation, err)
		upErr := &pkgerrors.UpstreamError{Operation: operation, HTTPStatus: resp.StatusCode, Err: err}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, upErr, fmt.Sprintf("decode %s response", operation))
	}

	if len(envelope.Errors) > 0 {
		messages := make([]string, 0, len(envelope.Errors))
		for i, gqlErr := range envelope.Errors {
			if i == maxGraphQLErrorCount {
				break
			}
			messages = append(messages, gqlErr.Message)
		}
		upErr := &pkgerrors.UpstreamError{Operation: operation, HTTPStatus: resp.StatusCode, Messages: messages}
		c.fail(ctx, operation, upErr)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, upErr, fmt.Sprintf("%s returned errors", operation))
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			c.fail(ctx, operation, err)
			upErr := &pkgerrors.UpstreamError{Operation: operation, HTTPStatus: resp.StatusCode, Err: err}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, upErr, fmt.Sprintf("decode %s data", operation))
		}
	}

	elapsed := time.Since(start)
	c.metrics.ObserveDuration(operation, elapsed)
	c.metrics.IncSuccess(operation)
	c.log(ctx, "response", operation, map[string]any{"duration_ms": elapsed.Milliseconds()})
	return nil
}

func (c *Client) fail(ctx context.Context, operation string, err error) {
	c.metrics.IncFailure(operation)
	c.log(ctx, "error", operation, map[string]any{"error": err.Error()})
}

func (c *Client) log(ctx context.Context, phase, op string, fields map[string]any) {
	if c == nil || c.logger == nil {
		return
	}
	logFields := map[string]any{
		"operation": op,
		"phase":     phase,
	}
	for k, v := range fields {
		logFields[k] = c.redact(k, v)
	}
	ctx = c.logger.WithFields(ctx, logFields)
	switch phase {
	case "error":
		c.logger.Error(ctx, fmt.Sprintf("commerce %s", op), errors.New(fmt.Sprint(fields["error"])))
	default:
		c.logger.Info(ctx, fmt.Sprintf("commerce %s", phase))
	}
}

func (c *Client) redact(key string, value any) any {
	lower := strings.ToLower(key)
	for _, sensitive := range []string{"token", "secret", "authorization", "email", "password"} {
		if strings.Contains(lower, sensitive) {
			return "[REDACTED]"
		}
	}
	return value
}

func domainCodeForStatus(status int) pkgerrors.Code {
	if status == http.StatusTooManyRequests {
		return pkgerrors.CodeRateLimit
	}
	return pkgerrors.CodeDependency
}
