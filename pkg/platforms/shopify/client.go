package shopify

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

	"go.uber.org/zap"

	"github.com/worldofchami/shopify-mcp/pkg/models"
	"github.com/worldofchami/shopify-mcp/pkg/utils"
)

const (
	DefaultAPIVersion = "2025-04"
	DefaultTimeout    = 10 * time.Second

	APIREST    = "rest"
	APIGraphQL = "graphql"
)

// Observer receives one observation per upstream round trip.
type Observer interface {
	ObserveUpstream(api, outcome string, duration time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveUpstream(string, string, time.Duration) {}

// Client talks to a single store. It holds no per-call state and is safe
// for concurrent use.
type Client struct {
	HTTPClient *http.Client
	APIVersion string

	credential Credential
	logger     *zap.Logger
	observer   Observer
}

type Option func(*Client)

// WithHTTPClient replaces the default client. The replacement is expected
// to set the access token headers itself.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.HTTPClient = h
		}
	}
}

func WithAPIVersion(version string) Option {
	return func(c *Client) {
		if strings.TrimSpace(version) != "" {
			c.APIVersion = strings.TrimSpace(version)
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithObserver(o Observer) Option {
	return func(c *Client) {
		if o != nil {
			c.observer = o
		}
	}
}

func NewClient(credential Credential, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		HTTPClient: utils.NewHTTPClientWithAccessToken(credential.AccessToken(), timeout),
		APIVersion: DefaultAPIVersion,
		credential: credential,
		logger:     zap.NewNop(),
		observer:   nopObserver{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	c.logger = c.logger.Named("shopify")
	return c
}

// Result is the outcome of one upstream call: either a JSON object body or
// a Failure.
type Result struct {
	Body    json.RawMessage
	Failure *Failure
}

func (r Result) OK() bool { return r.Failure == nil }

// Absent is the REST view of a Result: any failure means "no data", with no
// detail kept.
func (r Result) Absent() bool { return r.Failure != nil }

func (r Result) Decode(v any) error {
	if r.Failure != nil {
		return r.Failure
	}
	return json.Unmarshal(r.Body, v)
}

// Payload is the GraphQL view of a Result: the parsed body on success, or a
// synthesized {"error": "..."} mapping on failure.
func (r Result) Payload() map[string]any {
	if r.Failure != nil {
		return map[string]any{"error": r.Failure.Error()}
	}
	var payload map[string]any
	if err := json.Unmarshal(r.Body, &payload); err != nil {
		return map[string]any{"error": err.Error()}
	}
	return payload
}

// FetchREST issues a GET against <base>/<endpoint>.
func (c *Client) FetchREST(ctx context.Context, endpoint string) Result {
	res := c.do(ctx, APIREST, http.MethodGet, c.restURL(endpoint), nil)
	if res.Failure != nil {
		c.logger.Debug("rest request failed",
			zap.String("endpoint", endpoint),
			zap.Stringer("kind", res.Failure.Kind),
			zap.Error(res.Failure))
	}
	return res
}

// RunGraphQL POSTs {query, variables} to the Storefront GraphQL endpoint.
func (c *Client) RunGraphQL(ctx context.Context, query string, variables map[string]any) Result {
	if variables == nil {
		variables = map[string]any{}
	}
	res := c.do(ctx, APIGraphQL, http.MethodPost, c.graphQLURL(), models.GraphQLRequest{Query: query, Variables: variables})
	if res.Failure != nil {
		c.logger.Warn("graphql request failed",
			zap.Stringer("kind", res.Failure.Kind),
			zap.Error(res.Failure))
	}
	return res
}

func (c *Client) restURL(endpoint string) string {
	return c.credential.BaseURL() + "/" + strings.TrimLeft(endpoint, "/")
}

func (c *Client) graphQLURL() string {
	return fmt.Sprintf("%s/api/%s/graphql.json", c.credential.BaseURL(), c.APIVersion)
}

func (c *Client) do(ctx context.Context, api, method, target string, body any) Result {
	start := time.Now()
	res := c.roundTrip(ctx, method, target, body)
	outcome := "ok"
	if res.Failure != nil {
		outcome = res.Failure.Kind.String()
	}
	c.observer.ObserveUpstream(api, outcome, time.Since(start))
	return res
}

func (c *Client) roundTrip(ctx context.Context, method, target string, body any) Result {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return Result{Failure: &Failure{Kind: FailureRequest, URL: target, Err: fmt.Errorf("failed to marshal request: %w", err)}}
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return Result{Failure: &Failure{Kind: FailureRequest, URL: target, Err: fmt.Errorf("failed to create request: %w", err)}}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return Result{Failure: &Failure{Kind: FailureTransport, URL: target, Err: err}}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{Failure: &Failure{Kind: FailureTransport, URL: target, Err: fmt.Errorf("failed to read response body: %w", err)}}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{Failure: &Failure{
			Kind:        FailureStatus,
			URL:         target,
			StatusCode:  resp.StatusCode,
			Status:      resp.Status,
			BodyPreview: preview(respBody, 512),
		}}
	}

	trimmed := bytes.TrimSpace(respBody)
	if len(trimmed) == 0 || trimmed[0] != '{' || !json.Valid(trimmed) {
		return Result{Failure: &Failure{Kind: FailureDecode, URL: target, Err: errors.New("response body is not a JSON object")}}
	}
	return Result{Body: json.RawMessage(trimmed)}
}

func preview(b []byte, max int) string {
	if len(b) > max {
		b = b[:max]
	}
	return strings.TrimSpace(string(b))
}
