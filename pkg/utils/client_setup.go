package utils

import (
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// AccessTokenHeader carries the store credential on every upstream call.
const AccessTokenHeader = "X-Shopify-Access-Token"

type accessTokenTransport struct {
	base  http.RoundTripper
	token string
}

func (t *accessTokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not mutate the caller's request.
	req = req.Clone(req.Context())
	if t.token != "" {
		req.Header.Set(AccessTokenHeader, t.token)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return t.base.RoundTrip(req)
}

// NewHTTPClientWithAccessToken returns a client that sends the fixed Shopify
// header set on every request and gives up after timeout.
func NewHTTPClientWithAccessToken(token string, timeout time.Duration) *http.Client {
	return NewHTTPClientWithTransport(http.DefaultTransport, token, timeout)
}

func NewHTTPClientWithTransport(base http.RoundTripper, token string, timeout time.Duration) *http.Client {
	if base == nil {
		base = http.DefaultTransport
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &accessTokenTransport{
			base:  otelhttp.NewTransport(base),
			token: token,
		},
	}
}
