package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worldofchami/shopify-mcp/pkg/models"
)

type recordingObserver struct {
	mu       sync.Mutex
	outcomes []string
}

func (o *recordingObserver) ObserveUpstream(api, outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, api+":"+outcome)
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cred, err := NewCredential("test-shop", "shpat_secret", srv.URL)
	require.NoError(t, err)
	return NewClient(cred, time.Second, opts...)
}

func TestFetchREST_SendsHeadersAndJoinsURL(t *testing.T) {
	var gotPath, gotQuery, gotToken, gotAccept, gotMethod string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotToken = r.Header.Get("X-Shopify-Access-Token")
		gotAccept = r.Header.Get("Accept")
		_, _ = w.Write([]byte(`{"products":[]}`))
	})

	res := client.FetchREST(context.Background(), "/products.json?limit=3")
	require.True(t, res.OK())
	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Equal(t, "/products.json", gotPath)
	assert.Equal(t, "limit=3", gotQuery)
	assert.Equal(t, "shpat_secret", gotToken)
	assert.Equal(t, "application/json", gotAccept)
	assert.JSONEq(t, `{"products":[]}`, string(res.Body))
}

func TestFetchREST_FailuresAreAbsent(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		kind    FailureKind
		outcome string
	}{
		{name: "non 2xx", status: http.StatusNotFound, body: `{"errors":"Not Found"}`, kind: FailureStatus, outcome: "rest:status"},
		{name: "invalid json", status: http.StatusOK, body: `<html>`, kind: FailureDecode, outcome: "rest:decode"},
		{name: "json array", status: http.StatusOK, body: `[1,2]`, kind: FailureDecode, outcome: "rest:decode"},
		{name: "empty body", status: http.StatusOK, body: ``, kind: FailureDecode, outcome: "rest:decode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := &recordingObserver{}
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}, WithObserver(obs))

			res := client.FetchREST(context.Background(), "products.json?limit=1")
			require.True(t, res.Absent())
			assert.Equal(t, tt.kind, res.Failure.Kind)
			assert.Equal(t, []string{tt.outcome}, obs.outcomes)
		})
	}
}

func TestFetchREST_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	cred, err := NewCredential("", "token", url)
	require.NoError(t, err)
	client := NewClient(cred, time.Second)

	res := client.FetchREST(context.Background(), "products.json")
	require.True(t, res.Absent())
	assert.Equal(t, FailureTransport, res.Failure.Kind)
}

func TestFetchREST_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	cred, err := NewCredential("", "token", srv.URL)
	require.NoError(t, err)
	client := NewClient(cred, 50*time.Millisecond)

	res := client.FetchREST(context.Background(), "products.json")
	require.True(t, res.Absent())
	assert.Equal(t, FailureTransport, res.Failure.Kind)
}

func TestRunGraphQL_PostsQueryAndVariables(t *testing.T) {
	var gotPath string
	var gotBody models.GraphQLRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		gotPath = r.URL.Path
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		_, _ = w.Write([]byte(`{"data":{"shop":{"name":"x"}}}`))
	})

	res := client.RunGraphQL(context.Background(), "{ shop { name } }", map[string]any{"a": "b"})
	require.True(t, res.OK())
	assert.Equal(t, "/api/2025-04/graphql.json", gotPath)
	assert.Equal(t, "{ shop { name } }", gotBody.Query)
	assert.Equal(t, map[string]any{"a": "b"}, gotBody.Variables)
	assert.Contains(t, res.Payload(), "data")
}

func TestRunGraphQL_FailureSynthesizesErrorPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, WithAPIVersion("2024-10"))

	res := client.RunGraphQL(context.Background(), "{ shop { name } }", nil)
	require.False(t, res.OK())

	payload := res.Payload()
	require.Len(t, payload, 1)
	msg, ok := payload["error"].(string)
	require.True(t, ok)
	assert.Contains(t, msg, "401")
	assert.Contains(t, msg, "/api/2024-10/graphql.json")

	var failure *Failure
	require.True(t, errors.As(res.Decode(&struct{}{}), &failure))
	assert.Equal(t, http.StatusUnauthorized, failure.StatusCode)
}

func TestProducts(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		ok    bool
		count int
	}{
		{name: "products", body: `{"products":[{"title":"A"},{"title":"B"}]}`, ok: true, count: 2},
		{name: "empty list", body: `{"products":[]}`, ok: true, count: 0},
		{name: "missing key", body: `{"items":[]}`, ok: false},
		{name: "null key", body: `{"products":null}`, ok: false},
		{name: "wrong shape", body: `{"products":"nope"}`, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})
			products, ok := client.Products(context.Background(), 5)
			assert.Equal(t, tt.ok, ok)
			assert.Len(t, products, tt.count)
		})
	}
}

func TestCartCreate(t *testing.T) {
	var gotVars map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req models.GraphQLRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotVars = req.Variables
		_, _ = w.Write([]byte(`{"data":{"cartCreate":{"cart":{"id":"gid://shopify/Cart/1","checkoutUrl":"https://shop.example/cart/c/1?key=abc"},"userErrors":[]}}}`))
	})

	out := client.CartCreate(context.Background(), []models.CartLine{{MerchandiseID: "gid://shopify/ProductVariant/9", Quantity: 2}})
	require.NoError(t, out.Err)
	require.NotNil(t, out.Payload)
	require.NotNil(t, out.Payload.Cart)
	assert.False(t, out.Payload.HasUserErrors())
	assert.Equal(t, "gid://shopify/Cart/1", out.Payload.Cart.ID)
	assert.Equal(t, "https://shop.example/cart/c/1?key=abc", out.Payload.Cart.CheckoutURL)
	assert.Equal(t, []any{map[string]any{"merchandiseId": "gid://shopify/ProductVariant/9", "quantity": float64(2)}}, gotVars["lines"])
}

func TestCartLinesAdd_UserErrorsAndTransportFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"cartLinesAdd":{"cart":null,"userErrors":[{"field":["cartId"],"message":"The specified cart does not exist."}]}}}`))
	})
	out := client.CartLinesAdd(context.Background(), "gid://shopify/Cart/missing", []models.CartLine{{MerchandiseID: "v", Quantity: 1}})
	require.NoError(t, out.Err)
	require.NotNil(t, out.Payload)
	assert.True(t, out.Payload.HasUserErrors())
	assert.Contains(t, string(out.Payload.UserErrors), "The specified cart does not exist.")

	failing := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	out = failing.CartLinesAdd(context.Background(), "c", nil)
	require.Error(t, out.Err)
	assert.Nil(t, out.Payload)
}
