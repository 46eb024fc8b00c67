// Package shopify issues the authenticated REST and Storefront GraphQL calls
// the commerce tools are built on.
package shopify

import (
	"fmt"
	"net/url"
	"strings"
)

// Credential identifies the store and carries its access token. It is built
// once at startup and has no setters.
type Credential struct {
	store       string
	accessToken string
	baseURL     string
}

// NewCredential validates the store settings. The base URL must be an
// absolute http or https URL; a missing scheme is read as https.
func NewCredential(store, accessToken, baseURL string) (Credential, error) {
	if strings.TrimSpace(accessToken) == "" {
		return Credential{}, fmt.Errorf("access token is empty")
	}
	normalized, err := normalizeBaseURL(baseURL)
	if err != nil {
		return Credential{}, err
	}
	return Credential{
		store:       strings.TrimSpace(store),
		accessToken: accessToken,
		baseURL:     normalized,
	}, nil
}

func (c Credential) Store() string       { return c.store }
func (c Credential) AccessToken() string { return c.accessToken }
func (c Credential) BaseURL() string     { return c.baseURL }

// String never includes the token.
func (c Credential) String() string {
	return fmt.Sprintf("store=%q base=%q token=[redacted]", c.store, c.baseURL)
}

func normalizeBaseURL(baseURL string) (string, error) {
	in := strings.TrimSpace(baseURL)
	if in == "" {
		return "", fmt.Errorf("base URL is empty")
	}
	if !strings.Contains(in, "://") {
		in = "https://" + in
	}

	u, err := url.Parse(in)
	if err != nil {
		return "", err
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return "", fmt.Errorf("unsupported URL scheme %q (must be http or https)", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid base URL (missing host): %q", baseURL)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return strings.TrimRight(u.String(), "/"), nil
}
