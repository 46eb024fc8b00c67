package models

import (
	"bytes"
	"encoding/json"
)

// ShopifyProductsResponse is the body of GET products.json. Products is a
// pointer so a missing or null key can be told apart from an empty list.
type ShopifyProductsResponse struct {
	Products *[]ShopifyProduct `json:"products"`
}

type ShopifyProduct struct {
	ID       int64            `json:"id,omitempty"`
	Title    string           `json:"title"`
	BodyHTML string           `json:"body_html"`
	Variants []ShopifyVariant `json:"variants"`
}

type ShopifyVariant struct {
	ID    int64           `json:"id,omitempty"`
	Title string          `json:"title,omitempty"`
	Price json.RawMessage `json:"price"`
}

// PriceText returns the variant price as received: string prices are
// unquoted, numeric prices keep their literal form.
func (v ShopifyVariant) PriceText() (string, bool) {
	raw := bytes.TrimSpace(v.Price)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		return s, true
	}
	return string(raw), true
}

func (p *ShopifyProduct) Standardise() Product {
	product := Product{
		Title:       p.Title,
		Description: p.BodyHTML,
	}
	if len(p.Variants) > 0 {
		product.Price, product.PriceKnown = p.Variants[0].PriceText()
	}
	return product
}

// GraphQLRequest is the body POSTed to the Storefront GraphQL endpoint.
type GraphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type GraphQLError struct {
	Message string `json:"message"`
}

// CartMutationPayload is the common shape of cartCreate and cartLinesAdd.
// UserErrors stays raw so it can be surfaced to the caller verbatim.
type CartMutationPayload struct {
	Cart       *CartReference  `json:"cart"`
	UserErrors json.RawMessage `json:"userErrors"`
}

// HasUserErrors reports whether userErrors is present and non-empty.
func (p *CartMutationPayload) HasUserErrors() bool {
	raw := bytes.TrimSpace(p.UserErrors)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return false
	}
	var errs []json.RawMessage
	if err := json.Unmarshal(raw, &errs); err != nil {
		// Not a list, but something was reported.
		return true
	}
	return len(errs) > 0
}

type CartCreateResponse struct {
	Data *struct {
		CartCreate *CartMutationPayload `json:"cartCreate"`
	} `json:"data"`
	Errors json.RawMessage `json:"errors,omitempty"`
}

type CartLinesAddResponse struct {
	Data *struct {
		CartLinesAdd *CartMutationPayload `json:"cartLinesAdd"`
	} `json:"data"`
	Errors json.RawMessage `json:"errors,omitempty"`
}
