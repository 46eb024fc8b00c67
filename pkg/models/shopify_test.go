package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShopifyVariantPriceText(t *testing.T) {
	tests := []struct {
		raw   string
		want  string
		known bool
	}{
		{raw: `"19.99"`, want: "19.99", known: true},
		{raw: `20.00`, want: "20.00", known: true},
		{raw: `null`, known: false},
		{raw: ``, known: false},
	}
	for _, tt := range tests {
		got, known := ShopifyVariant{Price: json.RawMessage(tt.raw)}.PriceText()
		assert.Equal(t, tt.known, known, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}

func TestShopifyProductStandardise(t *testing.T) {
	var product ShopifyProduct
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Mug","body_html":"<p>Tea</p>","variants":[{"price":"8.50"},{"price":"9.00"}]}`), &product))

	got := product.Standardise()
	assert.Equal(t, Product{Title: "Mug", Description: "<p>Tea</p>", Price: "8.50", PriceKnown: true}, got)

	bare := ShopifyProduct{Title: "Bare"}
	assert.False(t, bare.Standardise().PriceKnown)
}

func TestCartMutationPayloadHasUserErrors(t *testing.T) {
	assert.False(t, (&CartMutationPayload{}).HasUserErrors())
	assert.False(t, (&CartMutationPayload{UserErrors: json.RawMessage(`[]`)}).HasUserErrors())
	assert.False(t, (&CartMutationPayload{UserErrors: json.RawMessage(`null`)}).HasUserErrors())
	assert.True(t, (&CartMutationPayload{UserErrors: json.RawMessage(`[{"field":["lines"],"message":"bad"}]`)}).HasUserErrors())
}
