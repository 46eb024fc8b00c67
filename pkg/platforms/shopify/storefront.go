package shopify

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/worldofchami/shopify-mcp/pkg/models"
)

const cartCreateMutation = `
mutation createCart($lines: [CartLineInput!]!) {
  cartCreate(input: { lines: $lines }) {
    cart {
      id
      checkoutUrl
    }
    userErrors {
      field
      message
    }
  }
}`

const cartLinesAddMutation = `
mutation addCartLines($cartId: ID!, $lines: [CartLineInput!]!) {
  cartLinesAdd(cartId: $cartId, lines: $lines) {
    cart {
      id
      checkoutUrl
    }
    userErrors {
      field
      message
    }
  }
}`

// Products fetches up to limit products from the REST catalogue. ok is false
// when the call failed or the body carries no products key.
func (c *Client) Products(ctx context.Context, limit int) ([]models.ShopifyProduct, bool) {
	res := c.FetchREST(ctx, fmt.Sprintf("products.json?limit=%d", limit))
	if res.Absent() {
		return nil, false
	}

	var body models.ShopifyProductsResponse
	if err := res.Decode(&body); err != nil {
		c.logger.Debug("unexpected products shape", zap.Error(err))
		return nil, false
	}
	if body.Products == nil {
		return nil, false
	}
	return *body.Products, true
}

// CartMutation is the outcome of a cart mutation. Err is set when the call
// itself failed; otherwise Payload is the mutation field (nil if the server
// returned none) and Errors holds any top-level GraphQL errors.
type CartMutation struct {
	Payload *models.CartMutationPayload
	Errors  json.RawMessage
	Err     error
}

func (c *Client) CartCreate(ctx context.Context, lines []models.CartLine) CartMutation {
	res := c.RunGraphQL(ctx, cartCreateMutation, map[string]any{
		"lines": lines,
	})
	if !res.OK() {
		return CartMutation{Err: res.Failure}
	}

	var body models.CartCreateResponse
	if err := res.Decode(&body); err != nil {
		return CartMutation{Err: fmt.Errorf("failed to decode cartCreate response: %w", err)}
	}
	out := CartMutation{Errors: body.Errors}
	if body.Data != nil {
		out.Payload = body.Data.CartCreate
	}
	return out
}

func (c *Client) CartLinesAdd(ctx context.Context, cartID string, lines []models.CartLine) CartMutation {
	res := c.RunGraphQL(ctx, cartLinesAddMutation, map[string]any{
		"cartId": cartID,
		"lines":  lines,
	})
	if !res.OK() {
		return CartMutation{Err: res.Failure}
	}

	var body models.CartLinesAddResponse
	if err := res.Decode(&body); err != nil {
		return CartMutation{Err: fmt.Errorf("failed to decode cartLinesAdd response: %w", err)}
	}
	out := CartMutation{Errors: body.Errors}
	if body.Data != nil {
		out.Payload = body.Data.CartLinesAdd
	}
	return out
}
