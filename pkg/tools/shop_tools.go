package tools

import "context"

// ShopTools returns the five commerce tools in their advertised order.
func ShopTools(shop *Shop) []Tool {
	return []Tool{
		listProductsTool(shop),
		priceListTool(shop),
		createCartTool(shop),
		addToCartTool(shop),
		rateUsTool(shop),
	}
}

func limitSchema() map[string]any {
	return map[string]any{
		"type":        "integer",
		"description": "Maximum number of products to return.",
		"default":     DefaultLimit,
	}
}

func quantitySchema() map[string]any {
	return map[string]any{
		"type":        "integer",
		"description": "Number of units of the variant.",
		"default":     DefaultQuantity,
	}
}

func variantIDSchema() map[string]any {
	return map[string]any{
		"type":        "string",
		"description": "Shopify ProductVariant GID (e.g. gid://shopify/ProductVariant/12345678901).",
	}
}

func listProductsTool(shop *Shop) Tool {
	return Tool{
		Name:        "list_products",
		Description: "List the first few products from the store.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"limit": limitSchema(),
			},
			"additionalProperties": false,
		},
		Call: func(ctx context.Context, args map[string]any) string {
			limit, err := optionalInt(args, "limit", DefaultLimit)
			if err != nil {
				return invalidArguments(err)
			}
			return shop.ListProducts(ctx, limit).Text()
		},
	}
}

func priceListTool(shop *Shop) Tool {
	return Tool{
		Name:        "price_list",
		Description: "List product titles with their prices.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"limit": limitSchema(),
			},
			"additionalProperties": false,
		},
		Call: func(ctx context.Context, args map[string]any) string {
			limit, err := optionalInt(args, "limit", DefaultLimit)
			if err != nil {
				return invalidArguments(err)
			}
			return shop.PriceList(ctx, limit).Text()
		},
	}
}

func createCartTool(shop *Shop) Tool {
	return Tool{
		Name:        "create_cart",
		Description: "Create a new cart with a product variant.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"variant_id": variantIDSchema(),
				"quantity":   quantitySchema(),
			},
			"required":             []string{"variant_id"},
			"additionalProperties": false,
		},
		Call: func(ctx context.Context, args map[string]any) string {
			variantID, err := requiredString(args, "variant_id")
			if err != nil {
				return invalidArguments(err)
			}
			quantity, err := optionalInt(args, "quantity", DefaultQuantity)
			if err != nil {
				return invalidArguments(err)
			}
			return shop.CreateCart(ctx, variantID, quantity).Text()
		},
	}
}

func addToCartTool(shop *Shop) Tool {
	return Tool{
		Name:        "add_to_cart",
		Description: "Add an item to an existing cart.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"cart_id": map[string]any{
					"type":        "string",
					"description": "Cart ID returned by create_cart.",
				},
				"variant_id": variantIDSchema(),
				"quantity":   quantitySchema(),
			},
			"required":             []string{"cart_id", "variant_id"},
			"additionalProperties": false,
		},
		Call: func(ctx context.Context, args map[string]any) string {
			cartID, err := requiredString(args, "cart_id")
			if err != nil {
				return invalidArguments(err)
			}
			variantID, err := requiredString(args, "variant_id")
			if err != nil {
				return invalidArguments(err)
			}
			quantity, err := optionalInt(args, "quantity", DefaultQuantity)
			if err != nil {
				return invalidArguments(err)
			}
			return shop.AddToCart(ctx, cartID, variantID, quantity).Text()
		},
	}
}

func rateUsTool(shop *Shop) Tool {
	return Tool{
		Name:        "rate_us",
		Description: "Submit a rating (1 to 5 stars) with an optional comment.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"stars": map[string]any{
					"type":        "integer",
					"description": "Rating from 1 to 5.",
				},
				"comment": map[string]any{
					"type":        "string",
					"description": "Optional comment.",
					"default":     "",
				},
			},
			"required":             []string{"stars"},
			"additionalProperties": false,
		},
		Call: func(ctx context.Context, args map[string]any) string {
			stars, err := requiredInt(args, "stars")
			if err != nil {
				return invalidArguments(err)
			}
			comment, err := optionalString(args, "comment", "")
			if err != nil {
				return invalidArguments(err)
			}
			return shop.RateUs(ctx, stars, comment).Text()
		},
	}
}
