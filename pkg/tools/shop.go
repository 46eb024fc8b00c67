package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/worldofchami/shopify-mcp/pkg/models"
	"github.com/worldofchami/shopify-mcp/pkg/platforms/shopify"
	"github.com/worldofchami/shopify-mcp/pkg/ratings"
)

const (
	DefaultLimit    = 5
	DefaultQuantity = 1

	descriptionPreviewRunes = 100
	priceCurrency           = "GBP"
	unknownPrice            = "Unknown"
	notFoundMessage         = "No products found or failed to fetch."
)

// Storefront is the upstream surface the shop tools need. *shopify.Client
// implements it.
type Storefront interface {
	Products(ctx context.Context, limit int) ([]models.ShopifyProduct, bool)
	CartCreate(ctx context.Context, lines []models.CartLine) shopify.CartMutation
	CartLinesAdd(ctx context.Context, cartID string, lines []models.CartLine) shopify.CartMutation
}

type RatingObserver interface {
	ObserveRating(stars int)
}

// Shop implements the commerce operations. It keeps no state of its own
// beyond the ratings store.
type Shop struct {
	storefront Storefront
	ratings    ratings.Store
	logger     *zap.Logger
	observer   RatingObserver
}

func NewShop(storefront Storefront, store ratings.Store, logger *zap.Logger, observer RatingObserver) *Shop {
	if logger == nil {
		logger = zap.NewNop()
	}
	if store == nil {
		store = ratings.NewMemoryStore()
	}
	return &Shop{
		storefront: storefront,
		ratings:    store,
		logger:     logger.Named("shop"),
		observer:   observer,
	}
}

// ProductListing is the result of ListProducts.
type ProductListing struct {
	Found    bool
	Products []models.Product
}

func (l ProductListing) Text() string {
	if !l.Found {
		return notFoundMessage
	}
	lines := make([]string, 0, len(l.Products))
	for _, p := range l.Products {
		lines = append(lines, fmt.Sprintf("%s: %s", p.Title, truncateRunes(p.Description, descriptionPreviewRunes)))
	}
	return strings.Join(lines, "\n---\n")
}

func (s *Shop) ListProducts(ctx context.Context, limit int) ProductListing {
	products, ok := s.storefront.Products(ctx, limit)
	if !ok {
		return ProductListing{}
	}
	return ProductListing{Found: true, Products: standardise(products)}
}

// PriceListing is the result of PriceList.
type PriceListing struct {
	Found    bool
	Products []models.Product
}

func (l PriceListing) Text() string {
	if !l.Found {
		return notFoundMessage
	}
	lines := make([]string, 0, len(l.Products))
	for _, p := range l.Products {
		price := p.Price
		if !p.PriceKnown {
			price = unknownPrice
		}
		lines = append(lines, fmt.Sprintf("%s - %s%s", p.Title, priceCurrency, price))
	}
	return strings.Join(lines, "\n")
}

func (s *Shop) PriceList(ctx context.Context, limit int) PriceListing {
	products, ok := s.storefront.Products(ctx, limit)
	if !ok {
		return PriceListing{}
	}
	return PriceListing{Found: true, Products: standardise(products)}
}

type cartOperation int

const (
	cartCreate cartOperation = iota
	cartLinesAdd
)

// CartOutcome is the result of CreateCart and AddToCart. Exactly one of
// UserErrors, Failure or Cart is meaningful, checked in that order.
type CartOutcome struct {
	op         cartOperation
	Cart       *models.CartReference
	UserErrors json.RawMessage
	Failure    string
}

func (o CartOutcome) Text() string {
	prefix := "Cart creation failed: "
	if o.op == cartLinesAdd {
		prefix = "Failed to add item: "
	}
	switch {
	case len(o.UserErrors) > 0:
		return prefix + string(o.UserErrors)
	case o.Failure != "" || o.Cart == nil:
		return prefix + o.Failure
	case o.op == cartLinesAdd:
		return "Added to cart. Checkout here: " + o.Cart.CheckoutURL
	default:
		return fmt.Sprintf("Cart created!\nCart ID: %s\nCheckout here: %s", o.Cart.ID, o.Cart.CheckoutURL)
	}
}

func (s *Shop) CreateCart(ctx context.Context, variantID string, quantity int) CartOutcome {
	out := s.storefront.CartCreate(ctx, []models.CartLine{{MerchandiseID: variantID, Quantity: quantity}})
	return s.cartOutcome(cartCreate, out)
}

func (s *Shop) AddToCart(ctx context.Context, cartID, variantID string, quantity int) CartOutcome {
	out := s.storefront.CartLinesAdd(ctx, cartID, []models.CartLine{{MerchandiseID: variantID, Quantity: quantity}})
	return s.cartOutcome(cartLinesAdd, out)
}

func (s *Shop) cartOutcome(op cartOperation, out shopify.CartMutation) CartOutcome {
	result := CartOutcome{op: op}
	if out.Err != nil {
		result.Failure = out.Err.Error()
		return result
	}
	if out.Payload != nil && out.Payload.HasUserErrors() {
		result.UserErrors = out.Payload.UserErrors
		return result
	}
	if out.Payload == nil || out.Payload.Cart == nil {
		if len(out.Errors) > 0 {
			result.Failure = string(out.Errors)
		} else {
			result.Failure = "no cart returned"
		}
		s.logger.Warn("cart mutation returned no cart", zap.String("failure", result.Failure))
		return result
	}
	result.Cart = out.Payload.Cart
	return result
}

// RatingOutcome is the result of RateUs.
type RatingOutcome struct {
	Accepted bool
	Entry    ratings.Entry
	Err      error
}

func (o RatingOutcome) Text() string {
	switch {
	case o.Accepted:
		return fmt.Sprintf("Thanks for rating us %d star(s)!", o.Entry.Stars)
	case o.Err != nil && !errors.Is(o.Err, ratings.ErrStarsOutOfRange):
		return "Sorry, your rating could not be recorded. Please try again."
	default:
		return fmt.Sprintf("Please provide a rating between %d and %d stars.", ratings.MinStars, ratings.MaxStars)
	}
}

func (s *Shop) RateUs(ctx context.Context, stars int, comment string) RatingOutcome {
	if err := ratings.ValidateStars(stars); err != nil {
		return RatingOutcome{Err: err}
	}
	entry, err := s.ratings.Append(ctx, stars, comment)
	if err != nil {
		s.logger.Error("failed to store rating", zap.Error(err))
		return RatingOutcome{Err: err}
	}
	if s.observer != nil {
		s.observer.ObserveRating(stars)
	}
	return RatingOutcome{Accepted: true, Entry: entry}
}

func standardise(products []models.ShopifyProduct) []models.Product {
	out := make([]models.Product, 0, len(products))
	for i := range products {
		var p models.PlatformProduct = &products[i]
		out = append(out, p.Standardise())
	}
	return out
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
