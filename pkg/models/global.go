package models

// Product is the platform-neutral view of a catalogue item that the listing
// tools render.
type Product struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	// Price is the first variant's price exactly as the platform sent it.
	// PriceKnown is false when the product has no variant or no price.
	Price      string `json:"price,omitempty"`
	PriceKnown bool   `json:"price_known"`
}

type PlatformProduct interface {
	Standardise() Product
}

// CartLine is a single merchandise line sent with a cart mutation.
type CartLine struct {
	MerchandiseID string `json:"merchandiseId"`
	Quantity      int    `json:"quantity"`
}

// CartReference identifies a server-side cart. It is echoed back to the
// caller and never stored here.
type CartReference struct {
	ID          string `json:"id"`
	CheckoutURL string `json:"checkoutUrl"`
}
