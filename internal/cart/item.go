// internal/cart/item.go
package cart

import "github.com/shopspring/decimal"

// ItemStatus enumerates the availability states an item can be in.
type ItemStatus string

const (
	// StatusForSale marks an item that can be selected and purchased.
	StatusForSale ItemStatus = "for_sale"
	// StatusUnavailable marks an item that stays in the cart but cannot be
	// selected or have its quantity changed.
	StatusUnavailable ItemStatus = "unavailable"
)

// Per-line quantity bounds enforced by the cart service.
const (
	MinQuantity = 1
	MaxQuantity = 99
)

// Item represents one line in the cart. ProductID is the cart's primary
// key: a cart never contains two entries with the same ProductID once it
// has been reloaded from the service.
type Item struct {
	ProductID  string          `json:"product_id"`
	Title      string          `json:"title"`
	SellerName string          `json:"seller_name"`
	ImageURL   string          `json:"image_url"`
	Price      decimal.Decimal `json:"price"` // snapshot at time of the last load
	Quantity   int             `json:"quantity"`
	Status     ItemStatus      `json:"status"`
}

// Available reports whether the item can be selected for checkout.
func (i Item) Available() bool {
	return i.Status == StatusForSale
}

// Subtotal returns price multiplied by quantity. No currency rounding is
// applied at this layer; rounding is a display concern.
func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// State is the aggregate cart view held by the Store. TotalItems always
// equals len(Items) after any transition.
type State struct {
	Items      []Item `json:"items"`
	Loading    bool   `json:"loading"`
	Err        string `json:"error,omitempty"`
	TotalItems int    `json:"total_items"`
}

// CheckoutHandoff is the payload handed to the external checkout flow.
// It is passed by reference at navigation time, never persisted.
type CheckoutHandoff struct {
	ProductIDs []string `json:"productIds"`
}
