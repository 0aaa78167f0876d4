// internal/cartservice/entity.go
package cartservice

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Status flags emitted on the wire. The storefront client treats anything
// other than "for_sale" as unavailable.
const (
	statusForSale     = "for_sale"
	statusUnavailable = "unavailable"
)

// Product is a sellable listing.
type Product struct {
	ID         string          `gorm:"primaryKey;size:64" json:"id"`
	Title      string          `gorm:"not null;size:255" json:"title"`
	SellerName string          `gorm:"size:255" json:"seller_name"`
	ImageURL   string          `gorm:"size:500" json:"image_url"`
	Price      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	ForSale    bool            `gorm:"default:true" json:"for_sale"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	DeletedAt  gorm.DeletedAt  `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Product) TableName() string {
	return "products"
}

// CartEntry is one cart line for a user. A user's cart never holds two
// entries for the same product; adds merge into the existing line.
type CartEntry struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uint            `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID string          `gorm:"not null;size:64;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Quantity  int             `gorm:"not null;default:1" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"` // snapshot at time of adding
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TableName overrides the table name
func (CartEntry) TableName() string {
	return "cart_entries"
}

// User is the minimal account record behind the auth endpoints.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	PasswordHash string    `gorm:"not null;size:255" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}

// WireItem is the cart line shape the storefront client consumes.
type WireItem struct {
	ProductID  string          `json:"productId"`
	Title      string          `json:"title"`
	SellerName string          `json:"sellerName"`
	ImageURL   string          `json:"imageUrl"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
	Status     string          `json:"status"`
}
