// internal/cartservice/service.go
package cartservice

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-cart/internal/config"
	"gorm.io/gorm"
)

// Per-line quantity bounds.
const (
	minQuantity = 1
	maxQuantity = 99
)

// UserError carries a message safe to surface to end users in the
// userTip error payload.
type UserError struct {
	Tip string
}

func (e *UserError) Error() string {
	return e.Tip
}

// Service handles cart business logic for the reference cart service.
type Service struct {
	db          *gorm.DB
	redisClient *redis.Client
	config      *config.Config
	log         *logrus.Logger
}

// NewService creates a new cart service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log *logrus.Logger) *Service {
	return &Service{
		db:          db,
		redisClient: redisClient,
		config:      cfg,
		log:         log,
	}
}

// GetCart returns the user's cart lines in insertion order, joined with
// current product metadata. Responses are cached in Redis until the next
// mutation.
func (s *Service) GetCart(ctx context.Context, userID uint) ([]WireItem, error) {
	if cached, ok := s.readCache(ctx, userID); ok {
		return cached, nil
	}

	var entries []CartEntry
	if err := s.db.Where("user_id = ?", userID).Order("created_at asc").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve cart: %w", err)
	}

	products, err := s.loadProducts(entries)
	if err != nil {
		return nil, err
	}

	items := make([]WireItem, len(entries))
	for i, entry := range entries {
		items[i] = toWireItem(entry, products[entry.ProductID])
	}

	s.writeCache(ctx, userID, items)
	return items, nil
}

// AddItem adds a product to the user's cart, merging quantities into an
// existing line. The stored price is snapshotted from the product at add
// time, so a reload reflects current pricing.
func (s *Service) AddItem(ctx context.Context, userID uint, productID string, quantity int) error {
	if quantity < minQuantity {
		return &UserError{Tip: "Quantity must be at least 1."}
	}
	if quantity > maxQuantity {
		return &UserError{Tip: fmt.Sprintf("You can order at most %d of one item.", maxQuantity)}
	}

	var product Product
	result := s.db.Where("id = ? AND for_sale = ?", productID, true).First(&product)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return &UserError{Tip: "This item is no longer available for purchase."}
		}
		return fmt.Errorf("failed to look up product: %w", result.Error)
	}

	var existing CartEntry
	result = s.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&existing)
	if result.Error == gorm.ErrRecordNotFound {
		entry := CartEntry{
			UserID:    userID,
			ProductID: productID,
			Quantity:  quantity,
			Price:     product.Price,
		}
		if err := s.db.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to create cart entry: %w", err)
		}
	} else if result.Error != nil {
		return fmt.Errorf("failed to look up cart entry: %w", result.Error)
	} else {
		merged := existing.Quantity + quantity
		if merged > maxQuantity {
			return &UserError{Tip: fmt.Sprintf("You can order at most %d of one item.", maxQuantity)}
		}
		existing.Quantity = merged
		existing.Price = product.Price // refresh the snapshot in case pricing moved
		if err := s.db.Save(&existing).Error; err != nil {
			return fmt.Errorf("failed to update cart entry: %w", err)
		}
	}

	s.invalidateCache(ctx, userID)
	return nil
}

// RemoveItem deletes the user's cart line for the product. Removing an
// absent line succeeds, matching the client's optimistic removal.
func (s *Service) RemoveItem(ctx context.Context, userID uint, productID string) error {
	if err := s.db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&CartEntry{}).Error; err != nil {
		return fmt.Errorf("failed to remove cart entry: %w", err)
	}
	s.invalidateCache(ctx, userID)
	return nil
}

// ClearItems deletes the given cart lines in one batch. An empty ID list
// clears the whole cart.
func (s *Service) ClearItems(ctx context.Context, userID uint, productIDs []string) error {
	query := s.db.Where("user_id = ?", userID)
	if len(productIDs) > 0 {
		query = query.Where("product_id IN ?", productIDs)
	}
	if err := query.Delete(&CartEntry{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	s.invalidateCache(ctx, userID)
	return nil
}

// loadProducts fetches product records for the given entries in one query.
func (s *Service) loadProducts(entries []CartEntry) (map[string]*Product, error) {
	if len(entries) == 0 {
		return map[string]*Product{}, nil
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.ProductID)
	}

	var products []Product
	if err := s.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	byID := make(map[string]*Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	return byID, nil
}

// toWireItem maps a cart entry and its product onto the wire shape. A
// missing or delisted product keeps its line in the cart but goes out as
// unavailable.
func toWireItem(entry CartEntry, product *Product) WireItem {
	item := WireItem{
		ProductID: entry.ProductID,
		Quantity:  entry.Quantity,
		Price:     entry.Price,
		Status:    statusUnavailable,
	}
	if product == nil {
		return item
	}

	item.Title = product.Title
	item.SellerName = product.SellerName
	item.ImageURL = product.ImageURL
	if product.ForSale {
		item.Status = statusForSale
	}
	return item
}

// Cache helpers. The cached value is the JSON wire payload keyed per user,
// dropped on every mutation.

func (s *Service) cacheKey(userID uint) string {
	return fmt.Sprintf("cart:user:%d", userID)
}

func (s *Service) readCache(ctx context.Context, userID uint) ([]WireItem, bool) {
	data, err := s.redisClient.Get(ctx, s.cacheKey(userID)).Result()
	if err == redis.Nil {
		return nil, false
	} else if err != nil {
		s.log.WithError(err).Warn("cart cache read failed")
		return nil, false
	}

	var items []WireItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		s.log.WithError(err).Warn("cart cache entry corrupt, dropping")
		s.invalidateCache(ctx, userID)
		return nil, false
	}
	return items, true
}

func (s *Service) writeCache(ctx context.Context, userID uint, items []WireItem) {
	data, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := s.redisClient.Set(ctx, s.cacheKey(userID), data, s.config.Redis.CartCacheTTL).Err(); err != nil {
		s.log.WithError(err).Warn("cart cache write failed")
	}
}

func (s *Service) invalidateCache(ctx context.Context, userID uint) {
	if err := s.redisClient.Del(ctx, s.cacheKey(userID)).Err(); err != nil {
		s.log.WithError(err).Warn("cart cache invalidation failed")
	}
}
