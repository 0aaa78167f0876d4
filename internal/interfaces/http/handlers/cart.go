// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-cart/internal/cartservice"
	"github.com/your-org/storefront-cart/internal/config"
	"github.com/your-org/storefront-cart/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// CartHandler handles the cart endpoints consumed by the storefront client.
type CartHandler struct {
	cartService *cartservice.Service
	log         *logrus.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log *logrus.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartservice.NewService(db, redisClient, cfg, log),
		log:         log,
	}
}

// AddItemRequest is the add-to-cart payload.
type AddItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// ClearRequest is the batched clear payload.
type ClearRequest struct {
	ProductIDs []string `json:"productIds"`
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	items, err := h.cartService.GetCart(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
	})
}

// AddItem handles POST /cart/add
func (h *CartHandler) AddItem(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"userTip": "Invalid request data."},
		})
		return
	}

	if err := h.cartService.AddItem(c.Request.Context(), userID, req.ProductID, req.Quantity); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart",
	})
}

// RemoveItem handles DELETE /cart/item/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	productID := c.Param("id")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"userTip": "Invalid product ID."},
		})
		return
	}

	if err := h.cartService.RemoveItem(c.Request.Context(), userID, productID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart",
	})
}

// Clear handles POST /cart/clear
func (h *CartHandler) Clear(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req ClearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"userTip": "Invalid request data."},
		})
		return
	}

	if err := h.cartService.ClearItems(c.Request.Context(), userID, req.ProductIDs); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared",
	})
}

// respondError maps service failures onto the wire error shape. User-safe
// rejections carry their own tip; everything else gets a generic one.
func (h *CartHandler) respondError(c *gin.Context, err error) {
	var userErr *cartservice.UserError
	if errors.As(err, &userErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"userTip": userErr.Tip},
		})
		return
	}

	h.log.WithError(err).Error("cart operation failed")
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": gin.H{"userTip": "Something went wrong. Please try again."},
	})
}
