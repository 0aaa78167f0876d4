// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-cart/internal/cartservice"
	"github.com/your-org/storefront-cart/internal/config"
	"gorm.io/gorm"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	accounts *cartservice.AccountService
	log      *logrus.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(db *gorm.DB, cfg *config.Config, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		accounts: cartservice.NewAccountService(db, cfg, log),
		log:      log,
	}
}

// CredentialsRequest is the login/registration payload.
type CredentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"userTip": "Invalid request data."},
		})
		return
	}

	token, err := h.accounts.Register(req.Email, req.Password)
	if err != nil {
		h.respondError(c, err, http.StatusConflict)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"userTip": "Invalid request data."},
		})
		return
	}

	token, err := h.accounts.Login(req.Email, req.Password)
	if err != nil {
		h.respondError(c, err, http.StatusUnauthorized)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
	})
}

func (h *AuthHandler) respondError(c *gin.Context, err error, rejectStatus int) {
	var userErr *cartservice.UserError
	if errors.As(err, &userErr) {
		c.JSON(rejectStatus, gin.H{
			"error": gin.H{"userTip": userErr.Tip},
		})
		return
	}

	h.log.WithError(err).Error("auth operation failed")
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": gin.H{"userTip": "Something went wrong. Please try again."},
	})
}
