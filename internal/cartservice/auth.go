// internal/cartservice/auth.go
package cartservice

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-cart/internal/config"
	"github.com/your-org/storefront-cart/internal/pkg/auth"
	"gorm.io/gorm"
)

// AccountService handles registration and login for the reference auth
// endpoints.
type AccountService struct {
	db        *gorm.DB
	jwt       *auth.JWTManager
	passwords *auth.PasswordManager
	log       *logrus.Logger
}

// NewAccountService creates a new account service
func NewAccountService(db *gorm.DB, cfg *config.Config, log *logrus.Logger) *AccountService {
	return &AccountService{
		db:        db,
		jwt:       auth.NewJWTManager(cfg),
		passwords: auth.NewPasswordManager(cfg),
		log:       log,
	}
}

// Register creates an account and returns an access token.
func (s *AccountService) Register(email, password string) (string, error) {
	var existing User
	result := s.db.Where("email = ?", email).First(&existing)
	if result.Error == nil {
		return "", &UserError{Tip: "An account with this email already exists."}
	}
	if result.Error != gorm.ErrRecordNotFound {
		return "", fmt.Errorf("failed to look up account: %w", result.Error)
	}

	hash, err := s.passwords.HashPassword(password)
	if err != nil {
		return "", &UserError{Tip: "Password does not meet the requirements."}
	}

	user := User{Email: email, PasswordHash: hash}
	if err := s.db.Create(&user).Error; err != nil {
		return "", fmt.Errorf("failed to create account: %w", err)
	}

	return s.jwt.GenerateAccessToken(user.ID, user.Email)
}

// Login verifies credentials and returns an access token.
func (s *AccountService) Login(email, password string) (string, error) {
	var user User
	result := s.db.Where("email = ?", email).First(&user)
	if result.Error == gorm.ErrRecordNotFound {
		return "", &UserError{Tip: "Invalid email or password."}
	}
	if result.Error != nil {
		return "", fmt.Errorf("failed to look up account: %w", result.Error)
	}

	if err := s.passwords.VerifyPassword(password, user.PasswordHash); err != nil {
		return "", &UserError{Tip: "Invalid email or password."}
	}

	return s.jwt.GenerateAccessToken(user.ID, user.Email)
}
