// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-cart/internal/cartservice"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db  *gorm.DB
	log *logrus.Logger
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB, log *logrus.Logger) *Migration {
	return &Migration{
		db:  db,
		log: log,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	m.log.Info("🔄 Running database auto-migrations...")

	models := []interface{}{
		&cartservice.User{},
		&cartservice.Product{},
		&cartservice.CartEntry{},
	}

	for _, model := range models {
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	m.log.Info("✅ Database migrations completed")
	return nil
}

// SeedInitialData inserts demo data for development environments. Existing
// rows are left alone so re-running is safe.
func (m *Migration) SeedInitialData() error {
	var productCount int64
	if err := m.db.Model(&cartservice.Product{}).Count(&productCount).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if productCount > 0 {
		return nil
	}

	products := []cartservice.Product{
		{
			ID:         "p-1001",
			Title:      "Wireless Mechanical Keyboard",
			SellerName: "KeebWorks",
			ImageURL:   "https://img.example.com/p-1001.jpg",
			Price:      decimal.NewFromFloat(89.90),
			ForSale:    true,
		},
		{
			ID:         "p-1002",
			Title:      "USB-C Docking Station",
			SellerName: "PortHub",
			ImageURL:   "https://img.example.com/p-1002.jpg",
			Price:      decimal.NewFromFloat(129.00),
			ForSale:    true,
		},
		{
			ID:         "p-1003",
			Title:      "Discontinued Desk Mat",
			SellerName: "DeskCo",
			ImageURL:   "https://img.example.com/p-1003.jpg",
			Price:      decimal.NewFromFloat(19.50),
			ForSale:    false,
		},
	}
	if err := m.db.Create(&products).Error; err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password-1"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}
	demoUser := cartservice.User{
		Email:        "demo@example.com",
		PasswordHash: string(hash),
	}
	if err := m.db.Create(&demoUser).Error; err != nil {
		return fmt.Errorf("failed to seed demo user: %w", err)
	}

	m.log.Info("🌱 Seeded demo products and user")
	return nil
}
