// cmd/storefront/main.go
//
// Smoke tool that drives the cart synchronization core against a running
// cart service: sign in, load the cart, add a product, select everything
// available and print the checkout handoff payload.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/your-org/storefront-cart/internal/auth"
	"github.com/your-org/storefront-cart/internal/cart"
	"github.com/your-org/storefront-cart/internal/config"
	"github.com/your-org/storefront-cart/internal/infrastructure/cartapi"
	"github.com/your-org/storefront-cart/internal/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := logging.New(cfg)

	email := getenv("STOREFRONT_EMAIL", "demo@example.com")
	password := getenv("STOREFRONT_PASSWORD", "demo-password-1")
	productID := getenv("STOREFRONT_PRODUCT_ID", "p-1001")

	session := auth.NewSession()
	store := cart.NewStore()
	client := cartapi.NewClient(cfg, session, logger)
	manager := cart.NewManager(store, client, session, logger)
	selection := cart.NewSelection(manager)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// The auth transition drives the initial load.
	session.OnChange(func(authenticated bool) {
		manager.HandleAuthChange(ctx, authenticated)
	})

	token, err := login(ctx, cfg, email, password)
	if err != nil {
		logger.Fatalf("Sign-in failed: %v", err)
	}
	if err := session.SetToken(token); err != nil {
		logger.Fatalf("Session token rejected: %v", err)
	}

	if err := manager.Add(ctx, productID, 1); err != nil {
		logger.Warnf("Add to cart failed: %v", err)
	}

	state := manager.State()
	logger.Infof("Cart holds %d item(s), total %s", state.TotalItems, manager.TotalPrice())
	if state.Err != "" {
		logger.Warnf("Last cart error: %s", state.Err)
	}

	selection.SetAll(true)
	logger.Infof("Selected %d available item(s), selected total %s",
		selection.SelectedAvailableCount(), selection.SelectedTotal())

	handoff, ok := selection.Checkout()
	if !ok {
		logger.Info("Nothing available to check out")
		return
	}
	fmt.Printf("checkout handoff: %v\n", handoff.ProductIDs)
}

// login exchanges credentials for an access token against the auth
// endpoints of the cart service.
func login(ctx context.Context, cfg *config.Config, email, password string) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		cfg.Upstream.CartServiceURL+"/api/v1/auth/login", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := (&http.Client{Timeout: cfg.Upstream.RequestTimeout}).Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("auth service returned status %d", resp.StatusCode)
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode login response: %w", err)
	}
	return body.Token, nil
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
