// internal/infrastructure/cartapi/client.go
package cartapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-cart/internal/cart"
	"github.com/your-org/storefront-cart/internal/config"
)

// TokenSource supplies the bearer token attached to outgoing requests.
// An empty token means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// Client issues operations against the remote cart service and returns
// normalized item lists or typed failures. It implements cart.Service.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     *logrus.Logger
}

// NewClient creates a cart service client from application config.
func NewClient(cfg *config.Config, tokens TokenSource, log *logrus.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.Upstream.CartServiceURL, "/"),
		http:    &http.Client{Timeout: cfg.Upstream.RequestTimeout},
		tokens:  tokens,
		log:     log,
	}
}

// Wire shapes of the cart service contract.

type wireItem struct {
	ProductID  string          `json:"productId"`
	Title      string          `json:"title"`
	SellerName string          `json:"sellerName"`
	ImageURL   string          `json:"imageUrl"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
	Status     string          `json:"status"`
}

type cartEnvelope struct {
	Items []wireItem `json:"items"`
}

type addRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type clearRequest struct {
	ProductIDs []string `json:"productIds"`
}

type errorEnvelope struct {
	Error struct {
		UserTip string `json:"userTip"`
	} `json:"error"`
}

// FetchCart retrieves the authoritative item list.
func (c *Client) FetchCart(ctx context.Context) ([]cart.Item, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/v1/cart", nil)
	if err != nil {
		return nil, err
	}

	var envelope cartEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &DecodeError{Op: "fetch cart", Err: err}
	}

	items := make([]cart.Item, len(envelope.Items))
	for i, w := range envelope.Items {
		items[i] = cart.Item{
			ProductID:  w.ProductID,
			Title:      w.Title,
			SellerName: w.SellerName,
			ImageURL:   w.ImageURL,
			Price:      w.Price,
			Quantity:   w.Quantity,
			Status:     statusFromWire(w.Status),
		}
	}
	return items, nil
}

// AddItem adds a product to the remote cart.
func (c *Client) AddItem(ctx context.Context, productID string, quantity int) error {
	_, err := c.do(ctx, http.MethodPost, "/api/v1/cart/add", addRequest{
		ProductID: productID,
		Quantity:  quantity,
	})
	return err
}

// RemoveItem removes a product from the remote cart.
func (c *Client) RemoveItem(ctx context.Context, productID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/v1/cart/item/"+productID, nil)
	return err
}

// ClearItems removes the given products in one batched call.
func (c *Client) ClearItems(ctx context.Context, productIDs []string) error {
	_, err := c.do(ctx, http.MethodPost, "/api/v1/cart/clear", clearRequest{
		ProductIDs: productIDs,
	})
	return err
}

// do executes one request against the cart service. Transport errors and
// non-2xx responses come back as *RemoteError; a successful body is
// returned raw for the caller to decode.
func (c *Client) do(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.log.WithFields(logrus.Fields{
		"method": method,
		"path":   path,
	}).Debug("cart service request")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &RemoteError{Reason: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RemoteError{StatusCode: resp.StatusCode, Reason: err.Error()}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		remote := &RemoteError{
			StatusCode: resp.StatusCode,
			Reason:     http.StatusText(resp.StatusCode),
		}
		var envelope errorEnvelope
		if json.Unmarshal(body, &envelope) == nil {
			remote.UserTip = envelope.Error.UserTip
		}
		return nil, remote
	}

	return body, nil
}

// statusFromWire maps the service's status flag onto the closed enum.
// Anything the client does not recognize is treated as unavailable rather
// than purchasable.
func statusFromWire(status string) cart.ItemStatus {
	if status == string(cart.StatusForSale) {
		return cart.StatusForSale
	}
	return cart.StatusUnavailable
}
