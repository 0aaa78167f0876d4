// internal/infrastructure/cartapi/client_test.go
package cartapi_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-cart/internal/cart"
	"github.com/your-org/storefront-cart/internal/config"
	"github.com/your-org/storefront-cart/internal/infrastructure/cartapi"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newClient(t *testing.T, baseURL string, token string) *cartapi.Client {
	t.Helper()
	cfg := &config.Config{}
	cfg.Upstream.CartServiceURL = baseURL
	cfg.Upstream.RequestTimeout = 5 * time.Second
	log := logrus.New()
	log.SetOutput(io.Discard)
	return cartapi.NewClient(cfg, staticToken(token), log)
}

func TestFetchCartMapsWireItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/cart", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"items":[
			{"productId":"p1","title":"Keyboard","sellerName":"Acme","imageUrl":"https://img/p1","price":"89.90","quantity":2,"status":"for_sale"},
			{"productId":"p2","title":"Desk Mat","price":"19.50","quantity":1,"status":"unavailable"},
			{"productId":"p3","title":"Mystery","price":"1.00","quantity":1,"status":"coming_soon"}
		]}`)
	}))
	defer server.Close()

	client := newClient(t, server.URL, "tok-123")
	items, err := client.FetchCart(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "p1", items[0].ProductID)
	assert.Equal(t, "Keyboard", items[0].Title)
	assert.Equal(t, "Acme", items[0].SellerName)
	assert.True(t, items[0].Price.Equal(decimal.RequireFromString("89.90")))
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, cart.StatusForSale, items[0].Status)

	assert.Equal(t, cart.StatusUnavailable, items[1].Status)
	assert.Equal(t, cart.StatusUnavailable, items[2].Status, "unknown status flags map to unavailable")
}

func TestFetchCartMalformedBodyIsDecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"items": [`)
	}))
	defer server.Close()

	client := newClient(t, server.URL, "tok")
	_, err := client.FetchCart(context.Background())
	require.Error(t, err)

	var decodeErr *cartapi.DecodeError
	require.True(t, errors.As(err, &decodeErr))

	var remote *cartapi.RemoteError
	assert.False(t, errors.As(err, &remote), "a decode failure is not an expected rejection")
}

func TestErrorResponseCarriesUserTip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error":{"userTip":"You can order at most 99 of one item."}}`)
	}))
	defer server.Close()

	client := newClient(t, server.URL, "tok")
	err := client.AddItem(context.Background(), "p1", 100)
	require.Error(t, err)

	var remote *cartapi.RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, http.StatusBadRequest, remote.StatusCode)
	assert.Equal(t, "You can order at most 99 of one item.", remote.UserMessage())
}

func TestErrorResponseWithoutTip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `nope`)
	}))
	defer server.Close()

	client := newClient(t, server.URL, "tok")
	err := client.RemoveItem(context.Background(), "p1")
	require.Error(t, err)

	var remote *cartapi.RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, http.StatusInternalServerError, remote.StatusCode)
	assert.Empty(t, remote.UserMessage())
}

func TestTransportFailureIsRemoteError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing is listening anymore

	client := newClient(t, server.URL, "tok")
	_, err := client.FetchCart(context.Background())
	require.Error(t, err)

	var remote *cartapi.RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Zero(t, remote.StatusCode)
}

func TestAddItemRequestShape(t *testing.T) {
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/cart/add", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		gotBody, _ = io.ReadAll(r.Body)
		io.WriteString(w, `{}`)
	}))
	defer server.Close()

	client := newClient(t, server.URL, "tok")
	require.NoError(t, client.AddItem(context.Background(), "p1", 2))
	assert.JSONEq(t, `{"productId":"p1","quantity":2}`, string(gotBody))
}

func TestRemoveItemRequestShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/cart/item/p1", r.URL.Path)
		io.WriteString(w, `{}`)
	}))
	defer server.Close()

	client := newClient(t, server.URL, "tok")
	require.NoError(t, client.RemoveItem(context.Background(), "p1"))
}

func TestClearItemsRequestShape(t *testing.T) {
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/cart/clear", r.URL.Path)
		gotBody, _ = io.ReadAll(r.Body)
		io.WriteString(w, `{}`)
	}))
	defer server.Close()

	client := newClient(t, server.URL, "tok")
	require.NoError(t, client.ClearItems(context.Background(), []string{"p1", "p2"}))
	assert.JSONEq(t, `{"productIds":["p1","p2"]}`, string(gotBody))
}

func TestUnauthenticatedRequestOmitsAuthorizationHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present := r.Header["Authorization"]
		assert.False(t, present)
		io.WriteString(w, `{"items":[]}`)
	}))
	defer server.Close()

	client := newClient(t, server.URL, "")
	_, err := client.FetchCart(context.Background())
	require.NoError(t, err)
}
