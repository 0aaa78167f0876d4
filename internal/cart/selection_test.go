// internal/cart/selection_test.go
package cart_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-cart/internal/cart"
	"github.com/your-org/storefront-cart/internal/infrastructure/cartapi"
)

func newSelection(svc cart.Service) (*cart.Selection, *cart.Manager, *cart.Store) {
	mgr, store := newManager(svc, true)
	return cart.NewSelection(mgr), mgr, store
}

func TestToggleSelectsOnlyAvailableItems(t *testing.T) {
	sel, _, store := newSelection(&fakeService{})
	store.SetData([]cart.Item{
		item("p1", 10, 1, cart.StatusForSale),
		item("p2", 20, 1, cart.StatusUnavailable),
	})

	sel.Toggle("p1")
	sel.Toggle("p2")
	sel.Toggle("missing")

	assert.True(t, sel.Selected("p1"))
	assert.False(t, sel.Selected("p2"), "unavailable items cannot be selected")
	assert.False(t, sel.Selected("missing"))
}

func TestToggleDeselects(t *testing.T) {
	sel, _, store := newSelection(&fakeService{})
	store.SetData([]cart.Item{item("p1", 10, 1, cart.StatusForSale)})

	sel.Toggle("p1")
	sel.Toggle("p1")

	assert.False(t, sel.Selected("p1"))
}

func TestSetAllSelectsAvailableOnly(t *testing.T) {
	sel, _, store := newSelection(&fakeService{})
	store.SetData([]cart.Item{
		item("p1", 10, 1, cart.StatusForSale),
		item("p2", 20, 1, cart.StatusUnavailable),
		item("p3", 30, 1, cart.StatusForSale),
	})

	sel.SetAll(true)
	assert.Equal(t, []string{"p1", "p3"}, sel.IDs())

	sel.SetAll(false)
	assert.Empty(t, sel.IDs())
}

func TestSelectionEvictsItemsThatLeaveTheCart(t *testing.T) {
	sel, _, store := newSelection(&fakeService{})
	store.SetData([]cart.Item{
		item("p1", 10, 1, cart.StatusForSale),
		item("p2", 20, 1, cart.StatusForSale),
	})
	sel.SetAll(true)

	// A reload drops p1 and delists p2.
	store.SetData([]cart.Item{item("p2", 20, 1, cart.StatusUnavailable)})

	assert.Empty(t, sel.IDs(), "stale selections are evicted silently on read")
	assert.False(t, sel.Selected("p1"))
	assert.False(t, sel.Selected("p2"))
}

func TestIDsFollowCartOrder(t *testing.T) {
	sel, _, store := newSelection(&fakeService{})
	store.SetData([]cart.Item{
		item("p1", 10, 1, cart.StatusForSale),
		item("p2", 20, 1, cart.StatusForSale),
		item("p3", 30, 1, cart.StatusForSale),
	})

	sel.Toggle("p3")
	sel.Toggle("p1")

	assert.Equal(t, []string{"p1", "p3"}, sel.IDs())
}

func TestSelectedTotalAndAvailableCount(t *testing.T) {
	sel, _, store := newSelection(&fakeService{})
	store.SetData([]cart.Item{
		item("p1", 10, 2, cart.StatusForSale), // 20
		item("p2", 7, 1, cart.StatusForSale),  // 7
		item("p3", 99, 1, cart.StatusUnavailable),
	})
	sel.SetAll(true)

	assert.Equal(t, 2, sel.SelectedAvailableCount())
	assert.True(t, sel.SelectedTotal().Equal(decimal.NewFromInt(27)), "got %s", sel.SelectedTotal())
}

func TestCheckoutRequiresAvailableSelection(t *testing.T) {
	sel, _, store := newSelection(&fakeService{})
	store.SetData([]cart.Item{item("p1", 10, 1, cart.StatusUnavailable)})

	handoff, ok := sel.Checkout()
	assert.False(t, ok)
	assert.Nil(t, handoff)
}

func TestCheckoutCarriesSelectedIDsInCartOrder(t *testing.T) {
	sel, _, store := newSelection(&fakeService{})
	store.SetData([]cart.Item{
		item("p1", 10, 1, cart.StatusForSale),
		item("p2", 20, 1, cart.StatusForSale),
	})
	sel.Toggle("p2")
	sel.Toggle("p1")

	handoff, ok := sel.Checkout()
	require.True(t, ok)
	assert.Equal(t, []string{"p1", "p2"}, handoff.ProductIDs)
}

func TestDeleteSelectedRemovesEverySelectedItem(t *testing.T) {
	svc := &fakeService{
		fetch: func(context.Context) ([]cart.Item, error) {
			return []cart.Item{
				item("p1", 10, 1, cart.StatusForSale),
				item("p2", 20, 1, cart.StatusForSale),
				item("p3", 30, 1, cart.StatusForSale),
			}, nil
		},
	}
	sel, mgr, _ := newSelection(svc)
	require.NoError(t, mgr.Load(context.Background()))
	sel.Toggle("p1")
	sel.Toggle("p3")

	require.NoError(t, sel.DeleteSelected(context.Background()))

	assert.Equal(t, []string{"p2"}, productIDs(mgr.Items()))
	assert.Empty(t, sel.IDs())
}

func TestDeleteSelectedIsBestEffort(t *testing.T) {
	svc := &fakeService{
		fetch: func(context.Context) ([]cart.Item, error) {
			return []cart.Item{
				item("p1", 10, 1, cart.StatusForSale),
				item("p2", 20, 1, cart.StatusForSale),
			}, nil
		},
		remove: func(_ context.Context, productID string) error {
			if productID == "p2" {
				return &cartapi.RemoteError{StatusCode: 502, UserTip: "We couldn't remove this item."}
			}
			return nil
		},
	}
	sel, mgr, _ := newSelection(svc)
	require.NoError(t, mgr.Load(context.Background()))
	sel.SetAll(true)

	err := sel.DeleteSelected(context.Background())
	require.Error(t, err, "the first removal failure is reported")

	// The failing item survives, the succeeding one is gone, and the
	// selection is cleared regardless.
	assert.Equal(t, []string{"p2"}, productIDs(mgr.Items()))
	assert.Empty(t, sel.IDs())

	_, _, remove, _ := svc.calls()
	assert.Equal(t, 2, remove, "every selected removal is attempted")
}
