// internal/cart/store_test.go
package cart_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/your-org/storefront-cart/internal/cart"
)

func item(id string, price int64, qty int, status cart.ItemStatus) cart.Item {
	return cart.Item{
		ProductID: id,
		Title:     "Item " + id,
		Price:     decimal.NewFromInt(price),
		Quantity:  qty,
		Status:    status,
	}
}

func TestStoreStartsEmpty(t *testing.T) {
	store := cart.NewStore()

	state := store.Snapshot()
	assert.Empty(t, state.Items)
	assert.Equal(t, 0, state.TotalItems)
	assert.False(t, state.Loading)
	assert.Empty(t, state.Err)
}

func TestTotalItemsTracksItemCount(t *testing.T) {
	store := cart.NewStore()

	store.SetData([]cart.Item{
		item("p1", 10, 1, cart.StatusForSale),
		item("p2", 20, 1, cart.StatusForSale),
	})
	assert.Equal(t, 2, store.Snapshot().TotalItems)

	store.AddItem(item("p3", 5, 1, cart.StatusForSale))
	assert.Equal(t, 3, store.Snapshot().TotalItems)

	store.RemoveItem("p1")
	assert.Equal(t, 2, store.Snapshot().TotalItems)

	store.Clear()
	assert.Equal(t, 0, store.Snapshot().TotalItems)
}

func TestSetLoadingFlipsOnlyLoading(t *testing.T) {
	store := cart.NewStore()
	store.SetData([]cart.Item{item("p1", 10, 1, cart.StatusForSale)})
	store.SetError("boom")

	store.SetLoading(true)

	state := store.Snapshot()
	assert.True(t, state.Loading)
	assert.Equal(t, "boom", state.Err)
	assert.Len(t, state.Items, 1)
}

func TestSetDataClearsLoadingAndError(t *testing.T) {
	store := cart.NewStore()
	store.SetLoading(true)
	store.SetError("previous failure")

	store.SetData([]cart.Item{item("p1", 10, 1, cart.StatusForSale)})

	state := store.Snapshot()
	assert.False(t, state.Loading)
	assert.Empty(t, state.Err)
	assert.Equal(t, 1, state.TotalItems)
}

func TestAddItemIsNotIdempotent(t *testing.T) {
	store := cart.NewStore()
	p1 := item("p1", 10, 1, cart.StatusForSale)

	store.AddItem(p1)
	store.AddItem(p1)

	// Duplicate entries are expected here: de-duplication belongs to the
	// authoritative reload.
	state := store.Snapshot()
	assert.Len(t, state.Items, 2)
	assert.Equal(t, 2, state.TotalItems)
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	store := cart.NewStore()
	store.SetData([]cart.Item{item("p1", 10, 1, cart.StatusForSale)})

	store.RemoveItem("p1")
	before := store.Snapshot()

	store.RemoveItem("p1")
	after := store.Snapshot()

	assert.Equal(t, before, after)
	assert.Equal(t, 0, after.TotalItems)
}

func TestRemoveItemDropsAllEntriesWithID(t *testing.T) {
	store := cart.NewStore()
	p1 := item("p1", 10, 1, cart.StatusForSale)
	store.AddItem(p1)
	store.AddItem(p1)
	store.AddItem(item("p2", 20, 1, cart.StatusForSale))

	store.RemoveItem("p1")

	state := store.Snapshot()
	assert.Len(t, state.Items, 1)
	assert.Equal(t, "p2", state.Items[0].ProductID)
}

func TestSetErrorKeepsItems(t *testing.T) {
	store := cart.NewStore()
	store.SetData([]cart.Item{item("p1", 10, 1, cart.StatusForSale)})
	store.SetLoading(true)

	store.SetError("service unavailable")

	state := store.Snapshot()
	assert.Equal(t, "service unavailable", state.Err)
	assert.False(t, state.Loading)
	assert.Len(t, state.Items, 1)
}

func TestSnapshotIsACopy(t *testing.T) {
	store := cart.NewStore()
	store.SetData([]cart.Item{item("p1", 10, 1, cart.StatusForSale)})

	snap := store.Snapshot()
	snap.Items[0].ProductID = "mutated"

	assert.Equal(t, "p1", store.Snapshot().Items[0].ProductID)
}
