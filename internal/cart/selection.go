// internal/cart/selection.go
package cart

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Selection projects a checkout selection over the cart: the set of product
// IDs currently marked for checkout, local to the cart page. The invariant
// is that every selected ID belongs to an item that exists in the cart and
// is for sale; IDs removed from the cart or turning unavailable are evicted
// silently on the next recompute.
type Selection struct {
	mgr *Manager

	mu  sync.Mutex
	ids map[string]struct{}
}

// NewSelection creates an empty selection over the manager's cart.
func NewSelection(mgr *Manager) *Selection {
	return &Selection{
		mgr: mgr,
		ids: make(map[string]struct{}),
	}
}

// Toggle flips one item in or out of the selection. Unavailable items
// cannot enter the selection through this path; deselecting is always
// allowed.
func (s *Selection) Toggle(productID string) {
	items := s.mgr.Items()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.recomputeLocked(items)

	if _, selected := s.ids[productID]; selected {
		delete(s.ids, productID)
		return
	}
	for _, item := range items {
		if item.ProductID == productID && item.Available() {
			s.ids[productID] = struct{}{}
			return
		}
	}
}

// SetAll assigns the set of all currently available product IDs wholesale
// (checked) or empties the selection (unchecked).
func (s *Selection) SetAll(selected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ids = make(map[string]struct{})
	if !selected {
		return
	}
	for _, item := range s.mgr.Items() {
		if item.Available() {
			s.ids[item.ProductID] = struct{}{}
		}
	}
}

// Recompute intersects the selection with the current available-item ID
// set, dropping stale IDs silently. It runs automatically before every
// derived read; callers may also invoke it after cart mutations.
func (s *Selection) Recompute() {
	items := s.mgr.Items()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recomputeLocked(items)
}

// Selected reports whether the product is currently marked for checkout.
func (s *Selection) Selected(productID string) bool {
	items := s.mgr.Items()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recomputeLocked(items)
	_, ok := s.ids[productID]
	return ok
}

// IDs returns the selected product IDs in cart order.
func (s *Selection) IDs() []string {
	items := s.mgr.Items()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recomputeLocked(items)

	ordered := make([]string, 0, len(s.ids))
	for _, item := range items {
		if _, ok := s.ids[item.ProductID]; ok {
			ordered = append(ordered, item.ProductID)
		}
	}
	return ordered
}

// SelectedTotal sums price × quantity over the selected items.
func (s *Selection) SelectedTotal() decimal.Decimal {
	items := s.mgr.Items()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recomputeLocked(items)

	total := decimal.Zero
	for _, item := range items {
		if _, ok := s.ids[item.ProductID]; ok {
			total = total.Add(item.Subtotal())
		}
	}
	return total
}

// SelectedAvailableCount counts selected items that are for sale. The
// availability filter repeats what the recompute invariant already
// guarantees, so a stale read can never inflate the count.
func (s *Selection) SelectedAvailableCount() int {
	items := s.mgr.Items()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recomputeLocked(items)

	count := 0
	for _, item := range items {
		if _, ok := s.ids[item.ProductID]; ok && item.Available() {
			count++
		}
	}
	return count
}

// DeleteSelected removes every selected item through the synchronization
// manager. All removals are issued concurrently and the call returns only
// once every one of them has resolved. The selection is cleared
// unconditionally afterwards, even for IDs whose removal failed: this is
// best-effort bulk deletion, not an atomic operation, and the first
// failure is returned as information rather than as a rollback trigger.
func (s *Selection) DeleteSelected(ctx context.Context) error {
	s.mu.Lock()
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	var g errgroup.Group
	for _, id := range ids {
		id := id
		g.Go(func() error {
			return s.mgr.Remove(ctx, id)
		})
	}
	err := g.Wait()

	s.mu.Lock()
	s.ids = make(map[string]struct{})
	s.mu.Unlock()

	return err
}

// Checkout produces the handoff payload for the external checkout flow,
// or reports false when nothing available is selected.
func (s *Selection) Checkout() (*CheckoutHandoff, bool) {
	if s.SelectedAvailableCount() == 0 {
		return nil, false
	}
	return &CheckoutHandoff{ProductIDs: s.IDs()}, true
}

// recomputeLocked drops selection entries whose items are gone or no
// longer for sale. Caller holds s.mu.
func (s *Selection) recomputeLocked(items []Item) {
	available := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item.Available() {
			available[item.ProductID] = struct{}{}
		}
	}
	for id := range s.ids {
		if _, ok := available[id]; !ok {
			delete(s.ids, id)
		}
	}
}
