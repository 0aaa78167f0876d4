// internal/cart/store.go
package cart

import "sync"

// Store holds the authoritative local view of the cart. It is the only
// writer of cart state; pages and components read snapshots and must never
// mutate them. A single Store instance is constructed per running app and
// passed by reference to whoever needs it.
type Store struct {
	mu    sync.Mutex
	state State
}

// NewStore creates an empty cart store.
func NewStore() *Store {
	return &Store{
		state: State{Items: []Item{}},
	}
}

// SetLoading flips the loading flag. No other field changes.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = loading
}

// SetData replaces the item collection wholesale and clears the loading and
// error flags. Used after every successful authoritative read.
func (s *Store) SetData(items []Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Items = append([]Item(nil), items...)
	s.state.TotalItems = len(s.state.Items)
	s.state.Loading = false
	s.state.Err = ""
}

// AddItem appends an item. It does not merge by product ID: duplicate adds
// produce duplicate entries until the caller reloads from the source of
// truth, which owns de-duplication.
func (s *Store) AddItem(item Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Items = append(s.state.Items, item)
	s.state.TotalItems = len(s.state.Items)
}

// RemoveItem removes every entry with the given product ID. Removing an
// absent ID leaves the state unchanged.
func (s *Store) RemoveItem(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.state.Items[:0]
	for _, item := range s.state.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	s.state.Items = kept
	s.state.TotalItems = len(s.state.Items)
}

// Clear empties the item collection.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Items = []Item{}
	s.state.TotalItems = 0
}

// SetError records the last error message and clears the loading flag.
// Items are left untouched: stale-but-present data beats an empty cart.
func (s *Store) SetError(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Err = message
	s.state.Loading = false
}

// Snapshot returns a copy of the current state. The returned item slice is
// owned by the caller.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.state
	snap.Items = append([]Item(nil), s.state.Items...)
	return snap
}
