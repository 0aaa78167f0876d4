// internal/cart/sync.go
package cart

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Service is the remote cart API the Manager synchronizes against.
type Service interface {
	FetchCart(ctx context.Context) ([]Item, error)
	AddItem(ctx context.Context, productID string, quantity int) error
	RemoveItem(ctx context.Context, productID string) error
	ClearItems(ctx context.Context, productIDs []string) error
}

// Authenticator reports whether the current actor has a session.
type Authenticator interface {
	IsAuthenticated() bool
}

// RemoteFailure is implemented by expected service rejections that carry a
// user-facing message. Errors that do not implement it (such as a response
// the client cannot decode) are treated as fatal and propagated untouched,
// so callers can tell "service said no" from "service response unparseable".
type RemoteFailure interface {
	error
	UserMessage() string
}

// ErrNotAuthenticated is returned when a mutating operation is attempted
// without a session. It is handled locally and never written to the
// store's error field.
var ErrNotAuthenticated = errors.New("cart: not authenticated")

// Manager orchestrates updates between UI-triggered intents and the remote
// cart service. Reads and additions always re-derive the local view from
// the server, because prices and stock can shift server-side; removal is
// the one operation applied optimistically, since its effect (absence)
// cannot be contradicted by server-side recomputation.
type Manager struct {
	store   *Store
	service Service
	auth    Authenticator
	log     *logrus.Logger

	// opMu serializes mutating operations so that no two of them are in
	// flight with overlapping effects for the same logical cart.
	opMu    sync.Mutex
	loadSeq atomic.Uint64
}

// NewManager creates a synchronization manager around the given store.
func NewManager(store *Store, service Service, auth Authenticator, log *logrus.Logger) *Manager {
	return &Manager{
		store:   store,
		service: service,
		auth:    auth,
		log:     log,
	}
}

// Load replaces the local view with the authoritative server state. It is
// a silent no-op for unauthenticated actors. Every load is tagged with a
// monotonically increasing sequence number and a response is discarded when
// a newer load has been issued since, so the local state always reflects
// the most recently issued request rather than the last one to resolve.
func (m *Manager) Load(ctx context.Context) error {
	if !m.auth.IsAuthenticated() {
		return nil
	}

	seq := m.loadSeq.Add(1)
	m.store.SetLoading(true)

	items, err := m.service.FetchCart(ctx)

	if m.loadSeq.Load() != seq {
		m.log.WithField("load_seq", seq).Debug("discarding stale cart load response")
		return nil
	}

	if err != nil {
		return m.recordFailure(err, "We couldn't load your cart. Please try again.")
	}

	m.store.SetData(items)
	return nil
}

// Add issues a remote add and then reloads the full cart, so the local
// view picks up server-computed fields such as merged quantities and price
// snapshots. Quantities below the minimum are coerced to one item.
func (m *Manager) Add(ctx context.Context, productID string, quantity int) error {
	if !m.auth.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	if quantity < MinQuantity {
		quantity = MinQuantity
	}

	m.opMu.Lock()
	defer m.opMu.Unlock()

	if err := m.service.AddItem(ctx, productID, quantity); err != nil {
		return m.recordFailure(err, "We couldn't add this item to your cart.")
	}
	return m.Load(ctx)
}

// Remove issues a remote removal and, on success, drops the item from the
// local view without a reload.
func (m *Manager) Remove(ctx context.Context, productID string) error {
	if !m.auth.IsAuthenticated() {
		return ErrNotAuthenticated
	}

	m.opMu.Lock()
	defer m.opMu.Unlock()

	if err := m.service.RemoveItem(ctx, productID); err != nil {
		return m.recordFailure(err, "We couldn't remove this item from your cart.")
	}
	m.store.RemoveItem(productID)
	return nil
}

// Clear removes every currently-present item via one batched remote call.
// An empty cart or an unauthenticated actor makes it a successful no-op.
func (m *Manager) Clear(ctx context.Context) error {
	if !m.auth.IsAuthenticated() {
		return nil
	}

	m.opMu.Lock()
	defer m.opMu.Unlock()

	snap := m.store.Snapshot()
	if len(snap.Items) == 0 {
		return nil
	}

	ids := make([]string, 0, len(snap.Items))
	for _, item := range snap.Items {
		ids = append(ids, item.ProductID)
	}

	if err := m.service.ClearItems(ctx, ids); err != nil {
		return m.recordFailure(err, "We couldn't clear your cart.")
	}
	m.store.Clear()
	return nil
}

// HandleAuthChange reacts to authentication transitions: a fresh session
// triggers exactly one authoritative load, a logout clears the local cart
// only (there is no authenticated session left to clear server-side).
func (m *Manager) HandleAuthChange(ctx context.Context, authenticated bool) {
	if authenticated {
		if err := m.Load(ctx); err != nil {
			m.log.WithError(err).Warn("cart load after sign-in failed")
		}
		return
	}
	m.store.Clear()
}

// IsInCart reports whether any entry with the given product ID exists.
func (m *Manager) IsInCart(productID string) bool {
	for _, item := range m.store.Snapshot().Items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

// TotalPrice sums price × quantity over all items. The result is not
// currency-rounded by this layer.
func (m *Manager) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range m.store.Snapshot().Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Items returns a copy of the current item collection.
func (m *Manager) Items() []Item {
	return m.store.Snapshot().Items
}

// State returns a snapshot of the full cart state.
func (m *Manager) State() State {
	return m.store.Snapshot()
}

// recordFailure routes an error from the service into the store. Expected
// rejections land in the state's error field with a user-facing message;
// anything else clears the loading flag and propagates as-is.
func (m *Manager) recordFailure(err error, fallback string) error {
	var remote RemoteFailure
	if errors.As(err, &remote) {
		message := remote.UserMessage()
		if message == "" {
			message = fallback
		}
		m.store.SetError(message)
		m.log.WithError(err).Warn("cart service call rejected")
		return err
	}

	m.store.SetLoading(false)
	m.log.WithError(err).Error("cart service call failed fatally")
	return err
}
