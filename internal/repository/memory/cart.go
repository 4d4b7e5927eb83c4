package memory

import (
	"context"
	"sync"
	"time"

	"github.com/JKS-sys/shoppyglobe-storefront/internal/domain"
	apperrors "github.com/JKS-sys/shoppyglobe-storefront/pkg/errors"
)

type entry struct {
	cart      *domain.Cart
	expiresAt time.Time
}

// CartRepository is the default in-process session-cart store. State lives
// only in memory and is discarded when the session TTL lapses or the process
// exits.
type CartRepository struct {
	mu    sync.RWMutex
	carts map[string]entry
	ttl   time.Duration
}

// NewCartRepository creates an in-memory cart repository with the given
// session TTL.
func NewCartRepository(ttl time.Duration) *CartRepository {
	return &CartRepository{
		carts: make(map[string]entry),
		ttl:   ttl,
	}
}

// Get retrieves the cart for a session. Expired entries are evicted lazily.
func (r *CartRepository) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	r.mu.RLock()
	e, ok := r.carts[sessionID]
	r.mu.RUnlock()

	if !ok {
		return nil, apperrors.NotFound("cart", sessionID)
	}

	if time.Now().After(e.expiresAt) {
		r.mu.Lock()
		// Re-check under the write lock; another writer may have refreshed it.
		if cur, ok := r.carts[sessionID]; ok && time.Now().After(cur.expiresAt) {
			delete(r.carts, sessionID)
		}
		r.mu.Unlock()
		return nil, apperrors.NotFound("cart", sessionID)
	}

	return clone(e.cart), nil
}

// Save stores a copy of the cart and resets its TTL. Copying keeps each
// transition atomic: callers never share a live reference with the store.
func (r *CartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[cart.SessionID] = entry{
		cart:      clone(cart),
		expiresAt: time.Now().Add(r.ttl),
	}
	return nil
}

// Delete removes the cart for a session.
func (r *CartRepository) Delete(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, sessionID)
	return nil
}

// Len reports the number of stored carts, including not-yet-evicted expired
// entries.
func (r *CartRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.carts)
}

func clone(c *domain.Cart) *domain.Cart {
	cp := *c
	cp.Items = make([]domain.LineItem, len(c.Items))
	copy(cp.Items, c.Items)
	return &cp
}
