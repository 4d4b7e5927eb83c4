package repository

import (
	"context"

	"github.com/JKS-sys/shoppyglobe-storefront/internal/domain"
)

// CartRepository defines the interface for session-cart storage. Carts are
// keyed by session ID and live only for the session TTL.
type CartRepository interface {
	// Get retrieves the cart for a session. A missing cart yields an error
	// matching apperrors.ErrNotFound.
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)

	// Save stores the cart, overwriting any existing cart for the session
	// and resetting its TTL.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes the cart for a session. Deleting an absent cart is not
	// an error.
	Delete(ctx context.Context, sessionID string) error
}
