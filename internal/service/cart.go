package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/JKS-sys/shoppyglobe-storefront/internal/catalog"
	"github.com/JKS-sys/shoppyglobe-storefront/internal/domain"
	"github.com/JKS-sys/shoppyglobe-storefront/internal/event"
	"github.com/JKS-sys/shoppyglobe-storefront/internal/repository"
	apperrors "github.com/JKS-sys/shoppyglobe-storefront/pkg/errors"
)

// CartService implements the cart transitions over the session-cart store.
// Transitions run to completion before the next one for the same session is
// observed; invalid transitions are silent no-ops by design, not errors.
type CartService struct {
	repo     repository.CartRepository
	fetcher  catalog.Fetcher
	producer *event.Producer
	logger   *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(repo repository.CartRepository, fetcher catalog.Fetcher, producer *event.Producer, logger *slog.Logger) *CartService {
	return &CartService{
		repo:     repo,
		fetcher:  fetcher,
		producer: producer,
		logger:   logger,
	}
}

// GetCart retrieves the cart for a session. If no cart exists yet, an empty
// cart is returned without being stored.
func (s *CartService) GetCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	cart, err := s.getOrCreateCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// AddItem fetches the product from the catalog and applies the add-to-cart
// transition: an existing line item has its quantity incremented by one,
// otherwise a new line item with quantity one is appended. Out-of-stock
// products are rejected. The product price is never trusted from the caller.
func (s *CartService) AddItem(ctx context.Context, sessionID string, productID int) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if productID <= 0 {
		return nil, apperrors.InvalidInput("product id must be positive")
	}

	product, err := s.fetcher.FetchByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("fetch product for add: %w", err)
	}
	if !product.InStock() {
		return nil, apperrors.InvalidInput("product is out of stock")
	}

	cart, err := s.getOrCreateCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.AddProduct(*product)

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	s.publishCartUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("session_id", sessionID),
		slog.Int("product_id", productID),
		slog.Int("item_count", cart.ItemCount()),
	)

	return cart, nil
}

// RemoveItem removes the line item with the given product ID. Removing an
// absent item is a silent no-op: the unchanged cart is returned and nothing
// is stored.
func (s *CartService) RemoveItem(ctx context.Context, sessionID string, productID int) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	cart, err := s.getOrCreateCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !cart.RemoveItem(productID) {
		return cart, nil
	}

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	s.publishCartUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("session_id", sessionID),
		slog.Int("product_id", productID),
	)

	return cart, nil
}

// UpdateQuantity sets the quantity of an existing line item. The update is
// rejected as a whole when the item is absent or the quantity is below one;
// in that case the unchanged cart is returned and nothing is stored.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID string, productID, quantity int) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	cart, err := s.getOrCreateCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !cart.SetQuantity(productID, quantity) {
		return cart, nil
	}

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	s.publishCartUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "cart item quantity updated",
		slog.String("session_id", sessionID),
		slog.Int("product_id", productID),
		slog.Int("quantity", quantity),
	)

	return cart, nil
}

// ClearCart empties the items while preserving the session's search term.
func (s *CartService) ClearCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	cart, err := s.getOrCreateCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.Clear()

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	if err := s.producer.PublishCartCleared(ctx, sessionID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "cart cleared",
		slog.String("session_id", sessionID),
	)

	return cart, nil
}

// SetSearchTerm replaces the session's search term unconditionally.
func (s *CartService) SetSearchTerm(ctx context.Context, sessionID, term string) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	cart, err := s.getOrCreateCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.SetSearchTerm(term)

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	return cart, nil
}

// GetSummary returns the derived totals for the session's cart.
func (s *CartService) GetSummary(ctx context.Context, sessionID string) (domain.Summary, error) {
	if sessionID == "" {
		return domain.Summary{}, apperrors.InvalidInput("session id is required")
	}

	cart, err := s.getOrCreateCart(ctx, sessionID)
	if err != nil {
		return domain.Summary{}, err
	}

	return cart.Summarize(), nil
}

// getOrCreateCart retrieves the session's cart, creating an empty one if it
// does not exist. The empty cart is not stored until a transition changes it.
func (s *CartService) getOrCreateCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.NewCart(sessionID), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return cart, nil
}

// publishCartUpdated publishes the cart.updated event. Event failures are
// logged and never fail the transition.
func (s *CartService) publishCartUpdated(ctx context.Context, cart *domain.Cart) {
	if err := s.producer.PublishCartUpdated(ctx, cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("session_id", cart.SessionID),
			slog.String("error", err.Error()),
		)
	}
}
