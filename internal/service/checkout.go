package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/JKS-sys/shoppyglobe-storefront/internal/domain"
	"github.com/JKS-sys/shoppyglobe-storefront/internal/event"
	"github.com/JKS-sys/shoppyglobe-storefront/internal/repository"
	apperrors "github.com/JKS-sys/shoppyglobe-storefront/pkg/errors"
)

// CheckoutService validates the checkout form and simulates order placement.
// There is no payment gateway and no order persistence: a successful checkout
// produces a confirmation, clears the cart, and emits an order.placed event.
type CheckoutService struct {
	repo     repository.CartRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(repo repository.CartRepository, producer *event.Producer, logger *slog.Logger) *CheckoutService {
	return &CheckoutService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// PlaceOrder runs the checkout: an empty cart fails outright, field errors
// block submission and are returned as a field-to-message map, and a valid
// form yields an order confirmation with the cart's totals. The cart items
// are cleared on success; the search term survives.
func (s *CheckoutService) PlaceOrder(ctx context.Context, sessionID string, form domain.CheckoutForm) (*domain.Order, map[string]string, error) {
	if sessionID == "" {
		return nil, nil, apperrors.InvalidInput("session id is required")
	}

	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.InvalidInput("cart is empty")
		}
		return nil, nil, fmt.Errorf("get cart for checkout: %w", err)
	}
	if len(cart.Items) == 0 {
		return nil, nil, apperrors.InvalidInput("cart is empty")
	}

	if fieldErrs := form.Validate(); len(fieldErrs) > 0 {
		return nil, fieldErrs, nil
	}

	now := time.Now().UTC()
	summary := cart.Summarize()

	order := &domain.Order{
		OrderNumber: domain.NewOrderNumber(now),
		Items:       cart.Items,
		Subtotal:    summary.Subtotal,
		ShippingFee: summary.ShippingFee,
		Tax:         summary.Tax,
		Total:       summary.Total,
		PlacedAt:    now,
	}

	cart.Clear()
	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, nil, fmt.Errorf("clear cart after checkout: %w", err)
	}

	if err := s.producer.PublishOrderPlaced(ctx, sessionID, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.placed event",
			slog.String("session_id", sessionID),
			slog.String("order_number", order.OrderNumber),
			slog.String("error", err.Error()),
		)
	}
	if err := s.producer.PublishCartCleared(ctx, sessionID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order placed",
		slog.String("session_id", sessionID),
		slog.String("order_number", order.OrderNumber),
		slog.Float64("total", order.Total),
	)

	return order, nil, nil
}
