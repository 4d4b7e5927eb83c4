package event

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/JKS-sys/shoppyglobe-storefront/internal/domain"
	pkgkafka "github.com/JKS-sys/shoppyglobe-storefront/pkg/kafka"
	"github.com/JKS-sys/shoppyglobe-storefront/pkg/logger"
)

// Kafka topic constants for storefront domain events.
const (
	TopicCartUpdated = "shoppyglobe.cart.updated"
	TopicCartCleared = "shoppyglobe.cart.cleared"
	TopicOrderPlaced = "shoppyglobe.order.placed"
)

// Aggregate type constants.
const (
	AggregateTypeCart  = "cart"
	AggregateTypeOrder = "order"
)

// Source identifier for events originating from the storefront.
const SourceStorefront = "shoppyglobe-storefront"

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	SessionID string            `json:"session_id"`
	Items     []domain.LineItem `json:"items"`
	ItemCount int               `json:"item_count"`
	Subtotal  float64           `json:"subtotal"`
}

// CartClearedData is the payload for a cart.cleared event.
type CartClearedData struct {
	SessionID string `json:"session_id"`
}

// OrderPlacedData is the payload for an order.placed event. Orders are not
// persisted server-side; the event is the downstream-visible record of a
// simulated checkout.
type OrderPlacedData struct {
	SessionID   string            `json:"session_id"`
	OrderNumber string            `json:"order_number"`
	Items       []domain.LineItem `json:"items"`
	Subtotal    float64           `json:"subtotal"`
	ShippingFee float64           `json:"shipping_fee"`
	Tax         float64           `json:"tax"`
	Total       float64           `json:"total"`
	PlacedAt    time.Time         `json:"placed_at"`
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the storefront.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, cart *domain.Cart) error {
	data := CartUpdatedData{
		SessionID: cart.SessionID,
		Items:     cart.Items,
		ItemCount: cart.ItemCount(),
		Subtotal:  cart.Subtotal(),
	}

	return p.publish(ctx, TopicCartUpdated, "cart.updated", cart.SessionID, AggregateTypeCart, data)
}

// PublishCartCleared publishes a cart.cleared event.
func (p *Producer) PublishCartCleared(ctx context.Context, sessionID string) error {
	data := CartClearedData{SessionID: sessionID}
	return p.publish(ctx, TopicCartCleared, "cart.cleared", sessionID, AggregateTypeCart, data)
}

// PublishOrderPlaced publishes an order.placed event.
func (p *Producer) PublishOrderPlaced(ctx context.Context, sessionID string, order *domain.Order) error {
	data := OrderPlacedData{
		SessionID:   sessionID,
		OrderNumber: order.OrderNumber,
		Items:       order.Items,
		Subtotal:    order.Subtotal,
		ShippingFee: order.ShippingFee,
		Tax:         order.Tax,
		Total:       order.Total,
		PlacedAt:    order.PlacedAt,
	}

	return p.publish(ctx, TopicOrderPlaced, "order.placed", order.OrderNumber, AggregateTypeOrder, data)
}

func (p *Producer) publish(ctx context.Context, topic, eventType, aggregateID, aggregateType string, data any) error {
	// Publishing is optional; with no brokers configured events are dropped.
	if p.kafka == nil {
		return nil
	}

	evt, err := pkgkafka.NewEvent(eventType, aggregateID, aggregateType, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("build %s event: %w", eventType, err)
	}

	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		evt.WithCorrelationID(id)
	}

	if err := p.kafka.Publish(ctx, topic, evt); err != nil {
		return fmt.Errorf("publish %s event: %w", eventType, err)
	}

	return nil
}
