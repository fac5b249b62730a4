package event

import (
	"context"
	"log/slog"

	"github.com/blueleafbooks/storefront/pkg/kafka"
	"github.com/blueleafbooks/storefront/pkg/logger"
)

const source = "storefront"

// Event types emitted by the storefront. Consumers downstream (analytics,
// abandoned-cart nudges) key off these names.
const (
	TypeCartUpdated       = "cart.updated"
	TypeCartCleared       = "cart.cleared"
	TypeCouponApplied     = "coupon.applied"
	TypeCheckoutCompleted = "checkout.completed"
)

// Publisher emits storefront domain events. A nil Publisher is valid and
// publishes nothing, so handlers never branch on whether Kafka is configured.
type Publisher struct {
	producer *kafka.Producer
	topic    string
	logger   *slog.Logger
}

// NewPublisher wraps a Kafka producer. producer may be nil when no brokers
// are configured.
func NewPublisher(producer *kafka.Producer, topic string, log *slog.Logger) *Publisher {
	if producer == nil {
		return nil
	}
	return &Publisher{producer: producer, topic: topic, logger: log}
}

// publish builds the envelope and hands it to Kafka. Publish failures are
// logged, not surfaced: a dropped analytics event must never fail a page.
func (p *Publisher) publish(ctx context.Context, eventType, aggregateID, aggregateType string, data any) {
	if p == nil {
		return
	}

	evt, err := kafka.NewEvent(eventType, aggregateID, aggregateType, source, data)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to build event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()),
		)
		return
	}
	if cid := logger.CorrelationIDFromContext(ctx); cid != "" {
		evt.WithCorrelationID(cid)
	}

	if err := p.producer.Publish(ctx, p.topic, evt); err != nil {
		p.logger.ErrorContext(ctx, "failed to publish event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()),
		)
	}
}

// CartUpdated records a cart mutation or reconciliation result.
func (p *Publisher) CartUpdated(ctx context.Context, sessionID string, bookIDs []string) {
	p.publish(ctx, TypeCartUpdated, sessionID, "session", map[string]any{
		"book_ids": bookIDs,
		"count":    len(bookIDs),
	})
}

// CartCleared records that a cart was emptied.
func (p *Publisher) CartCleared(ctx context.Context, sessionID string) {
	p.publish(ctx, TypeCartCleared, sessionID, "session", nil)
}

// CouponApplied records a successful coupon application.
func (p *Publisher) CouponApplied(ctx context.Context, sessionID, code string, discountCents int64) {
	p.publish(ctx, TypeCouponApplied, sessionID, "session", map[string]any{
		"code":           code,
		"discount_cents": discountCents,
	})
}

// CheckoutCompleted records a finished purchase.
func (p *Publisher) CheckoutCompleted(ctx context.Context, orderID string, totalCents int64, items int) {
	p.publish(ctx, TypeCheckoutCompleted, orderID, "order", map[string]any{
		"total_cents": totalCents,
		"items":       items,
	})
}
