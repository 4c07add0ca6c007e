// Package event wires the engine to the Kafka event backbone: publishing
// user interactions and reacting to catalog changes.
package event

import (
	"context"
	"fmt"
	"time"

	"github.com/utafrali/catalog-engine/pkg/kafka"
	"github.com/utafrali/catalog-engine/pkg/logger"
)

const source = "catalog-engine"

// InteractionTopic carries user interaction events for analytics consumers.
var InteractionTopic = kafka.Topic("interaction", "tracked")

// interactionPayload is the data section of an interaction event.
type interactionPayload struct {
	UserID          string    `json:"user_id"`
	ProductID       string    `json:"product_id"`
	InteractionType string    `json:"interaction_type"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// InteractionProducer publishes user interaction events.
type InteractionProducer struct {
	producer *kafka.Producer
}

// NewInteractionProducer creates a publisher over an existing Kafka producer.
func NewInteractionProducer(producer *kafka.Producer) *InteractionProducer {
	return &InteractionProducer{producer: producer}
}

// PublishInteraction emits one interaction event, keyed by product id so
// per-product ordering is preserved.
func (p *InteractionProducer) PublishInteraction(ctx context.Context, userID, productID, interactionType string) error {
	evt, err := kafka.NewEvent(
		"interaction.tracked",
		productID,
		"interaction",
		source,
		interactionPayload{
			UserID:          userID,
			ProductID:       productID,
			InteractionType: interactionType,
			OccurredAt:      time.Now().UTC(),
		},
	)
	if err != nil {
		return fmt.Errorf("build interaction event: %w", err)
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		evt.WithCorrelationID(id)
	}
	return p.producer.Publish(ctx, InteractionTopic, evt)
}
