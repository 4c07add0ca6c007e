package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utafrali/catalog-engine/pkg/kafka"
)

// Topics whose events invalidate the search index.
var (
	ProductCreatedTopic = kafka.Topic("product", "created")
	ProductUpdatedTopic = kafka.Topic("product", "updated")
	ProductDeletedTopic = kafka.Topic("product", "deleted")
)

// IndexRebuilder is the subset of the engine the consumer needs.
type IndexRebuilder interface {
	Rebuild(ctx context.Context) error
}

// NewProductChangeHandler returns a Kafka handler that rebuilds the search
// index whenever a product changes. Rebuilds are full snapshots, so any
// product event regardless of type triggers the same work; a failed rebuild
// is returned so the consumer retries it.
func NewProductChangeHandler(rebuilder IndexRebuilder, logger *slog.Logger) kafka.Handler {
	return func(ctx context.Context, evt *kafka.Event) error {
		logger.InfoContext(ctx, "product change received, rebuilding index",
			slog.String("event_type", evt.EventType),
			slog.String("product_id", evt.AggregateID),
		)
		if err := rebuilder.Rebuild(ctx); err != nil {
			return fmt.Errorf("rebuild index after %s: %w", evt.EventType, err)
		}
		return nil
	}
}
