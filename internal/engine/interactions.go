package engine

import (
	"context"
	"log/slog"
)

// Interaction types accepted by TrackInteraction.
const (
	InteractionView      = "view"
	InteractionClick     = "click"
	InteractionAddToCart = "add_to_cart"
	InteractionPurchase  = "purchase"
	InteractionSearch    = "search"
)

// IsValidInteraction checks whether the given interaction type is known.
func IsValidInteraction(interactionType string) bool {
	switch interactionType {
	case InteractionView, InteractionClick, InteractionAddToCart, InteractionPurchase, InteractionSearch:
		return true
	}
	return false
}

// TrackInteraction records a user interaction with a product. Tracking is
// fire-and-forget: publish failures are logged and never surface to the
// caller, so a broken analytics pipeline cannot break browsing.
func (e *Engine) TrackInteraction(ctx context.Context, userID, productID, interactionType string) {
	e.logger.InfoContext(ctx, "user interaction",
		slog.String("user_id", userID),
		slog.String("product_id", productID),
		slog.String("interaction_type", interactionType),
	)

	if e.publisher == nil {
		return
	}
	if err := e.publisher.PublishInteraction(ctx, userID, productID, interactionType); err != nil {
		e.logger.WarnContext(ctx, "interaction event publish failed",
			slog.String("user_id", userID),
			slog.String("product_id", productID),
			slog.Any("error", err),
		)
	}
}
