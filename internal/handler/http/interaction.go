package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/utafrali/catalog-engine/internal/engine"
	"github.com/utafrali/catalog-engine/pkg/httputil"
	"github.com/utafrali/catalog-engine/pkg/validator"
)

// InteractionTracker is the interaction surface of the engine.
type InteractionTracker interface {
	TrackInteraction(ctx context.Context, userID, productID, interactionType string)
}

// InteractionHandler handles HTTP requests for interaction tracking.
type InteractionHandler struct {
	tracker InteractionTracker
	logger  *slog.Logger
}

// NewInteractionHandler creates a new interaction HTTP handler.
func NewInteractionHandler(tracker InteractionTracker, logger *slog.Logger) *InteractionHandler {
	return &InteractionHandler{
		tracker: tracker,
		logger:  logger,
	}
}

// TrackInteractionRequest is the JSON request body for recording an interaction.
type TrackInteractionRequest struct {
	UserID          string `json:"user_id" validate:"required"`
	ProductID       string `json:"product_id" validate:"required"`
	InteractionType string `json:"interaction_type" validate:"required"`
}

// Track handles POST /api/v1/interactions
func (h *InteractionHandler) Track(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req TrackInteractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}
	if !engine.IsValidInteraction(req.InteractionType) {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{
				Code:    "INVALID_PARAMETER",
				Message: "interaction_type must be one of: view, click, add_to_cart, purchase, search",
			},
		})
		return
	}

	h.tracker.TrackInteraction(r.Context(), req.UserID, req.ProductID, req.InteractionType)

	httputil.WriteJSON(w, http.StatusAccepted, httputil.Response{Data: map[string]string{"status": "recorded"}})
}
