package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/catalog-engine/pkg/httputil"
)

type stubTracker struct {
	calls []string
}

func (s *stubTracker) TrackInteraction(_ context.Context, userID, productID, interactionType string) {
	s.calls = append(s.calls, userID+"/"+productID+"/"+interactionType)
}

func newInteractionRouter(stub *stubTracker) http.Handler {
	h := NewInteractionHandler(stub, newTestLogger())
	r := chi.NewRouter()
	r.Post("/api/v1/interactions", h.Track)
	return r
}

func TestInteractionHandler_Track(t *testing.T) {
	stub := &stubTracker{}
	router := newInteractionRouter(stub)

	body := `{"user_id":"user-1","product_id":"p1","interaction_type":"view"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/interactions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)
	require.Len(t, stub.calls, 1)
	assert.Equal(t, "user-1/p1/view", stub.calls[0])
}

func TestInteractionHandler_RejectsUnknownType(t *testing.T) {
	stub := &stubTracker{}
	router := newInteractionRouter(stub)

	body := `{"user_id":"user-1","product_id":"p1","interaction_type":"hover"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/interactions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, stub.calls)
}

func TestInteractionHandler_ValidatesRequiredFields(t *testing.T) {
	stub := &stubTracker{}
	router := newInteractionRouter(stub)

	body := `{"product_id":"p1","interaction_type":"view"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/interactions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp httputil.Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Fields, "UserID")
}

func TestInteractionHandler_RejectsMalformedBody(t *testing.T) {
	router := newInteractionRouter(&stubTracker{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/interactions", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
