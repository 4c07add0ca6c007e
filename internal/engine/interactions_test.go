package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	calls []string
	err   error
}

func (p *recordingPublisher) PublishInteraction(_ context.Context, userID, productID, interactionType string) error {
	p.calls = append(p.calls, userID+"/"+productID+"/"+interactionType)
	return p.err
}

func TestIsValidInteraction(t *testing.T) {
	for _, valid := range []string{"view", "click", "add_to_cart", "purchase", "search"} {
		assert.True(t, IsValidInteraction(valid), valid)
	}
	assert.False(t, IsValidInteraction("hover"))
	assert.False(t, IsValidInteraction(""))
}

func TestTrackInteraction_PublishesEvent(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	eng, _ := newTestEngine(t, nil, nil)
	eng.publisher = pub

	eng.TrackInteraction(ctx, "user-1", "p1", InteractionView)

	require.Len(t, pub.calls, 1)
	assert.Equal(t, "user-1/p1/view", pub.calls[0])
}

func TestTrackInteraction_NoPublisher(t *testing.T) {
	ctx := context.Background()
	eng, _ := newTestEngine(t, nil, nil)

	assert.NotPanics(t, func() {
		eng.TrackInteraction(ctx, "user-1", "p1", InteractionPurchase)
	})
}

func TestTrackInteraction_SwallowsPublishErrors(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{err: errors.New("broker down")}
	eng, _ := newTestEngine(t, nil, nil)
	eng.publisher = pub

	assert.NotPanics(t, func() {
		eng.TrackInteraction(ctx, "user-1", "p1", InteractionClick)
	})
	assert.Len(t, pub.calls, 1)
}
