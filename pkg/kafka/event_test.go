package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopic(t *testing.T) {
	assert.Equal(t, "ecommerce.product.updated", Topic("product", "updated"))
	assert.Equal(t, "ecommerce.interaction.tracked", Topic("interaction", "tracked"))
}

func TestNewEvent(t *testing.T) {
	evt, err := NewEvent("interaction.tracked", "p1", "interaction", "catalog-engine", map[string]string{"user_id": "u1"})
	require.NoError(t, err)

	assert.NotEmpty(t, evt.EventID)
	assert.Equal(t, "interaction.tracked", evt.EventType)
	assert.Equal(t, "p1", evt.AggregateID)
	assert.Equal(t, "interaction", evt.AggregateType)
	assert.Equal(t, "catalog-engine", evt.Source)
	assert.Equal(t, 1, evt.Version)
	assert.False(t, evt.Timestamp.IsZero())
}

func TestNewEvent_UnmarshalableData(t *testing.T) {
	_, err := NewEvent("interaction.tracked", "p1", "interaction", "catalog-engine", make(chan int))
	assert.Error(t, err)
}

func TestEvent_MarshalRoundTrip(t *testing.T) {
	evt, err := NewEvent("interaction.tracked", "p1", "interaction", "catalog-engine", map[string]string{"user_id": "u1"})
	require.NoError(t, err)
	evt.WithCorrelationID("corr-1")

	raw, err := evt.Marshal()
	require.NoError(t, err)

	decoded, err := UnmarshalEvent(raw)
	require.NoError(t, err)
	assert.Equal(t, evt.EventID, decoded.EventID)
	assert.Equal(t, "corr-1", decoded.CorrelationID)

	var payload map[string]string
	require.NoError(t, decoded.UnmarshalData(&payload))
	assert.Equal(t, "u1", payload["user_id"])
}

func TestUnmarshalEvent_Malformed(t *testing.T) {
	_, err := UnmarshalEvent([]byte("{not json"))
	assert.Error(t, err)
}
