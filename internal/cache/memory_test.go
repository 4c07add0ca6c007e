package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SetGet(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	_, ok := c.Get(ctx, "missing")
	assert.False(t, ok)

	c.Set(ctx, "k", []byte("v"), time.Minute)
	got, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	c.Set(ctx, "k", []byte("v"), -time.Second)
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok, "expired entries read as misses")
}

func TestMemory_Overwrite(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	c.Set(ctx, "k", []byte("v1"), time.Minute)
	c.Set(ctx, "k", []byte("v2"), time.Minute)

	got, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("v2"), got)
}
