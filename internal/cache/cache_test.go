package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryExpiry(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	c := NewMemory(clock)
	ctx := context.Background()

	c.Set(ctx, "index_page:p1", []byte("first render"), 20*time.Second)

	// Inside the window the entry is served verbatim.
	val, ok := c.Get(ctx, "index_page:p1")
	assert.True(t, ok)
	assert.Equal(t, []byte("first render"), val)

	now = now.Add(19 * time.Second)
	val, ok = c.Get(ctx, "index_page:p1")
	assert.True(t, ok)
	assert.Equal(t, []byte("first render"), val)

	// Past the window the entry is gone.
	now = now.Add(2 * time.Second)
	_, ok = c.Get(ctx, "index_page:p1")
	assert.False(t, ok)
}

func TestMemoryMissingKey(t *testing.T) {
	c := NewMemory(nil)
	_, ok := c.Get(context.Background(), "nope")
	assert.False(t, ok)
}

func TestMemoryCopiesValue(t *testing.T) {
	c := NewMemory(nil)
	ctx := context.Background()

	buf := []byte("page body")
	c.Set(ctx, "k", buf, time.Minute)
	buf[0] = 'X'

	val, ok := c.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, []byte("page body"), val)
}
