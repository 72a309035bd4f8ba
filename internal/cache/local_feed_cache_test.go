package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestLocalFeedCache_SetGet(t *testing.T) {
	c, err := NewLocalFeedCache(10)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []sample{{Name: "마카롱", Count: 3}}, time.Minute))

	var out []sample
	hit, err := c.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []sample{{Name: "마카롱", Count: 3}}, out)
}

func TestLocalFeedCache_Expired(t *testing.T) {
	c, err := NewLocalFeedCache(10)
	require.NoError(t, err)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }
	require.NoError(t, c.Set(ctx, "k", sample{Name: "a"}, time.Second))

	c.now = func() time.Time { return base.Add(2 * time.Second) }
	var out sample
	hit, err := c.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 0, c.Len())
}

func TestLocalFeedCache_Delete(t *testing.T) {
	c, err := NewLocalFeedCache(10)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", 1, time.Minute))
	require.NoError(t, c.Set(ctx, "b", 2, time.Minute))
	require.NoError(t, c.Delete(ctx, "a", "b"))

	var out int
	hit, _ := c.Get(ctx, "a", &out)
	assert.False(t, hit)
	assert.Equal(t, 0, c.Len())
}

func TestLocalFeedCache_Evicts(t *testing.T) {
	c, err := NewLocalFeedCache(2)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", 1, time.Minute))
	require.NoError(t, c.Set(ctx, "b", 2, time.Minute))
	require.NoError(t, c.Set(ctx, "c", 3, time.Minute))

	var out int
	hit, _ := c.Get(ctx, "a", &out)
	assert.False(t, hit)
	hit, _ = c.Get(ctx, "c", &out)
	assert.True(t, hit)
	assert.Equal(t, 3, out)
}

func TestCategoryFeedKey(t *testing.T) {
	id := uint(42)
	assert.Equal(t, "feed:categories:42", CategoryFeedKey(&id))
	assert.Equal(t, "feed:categories:0", CategoryFeedKey(nil))
}
