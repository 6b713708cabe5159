package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-seat-editor/internal/config"
)

func TestNewLayoutCache_DisabledIsNoop(t *testing.T) {
	ctx := context.Background()
	c := NewLayoutCache(config.LayoutCacheConfig{Enabled: true}, nil)
	assert.Nil(t, c)

	b, ok, err := c.Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, b)
	assert.NoError(t, c.Set(ctx, 1, []byte("x")))
	assert.NoError(t, c.Invalidate(ctx, 1))

	rdb := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer rdb.Close()
	assert.Nil(t, NewLayoutCache(config.LayoutCacheConfig{Enabled: false}, rdb))
}

func TestLayoutCache_Key(t *testing.T) {
	c := &LayoutCache{prefix: "layout"}
	assert.Equal(t, "layout:room:42", c.key(42))
}

func TestLayoutCache_SetGetInvalidate(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	c := NewLayoutCache(config.LayoutCacheConfig{Enabled: true, TTL: time.Minute, Prefix: "layout"}, rdb)
	require.NotNil(t, c)

	_, ok, err := c.Get(ctx, 7)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, 7, []byte(`{"rows":2}`)))
	b, ok, err := c.Get(ctx, 7)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"rows":2}`, string(b))
	assert.Equal(t, time.Minute, mr.TTL("layout:room:7"))

	require.NoError(t, c.Invalidate(ctx, 7))
	_, ok, err = c.Get(ctx, 7)
	require.NoError(t, err)
	assert.False(t, ok)
}
