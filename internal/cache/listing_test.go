package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T, ttl time.Duration) (*ListingCache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewListingCache(client, ttl, log), mr
}

func TestGetMissThenHit(t *testing.T) {
	c, _ := setupCache(t, time.Minute)
	ctx := context.Background()

	_, ok := c.Get(ctx)
	assert.False(t, ok)

	c.Set(ctx, []byte(`{"projects":[]}`))

	body, ok := c.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, `{"projects":[]}`, string(body))
}

func TestInvalidateDropsBody(t *testing.T) {
	c, _ := setupCache(t, time.Minute)
	ctx := context.Background()

	c.Set(ctx, []byte("cached"))
	c.Invalidate(ctx)

	_, ok := c.Get(ctx)
	assert.False(t, ok)
}

func TestEntryExpires(t *testing.T) {
	c, mr := setupCache(t, time.Second)
	ctx := context.Background()

	c.Set(ctx, []byte("cached"))
	mr.FastForward(2 * time.Second)

	_, ok := c.Get(ctx)
	assert.False(t, ok)
}

func TestPing(t *testing.T) {
	c, mr := setupCache(t, time.Minute)

	assert.NoError(t, c.Ping(context.Background()))

	mr.Close()
	assert.Error(t, c.Ping(context.Background()))
}
