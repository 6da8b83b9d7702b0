package storage

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func newTestCache(t *testing.T) *RedisCache {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisCache(client, 10*time.Minute)
}

func TestRedisCache_MenuRoundtrip(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	_, err := cache.GetMenu(ctx, "en")
	assert.ErrorIs(t, err, redis.Nil)

	payload := []byte(`[{"id":1,"key":"pizza"}]`)
	assert.NoError(t, cache.SetMenu(ctx, "en", payload))

	got, err := cache.GetMenu(ctx, "en")
	assert.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestRedisCache_InvalidateMenu_DropsAllLanguages(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	assert.NoError(t, cache.SetMenu(ctx, "en", []byte("english")))
	assert.NoError(t, cache.SetMenu(ctx, "ru", []byte("russian")))

	assert.NoError(t, cache.InvalidateMenu(ctx))

	_, err := cache.GetMenu(ctx, "en")
	assert.ErrorIs(t, err, redis.Nil)
	_, err = cache.GetMenu(ctx, "ru")
	assert.ErrorIs(t, err, redis.Nil)
}

func TestRedisCache_InvalidateMenu_EmptyCache(t *testing.T) {
	cache := newTestCache(t)
	assert.NoError(t, cache.InvalidateMenu(context.Background()))
}

func TestRedisCache_OrderCounters(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	assert.NoError(t, cache.IncrOrderCounters(ctx, "2025-06-15", 29.48))
	assert.NoError(t, cache.IncrOrderCounters(ctx, "2025-06-15", 50.00))

	counters, err := cache.DailyOrderCounters(ctx, "2025-06-15")
	assert.NoError(t, err)
	assert.Equal(t, "2", counters["orders"])

	revenue, err := strconv.ParseFloat(counters["revenue"], 64)
	assert.NoError(t, err)
	assert.InDelta(t, 79.48, revenue, 0.001)

	// A failed payment backs its total out of revenue but not the count.
	assert.NoError(t, cache.DecrRevenue(ctx, "2025-06-15", 29.48))
	counters, err = cache.DailyOrderCounters(ctx, "2025-06-15")
	assert.NoError(t, err)
	assert.Equal(t, "2", counters["orders"])
	revenue, _ = strconv.ParseFloat(counters["revenue"], 64)
	assert.InDelta(t, 50.00, revenue, 0.001)
}

func TestRedisCache_CountersAreScopedByDay(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	assert.NoError(t, cache.IncrOrderCounters(ctx, "2025-06-15", 10))
	assert.NoError(t, cache.IncrOrderCounters(ctx, "2025-06-16", 20))

	today, err := cache.DailyOrderCounters(ctx, "2025-06-15")
	assert.NoError(t, err)
	assert.Equal(t, "1", today["orders"])

	empty, err := cache.DailyOrderCounters(ctx, "2025-06-14")
	assert.NoError(t, err)
	assert.Empty(t, empty)
}
