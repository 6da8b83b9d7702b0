package storage

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: client, TTL: ttl}
}

func (c *RedisCache) MenuKey(lang string) string {
	return "menu:" + lang
}

func (c *RedisCache) GetMenu(ctx context.Context, lang string) ([]byte, error) {
	data, err := c.Client.Get(ctx, c.MenuKey(lang)).Bytes()
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (c *RedisCache) SetMenu(ctx context.Context, lang string, payload []byte) error {
	return c.Client.Set(ctx, c.MenuKey(lang), payload, c.TTL).Err()
}

// InvalidateMenu drops every cached language variant. Called after any staff
// mutation of categories or items.
func (c *RedisCache) InvalidateMenu(ctx context.Context) error {
	keys, err := c.Client.Keys(ctx, "menu:*").Result()
	if err != nil || len(keys) == 0 {
		return err
	}
	return c.Client.Del(ctx, keys...).Err()
}

func dailyKey(date string) string {
	return "dashboard:daily:" + date
}

// IncrOrderCounters bumps the per-day order count and revenue counters the
// dashboard reads.
func (c *RedisCache) IncrOrderCounters(ctx context.Context, date string, total float64) error {
	key := dailyKey(date)
	if err := c.Client.HIncrBy(ctx, key, "orders", 1).Err(); err != nil {
		return err
	}
	if err := c.Client.HIncrByFloat(ctx, key, "revenue", total).Err(); err != nil {
		return err
	}
	return c.Client.Expire(ctx, key, 7*24*time.Hour).Err()
}

// DecrRevenue backs a refund out of the day's revenue counter.
func (c *RedisCache) DecrRevenue(ctx context.Context, date string, total float64) error {
	return c.Client.HIncrByFloat(ctx, dailyKey(date), "revenue", -total).Err()
}

func (c *RedisCache) DailyOrderCounters(ctx context.Context, date string) (map[string]string, error) {
	return c.Client.HGetAll(ctx, dailyKey(date)).Result()
}
