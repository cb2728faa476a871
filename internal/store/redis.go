package store

import (
	"context"
	"encoding/json"
	"fmt"

	"realestate-sim/internal/model"

	"github.com/redis/go-redis/v9"
)

// Redis stores entries as JSON in a single list so that several API
// replicas share one portfolio.
type Redis struct {
	client *redis.Client
	key    string
}

func NewRedis(addr, key string) *Redis {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return NewRedisWithClient(rdb, key)
}

func NewRedisWithClient(client *redis.Client, key string) *Redis {
	if key == "" {
		key = "realestate:portfolio"
	}
	return &Redis{client: client, key: key}
}

// Ping checks connectivity; used at startup.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) List(ctx context.Context) ([]model.PortfolioEntry, error) {
	vals, err := r.client.LRange(ctx, r.key, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]model.PortfolioEntry, 0, len(vals))
	for i, v := range vals {
		var e model.PortfolioEntry
		if err := json.Unmarshal([]byte(v), &e); err != nil {
			return nil, fmt.Errorf("decode entry %d: %w", i, err)
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *Redis) Add(ctx context.Context, e model.PortfolioEntry) error {
	if err := validateEntry(e); err != nil {
		return err
	}
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return r.client.RPush(ctx, r.key, raw).Err()
}

func (r *Redis) Get(ctx context.Context, id string) (model.PortfolioEntry, error) {
	entries, err := r.List(ctx)
	if err != nil {
		return model.PortfolioEntry{}, err
	}
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
	}
	return model.PortfolioEntry{}, ErrNotFound
}

func (r *Redis) Clear(ctx context.Context) error {
	return r.client.Del(ctx, r.key).Err()
}
