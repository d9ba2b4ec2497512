package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/pdrpinto/gridpath/solver"
)

// Redis implements solver.Cache on a Redis server.
type Redis struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

var _ solver.Cache = (*Redis)(nil)

type RedisOption func(*Redis)

// WithTTL sets the expiration for cached solutions.
func WithTTL(ttl time.Duration) RedisOption {
	return func(r *Redis) {
		r.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) RedisOption {
	return func(r *Redis) {
		r.prefix = prefix
	}
}

// NewRedis connects to address.
func NewRedis(address, password string, db int, opts ...RedisOption) *Redis {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewRedisFromClient(client, opts...)
}

// NewRedisFromClient wraps an existing client.
func NewRedisFromClient(client *backend.Client, opts ...RedisOption) *Redis {
	r := &Redis{
		client: client,
		prefix: "gridpath:solution:",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Redis) key(key string) string {
	return r.prefix + key
}

// Get loads a solution. A missing key is a miss, not an error.
func (r *Redis) Get(ctx context.Context, key string) (solver.Solution, bool, error) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return solver.Solution{}, false, nil
		}
		return solver.Solution{}, false, fmt.Errorf("failed to get from redis: %w", err)
	}
	var solution solver.Solution
	if err := json.Unmarshal(data, &solution); err != nil {
		return solver.Solution{}, false, fmt.Errorf("failed to unmarshal solution: %w", err)
	}
	return solution, true, nil
}

// Put stores a solution with the configured TTL (0 keeps it forever).
func (r *Redis) Put(ctx context.Context, key string, solution solver.Solution) error {
	data, err := json.Marshal(solution)
	if err != nil {
		return fmt.Errorf("failed to marshal solution: %w", err)
	}
	if err := r.client.Set(ctx, r.key(key), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Ping checks the connection.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the redis client.
func (r *Redis) Close() error {
	return r.client.Close()
}
