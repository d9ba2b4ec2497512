package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/gridpath/solver"
)

func newTestRedis(t *testing.T, opts ...RedisOption) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	r := NewRedis(mr.Addr(), "", 0, opts...)
	t.Cleanup(func() { _ = r.Close() })
	return r, mr
}

func TestRedisGetPut(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t)
	require.NoError(t, r.Ping(ctx))

	_, ok, err := r.Get(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.Put(ctx, "abc", sampleSolution()))
	assert.True(t, mr.Exists("gridpath:solution:abc"))

	got, ok, err := r.Get(ctx, "abc")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sampleSolution(), got)
}

func TestRedisNoPathRoundTrip(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRedis(t)

	require.NoError(t, r.Put(ctx, "none", solver.Solution{Expanded: 12}))
	got, ok, err := r.Get(ctx, "none")
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, got.Found)
	assert.Equal(t, 12, got.Expanded)
}

func TestRedisTTLAndPrefix(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t, WithTTL(time.Minute), WithPrefix("test:"))

	require.NoError(t, r.Put(ctx, "k", sampleSolution()))
	assert.Equal(t, time.Minute, mr.TTL("test:k"))

	mr.FastForward(2 * time.Minute)
	_, ok, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCorruptEntry(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	r := NewRedisFromClient(client)
	defer r.Close()

	require.NoError(t, mr.Set("gridpath:solution:bad", "{not json"))
	_, _, err := r.Get(ctx, "bad")
	assert.Error(t, err)
}

func TestRedisServerDown(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t)
	mr.Close()

	_, _, err := r.Get(ctx, "k")
	assert.Error(t, err)
	assert.Error(t, r.Ping(ctx))
}
