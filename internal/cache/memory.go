// Package cache implements solver.Cache in memory and on Redis.
package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/pdrpinto/gridpath/solver"
)

// Memory is a bounded least-recently-used cache with optional expiry.
// Safe for concurrent use.
type Memory struct {
	lru *expirable.LRU[string, solver.Solution]
}

var _ solver.Cache = (*Memory)(nil)

// NewMemory returns a cache holding at most capacity solutions, each for at
// most ttl. A zero ttl keeps entries until they are evicted.
func NewMemory(capacity int, ttl time.Duration) *Memory {
	if capacity <= 0 {
		capacity = 1
	}
	return &Memory{lru: expirable.NewLRU[string, solver.Solution](capacity, nil, ttl)}
}

// Get returns a copy of the cached solution.
func (m *Memory) Get(ctx context.Context, key string) (solver.Solution, bool, error) {
	solution, ok := m.lru.Get(key)
	if !ok {
		return solver.Solution{}, false, nil
	}
	return clone(solution), true, nil
}

// Put stores a copy of solution, evicting the least recently used entry when full.
func (m *Memory) Put(ctx context.Context, key string, solution solver.Solution) error {
	m.lru.Add(key, clone(solution))
	return nil
}

// Len returns the number of cached solutions.
func (m *Memory) Len() int {
	return m.lru.Len()
}

func clone(s solver.Solution) solver.Solution {
	out := s
	if s.Path != nil {
		out.Path = append(out.Path[:0:0], s.Path...)
	}
	if s.Moves != nil {
		out.Moves = append(out.Moves[:0:0], s.Moves...)
	}
	return out
}
