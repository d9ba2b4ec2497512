package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/gridpath/grid"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	symbols, err := cfg.GridSymbols()
	require.NoError(t, err)
	assert.Equal(t, grid.DefaultSymbols(), symbols)
	assert.Equal(t, grid.DefaultCosts(), cfg.Costs)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
costs:
  diagonal: 1.5
symbols:
  wall: "W"
search:
  workers: 4
  timeout: 250ms
cache:
  backend: redis
  redis_addr: cache:6379
  ttl: 30m
log:
  level: debug
  format: json
`))
	require.NoError(t, err)

	assert.Equal(t, 1.0, cfg.Costs.Orthogonal)
	assert.Equal(t, 1.5, cfg.Costs.Diagonal)
	assert.Equal(t, "W", cfg.Symbols.Wall)
	assert.Equal(t, "o", cfg.Symbols.Start)
	assert.Equal(t, 4, cfg.Search.Workers)
	assert.Equal(t, 250*time.Millisecond, cfg.Search.Timeout)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, "cache:6379", cfg.Cache.RedisAddr)
	assert.Equal(t, 30*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 256, cfg.Cache.Size)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "unknown key", yaml: "serch:\n  workers: 2\n"},
		{name: "bad yaml", yaml: "costs: [1, 2"},
		{name: "negative cost", yaml: "costs:\n  orthogonal: -1\n"},
		{name: "long symbol", yaml: "symbols:\n  wall: \"##\"\n"},
		{name: "clashing symbols", yaml: "symbols:\n  start: \"X\"\n"},
		{name: "unknown backend", yaml: "cache:\n  backend: memcached\n"},
		{name: "bad duration", yaml: "search:\n  timeout: soon\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestParseConfigurationKind(t *testing.T) {
	_, err := Parse([]byte("costs:\n  diagonal: 0\n"))
	assert.ErrorIs(t, err, grid.ErrConfiguration)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gridpath.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: 127.0.0.1:9000\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
