// Package config loads gridpath settings from a YAML file.
//
// The file is decoded into a generic map first and then into Config with
// mapstructure, so durations may be written as "5s" and omitted keys keep
// their defaults.
package config

import (
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/pdrpinto/gridpath/grid"
)

// Config is the full gridpath configuration.
type Config struct {
	Costs   grid.CostModel `mapstructure:"costs"`
	Symbols SymbolConfig   `mapstructure:"symbols"`
	Search  SearchConfig   `mapstructure:"search"`
	Server  ServerConfig   `mapstructure:"server"`
	Cache   CacheConfig    `mapstructure:"cache"`
	Log     LogConfig      `mapstructure:"log"`
}

// SymbolConfig holds the single-character map symbols.
type SymbolConfig struct {
	Wall  string `mapstructure:"wall"`
	Start string `mapstructure:"start"`
	Goal  string `mapstructure:"goal"`
}

type SearchConfig struct {
	Workers        int           `mapstructure:"workers"`
	ExpansionLimit int           `mapstructure:"expansion_limit"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// CacheConfig selects the solution cache. Backend is "none", "memory" or "redis".
type CacheConfig struct {
	Backend   string        `mapstructure:"backend"`
	Size      int           `mapstructure:"size"`
	RedisAddr string        `mapstructure:"redis_addr"`
	RedisDB   int           `mapstructure:"redis_db"`
	Password  string        `mapstructure:"password"`
	TTL       time.Duration `mapstructure:"ttl"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Costs:   grid.DefaultCosts(),
		Symbols: SymbolConfig{Wall: "#", Start: "o", Goal: "x"},
		Search:  SearchConfig{Timeout: 10 * time.Second},
		Server:  ServerConfig{Addr: ":8080", ShutdownTimeout: 5 * time.Second},
		Cache:   CacheConfig{Backend: "memory", Size: 256, RedisAddr: "localhost:6379", TTL: time.Hour},
		Log:     LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads path over the defaults. An empty path returns Default().
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           &cfg,
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks costs, symbols and the cache backend.
func (c Config) Validate() error {
	if err := c.Costs.Validate(); err != nil {
		return err
	}
	if _, err := c.GridSymbols(); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case "", "none", "memory", "redis":
	default:
		return fmt.Errorf("%w: unknown cache backend %q", grid.ErrConfiguration, c.Cache.Backend)
	}
	return nil
}

// GridSymbols converts the symbol strings to grid.Symbols.
func (c Config) GridSymbols() (grid.Symbols, error) {
	wall, err := singleRune("wall", c.Symbols.Wall)
	if err != nil {
		return grid.Symbols{}, err
	}
	start, err := singleRune("start", c.Symbols.Start)
	if err != nil {
		return grid.Symbols{}, err
	}
	goal, err := singleRune("goal", c.Symbols.Goal)
	if err != nil {
		return grid.Symbols{}, err
	}
	symbols := grid.Symbols{Wall: wall, Start: start, Goal: goal}
	if err := symbols.Validate(); err != nil {
		return grid.Symbols{}, err
	}
	return symbols, nil
}

func singleRune(name, value string) (rune, error) {
	if utf8.RuneCountInString(value) != 1 {
		return 0, fmt.Errorf("%w: %s symbol must be one character, got %q", grid.ErrConfiguration, name, value)
	}
	r, _ := utf8.DecodeRuneInString(value)
	return r, nil
}
