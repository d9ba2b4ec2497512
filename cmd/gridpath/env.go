package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/pdrpinto/gridpath/grid"
	"github.com/pdrpinto/gridpath/internal/cache"
	"github.com/pdrpinto/gridpath/internal/config"
	"github.com/pdrpinto/gridpath/internal/logging"
	"github.com/pdrpinto/gridpath/internal/metrics"
	"github.com/pdrpinto/gridpath/solver"
)

// environment is everything a command needs, built from config and flags.
type environment struct {
	cfg      config.Config
	logger   *slog.Logger
	symbols  grid.Symbols
	registry *prometheus.Registry
	solver   *solver.Solver
	closers  []io.Closer
}

func (e *environment) Close() {
	for _, c := range e.closers {
		if err := c.Close(); err != nil {
			e.logger.Warn("close failed", "error", err)
		}
	}
}

// newEnvironment loads the configuration and wires logger, metrics, cache and solver.
// logOutput receives log records; the mcp stdio transport needs stderr.
func newEnvironment(cmd *cobra.Command, logOutput io.Writer) (*environment, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Log.Level = level
	}
	if format, _ := cmd.Flags().GetString("log-format"); format != "" {
		cfg.Log.Format = format
	}
	if cmd.Flags().Lookup("cache") != nil && cmd.Flags().Changed("cache") {
		cfg.Cache.Backend, _ = cmd.Flags().GetString("cache")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(logOutput, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)

	symbols, err := cfg.GridSymbols()
	if err != nil {
		return nil, err
	}

	env := &environment{
		cfg:      cfg,
		logger:   logger,
		symbols:  symbols,
		registry: prometheus.NewRegistry(),
	}
	collector, err := metrics.NewCollector(env.registry)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	opts := []solver.Option{
		solver.WithCosts(cfg.Costs),
		solver.WithWorkers(cfg.Search.Workers),
		solver.WithExpansionLimit(cfg.Search.ExpansionLimit),
		solver.WithTimeout(cfg.Search.Timeout),
		solver.WithLogger(logger),
		solver.WithObserver(collector),
	}
	switch cfg.Cache.Backend {
	case "memory":
		opts = append(opts, solver.WithCache(cache.NewMemory(cfg.Cache.Size, cfg.Cache.TTL)))
	case "redis":
		rc := cache.NewRedis(cfg.Cache.RedisAddr, cfg.Cache.Password, cfg.Cache.RedisDB, cache.WithTTL(cfg.Cache.TTL))
		if err := rc.Ping(commandContext(cmd)); err != nil {
			rc.Close()
			return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Cache.RedisAddr, err)
		}
		env.closers = append(env.closers, rc)
		opts = append(opts, solver.WithCache(rc))
	}

	env.solver, err = solver.New(opts...)
	if err != nil {
		env.Close()
		return nil, err
	}
	return env, nil
}

// parseCell reads "col,row".
func parseCell(value string) (grid.Cell, error) {
	colText, rowText, ok := strings.Cut(value, ",")
	if !ok {
		return grid.Cell{}, fmt.Errorf("cell %q must be col,row", value)
	}
	col, err := strconv.Atoi(strings.TrimSpace(colText))
	if err != nil {
		return grid.Cell{}, fmt.Errorf("cell %q: bad column: %w", value, err)
	}
	row, err := strconv.Atoi(strings.TrimSpace(rowText))
	if err != nil {
		return grid.Cell{}, fmt.Errorf("cell %q: bad row: %w", value, err)
	}
	return grid.Cell{Col: col, Row: row}, nil
}

func readMap(path string) (string, error) {
	switch path {
	case "":
		return "", nil
	case "-":
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	default:
		data, err := os.ReadFile(path)
		return string(data), err
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
