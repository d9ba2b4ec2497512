package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	httpAdapter "github.com/pdrpinto/gridpath/internal/adapters/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP JSON API",
	Long:  `Serves /solve, stepping sessions under /sessions (with a websocket stream) and Prometheus metrics on /metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		env, err := newEnvironment(cmd, os.Stderr)
		if err != nil {
			fmt.Printf("Error initializing gridpath: %v\n", err)
			os.Exit(1)
		}
		defer env.Close()

		addr := env.cfg.Server.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}

		handler := httpAdapter.NewHandler(env.solver,
			httpAdapter.WithSymbols(env.symbols),
			httpAdapter.WithLogger(env.logger),
			httpAdapter.WithMetricsHandler(promhttp.HandlerFor(env.registry, promhttp.HandlerOpts{})),
		)
		defer handler.Close()

		srv := &http.Server{
			Addr:    addr,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			env.logger.Info("starting gridpath server", "addr", srv.Addr, "cache", env.cfg.Cache.Backend)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			env.logger.Error("server error", "error", err)
			os.Exit(1)

		case sig := <-shutdown:
			env.logger.Info("shutting down", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			timeout := env.cfg.Server.ShutdownTimeout
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				env.logger.Warn("graceful shutdown did not complete", "timeout", timeout, "error", err)
				if err := srv.Close(); err != nil {
					env.logger.Error("error killing server", "error", err)
				}
			}
			env.logger.Info("gridpath server stopped")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on (overrides config)")
	serveCmd.Flags().String("cache", "memory", "Solution cache: none, memory or redis (overrides config)")
}
