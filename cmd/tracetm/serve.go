package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/tracetm"
	"github.com/aretw0/tracetm/internal/cli"
	httpAdapter "github.com/aretw0/tracetm/pkg/adapters/http"
	"github.com/aretw0/tracetm/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve <machine-file>",
	Short: "Start the HTTP API for a machine",
	Long:  `Serves simulate, machine, run-history and Prometheus metrics endpoints over HTTP.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")
		debug, _ := cmd.Flags().GetBool("debug")
		level, _ := cmd.Flags().GetString("log-level")
		limit, _ := cmd.Flags().GetInt("max-steps-limit")
		var storeOpts cli.StoreOptions
		storeOpts.Backend, _ = cmd.Flags().GetString("store")
		storeOpts.RedisURL, _ = cmd.Flags().GetString("redis")
		storeOpts.SQLitePath, _ = cmd.Flags().GetString("sqlite")

		logger := cli.CreateLogger(debug, level)

		metrics, err := observability.NewMetrics(prometheus.NewRegistry())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		engine, err := tracetm.New(args[0],
			tracetm.WithLogger(logger),
			tracetm.WithLifecycleHooks(observability.Chain(metrics.Hooks(), observability.LoggingHooks(logger))),
		)
		if err != nil {
			fmt.Printf("Error initializing tracetm: %v\n", err)
			os.Exit(1)
		}

		store, closeStore, err := cli.OpenStore(cmd.Context(), storeOpts)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		defer closeStore()

		opts := []httpAdapter.ServerOption{
			httpAdapter.WithMetrics(metrics.Handler()),
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMaxStepsLimit(limit),
		}
		if store != nil {
			opts = append(opts, httpAdapter.WithStore(store))
		}

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: httpAdapter.NewHandler(engine, opts...),
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting tracetm server on %s\n", srv.Addr)
			fmt.Printf("Serving machine: %s\n", engine.Name)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("tracetm server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().Int("max-steps-limit", httpAdapter.DefaultMaxStepsLimit, "Largest max_steps a request may ask for")
	serveCmd.Flags().String("store", cli.StoreMemory, "Persist runs: none, memory, redis or sqlite")
	serveCmd.Flags().String("redis", "", "Redis URL for --store=redis (default $"+cli.EnvRedisURL+")")
	serveCmd.Flags().String("sqlite", "", "Database path for --store=sqlite (default .tracetm/runs.db)")
}
