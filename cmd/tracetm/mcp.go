package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/tracetm"
	"github.com/aretw0/tracetm/internal/cli"
	"github.com/aretw0/tracetm/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp <machine-file>",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes a machine as MCP tools (simulate, describe_machine) so AI agents can trace it.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")
		limit, _ := cmd.Flags().GetInt("max-steps-limit")
		var storeOpts cli.StoreOptions
		storeOpts.Backend, _ = cmd.Flags().GetString("store")
		storeOpts.RedisURL, _ = cmd.Flags().GetString("redis")
		storeOpts.SQLitePath, _ = cmd.Flags().GetString("sqlite")

		// Logs go to stderr so they never corrupt JSON-RPC on stdout.
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
		slog.SetDefault(logger)
		log.SetOutput(os.Stderr)

		engine, err := tracetm.New(args[0], tracetm.WithLogger(logger))
		if err != nil {
			log.Fatalf("Error initializing tracetm: %v", err)
		}

		store, closeStore, err := cli.OpenStore(cmd.Context(), storeOpts)
		if err != nil {
			log.Fatalf("Error opening store: %v", err)
		}
		defer closeStore()

		srv := mcp.NewServer(engine, store, mcp.WithMaxStepsLimit(limit))

		switch transport {
		case "stdio":
			slog.Info("Starting tracetm MCP Server (Stdio)...", "machine", engine.Name)
			if err := srv.ServeStdio(); err != nil {
				slog.Error("MCP Server execution failed", "error", err)
				os.Exit(1)
			}
		case "sse":
			slog.Info("Starting tracetm MCP Server (SSE)", "port", port, "machine", engine.Name)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ServeSSE(ctx, port); err != nil && err != http.ErrServerClosed {
				slog.Error("MCP Server execution failed", "error", err)
				os.Exit(1)
			}
			slog.Info("MCP Server stopped gracefully")
		default:
			log.Fatalf("Unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
	mcpCmd.Flags().Int("max-steps-limit", mcp.DefaultMaxStepsLimit, "Largest max_steps a tool call may ask for")
	mcpCmd.Flags().String("store", cli.StoreNone, "Persist runs: none, memory, redis or sqlite")
	mcpCmd.Flags().String("redis", "", "Redis URL for --store=redis (default $"+cli.EnvRedisURL+")")
	mcpCmd.Flags().String("sqlite", "", "Database path for --store=sqlite (default .tracetm/runs.db)")
}
