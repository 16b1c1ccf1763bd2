package main

import (
	"fmt"
	"os"

	"github.com/aretw0/tracetm/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <machine-file> [input...]",
	Short: "Trace a machine on one or more input strings",
	Long: `Simulates the machine on every input string and writes trace_<machine>.txt.
Use '_' for the empty string. Inputs and the step bound may also come from --config.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := cli.RunOptions{
			Program:     cmd.Root().Name(),
			MachinePath: args[0],
			Inputs:      args[1:],
		}
		opts.Debug, _ = cmd.Flags().GetBool("debug")
		opts.LogLevel, _ = cmd.Flags().GetString("log-level")
		opts.MaxSteps, _ = cmd.Flags().GetInt("max-steps")
		opts.Output, _ = cmd.Flags().GetString("output")
		opts.Parallelism, _ = cmd.Flags().GetInt("parallel")
		opts.TraceDir, _ = cmd.Flags().GetString("trace-dir")
		opts.NoTrace, _ = cmd.Flags().GetBool("no-trace")
		opts.Store.Backend, _ = cmd.Flags().GetString("store")
		opts.Store.RedisURL, _ = cmd.Flags().GetString("redis")
		opts.Store.SQLitePath, _ = cmd.Flags().GetString("sqlite")

		if path, _ := cmd.Flags().GetString("config"); path != "" {
			cfg, err := cli.LoadConfig(path)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
			cfg.Apply(&opts, cmd.Flags().Changed)
		}

		ctx, stop := cli.SignalContext(cmd.Context())
		defer stop()

		summary, err := cli.Execute(ctx, opts, os.Stdout)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if opts.Output != cli.OutputJSON {
			fmt.Fprintln(os.Stderr, summary)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntP("max-steps", "n", cli.DefaultMaxSteps, "Maximum number of expansion rounds per input")
	runCmd.Flags().StringP("output", "o", cli.OutputText, "Stdout format: text, json or pretty")
	runCmd.Flags().Int("parallel", 0, "Inputs simulated concurrently (default 4)")
	runCmd.Flags().String("trace-dir", ".", "Directory for the trace file")
	runCmd.Flags().Bool("no-trace", false, "Do not write a trace file")
	runCmd.Flags().String("store", cli.StoreNone, "Persist runs: none, memory, redis or sqlite")
	runCmd.Flags().String("redis", "", "Redis URL for --store=redis (default $"+cli.EnvRedisURL+")")
	runCmd.Flags().String("sqlite", "", "Database path for --store=sqlite (default .tracetm/runs.db)")
	runCmd.Flags().StringP("config", "c", "", "YAML run configuration")
}
