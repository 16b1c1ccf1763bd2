package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tracetm",
	Short: "tracetm traces nondeterministic Turing machines",
	Long: `tracetm runs a nondeterministic Turing machine on one or more input strings,
exploring every branch breadth-first, and reports whether each string was accepted,
rejected, or cut off by the step bound, together with the configuration tree and its
degree of nondeterminism.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error); logging is off when unset")
}
