package main

import (
	"fmt"
	"os"

	"github.com/aretw0/tracetm"
	"github.com/aretw0/tracetm/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <machine-file>",
	Short: "Export the state diagram of a machine",
	Long: `Outputs a Mermaid diagram (graph LR) of the transition relation.
With --input, states visited while tracing that input are highlighted.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		engine, err := tracetm.New(args[0])
		if err != nil {
			fmt.Printf("Error initializing tracetm: %v\n", err)
			os.Exit(1)
		}

		var overlay *graph.GraphOverlay
		if cmd.Flags().Changed("input") {
			input, _ := cmd.Flags().GetString("input")
			maxSteps, _ := cmd.Flags().GetInt("max-steps")

			v, err := engine.Simulate(cmd.Context(), input, maxSteps)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
			overlay = graph.OverlayFromVerdict(v)
		}

		fmt.Print(graph.GenerateMermaid(engine.Inspect(), overlay))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("input", "", "Highlight the states visited on this input")
	graphCmd.Flags().IntP("max-steps", "n", 100, "Step bound for --input")
}
