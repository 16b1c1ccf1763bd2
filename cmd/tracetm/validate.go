package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/tracetm/internal/validator"
	"github.com/aretw0/tracetm/pkg/adapters/file"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <machine-file>",
	Short: "Check a machine definition for consistency",
	Long:  `Parses the machine file and reports malformed definitions and unreachable states.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		report, err := runValidate(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		for _, w := range report.Warnings {
			fmt.Printf("warning: %s\n", w)
		}
		if err := report.Err(); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Machine is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(path string) (validator.Report, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return validator.Report{}, err
	}
	def, err := file.New(filepath.Dir(abs)).Load(context.Background(), filepath.Base(abs))
	if err != nil {
		return validator.Report{}, err
	}
	return validator.Inspect(*def), nil
}
