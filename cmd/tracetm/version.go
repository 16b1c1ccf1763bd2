package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/tracetm"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of tracetm",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tracetm version %s\n", strings.TrimSpace(tracetm.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
