// Package main provides the GradKit CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "v0.1.0-dev"

var rootCmd = &cobra.Command{
	Use:   "gradkit",
	Short: "Forward-mode automatic differentiation and BFGS minimization",
	Long: "GradKit computes exact derivatives of numeric expressions by " +
		"forward-mode automatic differentiation and minimizes them with a " +
		"BFGS quasi-Newton solver.",
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("GradKit %s\n", version)
	},
}

func main() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(minimizeCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
