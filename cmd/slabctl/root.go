package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kallsten/slabpool/internal/slablog"
)

var (
	verbose bool
	jsonOut bool
)

var rootCmd = &cobra.Command{
	Use:   "slabctl",
	Short: "Inspect slab allocator layouts and benchmark throughput",
	Long: `slabctl reports the compile-time-derived layout of a fixed-capacity
slab allocator for a hypothetical element size and byte budget, and
benchmarks concurrent alloc/free throughput against a real pool.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Has no effect; output is always plain text")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		slablog.Init(slablog.Options{Enabled: verbose})
	}
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printInfo(format string, args ...interface{}) {
	fmt.Fprintf(os.Stdout, format, args...)
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}
