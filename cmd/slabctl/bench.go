package main

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kallsten/slabpool/internal/slablog"
	"github.com/kallsten/slabpool/slab"
)

var (
	benchSlots   int64
	benchWorkers int
	benchIters   int
)

func init() {
	rootCmd.AddCommand(newBenchCmd())
}

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark concurrent alloc/free throughput against a slab pool",
		Long: `bench runs W goroutines, each performing I alloc/read-back/free
cycles against a shared Pool[[8]byte], and reports throughput and
exhaustion-retry statistics.

Example:
  slabctl bench --slots 10000 --workers 100 --iters 1000`,
		RunE: runBench,
	}
	cmd.Flags().Int64Var(&benchSlots, "slots", 10000, "pool capacity in slots")
	cmd.Flags().IntVar(&benchWorkers, "workers", 16, "number of concurrent goroutines")
	cmd.Flags().IntVar(&benchIters, "iters", 1000, "alloc/free cycles per goroutine")
	return cmd
}

func runBench(cmd *cobra.Command, args []string) error {
	if benchSlots <= 0 || benchWorkers <= 0 || benchIters <= 0 {
		return fmt.Errorf("--slots, --workers, and --iters must all be positive")
	}

	type slotVal [8]byte
	layout, err := slab.DeriveLayout(8, 8, 16)
	if err != nil {
		return err
	}
	totalBytes := uintptr(layout.SlotSize) * (uintptr(benchSlots) + uintptr(layout.HeaderSlots))

	pool, err := slab.New[slotVal](totalBytes)
	if err != nil {
		return fmt.Errorf("constructing pool: %w", err)
	}

	slablog.Info("bench starting", "slots", pool.Capacity(), "workers", benchWorkers, "iters", benchIters)

	var retries int64
	var completed int64

	start := time.Now()
	var wg sync.WaitGroup
	for w := 0; w < benchWorkers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < benchIters; i++ {
				v, err := pool.Alloc(nil)
				if err != nil {
					atomic.AddInt64(&retries, 1)
					continue
				}
				v[0] = byte(id)
				_ = pool.Free(v)
				atomic.AddInt64(&completed, 1)
			}
		}(w)
	}
	wg.Wait()
	elapsed := time.Since(start)

	p := message.NewPrinter(language.English)
	printInfo("Benchmark results:\n")
	p.Printf("  Completed cycles: %d\n", completed)
	p.Printf("  Exhaustion hits:  %d\n", retries)
	printInfo("  Elapsed:          %s\n", elapsed)
	if elapsed > 0 {
		rate := float64(completed) / elapsed.Seconds()
		p.Printf("  Throughput:       %.0f cycles/sec\n", rate)
	}
	return nil
}
