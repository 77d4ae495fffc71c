package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kallsten/slabpool/slab"
)

var (
	infoTypeSize  int64
	infoTypeAlign int64
	infoBytes     int64
)

func init() {
	cmd := newInfoCmd()
	rootCmd.AddCommand(cmd)
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Report the derived layout for a hypothetical element type and byte budget",
		Long: `info computes the compile-time-derived layout of a slab pool —
index width, slot size, slot count, header slots, and capacity — for a
hypothetical element size and alignment, without constructing a pool.

Example:
  slabctl info --type-size 8 --align 8 --bytes 80080`,
		RunE: runInfo,
	}
	cmd.Flags().Int64Var(&infoTypeSize, "type-size", 8, "sizeof(T) in bytes")
	cmd.Flags().Int64Var(&infoTypeAlign, "align", 8, "alignof(T) in bytes")
	cmd.Flags().Int64Var(&infoBytes, "bytes", 4096, "total byte budget S")
	return cmd
}

func runInfo(cmd *cobra.Command, args []string) error {
	if infoTypeSize <= 0 || infoTypeAlign <= 0 || infoBytes <= 0 {
		return fmt.Errorf("--type-size, --align, and --bytes must all be positive")
	}

	layout, err := slab.DeriveLayout(uintptr(infoTypeSize), uintptr(infoTypeAlign), uintptr(infoBytes))
	if err != nil {
		return err
	}

	p := message.NewPrinter(language.English)

	printInfo("Layout:\n")
	printInfo("  IndexWidth:  %d bytes\n", layout.IndexWidth)
	printInfo("  SlotSize:    %d bytes\n", layout.SlotSize)
	p.Printf("  SlotCount:   %d slots\n", layout.SlotCount)
	printInfo("  HeaderSlots: %d\n", layout.HeaderSlots)
	p.Printf("  Capacity:    %d slots\n", layout.Capacity)
	p.Printf("  TotalBytes:  %d bytes\n", layout.TotalBytes)
	return nil
}
