// Package main provides the CLI entry point for sheetlm-go.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ukaji3/sheetlm-go/pkg/sheetlm"
	"github.com/ukaji3/sheetlm-go/pkg/sheetlm/output"
)

var (
	outputPath     string
	pretty         bool
	vanilla        bool
	verbose        bool
	neighborhood   int
	minRunLength   int
	sparsityCutoff float64
	iouThreshold   float64
	pruneUniform   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sheetlm [input.xlsx]",
		Short: "Compress spreadsheets into a compact LLM-ready encoding",
		Long: `sheetlm-go compresses a spreadsheet's cell grid into a structure-preserving
JSON encoding: structural anchors, a lossless inverted index, and
format-aware region aggregation.`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.Flags().BoolVar(&vanilla, "vanilla", false, "Produce the uncompressed markdown-like encoding")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log per-stage progress")
	rootCmd.Flags().IntVar(&neighborhood, "k", 2, "Neighborhood distance around structural anchors")
	rootCmd.Flags().IntVar(&minRunLength, "min-run", 2, "Minimum numeric run length")
	rootCmd.Flags().Float64Var(&sparsityCutoff, "sparsity-cutoff", 0.9, "Maximum empty-cell fraction for anchor candidates")
	rootCmd.Flags().Float64Var(&iouThreshold, "iou-threshold", 0.8, "IoU above which overlapping candidates are suppressed")
	rootCmd.Flags().BoolVar(&pruneUniform, "prune-uniform", false, "Drop retained rows/columns uniform in value and format")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	if vanilla {
		sheets, err := sheetlm.VanillaEncode(inputPath)
		if err != nil {
			return fmt.Errorf("vanilla encoding failed: %w", err)
		}
		return write([]byte(output.VanillaToText(sheets)))
	}

	opts := sheetlm.DefaultOptions()
	opts.K = neighborhood
	opts.MinRunLength = minRunLength
	opts.SparsityCutoff = sparsityCutoff
	opts.IoUThreshold = iouThreshold
	opts.PruneHomogeneous = pruneUniform

	if verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer logger.Sync()
		opts.Logger = logger.Sugar()
	}

	wb, err := sheetlm.Encode(inputPath, opts)
	if err != nil {
		return fmt.Errorf("compression failed: %w", err)
	}

	jsonData, err := output.ToJSON(wb, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	return write(jsonData)
}

func write(data []byte) error {
	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	fmt.Println(strings.TrimRight(string(data), "\n"))
	return nil
}
