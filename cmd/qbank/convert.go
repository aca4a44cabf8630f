// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/qbank/internal/convert"
	"github.com/pdiddy/qbank/internal/docx"
	"github.com/pdiddy/qbank/internal/export"
	"github.com/pdiddy/qbank/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <document.docx>...",
	Short: "Convert question documents to grouped spreadsheets",
	Long: `Convert reads each .docx document, splits it into numbered questions,
extracts the answer, difficulty, knowledge point and explanation tags,
classifies each question by its answer and writes a spreadsheet with one
group per question type.

With one document the output goes to --output, or to a timestamped
题库导出_YYYYMMDD_HHMMSS file in --output-dir. With several documents each
one is written to <output-dir>/<name>.xlsx (or .csv) and a batch summary
is printed.`,
	Args:        cobra.MinimumNArgs(1),
	RunE:        runConvert,
	Annotations: map[string]string{fileLogAnnotation: "true"},
}

func runConvert(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	outputDir, _ := cmd.Flags().GetString("output-dir")
	format, _ := cmd.Flags().GetString("format")
	maxSize, _ := cmd.Flags().GetInt64("max-size")

	cfg := loadConfig()
	if format != "" {
		cfg.Output.Format = types.OutputFormat(format)
		if cfg.Output.Format != types.OutputExcel && cfg.Output.Format != types.OutputCSV {
			return fmt.Errorf("unsupported format %q: use excel or csv", format)
		}
	}

	conv := convert.New(cfg, docx.Reader{MaxFileSize: maxSize}, logger)

	if len(args) == 1 {
		if output == "" {
			output = filepath.Join(outputDir, export.DefaultFileName(time.Now(), cfg.Output.Format))
			if outputDir != "" {
				if err := os.MkdirAll(outputDir, 0o755); err != nil {
					return fmt.Errorf("creating output directory: %w", err)
				}
			}
		}
		written, stats, err := conv.ConvertDocument(args[0], output)
		if err != nil {
			return err
		}
		convert.WriteSummary(os.Stdout, stats)
		fmt.Printf("\nOutput written to %s\n", written)
		return nil
	}

	if output != "" {
		return fmt.Errorf("--output applies to a single document; use --output-dir for several")
	}

	result := conv.ConvertBatch(args, outputDir, os.Stdout)
	convert.WriteSummary(os.Stdout, result.Stats)
	if result.HasFailures() {
		return fmt.Errorf("%d document(s) failed conversion", result.Failed)
	}
	return nil
}

func init() {
	convertCmd.Flags().StringP("output", "o", "", "output file for a single document (default: timestamped name)")
	convertCmd.Flags().String("output-dir", "", "directory for output files (default: current directory)")
	convertCmd.Flags().String("format", "", "output format: excel or csv (default: from config)")
	convertCmd.Flags().Int64("max-size", docx.DefaultMaxFileSize, "largest accepted document size in bytes")

	rootCmd.AddCommand(convertCmd)
}
