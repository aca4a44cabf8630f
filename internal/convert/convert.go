// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns question documents into grouped spreadsheets: each
// document is read, parsed into question records and exported.
package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/qbank/internal/export"
	"github.com/pdiddy/qbank/internal/parse"
	"github.com/pdiddy/qbank/pkg/types"
)

// DocumentReader returns the non-blank paragraphs of a document. The docx
// reader implements it; tests substitute fakes.
type DocumentReader interface {
	Read(path string) ([]types.Paragraph, error)
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Failed    int

	// Stats accumulates the question counts of every converted document.
	Stats types.Stats
}

// Total returns the total number of documents processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Failed
}

// HasFailures reports whether any document failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Converter runs the read, parse and export stages for one configuration.
type Converter struct {
	reader   DocumentReader
	parser   *parse.Parser
	exporter *export.Exporter
	format   types.OutputFormat
	log      *zap.Logger
}

// New builds a Converter. A nil logger discards output.
func New(cfg types.Config, reader DocumentReader, log *zap.Logger) *Converter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Converter{
		reader:   reader,
		parser:   parse.NewParser(cfg, log),
		exporter: export.New(cfg.Output, log),
		format:   cfg.Output.Format,
		log:      log,
	}
}

// Extract reads the document at path and returns its questions in
// document order.
func (c *Converter) Extract(path string) ([]types.Question, types.Stats, error) {
	paragraphs, err := c.reader.Read(path)
	if err != nil {
		c.log.Error("reading document", zap.String("path", path), zap.Error(err))
		return nil, types.Stats{}, err
	}
	questions, stats := c.parser.Parse(paragraphs)
	c.log.Info("document parsed",
		zap.String("path", path),
		zap.Int("paragraphs", len(paragraphs)),
		zap.Int("questions", len(questions)),
	)
	return questions, stats, nil
}

// ConvertDocument converts the document at path and writes the export to
// output, or to the default timestamped name when output is empty. It
// returns the path written and the question counts.
func (c *Converter) ConvertDocument(path, output string) (string, types.Stats, error) {
	c.log.Info("processing document", zap.String("path", path))

	questions, stats, err := c.Extract(path)
	if err != nil {
		return "", types.Stats{}, err
	}
	written, err := c.exporter.Export(questions, output)
	if err != nil {
		return "", types.Stats{}, err
	}
	logStats(c.log, stats)
	return written, stats, nil
}

// ConvertBatch converts every document in paths, writing each export to
// <outputDir>/<basename><ext>. Documents sharing a base name get a "_2",
// "_3", ... suffix so no output is overwritten within the batch. It prints
// per-document status to w and returns a summary. A failed document does
// not stop the batch.
func (c *Converter) ConvertBatch(paths []string, outputDir string, w io.Writer) BatchResult {
	result := BatchResult{Stats: types.NewStats()}

	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			for _, p := range paths {
				fmt.Fprintf(w, "failed:    %s (%v)\n", baseName(p), err)
				result.Failed++
			}
			writeBatchSummary(w, result)
			return result
		}
	}

	used := make(map[string]bool, len(paths))
	for _, p := range paths {
		natural := OutputPath(p, outputDir, c.format)
		out := uniquePath(natural, used)
		if out != natural {
			c.log.Warn("output name already used in batch, adding suffix",
				zap.String("path", p), zap.String("output", out))
		}
		written, stats, err := c.ConvertDocument(p, out)
		if err != nil {
			fmt.Fprintf(w, "failed:    %s (%v)\n", baseName(p), err)
			result.Failed++
			continue
		}
		fmt.Fprintf(w, "converted: %s -> %s (%d questions)\n", baseName(p), written, stats.Total)
		result.Converted++
		result.Stats.Merge(stats)
	}

	writeBatchSummary(w, result)
	return result
}

// OutputPath returns the export path for the document at path inside dir.
func OutputPath(path, dir string, format types.OutputFormat) string {
	return filepath.Join(dir, baseName(path)+format.Extension())
}

// uniquePath returns path, or path with a numeric suffix before the
// extension, such that the result is not in used. The result is recorded.
func uniquePath(path string, used map[string]bool) string {
	candidate := path
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for n := 2; used[candidate]; n++ {
		candidate = fmt.Sprintf("%s_%d%s", stem, n, ext)
	}
	used[candidate] = true
	return candidate
}

func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func writeBatchSummary(w io.Writer, r BatchResult) {
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d failed (total: %d)\n",
		r.Converted, r.Failed, r.Total())
}
