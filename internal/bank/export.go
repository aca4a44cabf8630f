// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bank

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/qbank/internal/export"
	"github.com/pdiddy/qbank/pkg/types"
)

const exportLimit = 100000

// ExportPath returns the path of the bank export with the given extension
// (without dot).
func (s *Store) ExportPath(ext string) string {
	return filepath.Join(s.bankDir, indexDir, "export."+ext)
}

// ExportYAML writes the bank to index/export.yaml. It supports the same
// filters as Retrieve.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions) error {
	results, err := s.exportResults(ctx, opts)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(results)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(s.ExportPath("yaml"), data, 0o644)
}

// ExportJSON writes the bank to index/export.json. It supports the same
// filters as Retrieve.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions) error {
	results, err := s.exportResults(ctx, opts)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(s.ExportPath("json"), data, 0o644)
}

// ExportExcel writes the matching questions to index/export.xlsx as a
// grouped spreadsheet with the given columns.
func (s *Store) ExportExcel(ctx context.Context, opts QueryOptions, columns []string) error {
	results, err := s.exportResults(ctx, opts)
	if err != nil {
		return err
	}

	ex := export.New(types.OutputConfig{Format: types.OutputExcel, Columns: columns}, s.log)
	if _, err := ex.Export(Questions(results), s.ExportPath("xlsx")); err != nil {
		return err
	}
	return nil
}

func (s *Store) exportResults(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	opts.MaxResults = exportLimit
	results, err := s.Retrieve(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	s.log.Debug("bank export", zap.Int("questions", len(results)))
	if results == nil {
		results = []QueryResult{}
	}
	return results, nil
}
