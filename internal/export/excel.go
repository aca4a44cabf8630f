// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the exported questions.
const SheetName = "题库"

// HighlightColor is the fill of rows whose question carries an image.
const HighlightColor = "E6F3FF"

var (
	baseAlignment = &excelize.Alignment{WrapText: true, Vertical: "center", Horizontal: "left"}

	headerStyle    = &excelize.Style{Alignment: baseAlignment, Font: &excelize.Font{Bold: true}}
	dataStyle      = &excelize.Style{Alignment: baseAlignment}
	highlightStyle = &excelize.Style{
		Alignment: baseAlignment,
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{HighlightColor}},
	}
)

// renderExcel builds the workbook in memory and returns its bytes.
func renderExcel(columns []string, rows []Row) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]any, len(columns))
	for i, col := range columns {
		header[i] = col
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}

	for i, row := range rows {
		if row.IsSeparator() {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := row.Values(columns)
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := formatSheet(f, columns, rows); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// formatSheet sets column widths, the bold header, wrapped left-aligned
// cells and the highlight fill on image rows.
func formatSheet(f *excelize.File, columns []string, rows []Row) error {
	lastCol, err := excelize.ColumnNumberToName(len(columns))
	if err != nil {
		return fmt.Errorf("column range: %w", err)
	}

	for i, col := range columns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(SheetName, name, name, ColumnWidth(col)); err != nil {
			return fmt.Errorf("setting width of %s: %w", col, err)
		}
	}

	header, err := f.NewStyle(headerStyle)
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	data, err := f.NewStyle(dataStyle)
	if err != nil {
		return fmt.Errorf("creating data style: %w", err)
	}
	highlight, err := f.NewStyle(highlightStyle)
	if err != nil {
		return fmt.Errorf("creating highlight style: %w", err)
	}

	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", header); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}
	if len(rows) > 0 {
		if err := f.SetCellStyle(SheetName, "A2", fmt.Sprintf("%s%d", lastCol, len(rows)+1), data); err != nil {
			return fmt.Errorf("styling rows: %w", err)
		}
	}
	for i, row := range rows {
		if !row.Highlighted() {
			continue
		}
		r := i + 2
		if err := f.SetCellStyle(SheetName, fmt.Sprintf("A%d", r), fmt.Sprintf("%s%d", lastCol, r), highlight); err != nil {
			return fmt.Errorf("highlighting row %d: %w", r, err)
		}
	}
	return nil
}
