// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"github.com/pdiddy/qbank/pkg/types"
)

// Row is one row of the grouped export. A Row with a nil Question is a
// blank separator between two type groups.
type Row struct {
	Question *types.Question
}

// IsSeparator reports whether r is a blank group separator.
func (r Row) IsSeparator() bool {
	return r.Question == nil
}

// Highlighted reports whether r is a data row whose question has an image.
func (r Row) Highlighted() bool {
	return r.Question != nil && r.Question.HasImage
}

// Layout groups questions by type in types.QuestionTypes order, keeping
// document order inside each group, and puts one separator row between
// consecutive non-empty groups. The result never starts or ends with a
// separator and never holds two separators in a row.
func Layout(questions []types.Question) []Row {
	var rows []Row
	for _, qt := range types.QuestionTypes {
		var group []Row
		for i := range questions {
			if questions[i].Type == qt {
				group = append(group, Row{Question: &questions[i]})
			}
		}
		if len(group) == 0 {
			continue
		}
		if len(rows) > 0 {
			rows = append(rows, Row{})
		}
		rows = append(rows, group...)
	}
	return rows
}

// columnWidths are the display widths of the known columns.
var columnWidths = map[string]float64{
	types.ColumnType:        12,
	types.ColumnTitle:       60,
	types.ColumnOptions:     40,
	types.ColumnOptionCount: 10,
	types.ColumnAnswer:      15,
	types.ColumnExplanation: 50,
	types.ColumnKnowledge:   30,
	types.ColumnDifficulty:  10,
}

const defaultColumnWidth = 20

// ColumnWidth returns the display width for a column name.
func ColumnWidth(column string) float64 {
	if w, ok := columnWidths[column]; ok {
		return w
	}
	return defaultColumnWidth
}

// knownColumn reports whether column maps to a question field.
func knownColumn(column string) bool {
	_, ok := columnWidths[column]
	return ok
}

// Cell returns the value of column for q. Unknown columns are empty.
func Cell(column string, q *types.Question) any {
	switch column {
	case types.ColumnType:
		return string(q.Type)
	case types.ColumnTitle:
		return q.Title
	case types.ColumnOptions:
		return q.Options
	case types.ColumnOptionCount:
		return q.OptionCount
	case types.ColumnAnswer:
		return q.Answer
	case types.ColumnExplanation:
		return q.Explanation
	case types.ColumnKnowledge:
		return q.Knowledge
	case types.ColumnDifficulty:
		return q.Difficulty
	default:
		return ""
	}
}

// Values returns the cells of r for columns. Separator rows are all empty.
func (r Row) Values(columns []string) []any {
	values := make([]any, len(columns))
	for i, col := range columns {
		if r.Question == nil {
			values[i] = ""
			continue
		}
		values[i] = Cell(col, r.Question)
	}
	return values
}
