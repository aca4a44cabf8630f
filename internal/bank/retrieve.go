// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bank

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/qbank/pkg/types"
)

// QueryOptions holds parameters for question bank queries.
type QueryOptions struct {
	// Query matches as a substring of the title, options or explanation.
	Query string

	// Type filters by question type.
	Type types.QuestionType

	// Knowledge filters by knowledge point, matched as a substring.
	Knowledge string

	// Document filters by source document file name.
	Document string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Type == "" && q.Knowledge == "" && q.Document == ""
}

// QueryResult is a stored question with its source document and position.
type QueryResult struct {
	types.Question `yaml:",inline"`

	Document string `json:"document" yaml:"document"`
	Position int    `json:"position" yaml:"position"`
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern returns a LIKE pattern matching s anywhere in a value.
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// Retrieve queries the bank with an optional substring search and
// structured filters. Results are ordered by document name then position.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)

	qb.WriteString(
		`SELECT q.type, q.title, q.options, q.option_count, q.answer, q.explanation,
			q.knowledge, q.difficulty, q.has_image, d.name, q.position
		FROM questions q
		JOIN documents d ON q.document_id = d.id
		WHERE 1=1`)

	if opts.Query != "" {
		pattern := likePattern(opts.Query)
		qb.WriteString(` AND (q.title LIKE ? ESCAPE '\' OR q.options LIKE ? ESCAPE '\' OR q.explanation LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern, pattern)
	}

	if opts.Type != "" {
		qb.WriteString(` AND q.type = ?`)
		args = append(args, string(opts.Type))
	}

	if opts.Knowledge != "" {
		qb.WriteString(` AND q.knowledge LIKE ? ESCAPE '\'`)
		args = append(args, likePattern(opts.Knowledge))
	}

	if opts.Document != "" {
		qb.WriteString(` AND d.name = ?`)
		args = append(args, opts.Document)
	}

	qb.WriteString(` ORDER BY d.name, d.id, q.position LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying question bank: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var (
			qr    QueryResult
			qType string
		)
		if err := rows.Scan(
			&qType, &qr.Title, &qr.Options, &qr.OptionCount, &qr.Answer, &qr.Explanation,
			&qr.Knowledge, &qr.Difficulty, &qr.HasImage, &qr.Document, &qr.Position,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		qr.Type = types.QuestionType(qType)
		results = append(results, qr)
	}

	return results, rows.Err()
}

// Questions returns the question records of results in order.
func Questions(results []QueryResult) []types.Question {
	out := make([]types.Question, len(results))
	for i, r := range results {
		out[i] = r.Question
	}
	return out
}
