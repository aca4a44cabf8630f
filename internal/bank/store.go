// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bank keeps extracted questions in a SQLite question bank so that
// several documents can be searched and exported together.
package bank

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/pdiddy/qbank/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "questions.db"

	defaultMaxResults = 50
)

// Extractor returns the questions of one document. convert.Converter
// implements it.
type Extractor interface {
	Extract(path string) ([]types.Question, types.Stats, error)
}

// Store manages the question bank SQLite database.
type Store struct {
	db         *sql.DB
	bankDir    string
	maxResults int
	log        *zap.Logger
}

// NewStore opens or creates the question bank at bankDir/index/questions.db
// and creates the schema if it does not exist.
func NewStore(cfg types.BankConfig, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	dbDir := filepath.Join(cfg.BankDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{
		db:         db,
		bankDir:    cfg.BankDir,
		maxResults: maxResults,
		log:        log,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			file_mod_time TEXT NOT NULL,
			ingested_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS questions (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			type TEXT NOT NULL,
			title TEXT NOT NULL,
			options TEXT,
			option_count INTEGER,
			answer TEXT,
			explanation TEXT,
			knowledge TEXT,
			difficulty TEXT,
			has_image INTEGER NOT NULL DEFAULT 0,
			UNIQUE(document_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_questions_document ON questions(document_id)`,
		`CREATE INDEX IF NOT EXISTS idx_questions_type ON questions(type)`,
		`CREATE INDEX IF NOT EXISTS idx_questions_knowledge ON questions(knowledge)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// IngestSummary holds counts from a bank ingestion run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of documents processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// HasFailures reports whether any document failed ingestion.
func (s IngestSummary) HasFailures() bool {
	return s.Failed > 0
}

// Ingest extracts the questions of each document in paths and stores them.
// Documents whose modification time matches the stored one are skipped;
// changed documents have their questions replaced in one transaction. On
// any new or updated document it rewrites export.yaml.
func (s *Store) Ingest(ctx context.Context, ex Extractor, paths []string, w io.Writer) (IngestSummary, error) {
	var summary IngestSummary

	for _, p := range paths {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		name := filepath.Base(p)
		id, err := filepath.Abs(p)
		if err != nil {
			fmt.Fprintf(w, "failed   %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		info, err := os.Stat(p)
		if err != nil {
			fmt.Fprintf(w, "failed   %s: %v\n", name, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM documents WHERE id = ?`, id,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped  %s\n", name)
			summary.Skipped++
			continue
		}
		isUpdate := err == nil

		questions, _, err := ex.Extract(p)
		if err != nil {
			fmt.Fprintf(w, "failed   %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		if err := s.ingestDocument(ctx, id, name, modTime, questions); err != nil {
			s.log.Error("storing document", zap.String("path", p), zap.Error(err))
			fmt.Fprintf(w, "failed   %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated  %s (%d questions)\n", name, len(questions))
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexing %s (%d questions)\n", name, len(questions))
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)

	if summary.Indexed > 0 || summary.Updated > 0 {
		if err := s.ExportYAML(ctx, QueryOptions{}); err != nil {
			fmt.Fprintf(w, "warning: export.yaml write failed: %v\n", err)
		}
	}

	return summary, nil
}

func (s *Store) ingestDocument(ctx context.Context, id, name, modTime string, questions []types.Question) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM questions WHERE document_id = ?`, id); err != nil {
		return fmt.Errorf("deleting old questions: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (id, name, file_mod_time, ingested_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, file_mod_time=excluded.file_mod_time,
			ingested_at=excluded.ingested_at`,
		id, name, modTime, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting document: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO questions (document_id, position, type, title, options, option_count,
			answer, explanation, knowledge, difficulty, has_image)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, q := range questions {
		_, err := stmt.ExecContext(ctx,
			id, i+1, string(q.Type), q.Title, q.Options, q.OptionCount,
			q.Answer, q.Explanation, q.Knowledge, q.Difficulty, q.HasImage,
		)
		if err != nil {
			return fmt.Errorf("inserting question %d: %w", i+1, err)
		}
	}

	return tx.Commit()
}
