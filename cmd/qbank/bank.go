// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/qbank/internal/bank"
	"github.com/pdiddy/qbank/internal/convert"
	"github.com/pdiddy/qbank/internal/docx"
	"github.com/pdiddy/qbank/pkg/types"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Manage the question bank (store, retrieve, export)",
	Long: `Bank manages a local SQLite question bank built from converted
documents. Use subcommands to add documents, query questions, or export.`,
	Annotations: map[string]string{fileLogAnnotation: "true"},
}

// --- store subcommand ---

var bankStoreCmd = &cobra.Command{
	Use:   "store <document.docx>...",
	Short: "Extract questions from documents into the question bank",
	Long: `Store extracts the questions of each document and saves them in the
question bank, then rewrites index/export.yaml. Documents unchanged since
the last run are skipped; changed documents have their questions replaced.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBankStore,
}

func runBankStore(cmd *cobra.Command, args []string) error {
	store, err := bank.NewStore(bankConfig(cmd), logger)
	if err != nil {
		return err
	}
	defer store.Close()

	conv := convert.New(loadConfig(), docx.Reader{}, logger)
	summary, err := store.Ingest(context.Background(), conv, args, os.Stdout)
	if err != nil {
		return err
	}
	if summary.HasFailures() {
		return fmt.Errorf("%d document(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- retrieve subcommand ---

var bankRetrieveCmd = &cobra.Command{
	Use:   "retrieve [query]",
	Short: "Query the question bank by text and filters",
	Long: `Retrieve searches the question bank for questions whose title, options
or explanation contain the query text, optionally filtered by type,
knowledge point or source document.`,
	RunE: runBankRetrieve,
}

func runBankRetrieve(cmd *cobra.Command, args []string) error {
	store, err := bank.NewStore(bankConfig(cmd), logger)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query, --type, --knowledge, or --document")
	}

	results, err := store.Retrieve(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatRetrieveOutput(results, jsonOutput)
}

func formatRetrieveOutput(results []bank.QueryResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-8s  %-40s  %-10s  %-20s  %s\n",
		"#", "Type", "Title", "Answer", "Document", "Pos")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for i, r := range results {
		fmt.Fprintf(os.Stdout, "%-4d  %-8s  %-40s  %-10s  %-20s  %d\n",
			i+1, r.Type, truncate(r.Title, 40), truncate(r.Answer, 10),
			truncate(r.Document, 20), r.Position)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// --- export subcommand ---

var bankExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the question bank to YAML, JSON or Excel",
	Long: `Export writes the full question bank (or a filtered subset) to
index/export.yaml, export.json or export.xlsx under the bank directory.
Supports the same filter flags as retrieve for partial exports. The Excel
export is grouped by question type like convert output.`,
	RunE: runBankExport,
}

func runBankExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := bank.NewStore(bankConfig(cmd), logger)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)
	ctx := context.Background()

	var ext string
	switch format {
	case "yaml", "":
		ext = "yaml"
		err = store.ExportYAML(ctx, opts)
	case "json":
		ext = "json"
		err = store.ExportJSON(ctx, opts)
	case "excel", "xlsx":
		ext = "xlsx"
		err = store.ExportExcel(ctx, opts, loadConfig().Output.Columns)
	default:
		return fmt.Errorf("unsupported format %q: use yaml, json or excel", format)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Exported to %s\n", store.ExportPath(ext))
	return nil
}

// --- shared helpers ---

func bankConfig(cmd *cobra.Command) types.BankConfig {
	bankDir, _ := cmd.Flags().GetString("bank-dir")
	if bankDir == "" {
		bankDir = "bank"
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")

	return types.BankConfig{
		BankDir:    bankDir,
		MaxResults: maxResults,
	}
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) bank.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	qType, _ := cmd.Flags().GetString("type")
	knowledge, _ := cmd.Flags().GetString("knowledge")
	document, _ := cmd.Flags().GetString("document")
	limit, _ := cmd.Flags().GetInt("limit")

	return bank.QueryOptions{
		Query:      queryText,
		Type:       types.QuestionType(qType),
		Knowledge:  knowledge,
		Document:   document,
		MaxResults: limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	bankCmd.PersistentFlags().String("bank-dir", "bank", "base directory for the question bank (contains index/)")
	bankCmd.PersistentFlags().Int("max-results", 50, "maximum number of query results")

	for _, c := range []*cobra.Command{bankRetrieveCmd, bankExportCmd} {
		c.Flags().String("query", "", "text contained in the title, options or explanation")
		c.Flags().String("type", "", "filter by question type: 单选题, 多选题, 判断题, 填空题, 未知类型")
		c.Flags().String("knowledge", "", "filter by knowledge point")
		c.Flags().String("document", "", "filter by source document file name")
	}
	bankRetrieveCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	bankRetrieveCmd.Flags().Bool("json", false, "output results as JSON")

	bankExportCmd.Flags().String("format", "yaml", "export format: yaml, json or excel")

	bankCmd.AddCommand(bankStoreCmd)
	bankCmd.AddCommand(bankRetrieveCmd)
	bankCmd.AddCommand(bankExportCmd)

	rootCmd.AddCommand(bankCmd)
}
