// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// TagLabels holds the ordered label lists that introduce each tag line.
// Labels are matched as literal prefixes of the trimmed paragraph text.
type TagLabels struct {
	// Answer labels, e.g. "【答案】".
	Answer []string `json:"answer" yaml:"answer" mapstructure:"answer"`

	// Difficulty labels, e.g. "【难度】".
	Difficulty []string `json:"difficulty" yaml:"difficulty" mapstructure:"difficulty"`

	// Knowledge labels, e.g. "【知识点】".
	Knowledge []string `json:"knowledge" yaml:"knowledge" mapstructure:"knowledge"`

	// Explanation labels, e.g. "【详解】".
	Explanation []string `json:"explanation" yaml:"explanation" mapstructure:"explanation"`
}

// DifficultyLevel pairs a numeric threshold with the label written to the export.
type DifficultyLevel struct {
	Threshold float64 `json:"threshold" yaml:"threshold" mapstructure:"threshold"`
	Name      string  `json:"name" yaml:"name" mapstructure:"name"`
}

// HardLevel names the level for values neither easy nor medium matched.
type HardLevel struct {
	Name string `json:"name" yaml:"name" mapstructure:"name"`
}

// DifficultyLevels holds the easy/medium thresholds and the three labels.
// Hard has no threshold: it is whatever neither easy nor medium matched.
type DifficultyLevels struct {
	Easy   DifficultyLevel `json:"easy" yaml:"easy" mapstructure:"easy"`
	Medium DifficultyLevel `json:"medium" yaml:"medium" mapstructure:"medium"`
	Hard   HardLevel       `json:"hard" yaml:"hard" mapstructure:"hard"`
}

// OutputFormat selects the export file format.
type OutputFormat string

const (
	OutputExcel OutputFormat = "excel"
	OutputCSV   OutputFormat = "csv"
)

// Extension returns the file extension (with dot) for the format.
func (f OutputFormat) Extension() string {
	if f == OutputCSV {
		return ".csv"
	}
	return ".xlsx"
}

// OutputConfig holds export settings.
type OutputConfig struct {
	// Format selects excel or csv (default excel).
	Format OutputFormat `json:"format" yaml:"format" mapstructure:"format"`

	// Columns is the ordered list of export column names.
	Columns []string `json:"columns" yaml:"columns" mapstructure:"columns"`
}

// Config is the read-only schema every pipeline stage is built from.
// It is constructed once per run and passed explicitly.
type Config struct {
	// Separators are the question-number delimiters, tried in order.
	Separators []string `json:"separators" yaml:"separators" mapstructure:"separators"`

	Tags TagLabels `json:"tags" yaml:"tags" mapstructure:"tags"`

	DifficultyLevels DifficultyLevels `json:"difficulty_levels" yaml:"difficulty_levels" mapstructure:"difficulty_levels"`

	// Options is the ordered option-letter alphabet.
	Options []string `json:"options" yaml:"options" mapstructure:"options"`

	// JudgeAnswers is the vocabulary that marks a true/false question.
	JudgeAnswers []string `json:"judge_answers" yaml:"judge_answers" mapstructure:"judge_answers"`

	Output OutputConfig `json:"output" yaml:"output" mapstructure:"output"`
}

// Column names of the default export layout.
const (
	ColumnType        = "题型"
	ColumnTitle       = "题干"
	ColumnOptions     = "选项"
	ColumnOptionCount = "选项数量"
	ColumnAnswer      = "答案"
	ColumnExplanation = "解析"
	ColumnKnowledge   = "所属知识点"
	ColumnDifficulty  = "难度"
)

// DefaultConfig returns the built-in configuration used when no file is
// given or the file cannot be used.
func DefaultConfig() Config {
	return Config{
		Separators: []string{"．", "."},
		Tags: TagLabels{
			Answer:      []string{"【答案】", "[答案]", "答案：", "答案:"},
			Difficulty:  []string{"【难度】", "[难度]", "难度：", "难度:"},
			Knowledge:   []string{"【知识点】", "[知识点]", "知识点：", "知识点:"},
			Explanation: []string{"【详解】", "[详解]", "解析：", "解析:"},
		},
		DifficultyLevels: DifficultyLevels{
			Easy:   DifficultyLevel{Threshold: 0.85, Name: "易"},
			Medium: DifficultyLevel{Threshold: 0.85, Name: "中"},
			Hard:   HardLevel{Name: "难"},
		},
		Options: []string{"A", "B", "C", "D"},
		JudgeAnswers: []string{
			"T", "F", "对", "错", "TRUE", "FALSE", "√", "×",
			"true", "false", "True", "False", "正确", "错误",
		},
		Output: OutputConfig{
			Format: OutputExcel,
			Columns: []string{
				ColumnType, ColumnTitle, ColumnOptions, ColumnOptionCount,
				ColumnAnswer, ColumnExplanation, ColumnKnowledge, ColumnDifficulty,
			},
		},
	}
}

// ConversionConfig holds settings for the convert stage.
type ConversionConfig struct {
	// OutputPath is the export file for a single-document run. Empty
	// selects a timestamped name in OutputDir.
	OutputPath string `json:"output_path,omitempty" yaml:"output_path,omitempty"`

	// OutputDir is the directory for batch outputs and default names.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// BankConfig holds settings for the question bank.
type BankConfig struct {
	// BankDir is the base directory for the bank (contains index/).
	BankDir string `json:"bank_dir" yaml:"bank_dir"`

	// MaxResults is the default maximum number of query results (default 50).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
