// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Paragraph is one non-blank paragraph read from a source document.
type Paragraph struct {
	// Text is the paragraph text with surrounding whitespace trimmed.
	Text string `json:"text" yaml:"text"`

	// HasMedia reports whether the paragraph embeds a drawing or picture.
	HasMedia bool `json:"has_media" yaml:"has_media"`
}

// QuestionType is the category a question is exported under. The values
// are the labels written to the type column.
type QuestionType string

const (
	SingleChoice QuestionType = "单选题"
	MultiChoice  QuestionType = "多选题"
	Judgment     QuestionType = "判断题"
	FillBlank    QuestionType = "填空题"
	Unknown      QuestionType = "未知类型"
)

// QuestionTypes lists every type in export group order.
var QuestionTypes = []QuestionType{SingleChoice, MultiChoice, Judgment, FillBlank, Unknown}

// Question is a finalized, classified question record.
type Question struct {
	// Type is derived from Answer alone.
	Type QuestionType `json:"type" yaml:"type"`

	// Title is the question stem with numbering removed.
	Title string `json:"title" yaml:"title"`

	// Options holds the option lines joined by newlines.
	Options string `json:"options" yaml:"options"`

	// OptionCount is the number of distinct option letters present in Options.
	OptionCount int `json:"option_count" yaml:"option_count"`

	Answer      string `json:"answer" yaml:"answer"`
	Explanation string `json:"explanation" yaml:"explanation"`
	Knowledge   string `json:"knowledge" yaml:"knowledge"`

	// Difficulty is the mapped difficulty label, empty when no tag was present.
	Difficulty string `json:"difficulty" yaml:"difficulty"`

	// HasImage reports whether the question start or a title line carried media.
	HasImage bool `json:"has_image" yaml:"has_image"`
}
