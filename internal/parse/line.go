// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package parse turns the paragraph stream of an exam document into
// question records. It classifies each paragraph (LineClassifier), groups
// paragraphs into raw question blocks (Segment) and finalizes every block
// into a types.Question (Finalizer).
package parse

import (
	"regexp"
	"strings"

	"github.com/pdiddy/qbank/pkg/types"
)

// LineKind is the role a paragraph plays in a question.
type LineKind int

const (
	Content LineKind = iota
	QuestionStart
	OptionStart
	AnswerTag
	DifficultyTag
	KnowledgeTag
	ExplanationTag
)

var lineKindNames = map[LineKind]string{
	Content:        "content",
	QuestionStart:  "question-start",
	OptionStart:    "option-start",
	AnswerTag:      "answer",
	DifficultyTag:  "difficulty",
	KnowledgeTag:   "knowledge",
	ExplanationTag: "explanation",
}

func (k LineKind) String() string {
	if s, ok := lineKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// IsTag reports whether k is one of the four tag kinds.
func (k LineKind) IsTag() bool {
	return k >= AnswerTag && k <= ExplanationTag
}

// Line is the classification of one paragraph.
type Line struct {
	Kind LineKind

	// Label is the tag label that matched; empty for non-tag lines.
	Label string

	// Value is the text after Label, trimmed; empty for non-tag lines.
	Value string
}

// tagRule binds a tag kind to its labels. The rules are tried in slice
// order and the first rule with a matching label wins.
type tagRule struct {
	kind   LineKind
	labels []string
}

// LineClassifier decides the LineKind of a paragraph. It holds no state
// beyond the compiled configuration.
type LineClassifier struct {
	starts   []*regexp.Regexp
	options  []string
	tagRules []tagRule
}

// NewLineClassifier compiles the question-start patterns and the tag
// dispatch table from cfg.
func NewLineClassifier(cfg types.Config) *LineClassifier {
	starts := make([]*regexp.Regexp, len(cfg.Separators))
	for i, sep := range cfg.Separators {
		starts[i] = regexp.MustCompile(`^\p{Nd}+` + regexp.QuoteMeta(sep))
	}
	return &LineClassifier{
		starts:  starts,
		options: cfg.Options,
		tagRules: []tagRule{
			{kind: AnswerTag, labels: cfg.Tags.Answer},
			{kind: DifficultyTag, labels: cfg.Tags.Difficulty},
			{kind: KnowledgeTag, labels: cfg.Tags.Knowledge},
			{kind: ExplanationTag, labels: cfg.Tags.Explanation},
		},
	}
}

// Classify returns the kind of text. Question starts are checked first,
// then option starts, then the tag table in priority order; anything else
// is Content.
func (c *LineClassifier) Classify(text string) Line {
	text = strings.TrimSpace(text)

	for _, re := range c.starts {
		if re.MatchString(text) {
			return Line{Kind: QuestionStart}
		}
	}

	for _, opt := range c.options {
		if strings.HasPrefix(text, opt+".") || strings.HasPrefix(text, opt+"．") {
			return Line{Kind: OptionStart}
		}
	}

	for _, rule := range c.tagRules {
		for _, label := range rule.labels {
			if strings.HasPrefix(text, label) {
				return Line{
					Kind:  rule.kind,
					Label: label,
					Value: strings.TrimSpace(text[len(label):]),
				}
			}
		}
	}

	return Line{Kind: Content}
}
