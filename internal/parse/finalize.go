// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"regexp"
	"strings"

	"github.com/pdiddy/qbank/internal/classify"
	"github.com/pdiddy/qbank/pkg/types"
)

// blankParens matches an answer slot such as "（ ）" or "（　　）".
var blankParens = regexp.MustCompile(`（[\s\p{Zs}]*）`)

const blankSlot = "（   ）"

// Finalizer turns raw blocks into classified question records.
type Finalizer struct {
	numbering  []*regexp.Regexp
	classifier *classify.Classifier
}

// NewFinalizer builds a Finalizer for cfg using c for the computed fields.
func NewFinalizer(cfg types.Config, c *classify.Classifier) *Finalizer {
	numbering := make([]*regexp.Regexp, len(cfg.Separators))
	for i, sep := range cfg.Separators {
		numbering[i] = regexp.MustCompile(`^\p{Nd}+` + regexp.QuoteMeta(sep) + `[\s\p{Zs}]*`)
	}
	return &Finalizer{numbering: numbering, classifier: c}
}

// Finalize resolves b into a Question.
func (f *Finalizer) Finalize(b Block) types.Question {
	title := strings.Join(b.TitleLines, " ")
	title = blankParens.ReplaceAllString(title, blankSlot)
	title = f.stripNumber(title)

	options := strings.Join(b.OptionLines, "\n")
	answer := b.Tags[AnswerTag]

	var difficulty string
	if raw, ok := b.Tags[DifficultyTag]; ok {
		difficulty = f.classifier.Difficulty(raw)
	}

	return types.Question{
		Type:        f.classifier.QuestionType(answer),
		Title:       title,
		Options:     options,
		OptionCount: f.classifier.CountOptions(options),
		Answer:      answer,
		Explanation: b.Tags[ExplanationTag],
		Knowledge:   b.Tags[KnowledgeTag],
		Difficulty:  difficulty,
		HasImage:    b.HasImage,
	}
}

// stripNumber removes the leading "<digits><separator>" using the first
// separator that matches.
func (f *Finalizer) stripNumber(title string) string {
	for _, re := range f.numbering {
		if loc := re.FindStringIndex(title); loc != nil {
			return title[loc[1]:]
		}
	}
	return title
}
