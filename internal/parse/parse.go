// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"go.uber.org/zap"

	"github.com/pdiddy/qbank/internal/classify"
	"github.com/pdiddy/qbank/pkg/types"
)

// Parser runs segmentation and finalization for one configuration.
type Parser struct {
	lines     *LineClassifier
	finalizer *Finalizer
	log       *zap.Logger
}

// NewParser builds a Parser from cfg. A nil logger discards output.
func NewParser(cfg types.Config, log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{
		lines:     NewLineClassifier(cfg),
		finalizer: NewFinalizer(cfg, classify.New(cfg, log)),
		log:       log,
	}
}

// Parse returns the questions found in paragraphs, in document order,
// together with their per-type counts.
func (p *Parser) Parse(paragraphs []types.Paragraph) ([]types.Question, types.Stats) {
	blocks := Segment(p.lines, paragraphs)

	questions := make([]types.Question, 0, len(blocks))
	stats := types.NewStats()
	for _, b := range blocks {
		q := p.finalizer.Finalize(b)
		p.log.Debug("question",
			zap.Int("index", len(questions)+1),
			zap.String("type", string(q.Type)),
			zap.String("title", q.Title),
		)
		questions = append(questions, q)
		stats.Add(q.Type)
	}
	return questions, stats
}
