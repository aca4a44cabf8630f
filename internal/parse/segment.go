// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"strings"

	"github.com/pdiddy/qbank/pkg/types"
)

// Block is the raw material of one question, accumulated between two
// question-start lines.
type Block struct {
	TitleLines  []string
	OptionLines []string

	// Tags holds the value of each tag kind seen for this block. A later
	// tag of the same kind replaces the earlier value, except that an
	// empty answer never replaces a non-empty one.
	Tags map[LineKind]string

	HasImage bool
}

func newBlock(first types.Paragraph) *Block {
	return &Block{
		TitleLines: []string{first.Text},
		Tags:       make(map[LineKind]string),
		HasImage:   first.HasMedia,
	}
}

// segmenter is the state of one segmentation pass: at most one open block
// and whether content lines still belong to its title.
type segmenter struct {
	lines           *LineClassifier
	current         *Block
	collectingTitle bool
	blocks          []Block
}

func (s *segmenter) feed(p types.Paragraph) {
	text := strings.TrimSpace(p.Text)
	if text == "" {
		return
	}
	p.Text = text

	line := s.lines.Classify(text)
	switch {
	case line.Kind == QuestionStart:
		s.flush()
		s.current = newBlock(p)
		s.collectingTitle = true

	case line.Kind == OptionStart:
		s.collectingTitle = false
		if s.current != nil {
			s.current.OptionLines = append(s.current.OptionLines, text)
		}

	case line.Kind.IsTag():
		if s.current == nil {
			return
		}
		if line.Kind == AnswerTag && line.Value == "" {
			return
		}
		s.current.Tags[line.Kind] = line.Value

	case s.collectingTitle:
		s.current.TitleLines = append(s.current.TitleLines, text)
		if p.HasMedia {
			s.current.HasImage = true
		}
	}
}

func (s *segmenter) flush() {
	if s.current != nil {
		s.blocks = append(s.blocks, *s.current)
		s.current = nil
	}
}

// Segment groups paragraphs into question blocks. Paragraphs before the
// first question start are discarded, as are content lines that follow
// an option line of the same block.
func Segment(lines *LineClassifier, paragraphs []types.Paragraph) []Block {
	s := &segmenter{lines: lines}
	for _, p := range paragraphs {
		s.feed(p)
	}
	s.flush()
	return s.blocks
}
