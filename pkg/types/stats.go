// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Stats counts questions per type for one or more documents.
type Stats struct {
	Total  int                  `json:"total" yaml:"total"`
	ByType map[QuestionType]int `json:"by_type" yaml:"by_type"`
}

// NewStats returns Stats with every type present at zero.
func NewStats() Stats {
	s := Stats{ByType: make(map[QuestionType]int, len(QuestionTypes))}
	for _, t := range QuestionTypes {
		s.ByType[t] = 0
	}
	return s
}

// Add counts one question of type t.
func (s *Stats) Add(t QuestionType) {
	if s.ByType == nil {
		*s = NewStats()
	}
	s.ByType[t]++
	s.Total++
}

// Merge adds the counts of o into s.
func (s *Stats) Merge(o Stats) {
	if s.ByType == nil {
		*s = NewStats()
	}
	for t, n := range o.ByType {
		s.ByType[t] += n
	}
	s.Total += o.Total
}

// Choice returns the number of single- and multi-choice questions.
func (s Stats) Choice() int {
	return s.ByType[SingleChoice] + s.ByType[MultiChoice]
}
