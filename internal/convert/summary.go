// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/pdiddy/qbank/pkg/types"
)

// WriteSummary prints the question counts: the total, the choice,
// fill-blank and judgment counts, then the distribution over every type.
func WriteSummary(w io.Writer, s types.Stats) {
	fmt.Fprintln(w, "\n=== Question statistics ===")
	fmt.Fprintf(w, "Total:      %d\n", s.Total)
	fmt.Fprintf(w, "Choice:     %d\n", s.Choice())
	fmt.Fprintf(w, "Fill-blank: %d\n", s.ByType[types.FillBlank])
	fmt.Fprintf(w, "Judgment:   %d\n", s.ByType[types.Judgment])

	fmt.Fprintln(w, "\n=== Type distribution ===")
	for _, t := range types.QuestionTypes {
		fmt.Fprintf(w, "%s: %d\n", t, s.ByType[t])
	}
}

func logStats(log *zap.Logger, s types.Stats) {
	fields := []zap.Field{
		zap.Int("total", s.Total),
		zap.Int("choice", s.Choice()),
	}
	for _, t := range types.QuestionTypes {
		fields = append(fields, zap.Int(string(t), s.ByType[t]))
	}
	log.Info("question statistics", fields...)
}
