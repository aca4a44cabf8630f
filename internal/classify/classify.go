// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify derives the computed fields of a question record: its
// type (from the answer), its option count (from the joined option text)
// and its difficulty label (from the raw difficulty token).
package classify

import (
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/pdiddy/qbank/pkg/types"
)

// Classifier holds the configuration-derived lookup tables. It is safe
// for concurrent use once built.
type Classifier struct {
	options      []string
	optionSet    map[rune]bool
	judgeAnswers []string
	levels       types.DifficultyLevels
	log          *zap.Logger
}

// New builds a Classifier from cfg. A nil logger discards output.
func New(cfg types.Config, log *zap.Logger) *Classifier {
	if log == nil {
		log = zap.NewNop()
	}
	set := make(map[rune]bool, len(cfg.Options))
	for _, opt := range cfg.Options {
		for _, r := range opt {
			set[r] = true
		}
	}
	return &Classifier{
		options:      cfg.Options,
		optionSet:    set,
		judgeAnswers: cfg.JudgeAnswers,
		levels:       cfg.DifficultyLevels,
		log:          log,
	}
}

// QuestionType maps an answer to a question type. The checks run in a
// fixed order: empty answer, judge vocabulary, option letters, and
// finally fill-in-the-blank. A judge answer that is also made of option
// letters is therefore a judgment question.
func (c *Classifier) QuestionType(answer string) types.QuestionType {
	normalized := strings.ToUpper(strings.TrimSpace(answer))
	if normalized == "" {
		return types.Unknown
	}

	for _, judge := range c.judgeAnswers {
		if judge == answer || strings.ToUpper(judge) == normalized {
			c.log.Debug("classified", zap.String("answer", answer), zap.String("type", string(types.Judgment)))
			return types.Judgment
		}
	}

	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, normalized)

	letters := 0
	for _, r := range compact {
		if !c.optionSet[r] {
			c.log.Debug("classified", zap.String("answer", answer), zap.String("type", string(types.FillBlank)))
			return types.FillBlank
		}
		letters++
	}

	qt := types.MultiChoice
	if letters == 1 {
		qt = types.SingleChoice
	}
	c.log.Debug("classified", zap.String("answer", answer), zap.String("type", string(qt)))
	return qt
}

// CountOptions returns how many letters of the option alphabet appear in
// text as "X.", "X．" or "X ". Each letter counts once however often it
// appears, so the result does not depend on option order.
func (c *Classifier) CountOptions(text string) int {
	if text == "" {
		return 0
	}
	upper := strings.ToUpper(text)
	count := 0
	for _, opt := range c.options {
		if strings.Contains(upper, opt+".") || strings.Contains(upper, opt+"．") || strings.Contains(upper, opt+" ") {
			count++
		}
	}
	return count
}
