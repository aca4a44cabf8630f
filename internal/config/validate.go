// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/qbank/pkg/types"
)

// Validate reports every problem that would make cfg unusable. Problems
// are joined so a single log line shows them all.
func Validate(cfg types.Config) error {
	var errs []error

	if len(cfg.Separators) == 0 {
		errs = append(errs, errors.New("separators: at least one separator is required"))
	}
	for i, sep := range cfg.Separators {
		if strings.TrimSpace(sep) == "" {
			errs = append(errs, fmt.Errorf("separators[%d]: must not be blank", i))
		}
	}

	if len(cfg.Options) == 0 {
		errs = append(errs, errors.New("options: at least one option letter is required"))
	}
	for i, opt := range cfg.Options {
		if utf8.RuneCountInString(opt) != 1 {
			errs = append(errs, fmt.Errorf("options[%d]: %q must be a single character", i, opt))
		}
	}

	for name, labels := range map[string][]string{
		"tags.answer":      cfg.Tags.Answer,
		"tags.difficulty":  cfg.Tags.Difficulty,
		"tags.knowledge":   cfg.Tags.Knowledge,
		"tags.explanation": cfg.Tags.Explanation,
	} {
		for i, label := range labels {
			if label == "" {
				errs = append(errs, fmt.Errorf("%s[%d]: must not be empty", name, i))
			}
		}
	}

	levels := cfg.DifficultyLevels
	if levels.Easy.Threshold < 0 || levels.Medium.Threshold < 0 {
		errs = append(errs, errors.New("difficulty_levels: thresholds must not be negative"))
	}
	if levels.Easy.Name == "" || levels.Medium.Name == "" || levels.Hard.Name == "" {
		errs = append(errs, errors.New("difficulty_levels: every level needs a name"))
	}

	if len(cfg.Output.Columns) == 0 {
		errs = append(errs, errors.New("output.columns: at least one column is required"))
	}
	switch cfg.Output.Format {
	case types.OutputExcel, types.OutputCSV:
	default:
		errs = append(errs, fmt.Errorf("output.format: unsupported format %q (use excel or csv)", cfg.Output.Format))
	}

	return errors.Join(errs...)
}
