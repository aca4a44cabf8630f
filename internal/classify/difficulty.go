// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/width"

	"github.com/pdiddy/qbank/pkg/types"
)

// ErrDifficultyParse marks a difficulty token that is not a number.
var ErrDifficultyParse = errors.New("difficulty parse")

// ParseDifficulty maps a raw difficulty token to a level name. Values
// below the easy threshold are easy, a value equal to the medium
// threshold is medium, and everything else is hard. With different
// thresholds, values between easy and medium are hard as well.
//
// A token that is not a number yields the medium name together with an
// error wrapping ErrDifficultyParse. Full-width digits are accepted.
func ParseDifficulty(raw string, levels types.DifficultyLevels) (string, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(width.Narrow.String(raw)), 64)
	if err != nil {
		return levels.Medium.Name, fmt.Errorf("%w: %q is not a number", ErrDifficultyParse, raw)
	}

	switch {
	case v < levels.Easy.Threshold:
		return levels.Easy.Name, nil
	case v == levels.Medium.Threshold:
		return levels.Medium.Name, nil
	default:
		return levels.Hard.Name, nil
	}
}

// Difficulty is ParseDifficulty with the parse failure logged as a
// warning instead of returned.
func (c *Classifier) Difficulty(raw string) string {
	name, err := ParseDifficulty(raw, c.levels)
	if err != nil {
		c.log.Warn("unparseable difficulty, using medium", zap.String("value", raw), zap.Error(err))
	}
	return name
}
