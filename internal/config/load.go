// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads the question-extraction schema (separators, tag
// labels, option alphabet, judge vocabulary, difficulty levels and export
// columns) from a viper instance layered over the built-in defaults.
//
// Loading never fails the run: a configuration that cannot be read,
// decoded or validated is logged and replaced by the defaults as a whole.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/qbank/pkg/types"
)

// ErrConfigLoad marks a configuration file that exists but cannot be used.
var ErrConfigLoad = errors.New("config load")

// Load registers the defaults on v, reads the config file v points at (if
// any) and returns the merged configuration. Keys missing from the file
// keep their default values.
func Load(v *viper.Viper, log *zap.Logger) types.Config {
	if log == nil {
		log = zap.NewNop()
	}
	RegisterDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
			log.Debug("no config file found, using defaults")
		case errors.Is(err, fs.ErrNotExist):
			log.Info("config file does not exist, using defaults", zap.String("path", v.ConfigFileUsed()))
		default:
			return fallback(log, fmt.Errorf("%w: reading %s: %v", ErrConfigLoad, v.ConfigFileUsed(), err))
		}
	} else {
		log.Info("using config file", zap.String("path", v.ConfigFileUsed()))
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(decodeHook)); err != nil {
		return fallback(log, fmt.Errorf("%w: decoding: %v", ErrConfigLoad, err))
	}

	normalize(&cfg)
	if err := Validate(cfg); err != nil {
		return fallback(log, fmt.Errorf("%w: %v", ErrConfigLoad, err))
	}
	return cfg
}

// decodeHook keeps viper's default hooks and adds boolToString, so that an
// unquoted true or false in a string list stays a word instead of
// becoming "1" or "0".
var decodeHook = mapstructure.ComposeDecodeHookFunc(
	boolToString,
	mapstructure.StringToTimeDurationHookFunc(),
	mapstructure.StringToSliceHookFunc(","),
)

func boolToString(from, to reflect.Type, data any) (any, error) {
	if from.Kind() == reflect.Bool && to.Kind() == reflect.String {
		return strconv.FormatBool(data.(bool)), nil
	}
	return data, nil
}

func fallback(log *zap.Logger, err error) types.Config {
	log.Warn("config file rejected, using defaults", zap.Error(err))
	return types.DefaultConfig()
}

// RegisterDefaults sets every leaf key of the default configuration on v.
func RegisterDefaults(v *viper.Viper) {
	d := types.DefaultConfig()
	v.SetDefault("separators", d.Separators)
	v.SetDefault("tags.answer", d.Tags.Answer)
	v.SetDefault("tags.difficulty", d.Tags.Difficulty)
	v.SetDefault("tags.knowledge", d.Tags.Knowledge)
	v.SetDefault("tags.explanation", d.Tags.Explanation)
	v.SetDefault("difficulty_levels.easy.threshold", d.DifficultyLevels.Easy.Threshold)
	v.SetDefault("difficulty_levels.easy.name", d.DifficultyLevels.Easy.Name)
	v.SetDefault("difficulty_levels.medium.threshold", d.DifficultyLevels.Medium.Threshold)
	v.SetDefault("difficulty_levels.medium.name", d.DifficultyLevels.Medium.Name)
	v.SetDefault("difficulty_levels.hard.name", d.DifficultyLevels.Hard.Name)
	v.SetDefault("options", d.Options)
	v.SetDefault("judge_answers", d.JudgeAnswers)
	v.SetDefault("output.format", string(d.Output.Format))
	v.SetDefault("output.columns", d.Output.Columns)
}

func normalize(cfg *types.Config) {
	format := types.OutputFormat(strings.ToLower(strings.TrimSpace(string(cfg.Output.Format))))
	if format == "" {
		format = types.OutputExcel
	}
	cfg.Output.Format = format
}
