// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/qbank/internal/classify"
	"github.com/pdiddy/qbank/pkg/types"
)

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "qbank.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func loadFile(t *testing.T, path string) (types.Config, *observer.ObservedLogs) {
	t.Helper()
	v := viper.New()
	v.SetConfigFile(path)
	log, logs := observedLogger()
	return Load(v, log), logs
}

func TestLoad_NoConfigFile(t *testing.T) {
	log, logs := observedLogger()
	v := viper.New()
	v.SetConfigName("qbank")
	v.AddConfigPath(t.TempDir())

	cfg := Load(v, log)

	assert.Equal(t, types.DefaultConfig(), cfg)
	assert.Zero(t, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	cfg, logs := loadFile(t, filepath.Join(t.TempDir(), "absent.yaml"))

	assert.Equal(t, types.DefaultConfig(), cfg)
	assert.Zero(t, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestLoad_PartialOverrideKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
options: [A, B, C, D, E]
tags:
  answer: ["Answer:"]
difficulty_levels:
  easy:
    threshold: 0.5
output:
  format: CSV
`)

	cfg, logs := loadFile(t, path)
	def := types.DefaultConfig()

	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, cfg.Options)
	assert.Equal(t, []string{"Answer:"}, cfg.Tags.Answer)
	assert.Equal(t, def.Tags.Difficulty, cfg.Tags.Difficulty)
	assert.Equal(t, def.Tags.Explanation, cfg.Tags.Explanation)
	assert.InDelta(t, 0.5, cfg.DifficultyLevels.Easy.Threshold, 1e-9)
	assert.Equal(t, def.DifficultyLevels.Easy.Name, cfg.DifficultyLevels.Easy.Name)
	assert.Equal(t, def.DifficultyLevels.Medium, cfg.DifficultyLevels.Medium)
	assert.Equal(t, types.OutputCSV, cfg.Output.Format)
	assert.Equal(t, def.Output.Columns, cfg.Output.Columns)
	assert.Equal(t, def.Separators, cfg.Separators)
	assert.Zero(t, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestLoad_MalformedFileFallsBackToDefaults(t *testing.T) {
	path := writeConfig(t, "options: [A, B\nseparators: :::\n")

	cfg, logs := loadFile(t, path)

	assert.Equal(t, types.DefaultConfig(), cfg)
	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "config file rejected, using defaults", warnings[0].Message)
}

func TestLoad_InvalidValuesFallBackEntirely(t *testing.T) {
	// The valid separator override must not survive: fallback is all-or-nothing.
	path := writeConfig(t, `
separators: ["、"]
options: [AB, C]
`)

	cfg, logs := loadFile(t, path)

	assert.Equal(t, types.DefaultConfig(), cfg)
	assert.Equal(t, 1, logs.FilterMessage("config file rejected, using defaults").Len())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*types.Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*types.Config) {}},
		{
			name:    "no separators",
			mutate:  func(c *types.Config) { c.Separators = nil },
			wantErr: "separators",
		},
		{
			name:    "blank separator",
			mutate:  func(c *types.Config) { c.Separators = []string{" "} },
			wantErr: "separators[0]",
		},
		{
			name:    "multi-character option",
			mutate:  func(c *types.Config) { c.Options = []string{"A", "BB"} },
			wantErr: "options[1]",
		},
		{
			name:    "empty label",
			mutate:  func(c *types.Config) { c.Tags.Knowledge = []string{""} },
			wantErr: "tags.knowledge[0]",
		},
		{
			name:    "negative threshold",
			mutate:  func(c *types.Config) { c.DifficultyLevels.Easy.Threshold = -1 },
			wantErr: "thresholds",
		},
		{
			name:    "unnamed level",
			mutate:  func(c *types.Config) { c.DifficultyLevels.Hard.Name = "" },
			wantErr: "needs a name",
		},
		{
			name:    "no columns",
			mutate:  func(c *types.Config) { c.Output.Columns = nil },
			wantErr: "output.columns",
		},
		{
			name:    "unknown format",
			mutate:  func(c *types.Config) { c.Output.Format = "pdf" },
			wantErr: "unsupported format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := types.DefaultConfig()
			tt.mutate(&cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qbank.yaml")
	require.NoError(t, WriteDefault(path))

	cfg, logs := loadFile(t, path)
	assert.Equal(t, types.DefaultConfig(), cfg)
	assert.Zero(t, logs.FilterLevelExact(zapcore.WarnLevel).Len())

	err := WriteDefault(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestLoad_UnquotedBooleansStayWords(t *testing.T) {
	path := writeConfig(t, `
judge_answers: [T, F, true, false, 对]
`)

	cfg, logs := loadFile(t, path)

	assert.Equal(t, []string{"T", "F", "true", "false", "对"}, cfg.JudgeAnswers)
	assert.Zero(t, logs.FilterLevelExact(zapcore.WarnLevel).Len())

	c := classify.New(cfg, nil)
	assert.Equal(t, types.Judgment, c.QuestionType("true"))
	assert.Equal(t, types.Judgment, c.QuestionType("FALSE"))
	assert.Equal(t, types.FillBlank, c.QuestionType("1"))
	assert.Equal(t, types.FillBlank, c.QuestionType("0"))
}

func TestMarshal_RoundTripsZeroThreshold(t *testing.T) {
	cfg := types.DefaultConfig()
	cfg.DifficultyLevels.Easy.Threshold = 0
	cfg.DifficultyLevels.Medium.Threshold = 0

	data, err := Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "threshold: 0")

	reloaded, logs := loadFile(t, writeConfig(t, string(data)))
	assert.Zero(t, logs.FilterLevelExact(zapcore.WarnLevel).Len())
	assert.Zero(t, reloaded.DifficultyLevels.Easy.Threshold)
	assert.Zero(t, reloaded.DifficultyLevels.Medium.Threshold)
	assert.Equal(t, cfg, reloaded)
}
