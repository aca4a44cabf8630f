// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the qbank CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/qbank/internal/config"
	"github.com/pdiddy/qbank/internal/logging"
	"github.com/pdiddy/qbank/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// logger is built in PersistentPreRunE from the logging flags.
	logger = zap.NewNop()

	closeLog = func() {}
)

// rootCmd is the base command for the qbank CLI.
var rootCmd = &cobra.Command{
	Use:   "qbank",
	Short: "Extract exam questions from Word documents into spreadsheets",
	Long: `qbank reads .docx documents containing numbered exam questions,
splits them into questions, classifies each question by its answer and
writes a spreadsheet grouped by question type.

The convert subcommand handles one or more documents. The bank subcommand
keeps extracted questions in a local SQLite question bank for searching
and combined exports.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")

		log, cleanup, err := logging.New(logging.Options{File: logFileFor(cmd), Verbose: verbose})
		if err != nil {
			return err
		}
		logger = log
		closeLog = cleanup
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeLog()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./qbank.yaml or ~/.config/qbank/qbank.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().String("log-file", "",
		"log file path (default "+logging.DefaultFile+" for convert and bank, empty disables file logging)")
}

// fileLogAnnotation marks commands that write the log file by default.
const fileLogAnnotation = "qbank.io/file-log"

// logFileFor returns the log file for cmd: the --log-file value when set,
// DefaultFile when cmd or a parent carries fileLogAnnotation, else none.
func logFileFor(cmd *cobra.Command) string {
	if f := cmd.Flags().Lookup("log-file"); f != nil && f.Changed {
		return f.Value.String()
	}
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[fileLogAnnotation] == "true" {
			return logging.DefaultFile
		}
	}
	return ""
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("qbank")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "qbank"))
		}
	}

	viper.SetEnvPrefix("QBANK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// loadConfig returns the extraction configuration for the current run.
func loadConfig() types.Config {
	return config.Load(viper.GetViper(), logger)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		closeLog()
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
