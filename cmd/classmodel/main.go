// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command classmodel loads class catalogs and reports how members resolve
// through inheritance.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/petar-djukic/classmodel/internal/report"
	"github.com/petar-djukic/classmodel/pkg/inspect"
	"github.com/petar-djukic/classmodel/pkg/model"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:           "classmodel",
		Short:         "Class metadata and inheritance resolution",
		Long:          "classmodel loads YAML class catalogs, resolves inherited and overridden members, and reports them.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging()
		},
	}

	// Global flags.
	rootCmd.PersistentFlags().StringSlice("catalog", nil, "Catalog file or directory (repeatable)")
	rootCmd.PersistentFlags().Bool("no-builtins", false, "Do not load the builtin JavaScript and Node.js catalog")
	rootCmd.PersistentFlags().Int("concurrency", 0, "Decode workers per directory (0 = number of CPUs)")
	rootCmd.PersistentFlags().String("format", report.FormatText, "Output format: text or json")
	rootCmd.PersistentFlags().String("color", "auto", "Colored output: auto, always or never")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Shorthand for --log-level=debug")

	// Bind flags to viper.
	for _, name := range []string{"catalog", "no-builtins", "concurrency", "format", "color", "log-level", "verbose"} {
		viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}

	// Env vars: CLASSMODEL_CATALOG, CLASSMODEL_LOG_LEVEL, etc.
	viper.SetEnvPrefix("CLASSMODEL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Config file.
	viper.SetConfigName(".classmodel")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.ReadInConfig() // Ignore error; config file is optional.

	// Add commands.
	rootCmd.AddCommand(newInspectCmd())
	rootCmd.AddCommand(newClassesCmd())
	rootCmd.AddCommand(newTreeCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging configures the standard logrus logger from the log-level and
// verbose settings. The model package logs through the same logger.
func setupLogging() error {
	level, err := logrus.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		return err
	}
	if viper.GetBool("verbose") {
		level = logrus.DebugLevel
	}
	switch c := viper.GetString("color"); c {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid --color %q: want auto, always or never", c)
	}

	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    !colorEnabled(os.Stderr),
	})
	model.SetLogger(logrus.StandardLogger())
	return nil
}

// inspectorConfig builds the inspector config from viper settings.
func inspectorConfig() inspect.Config {
	return inspect.Config{
		CatalogPaths: viper.GetStringSlice("catalog"),
		NoBuiltins:   viper.GetBool("no-builtins"),
		Concurrency:  viper.GetInt("concurrency"),
		Logger:       logrus.StandardLogger(),
	}
}

// reportConfig builds the render config from viper settings.
func reportConfig() report.Config {
	return report.Config{
		Format: viper.GetString("format"),
		Color:  colorEnabled(os.Stdout),
	}
}

// colorEnabled resolves the color setting for f. In auto mode color is on
// when f is a terminal and NO_COLOR is unset.
func colorEnabled(f *os.File) bool {
	switch viper.GetString("color") {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print classmodel version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("classmodel %s\n", version)
		},
	}
}
