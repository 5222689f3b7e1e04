// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/petar-djukic/classmodel/internal/catalog"
	"github.com/petar-djukic/classmodel/internal/report"
)

// newValidateCmd creates the "validate" command.
func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check catalogs for decode, link and contract problems",
		Long: "Validate loads every catalog and reports files that fail to decode, references that do not resolve, " +
			"and concrete classes missing interface methods. It exits non-zero when any problem is found.",
		Args: cobra.NoArgs,
		RunE: runValidate,
	}

	cmd.Flags().BoolP("watch", "w", false, "Re-validate whenever a catalog file changes")

	return cmd
}

// runValidate loads the catalogs and prints every problem found. With
// --watch it keeps running and validates again after each change.
func runValidate(cmd *cobra.Command, args []string) error {
	watch, _ := cmd.Flags().GetBool("watch")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	out := cmd.OutOrStdout()
	if !watch {
		return validateOnce(ctx, out)
	}

	paths := viper.GetStringSlice("catalog")
	if len(paths) == 0 {
		return fmt.Errorf("--watch needs at least one --catalog path")
	}
	if err := validateOnce(ctx, out); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return catalog.Watch(ctx, catalog.WatchConfig{Paths: paths, Logger: logrus.StandardLogger()}, func() {
		if err := validateOnce(ctx, out); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
	})
}

func validateOnce(ctx context.Context, out io.Writer) error {
	in, err := loadInspector(ctx)
	if err != nil {
		return err
	}
	v, err := in.Validate(ctx)
	if err != nil {
		return err
	}

	cfg := reportConfig()
	if _, err := report.Problems(out, errors.Join(v.Problems...), cfg); err != nil {
		return err
	}
	if !v.OK() {
		return fmt.Errorf("%d problems in %d classes across %d packages", len(v.Problems), v.Classes, v.Packages)
	}
	if cfg.Format == report.FormatText {
		fmt.Fprintf(out, "ok: %d classes across %d packages\n", v.Classes, v.Packages)
	}
	return nil
}
