// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/petar-djukic/classmodel/internal/report"
	"github.com/petar-djukic/classmodel/pkg/inspect"
	"github.com/petar-djukic/classmodel/pkg/types"
)

// newInspectCmd creates the "inspect" command.
func newInspectCmd() *cobra.Command {
	views := make([]string, len(types.Views))
	for i, v := range types.Views {
		views[i] = string(v)
	}

	cmd := &cobra.Command{
		Use:   "inspect <class-id>",
		Short: "Report the members of a class",
		Long: "Inspect resolves a class against the loaded catalogs and reports its own, inherited, " +
			"overridden or complete member set, optionally narrowed by a filter such as \"public,method,!static\".",
		Args: cobra.ExactArgs(1),
		RunE: runInspect,
	}

	cmd.Flags().String("view", string(types.ViewAll), "Member set: "+strings.Join(views, ", "))
	cmd.Flags().StringP("filter", "f", "", "Filter expression (e.g. 'public,method,!abstract')")

	return cmd
}

// runInspect loads the catalogs and renders the class report.
func runInspect(cmd *cobra.Command, args []string) error {
	view, _ := cmd.Flags().GetString("view")
	filter, _ := cmd.Flags().GetString("filter")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	in, err := loadInspector(ctx)
	if err != nil {
		return err
	}

	r, err := in.Inspect(ctx, args[0], inspect.Query{View: types.View(view), Filter: filter})
	if err != nil {
		return err
	}
	return report.Class(cmd.OutOrStdout(), r, reportConfig())
}

// loadInspector creates an inspector from the global settings and loads it.
func loadInspector(ctx context.Context) (*inspect.Inspector, error) {
	in, err := inspect.New(inspectorConfig())
	if err != nil {
		return nil, fmt.Errorf("initialization failed: %w", err)
	}
	if err := in.Load(ctx); err != nil {
		return nil, fmt.Errorf("loading catalogs: %w", err)
	}
	return in, nil
}
