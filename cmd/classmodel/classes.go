// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/petar-djukic/classmodel/internal/report"
)

// newClassesCmd creates the "classes" command.
func newClassesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classes",
		Short: "List declared classes and interfaces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg, _ := cmd.Flags().GetString("package")

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			in, err := loadInspector(ctx)
			if err != nil {
				return err
			}
			decls, err := in.Declarations(pkg)
			if err != nil {
				return err
			}
			return report.Classes(cmd.OutOrStdout(), decls, reportConfig())
		},
	}

	cmd.Flags().StringP("package", "p", "", "Only list declarations of this package")

	return cmd
}

// newTreeCmd creates the "tree" command.
func newTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree [class-id]",
		Short: "Print the inheritance tree",
		Long:  "Tree prints the subclasses below the given class, or every inheritance tree when no class is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			in, err := loadInspector(ctx)
			if err != nil {
				return err
			}
			root := ""
			if len(args) == 1 {
				root = args[0]
			}
			tree, err := in.Tree(root)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write([]byte(tree))
			return err
		},
	}
}
