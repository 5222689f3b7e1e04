// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package inspect

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/classmodel/internal/catalog"
	"github.com/petar-djukic/classmodel/pkg/model"
	"github.com/petar-djukic/classmodel/pkg/types"
)

const shapesCatalog = `package: shapes
classes:
  - id: shapes.Shape
    members:
      - "abstract area(): number"
      - "name: string"
      - "private id: number"
      - "static count: number = 0"
      - "describe(): string"
  - id: shapes.Circle
    extends: shapes.Shape
    members:
      - "area(): number"
      - "radius: number = 1"
      - name: describe
        kind: method
        type: string
        doc: Circle description.
`

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func writeCatalogs(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func loadShapes(t *testing.T) *Inspector {
	t.Helper()
	dir := writeCatalogs(t, map[string]string{"shapes.yaml": shapesCatalog})
	in, err := New(Config{CatalogPaths: []string{dir}, NoBuiltins: true, Logger: quietLogger()})
	require.NoError(t, err)
	require.NoError(t, in.Load(context.Background()))
	return in
}

func names(rows []types.MemberRow) []string {
	var result []string
	for _, r := range rows {
		result = append(result, r.Name)
	}
	return result
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"no catalog at all", Config{NoBuiltins: true}},
		{"missing path", Config{CatalogPaths: []string{filepath.Join(t.TempDir(), "missing")}}},
		{"negative concurrency", Config{Concurrency: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestInspector_NotLoaded(t *testing.T) {
	in, err := New(Config{Logger: quietLogger()})
	require.NoError(t, err)

	_, err = in.Inspect(context.Background(), "js.Object", Query{})
	require.ErrorIs(t, err, ErrNotLoaded)
	_, err = in.Declarations("")
	require.ErrorIs(t, err, ErrNotLoaded)
	_, err = in.Tree("")
	require.ErrorIs(t, err, ErrNotLoaded)
	_, err = in.Validate(context.Background())
	require.ErrorIs(t, err, ErrNotLoaded)
}

func TestInspect_Views(t *testing.T) {
	in := loadShapes(t)

	tests := []struct {
		view types.View
		want []string
	}{
		{types.ViewOwn, []string{"area", "radius", "describe"}},
		{types.ViewInherited, []string{"area", "name", "describe", "count"}},
		{types.ViewOverridden, []string{"describe"}},
		{types.ViewAll, []string{"area", "radius", "describe", "name", "count"}},
		{types.ViewChain, []string{"area", "radius", "describe", "area", "name", "id", "describe", "count"}},
		{"", []string{"area", "radius", "describe", "name", "count"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.view), func(t *testing.T) {
			r, err := in.Inspect(context.Background(), "shapes.Circle", Query{View: tt.view})
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(r.Members))
			assert.Equal(t, len(tt.want), r.TotalMembers)
		})
	}
}

func TestInspect_OriginsAndOverrides(t *testing.T) {
	in := loadShapes(t)

	r, err := in.Inspect(context.Background(), "shapes.Circle", Query{View: types.ViewAll})
	require.NoError(t, err)

	assert.Equal(t, "shapes.Shape", r.SuperClass)
	assert.Equal(t, []string{"shapes.Shape"}, r.Ancestors)
	assert.False(t, r.Abstract)

	byName := make(map[string]types.MemberRow)
	for _, row := range r.Members {
		byName[row.Name] = row
	}
	assert.Equal(t, "shapes.Circle", byName["describe"].Origin)
	assert.Equal(t, "shapes.Shape", byName["describe"].Overrides)
	assert.Equal(t, "Circle description.", byName["describe"].Doc)
	assert.Empty(t, byName["area"].Overrides, "implementing an abstract method is not an override")
	assert.Equal(t, "shapes.Shape", byName["name"].Origin)
	assert.True(t, byName["count"].Static)
	assert.Equal(t, "public static count: number = 0", byName["count"].Signature)
}

func TestInspect_ChainOrigins(t *testing.T) {
	in := loadShapes(t)

	r, err := in.Inspect(context.Background(), "shapes.Circle", Query{View: types.ViewChain, Filter: "method"})
	require.NoError(t, err)

	var got []string
	for _, row := range r.Members {
		got = append(got, row.Origin+"."+row.Name)
	}
	assert.Equal(t, []string{
		"shapes.Circle.area", "shapes.Circle.describe",
		"shapes.Shape.area", "shapes.Shape.describe",
	}, got)
	assert.Equal(t, "shapes.Shape", r.Members[1].Overrides)
	assert.Empty(t, r.Members[3].Overrides)
}

// A member instance registered on both a parent and its child is reported
// against the nearest class holding it, per view.
func TestClassReport_SharedMember(t *testing.T) {
	grand := model.NewClass("app.Grand")
	parent := model.NewClass("app.Parent")
	child := model.NewClass("app.Child")
	require.NoError(t, parent.SetSuperClass(grand))
	require.NoError(t, child.SetSuperClass(parent))

	shared := model.NewAttribute("shared")
	grandOnly := model.NewMethod("ping")
	require.NoError(t, grand.AddProperty(shared))
	require.NoError(t, grand.AddProperty(grandOnly))
	require.NoError(t, parent.AddProperty(shared))
	require.NoError(t, child.AddProperty(shared))

	origins := func(view types.View) map[string][]string {
		t.Helper()
		r, err := classReport(child, view, "", model.FilterDescriptor{})
		require.NoError(t, err)
		result := make(map[string][]string)
		for _, row := range r.Members {
			result[row.Name] = append(result[row.Name], row.Origin)
		}
		return result
	}

	assert.Equal(t, map[string][]string{"shared": {"app.Child"}}, origins(types.ViewOwn))
	assert.Equal(t, map[string][]string{
		"shared": {"app.Parent"},
		"ping":   {"app.Grand"},
	}, origins(types.ViewInherited))
	assert.Equal(t, map[string][]string{
		"shared": {"app.Child"},
		"ping":   {"app.Grand"},
	}, origins(types.ViewAll))
	assert.Equal(t, map[string][]string{
		"shared": {"app.Child", "app.Parent", "app.Grand"},
		"ping":   {"app.Grand"},
	}, origins(types.ViewChain))

	r, err := classReport(child, types.ViewOverridden, "", model.FilterDescriptor{})
	require.NoError(t, err)
	require.Len(t, r.Members, 1)
	assert.Equal(t, "app.Parent", r.Members[0].Origin)

	r, err = classReport(child, types.ViewOwn, "", model.FilterDescriptor{})
	require.NoError(t, err)
	require.Len(t, r.Members, 1)
	assert.Equal(t, "app.Parent", r.Members[0].Overrides)
}

func TestInspect_Filter(t *testing.T) {
	in := loadShapes(t)

	r, err := in.Inspect(context.Background(), "shapes.Circle", Query{Filter: "static"})
	require.NoError(t, err)
	assert.Equal(t, []string{"count"}, names(r.Members))
	assert.Equal(t, 5, r.TotalMembers)
	assert.Equal(t, "static", r.Filter)

	r, err = in.Inspect(context.Background(), "shapes.Shape", Query{View: types.ViewOwn, Filter: "method,!abstract"})
	require.NoError(t, err)
	assert.Equal(t, []string{"describe"}, names(r.Members))
	assert.True(t, r.Abstract)
}

func TestInspect_Errors(t *testing.T) {
	in := loadShapes(t)
	ctx := context.Background()

	_, err := in.Inspect(ctx, "shapes.Square", Query{})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = in.Inspect(ctx, "shapes.Circle", Query{View: "everything"})
	require.ErrorIs(t, err, ErrInvalidQuery)

	_, err = in.Inspect(ctx, "shapes.Circle", Query{Filter: "bogus"})
	require.ErrorIs(t, err, ErrInvalidQuery)
	require.ErrorIs(t, err, model.ErrInvalidArgument)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = in.Inspect(cancelled, "shapes.Circle", Query{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDeclarations(t *testing.T) {
	in := loadShapes(t)

	decls, err := in.Declarations("shapes")
	require.NoError(t, err)
	require.Len(t, decls, 2)
	assert.Equal(t, "shapes.Circle", decls[0].ID)
	assert.Equal(t, "class", decls[0].Kind)
	assert.False(t, decls[0].Abstract)
	assert.True(t, decls[1].Abstract)

	_, err = in.Declarations("nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTree(t *testing.T) {
	in := loadShapes(t)

	tree, err := in.Tree("shapes.Shape")
	require.NoError(t, err)
	assert.Equal(t, "shapes.Shape\n└── shapes.Circle\n", tree)

	_, err = in.Tree("shapes.Square")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLoad_Problems(t *testing.T) {
	dir := writeCatalogs(t, map[string]string{
		"shapes.yaml":  shapesCatalog,
		"broken.yaml":  "package: [\n",
		"orphans.yaml": "package: orphans\nclasses:\n  - id: orphans.Lost\n    extends: shapes.Missing\n",
	})
	in, err := New(Config{CatalogPaths: []string{dir}, NoBuiltins: true, Logger: quietLogger()})
	require.NoError(t, err)
	require.NoError(t, in.Load(context.Background()))

	v, err := in.Validate(context.Background())
	require.NoError(t, err)
	assert.False(t, v.OK())
	require.Len(t, v.Problems, 2)
	assert.ErrorIs(t, v.Problems[0], catalog.ErrInvalidCatalog)
	assert.ErrorIs(t, v.Problems[1], catalog.ErrUnresolved)
	assert.Equal(t, 3, v.Classes)
	assert.Equal(t, 2, v.Packages)
}

func TestLoad_DeclarationErrorFails(t *testing.T) {
	dir := writeCatalogs(t, map[string]string{
		"a.yaml": "package: a\nclasses:\n  - id: a.Dup\n",
		"b.yaml": "package: a\nclasses:\n  - id: a.Dup\n",
	})
	in, err := New(Config{CatalogPaths: []string{dir}, NoBuiltins: true, Logger: quietLogger()})
	require.NoError(t, err)

	err = in.Load(context.Background())
	require.ErrorIs(t, err, catalog.ErrInvalidCatalog)
}

func TestBuiltins(t *testing.T) {
	in, err := New(Config{Logger: quietLogger()})
	require.NoError(t, err)
	require.NoError(t, in.Load(context.Background()))

	r, err := in.Inspect(context.Background(), "node.http.Server", Query{View: types.ViewOwn})
	require.NoError(t, err)
	for _, row := range r.Members {
		if row.Name == "listen" {
			assert.Equal(t, "node.net.Server", row.Overrides)
		} else {
			assert.Empty(t, row.Overrides, row.Name)
		}
	}

	v, err := in.Validate(context.Background())
	require.NoError(t, err)
	assert.True(t, v.OK(), "%v", v.Problems)
	assert.Zero(t, v.Contracts)
	assert.Empty(t, in.Problems())
}
