// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package catalog

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/classmodel/pkg/model"
	"github.com/petar-djukic/classmodel/pkg/types"
)

const animalsCatalog = `package: zoo
imports: [base]
interfaces:
  - id: zoo.Feeder
    methods:
      - "feed(food: string): boolean"
classes:
  - id: zoo.Animal
    extends: base.Entity
    implements: [zoo.Feeder]
    doc: |
      Any animal.

      @abstract
    members:
      - "abstract speak(): string"
      - "protected legs: number = 4"
      - "private secret: string"
      - "static count: number = 0"
  - id: zoo.Dog
    extends: zoo.Animal
    constructor: "constructor(name: string, [age: number])"
    members:
      - name: speak
        kind: method
        type: string
        body: return "woof";
      - "fetch(thing: *, [times: number]): boolean"
`

const baseCatalog = `package: base
source: lib/base
classes:
  - id: base.Entity
    members:
      - "id: string"
      - "toString(): string"
`

func testBuilder() Builder {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return Builder{Logger: l}
}

func decodeAll(t *testing.T, docs map[string]string) []*File {
	t.Helper()
	var files []*File
	for path, doc := range docs {
		f, err := DecodeBytes([]byte(doc), path)
		require.NoError(t, err)
		files = append(files, f)
	}
	return files
}

func TestBuild_LinksAcrossFiles(t *testing.T) {
	files := decodeAll(t, map[string]string{"zoo.yaml": animalsCatalog, "base.yaml": baseCatalog})

	cat, err := testBuilder().Build(files)
	require.NoError(t, err)

	dog := cat.Class("zoo.Dog")
	animal := cat.Class("zoo.Animal")
	entity := cat.Class("base.Entity")
	require.NotNil(t, dog)
	require.NotNil(t, animal)
	require.NotNil(t, entity)

	assert.Same(t, animal, dog.SuperClass())
	assert.Same(t, entity, animal.SuperClass())
	assert.Equal(t, "Dog", dog.Name())
	assert.Equal(t, "zoo.yaml", dog.SourcePath())

	feeder := cat.Interface("zoo.Feeder")
	require.NotNil(t, feeder)
	assert.Equal(t, []*model.Interface{feeder}, animal.Interfaces())
	assert.Equal(t, []*model.Interface{feeder}, dog.InheritedInterfaces())

	zoo := cat.Package("zoo")
	base := cat.Package("base")
	require.NotNil(t, zoo)
	assert.Same(t, base, zoo.Dependency("base"))
	assert.Equal(t, "lib/base", base.SourcePath())
	assert.Len(t, zoo.Classes(), 2)
	assert.Len(t, zoo.Interfaces(), 1)
	assert.Equal(t, []*model.Package{base, zoo}, cat.Packages())
}

func TestBuild_Members(t *testing.T) {
	files := decodeAll(t, map[string]string{"zoo.yaml": animalsCatalog, "base.yaml": baseCatalog})
	cat, err := testBuilder().Build(files)
	require.NoError(t, err)

	animal := cat.Class("zoo.Animal")
	assert.True(t, animal.IsAbstract())
	require.NotNil(t, animal.Comment())
	_, tagged := animal.Comment().Tag("abstract")
	assert.True(t, tagged)

	legs := animal.Property("legs", false)
	require.NotNil(t, legs)
	assert.Equal(t, types.Protected, legs.Visibility)
	assert.Equal(t, "number", legs.Type)
	assert.Equal(t, "4", legs.InitialValue)

	count := animal.Property("count", true)
	require.NotNil(t, count)
	assert.True(t, count.Static)

	dog := cat.Class("zoo.Dog")
	speak := dog.Property("speak", false)
	require.NotNil(t, speak)
	assert.Equal(t, types.MethodConcrete, speak.Kind())
	assert.Equal(t, `return "woof";`, speak.Body())
	assert.False(t, dog.IsAbstract())

	fetch := dog.Property("fetch", false)
	require.NotNil(t, fetch)
	assert.Equal(t, 1, fetch.NumRequiredParams())
	assert.Equal(t, 2, fetch.NumParams())
	assert.Equal(t, "public fetch(thing: *, [times: number]): boolean", fetch.Signature())

	ctor := dog.Constructor()
	require.NotNil(t, ctor)
	assert.Equal(t, 2, ctor.NumParams())

	feed := cat.Interface("zoo.Feeder").Method("feed", false)
	require.NotNil(t, feed)
	assert.Equal(t, types.MethodAbstract, feed.Kind())
}

func TestBuild_ResolutionThroughCatalog(t *testing.T) {
	files := decodeAll(t, map[string]string{"zoo.yaml": animalsCatalog, "base.yaml": baseCatalog})
	cat, err := testBuilder().Build(files)
	require.NoError(t, err)

	dog := cat.Class("zoo.Dog")
	inherited, err := dog.InheritedProperties()
	require.NoError(t, err)

	var names []string
	for _, m := range inherited {
		names = append(names, m.Name)
	}
	assert.ElementsMatch(t, []string{"id", "toString", "speak", "legs", "count"}, names)
	assert.NotContains(t, names, "secret")

	// Dog's concrete speak implements Animal's abstract speak; not an override.
	overridden, err := dog.OverriddenProperties(nil)
	require.NoError(t, err)
	assert.Empty(t, overridden)
}

func TestBuild_LinkErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{
			name:    "unknown superclass",
			doc:     "package: p\nclasses:\n  - id: p.A\n    extends: p.Missing\n",
			wantErr: ErrUnresolved,
		},
		{
			name:    "unknown interface",
			doc:     "package: p\nclasses:\n  - id: p.A\n    implements: [p.I]\n",
			wantErr: ErrUnresolved,
		},
		{
			name:    "unknown import",
			doc:     "package: p\nimports: [q]\n",
			wantErr: ErrUnresolved,
		},
		{
			name:    "inheritance cycle",
			doc:     "package: p\nclasses:\n  - id: p.A\n    extends: p.B\n  - id: p.B\n    extends: p.A\n",
			wantErr: model.ErrStructuralViolation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := DecodeBytes([]byte(tt.doc), "p.yaml")
			require.NoError(t, err)

			cat, err := testBuilder().Build([]*File{f})
			require.ErrorIs(t, err, tt.wantErr)
			require.NotNil(t, cat, "link errors still return the catalog")
		})
	}
}

func TestBuild_DeclarationErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"duplicate id", "package: p\nclasses:\n  - id: p.A\n  - id: p.A\n"},
		{"class without id", "package: p\nclasses:\n  - members: [\"x\"]\n"},
		{"bad signature", "package: p\nclasses:\n  - id: p.A\n    members: [\"run(\"]\n"},
		{"bad visibility", "package: p\nclasses:\n  - id: p.A\n    members:\n      - name: x\n        visibility: internal\n"},
		{"bad kind", "package: p\nclasses:\n  - id: p.A\n    members:\n      - name: x\n        kind: property\n"},
		{"value on method", "package: p\nclasses:\n  - id: p.A\n    members: [\"run() = 1\"]\n"},
		{"body on attribute", "package: p\nclasses:\n  - id: p.A\n    members:\n      - name: x\n        body: y\n"},
		{"concrete interface method", "package: p\ninterfaces:\n  - id: p.I\n    methods:\n      - name: run\n        kind: method\n"},
		{"constructor attribute", "package: p\nclasses:\n  - id: p.A\n    constructor: \"ctor: number\"\n"},
		{"malformed doc", "package: p\nclasses:\n  - id: p.A\n    doc: \"text\\n@bad{tag}\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := DecodeBytes([]byte(tt.doc), "p.yaml")
			require.NoError(t, err)

			_, err = testBuilder().Build([]*File{f})
			require.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestBuild_InterfaceMemberKinds(t *testing.T) {
	tests := []struct {
		name string
		kind string
	}{
		{"implicit", ""},
		{"canonical", "Abstract Method"},
		{"lower case", "abstract method"},
		{"extra spacing", "  Abstract   Method "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := "package: p\ninterfaces:\n  - id: p.I\n    methods:\n      - name: run\n"
			if tt.kind != "" {
				doc += "        kind: \"" + tt.kind + "\"\n"
			}
			f, err := DecodeBytes([]byte(doc), "p.yaml")
			require.NoError(t, err)

			cat, err := testBuilder().Build([]*File{f})
			require.NoError(t, err)
			run := cat.Interface("p.I").Method("run", false)
			require.NotNil(t, run)
			assert.Equal(t, types.MethodAbstract, run.Kind())
		})
	}
}

func TestBuild_ImplicitPackageDependency(t *testing.T) {
	files := decodeAll(t, map[string]string{
		"a.yaml": "package: a\nclasses:\n  - id: a.Base\n",
		"b.yaml": "package: b\nclasses:\n  - id: b.Derived\n    extends: a.Base\n",
	})

	cat, err := testBuilder().Build(files)
	require.NoError(t, err)
	assert.NotNil(t, cat.Package("b").Dependency("a"))
	assert.Nil(t, cat.Package("a").Dependency("b"))
}

func TestIndex(t *testing.T) {
	files := decodeAll(t, map[string]string{"zoo.yaml": animalsCatalog, "base.yaml": baseCatalog})
	cat, err := testBuilder().Build(files)
	require.NoError(t, err)

	ix := cat.Index()
	assert.Equal(t, 4, ix.Len())
	assert.Len(t, ix.ByKind(EntryClass), 3)
	assert.Len(t, ix.ByKind(EntryInterface), 1)
	assert.Len(t, ix.ByPackage("zoo"), 3)
	assert.Nil(t, ix.ByPackage("missing"))

	e, ok := ix.Lookup("zoo.Feeder")
	require.True(t, ok)
	assert.Equal(t, EntryInterface, e.Kind)
	assert.Equal(t, "zoo.yaml", e.File)
	assert.Equal(t, "interface", e.Kind.String())

	_, ok = ix.Lookup("zoo.Cat")
	assert.False(t, ok)
	assert.Nil(t, ix.Class("zoo.Feeder"))
	assert.Len(t, ix.All(), 4)
}
