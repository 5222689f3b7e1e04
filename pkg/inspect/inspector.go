// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package inspect

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/petar-djukic/classmodel/internal/catalog"
	"github.com/petar-djukic/classmodel/internal/hierarchy"
	"github.com/petar-djukic/classmodel/pkg/model"
	"github.com/petar-djukic/classmodel/pkg/types"
)

// Inspector loads catalogs and resolves class queries against them. Load
// must succeed before any query; an Inspector is not safe for concurrent
// Load calls.
type Inspector struct {
	cfg      Config
	log      logrus.FieldLogger
	cat      *catalog.Catalog
	problems []error
}

// New validates the config and returns an Inspector. It does not read any
// catalog; that happens in Load.
func New(cfg Config) (*Inspector, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Inspector{cfg: cfg, log: log}, nil
}

// validateConfig checks that at least one catalog source exists.
func validateConfig(cfg Config) error {
	if cfg.NoBuiltins && len(cfg.CatalogPaths) == 0 {
		return fmt.Errorf("no catalog: builtins disabled and no catalog paths given")
	}
	for _, p := range cfg.CatalogPaths {
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("catalog path %q does not exist", p)
		}
	}
	if cfg.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative")
	}
	return nil
}

// Load scans the configured catalog paths, adds the builtin catalog unless
// disabled, and links everything. Files that fail to decode and unresolved
// links are recorded as problems and do not fail Load; duplicate
// declarations and invalid members do.
func (in *Inspector) Load(ctx context.Context) error {
	var files []*catalog.File
	var problems []error

	if !in.cfg.NoBuiltins {
		builtins, err := catalog.BuiltinFiles()
		if err != nil {
			return err
		}
		files = append(files, builtins...)
	}

	if len(in.cfg.CatalogPaths) > 0 {
		res, err := catalog.ScanPaths(ctx, in.cfg.CatalogPaths, in.cfg.Concurrency)
		if err != nil {
			return fmt.Errorf("scanning catalogs: %w", err)
		}
		for _, se := range res.Errors {
			in.log.WithField("file", se.FilePath).WithError(se.Err).Warn("skipping catalog file")
			problems = append(problems, se)
		}
		files = append(files, res.Files...)
	}

	cat, err := catalog.Builder{Logger: in.log}.Build(files)
	if cat == nil {
		return fmt.Errorf("building catalog: %w", err)
	}
	if err != nil {
		in.log.WithError(err).Warn("catalog has unresolved links")
		problems = append(problems, flatten(err)...)
	}

	in.cat = cat
	in.problems = problems
	in.log.WithFields(logrus.Fields{
		"files":    len(files),
		"classes":  len(cat.Index().ByKind(catalog.EntryClass)),
		"problems": len(problems),
	}).Info("catalog loaded")
	return nil
}

// Problems returns the non-fatal problems recorded by the last Load.
func (in *Inspector) Problems() []error {
	return slices.Clone(in.problems)
}

// Inspect resolves the members of the class with the given id.
func (in *Inspector) Inspect(ctx context.Context, classID string, q Query) (*types.ClassReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	class, err := in.class(classID)
	if err != nil {
		return nil, err
	}

	view := q.View
	if view == "" {
		view = types.ViewAll
	}
	if !view.Valid() {
		return nil, fmt.Errorf("%w: unknown view %q", ErrInvalidQuery, view)
	}
	desc, err := model.ParseFilterDescriptor(q.Filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}

	r, err := classReport(class, view, q.Filter, desc)
	if err != nil {
		return nil, err
	}

	in.log.WithFields(logrus.Fields{
		"class":   class.ID(),
		"view":    view,
		"members": len(r.Members),
	}).Debug("class inspected")
	return r, nil
}

// Declarations lists every class and interface, sorted by id. A non-empty
// pkg restricts the listing to that package.
func (in *Inspector) Declarations(pkg string) ([]types.Declaration, error) {
	if in.cat == nil {
		return nil, ErrNotLoaded
	}
	entries := in.cat.Index().All()
	if pkg != "" {
		if in.cat.Package(pkg) == nil {
			return nil, fmt.Errorf("%w: package %q", ErrNotFound, pkg)
		}
		entries = in.cat.Index().ByPackage(pkg)
	}

	result := make([]types.Declaration, 0, len(entries))
	for _, e := range entries {
		d := types.Declaration{ID: e.ID, Kind: e.Kind.String(), Package: e.Package, File: e.File}
		if c := in.cat.Class(e.ID); c != nil {
			d.Abstract = c.IsAbstract()
		}
		result = append(result, d)
	}
	slices.SortFunc(result, func(a, b types.Declaration) int { return cmp.Compare(a.ID, b.ID) })
	return result, nil
}

// Tree renders the inheritance tree below root, or every tree when root is
// empty.
func (in *Inspector) Tree(root string) (string, error) {
	if in.cat == nil {
		return "", ErrNotLoaded
	}
	if root != "" {
		if _, err := in.class(root); err != nil {
			return "", err
		}
	}
	var classes []*model.Class
	for _, e := range in.cat.Index().ByKind(catalog.EntryClass) {
		classes = append(classes, in.cat.Class(e.ID))
	}
	return hierarchy.BuildGraph(classes).Tree(root), nil
}

// Validate reports every problem of the loaded catalog: files that failed to
// decode, unresolved links and unimplemented interface methods.
func (in *Inspector) Validate(ctx context.Context) (*Validation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if in.cat == nil {
		return nil, ErrNotLoaded
	}
	contracts, err := in.cat.CheckContracts()
	if err != nil {
		return nil, err
	}

	v := &Validation{
		Problems:  in.Problems(),
		Classes:   len(in.cat.Index().ByKind(catalog.EntryClass)),
		Packages:  len(in.cat.Packages()),
		Contracts: len(contracts),
	}
	for _, c := range contracts {
		v.Problems = append(v.Problems, c)
	}
	return v, nil
}

func (in *Inspector) class(id string) (*model.Class, error) {
	if in.cat == nil {
		return nil, ErrNotLoaded
	}
	c := in.cat.Class(id)
	if c == nil {
		return nil, fmt.Errorf("%w: class %q", ErrNotFound, id)
	}
	return c, nil
}

// classReport resolves the members of class for view, keeps those passing
// desc, and records where each one is declared.
func classReport(class *model.Class, view types.View, filter string, desc model.FilterDescriptor) (*types.ClassReport, error) {
	members, err := viewMembers(class, view)
	if err != nil {
		return nil, err
	}
	overridden, err := class.OverriddenProperties(nil)
	if err != nil {
		return nil, err
	}

	r := &types.ClassReport{
		ClassID:             class.ID(),
		Ancestors:           ids(class.Ancestors()),
		Interfaces:          ids(class.Interfaces()),
		InheritedInterfaces: ids(class.InheritedInterfaces()),
		Abstract:            class.IsAbstract(),
		View:                view,
		Filter:              filter,
		TotalMembers:        len(members),
	}
	if s := class.SuperClass(); s != nil {
		r.SuperClass = s.ID()
	}

	f := model.NewPropertyFilter(desc)
	r.Members = make([]types.MemberRow, 0, len(members))
	for _, d := range members {
		ok, err := f.Test(d.member)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		row := memberRow(d.member, d.origin.ID())
		if d.origin == class {
			if o := slotOf(overridden, d.member); o != nil {
				row.Overrides = class.SuperClass().DeclaringClass(o).ID()
			}
		}
		r.Members = append(r.Members, row)
	}
	return r, nil
}

// declared pairs a member with the class whose own slot holds it.
type declared struct {
	member *model.Member
	origin *model.Class
}

func viewMembers(c *model.Class, view types.View) ([]declared, error) {
	if view == types.ViewChain {
		var result []declared
		for _, k := range append([]*model.Class{c}, c.Ancestors()...) {
			own, err := k.OwnProperties(nil)
			if err != nil {
				return nil, err
			}
			for _, m := range own {
				result = append(result, declared{member: m, origin: k})
			}
		}
		return result, nil
	}

	var members []*model.Member
	var err error
	from := c
	switch view {
	case types.ViewOwn:
		members, err = c.OwnProperties(nil)
	case types.ViewInherited:
		members, err = c.InheritedProperties()
		from = c.SuperClass()
	case types.ViewOverridden:
		members, err = c.OverriddenProperties(nil)
		from = c.SuperClass()
	default:
		members, err = c.AllProperties(nil)
	}
	if err != nil {
		return nil, err
	}

	// A member shared by several classes belongs to the nearest slot holding
	// it, searched from c for own-inclusive views and from the superclass
	// otherwise.
	result := make([]declared, len(members))
	for i, m := range members {
		result[i] = declared{member: m, origin: from.DeclaringClass(m)}
	}
	return result, nil
}

func slotOf(members []*model.Member, m *model.Member) *model.Member {
	for _, o := range members {
		if o.Name == m.Name && o.Static == m.Static {
			return o
		}
	}
	return nil
}

func memberRow(m *model.Member, origin string) types.MemberRow {
	row := types.MemberRow{
		Name:       m.Name,
		Kind:       m.Kind().String(),
		Visibility: m.Visibility.String(),
		Static:     m.Static,
		Type:       m.Type,
		Signature:  m.Signature(),
		Origin:     origin,
	}
	if m.Comment != nil {
		row.Doc = m.Comment.Description
	}
	return row
}

type identified interface{ ID() string }

func ids[T identified](items []T) []string {
	if len(items) == 0 {
		return nil
	}
	result := make([]string, len(items))
	for i, item := range items {
		result[i] = item.ID()
	}
	return result
}

func flatten(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
