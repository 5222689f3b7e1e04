// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/petar-djukic/classmodel/pkg/model"
	"github.com/petar-djukic/classmodel/pkg/types"
)

// Catalog is a linked class graph: every package, class and interface from
// the decoded files, with superclasses, interfaces and imports resolved.
type Catalog struct {
	packages map[string]*model.Package
	index    *Index
}

// Package returns the named package, or nil.
func (c *Catalog) Package(name string) *model.Package { return c.packages[name] }

// Packages returns every package sorted by name.
func (c *Catalog) Packages() []*model.Package {
	names := make([]string, 0, len(c.packages))
	for n := range c.packages {
		names = append(names, n)
	}
	slices.Sort(names)
	result := make([]*model.Package, len(names))
	for i, n := range names {
		result[i] = c.packages[n]
	}
	return result
}

// Class returns the class with the given qualified id, or nil.
func (c *Catalog) Class(id string) *model.Class { return c.index.Class(id) }

// Interface returns the interface with the given qualified id, or nil.
func (c *Catalog) Interface(id string) *model.Interface { return c.index.Interface(id) }

// Index returns the id index of the catalog.
func (c *Catalog) Index() *Index { return c.index }

// Builder links decoded catalog files into a Catalog.
type Builder struct {
	Logger logrus.FieldLogger // Optional; defaults to the standard logrus logger
}

// Build links files in two passes. The first pass declares every package,
// class and interface; the second resolves references by qualified id, so
// files may appear in any order.
//
// Declaration errors (duplicate ids, invalid members) abort the build. Link
// errors (unknown ids, inheritance cycles) are collected and returned
// together with the partially linked catalog.
func (b Builder) Build(files []*File) (*Catalog, error) {
	log := b.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	cat := &Catalog{packages: make(map[string]*model.Package), index: newIndex()}
	var pending []link

	// Pass 1: declare.
	for _, f := range files {
		pkg := cat.packages[f.Package]
		if pkg == nil {
			pkg = model.NewPackage(f.Package)
			cat.packages[f.Package] = pkg
		}
		if f.Source != "" {
			pkg.SetSourcePath(f.Source)
		}
		for _, imp := range f.Imports {
			pending = append(pending, link{kind: linkImport, file: f.Path, from: f.Package, to: imp})
		}

		for _, spec := range f.Interfaces {
			iface, err := buildInterface(spec)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", f.Path, err)
			}
			iface.SetSourcePath(f.Path)
			if err := cat.index.add(Entry{ID: spec.ID, Kind: EntryInterface, Package: f.Package, File: f.Path}, nil, iface); err != nil {
				return nil, err
			}
			if err := pkg.AddInterface(iface); err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidCatalog, f.Path, err)
			}
		}

		for _, spec := range f.Classes {
			class, err := buildClass(spec)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", f.Path, err)
			}
			class.SetSourcePath(f.Path)
			if err := cat.index.add(Entry{ID: spec.ID, Kind: EntryClass, Package: f.Package, File: f.Path}, class, nil); err != nil {
				return nil, err
			}
			if err := pkg.AddClass(class); err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidCatalog, f.Path, err)
			}
			if spec.Extends != "" {
				pending = append(pending, link{kind: linkExtends, file: f.Path, from: spec.ID, to: spec.Extends})
			}
			for _, id := range spec.Implements {
				pending = append(pending, link{kind: linkImplements, file: f.Path, from: spec.ID, to: id})
			}
		}

		log.WithFields(logrus.Fields{
			"file":       f.Path,
			"package":    f.Package,
			"classes":    len(f.Classes),
			"interfaces": len(f.Interfaces),
		}).Debug("catalog file declared")
	}

	// Pass 2: link.
	var errs []error
	for _, l := range pending {
		if err := cat.resolve(l); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", l.file, err))
		}
	}

	log.WithFields(logrus.Fields{
		"packages": len(cat.packages),
		"entries":  cat.index.Len(),
		"errors":   len(errs),
	}).Debug("catalog linked")

	return cat, errors.Join(errs...)
}

type linkKind int

const (
	linkExtends linkKind = iota
	linkImplements
	linkImport
)

// link is a reference recorded in pass 1 and resolved in pass 2.
type link struct {
	kind linkKind
	file string
	from string
	to   string
}

func (c *Catalog) resolve(l link) error {
	switch l.kind {
	case linkExtends:
		class := c.index.Class(l.from)
		super := c.index.Class(l.to)
		if super == nil {
			return fmt.Errorf("%w: class %q extends unknown class %q", ErrUnresolved, l.from, l.to)
		}
		if err := class.SetSuperClass(super); err != nil {
			return err
		}
		c.addPackageDependency(l.from, l.to)
	case linkImplements:
		iface := c.index.Interface(l.to)
		if iface == nil {
			return fmt.Errorf("%w: class %q implements unknown interface %q", ErrUnresolved, l.from, l.to)
		}
		if err := c.index.Class(l.from).AddInterface(iface); err != nil {
			return err
		}
		c.addPackageDependency(l.from, l.to)
	case linkImport:
		dep := c.packages[l.to]
		if dep == nil {
			return fmt.Errorf("%w: package %q imports unknown package %q", ErrUnresolved, l.from, l.to)
		}
		return c.packages[l.from].AddDependency(dep)
	}
	return nil
}

// addPackageDependency records that the package declaring fromID depends on
// the package declaring toID, when they differ.
func (c *Catalog) addPackageDependency(fromID, toID string) {
	from, okFrom := c.index.Lookup(fromID)
	to, okTo := c.index.Lookup(toID)
	if !okFrom || !okTo || from.Package == to.Package {
		return
	}
	// Both packages exist: every index entry was declared with its package.
	_ = c.packages[from.Package].AddDependency(c.packages[to.Package])
}

func buildClass(spec ClassSpec) (*model.Class, error) {
	if spec.ID == "" {
		return nil, fmt.Errorf("%w: class without id", ErrInvalidCatalog)
	}
	class := model.NewClass(spec.ID)
	if spec.Doc != "" {
		comment, err := model.ParseComment(spec.Doc)
		if err != nil {
			return nil, fmt.Errorf("%w: class %q doc: %v", ErrInvalidCatalog, spec.ID, err)
		}
		class.SetComment(comment)
	}
	if spec.Constructor != nil {
		ctor, err := buildMember(*spec.Constructor, false)
		if err != nil {
			return nil, fmt.Errorf("class %q constructor: %w", spec.ID, err)
		}
		if err := class.SetConstructor(ctor); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
		}
	}
	for _, ms := range spec.Members {
		m, err := buildMember(ms, false)
		if err != nil {
			return nil, fmt.Errorf("class %q: %w", spec.ID, err)
		}
		if err := class.AddProperty(m); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
		}
	}
	return class, nil
}

func buildInterface(spec InterfaceSpec) (*model.Interface, error) {
	if spec.ID == "" {
		return nil, fmt.Errorf("%w: interface without id", ErrInvalidCatalog)
	}
	iface := model.NewInterface(spec.ID)
	if spec.Doc != "" {
		comment, err := model.ParseComment(spec.Doc)
		if err != nil {
			return nil, fmt.Errorf("%w: interface %q doc: %v", ErrInvalidCatalog, spec.ID, err)
		}
		iface.SetComment(comment)
	}
	for _, ms := range spec.Methods {
		m, err := buildMember(ms, true)
		if err != nil {
			return nil, fmt.Errorf("interface %q: %w", spec.ID, err)
		}
		if err := iface.AddMethod(m); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
		}
	}
	return iface, nil
}

// buildMember turns a MemberSpec into a model member. Interface members are
// always abstract methods.
func buildMember(spec MemberSpec, inInterface bool) (*model.Member, error) {
	sig := &signature{}
	if spec.Sig != "" {
		parsed, err := parseSignature(spec.Sig)
		if err != nil {
			return nil, err
		}
		sig = parsed
	}
	if spec.Name != "" {
		sig.Name = spec.Name
	}
	if sig.Name == "" {
		return nil, fmt.Errorf("%w: member without name", ErrInvalidCatalog)
	}
	if spec.Params != "" {
		params, err := parseParams(spec.Params)
		if err != nil {
			return nil, err
		}
		sig.Method = true
		sig.Params = params
	}

	kind, err := memberKind(spec.Kind, sig, inInterface)
	if err != nil {
		return nil, err
	}
	m, err := model.NewMember(sig.Name, kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	vis := firstNonEmpty(spec.Visibility, sig.Visibility, "public")
	if m.Visibility, err = types.ParseVisibility(vis); err != nil {
		return nil, fmt.Errorf("%w: member %q: %v", ErrInvalidCatalog, sig.Name, err)
	}
	m.Static = spec.Static || sig.Static
	m.Type = firstNonEmpty(spec.Type, sig.Type)

	if m.IsMethod() {
		if err := setParams(m, sig.Params); err != nil {
			return nil, fmt.Errorf("%w: member %q: %v", ErrInvalidCatalog, sig.Name, err)
		}
	}
	if value := firstNonEmpty(spec.Value, sig.Value); value != "" {
		if kind != types.AttributeConcrete {
			return nil, fmt.Errorf("%w: member %q: only attributes take a value", ErrInvalidCatalog, sig.Name)
		}
		m.InitialValue = value
	}
	if spec.Body != "" {
		if err := m.SetBody(spec.Body); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
		}
	}
	if spec.Doc != "" {
		comment, err := model.ParseComment(spec.Doc)
		if err != nil {
			return nil, fmt.Errorf("%w: member %q doc: %v", ErrInvalidCatalog, sig.Name, err)
		}
		m.Comment = comment
	}
	return m, nil
}

func memberKind(explicit string, sig *signature, inInterface bool) (types.MemberKind, error) {
	if inInterface {
		if explicit == "" {
			return types.MethodAbstract, nil
		}
		kind, err := types.ParseMemberKind(explicit)
		if err != nil || kind != types.MethodAbstract {
			return 0, fmt.Errorf("%w: interface member %q must be an abstract method", ErrInvalidCatalog, sig.Name)
		}
		return kind, nil
	}
	if explicit != "" {
		kind, err := types.ParseMemberKind(explicit)
		if err != nil {
			return 0, fmt.Errorf("%w: member %q: %v", ErrInvalidCatalog, sig.Name, err)
		}
		return kind, nil
	}
	switch {
	case sig.Method && sig.Abstract:
		return types.MethodAbstract, nil
	case sig.Method:
		return types.MethodConcrete, nil
	case sig.Abstract:
		return types.AttributeAbstract, nil
	default:
		return types.AttributeConcrete, nil
	}
}

func setParams(m *model.Member, specs []*paramSpec) error {
	var required, optional []*model.Param
	for _, ps := range specs {
		decl, opt := ps.Required, false
		if ps.Optional != nil {
			decl, opt = ps.Optional, true
		}
		p := &model.Param{Name: decl.Name, Type: firstNonEmpty(decl.Type, model.AnyType), Optional: opt}
		if opt {
			optional = append(optional, p)
		} else {
			required = append(required, p)
		}
	}
	return m.SetParams(required, optional)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
