// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package model

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Package groups classes and interfaces and records the packages it depends
// on. Lookups are flat; a package never resolves anything through its
// dependencies.
type Package struct {
	name         string
	sourcePath   string
	dependencies map[string]*Package
	classes      map[string]*Class
	interfaces   map[string]*Interface
}

// NewPackage returns an empty package.
func NewPackage(name string) *Package {
	return &Package{
		name:         name,
		dependencies: make(map[string]*Package),
		classes:      make(map[string]*Class),
		interfaces:   make(map[string]*Interface),
	}
}

// Name returns the package name.
func (p *Package) Name() string { return p.name }

// SourcePath returns the opaque filesystem location of the package.
func (p *Package) SourcePath() string { return p.sourcePath }

// SetSourcePath records where the package lives.
func (p *Package) SetSourcePath(path string) { p.sourcePath = path }

// AddDependency records that p depends on dep, replacing any dependency with
// the same name.
func (p *Package) AddDependency(dep *Package) error {
	if dep == nil {
		return fmt.Errorf("%w: package %q: nil dependency", ErrInvalidArgument, p.name)
	}
	if dep.name == "" {
		return fmt.Errorf("%w: package %q: dependency", ErrMissingName, p.name)
	}
	p.dependencies[dep.name] = dep
	return nil
}

// Dependency returns the named dependency, or nil.
func (p *Package) Dependency(name string) *Package { return p.dependencies[name] }

// Dependencies returns every dependency sorted by name.
func (p *Package) Dependencies() []*Package {
	return sortedValues(p.dependencies)
}

// RemoveDependency removes the named dependency. Removing an absent
// dependency is a no-op.
func (p *Package) RemoveDependency(name string) { delete(p.dependencies, name) }

// AddClass stores c under its id, replacing any class with the same id.
func (p *Package) AddClass(c *Class) error {
	if c == nil {
		return fmt.Errorf("%w: package %q: nil class", ErrInvalidArgument, p.name)
	}
	if c.id == "" {
		return fmt.Errorf("%w: package %q: class id", ErrMissingName, p.name)
	}
	p.classes[c.id] = c
	return nil
}

// Class returns the class with the given id, or nil.
func (p *Package) Class(id string) *Class { return p.classes[id] }

// Classes returns every class sorted by id.
func (p *Package) Classes() []*Class {
	return sortedValues(p.classes)
}

// RemoveClass removes the class with the given id. Removing an absent class
// is a no-op.
func (p *Package) RemoveClass(id string) { delete(p.classes, id) }

// AddInterface stores i under its id, replacing any interface with the same
// id.
func (p *Package) AddInterface(i *Interface) error {
	if i == nil {
		return fmt.Errorf("%w: package %q: nil interface", ErrInvalidArgument, p.name)
	}
	if i.id == "" {
		return fmt.Errorf("%w: package %q: interface id", ErrMissingName, p.name)
	}
	p.interfaces[i.id] = i
	return nil
}

// Interface returns the interface with the given id, or nil.
func (p *Package) Interface(id string) *Interface { return p.interfaces[id] }

// Interfaces returns every interface sorted by id.
func (p *Package) Interfaces() []*Interface {
	return sortedValues(p.interfaces)
}

// RemoveInterface removes the interface with the given id. Removing an
// absent interface is a no-op.
func (p *Package) RemoveInterface(id string) { delete(p.interfaces, id) }

func sortedValues[V any](m map[string]V) []V {
	keys := slices.Sorted(maps.Keys(m))
	result := make([]V, len(keys))
	for i, k := range keys {
		result[i] = m[k]
	}
	return result
}

// String renders a one-line summary of the package.
func (p *Package) String() string {
	deps := slices.Sorted(maps.Keys(p.dependencies))
	s := fmt.Sprintf("package %s (%d classes, %d interfaces)", p.name, len(p.classes), len(p.interfaces))
	if len(deps) > 0 {
		s += " imports " + strings.Join(deps, ", ")
	}
	return s
}
