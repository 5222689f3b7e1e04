// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package catalog

import (
	"fmt"

	"github.com/petar-djukic/classmodel/pkg/model"
)

// EntryKind distinguishes classes from interfaces in the index.
type EntryKind int

const (
	EntryClass     EntryKind = iota // Class declaration
	EntryInterface                  // Interface declaration
)

// String returns the human-readable name of the entry kind.
func (k EntryKind) String() string {
	switch k {
	case EntryClass:
		return "class"
	case EntryInterface:
		return "interface"
	default:
		return "unknown"
	}
}

// Entry describes one declaration in the catalog.
type Entry struct {
	ID      string    // Qualified id
	Kind    EntryKind // Class or interface
	Package string    // Declaring package name
	File    string    // Catalog file path
}

// Index holds every declaration of a catalog and provides lookup by id,
// package and kind. Ids are unique across classes and interfaces.
type Index struct {
	entries    []Entry
	byID       map[string]int
	byPackage  map[string][]int
	byKind     map[EntryKind][]int
	classes    map[string]*model.Class
	interfaces map[string]*model.Interface
}

func newIndex() *Index {
	return &Index{
		byID:       make(map[string]int),
		byPackage:  make(map[string][]int),
		byKind:     make(map[EntryKind][]int),
		classes:    make(map[string]*model.Class),
		interfaces: make(map[string]*model.Interface),
	}
}

func (ix *Index) add(e Entry, class *model.Class, iface *model.Interface) error {
	if prev, ok := ix.byID[e.ID]; ok {
		return fmt.Errorf("%w: %s %q declared in %s and %s",
			ErrInvalidCatalog, e.Kind, e.ID, ix.entries[prev].File, e.File)
	}
	idx := len(ix.entries)
	ix.entries = append(ix.entries, e)
	ix.byID[e.ID] = idx
	ix.byPackage[e.Package] = append(ix.byPackage[e.Package], idx)
	ix.byKind[e.Kind] = append(ix.byKind[e.Kind], idx)
	if class != nil {
		ix.classes[e.ID] = class
	}
	if iface != nil {
		ix.interfaces[e.ID] = iface
	}
	return nil
}

// All returns every entry in declaration order.
func (ix *Index) All() []Entry {
	result := make([]Entry, len(ix.entries))
	copy(result, ix.entries)
	return result
}

// Lookup returns the entry with the given id.
func (ix *Index) Lookup(id string) (Entry, bool) {
	idx, ok := ix.byID[id]
	if !ok {
		return Entry{}, false
	}
	return ix.entries[idx], true
}

// ByPackage returns all entries declared in the named package.
func (ix *Index) ByPackage(pkg string) []Entry {
	return ix.lookup(ix.byPackage[pkg])
}

// ByKind returns all entries of the given kind.
func (ix *Index) ByKind(kind EntryKind) []Entry {
	return ix.lookup(ix.byKind[kind])
}

// Class returns the class with the given id, or nil.
func (ix *Index) Class(id string) *model.Class { return ix.classes[id] }

// Interface returns the interface with the given id, or nil.
func (ix *Index) Interface(id string) *model.Interface { return ix.interfaces[id] }

// Len returns the total number of entries.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// lookup returns entries at the given indices.
func (ix *Index) lookup(indices []int) []Entry {
	if len(indices) == 0 {
		return nil
	}
	result := make([]Entry, len(indices))
	for i, idx := range indices {
		result[i] = ix.entries[idx]
	}
	return result
}
