// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package hierarchy builds the inheritance graph over a set of classes and
// answers whole-graph questions the per-class model does not: roots,
// subclasses, depth, and tree rendering.
package hierarchy

import (
	"slices"
	"strings"

	"github.com/petar-djukic/classmodel/pkg/model"
)

// EdgeKind distinguishes inheritance from interface implementation.
type EdgeKind int

const (
	Extends    EdgeKind = iota // Class to superclass
	Implements                 // Class to declared interface
)

// String returns the human-readable name of the edge kind.
func (k EdgeKind) String() string {
	switch k {
	case Extends:
		return "extends"
	case Implements:
		return "implements"
	default:
		return "unknown"
	}
}

// Edge represents a directed edge in the inheritance graph.
type Edge struct {
	From string   // Class id
	To   string   // Superclass or interface id
	Kind EdgeKind // Extends or Implements
}

// Graph is a directed graph where nodes are class ids and edges point from a
// class to its superclass and to the interfaces it declares.
type Graph struct {
	Nodes    []string // All class ids, sorted
	Edges    []Edge   // All edges
	children map[string][]string
	super    map[string]string
}

// BuildGraph constructs the inheritance graph of classes. Superclasses
// outside the set still appear as edge targets but not as nodes.
func BuildGraph(classes []*model.Class) *Graph {
	g := &Graph{
		children: make(map[string][]string),
		super:    make(map[string]string),
	}

	for _, c := range classes {
		g.Nodes = append(g.Nodes, c.ID())
		if s := c.SuperClass(); s != nil {
			g.Edges = append(g.Edges, Edge{From: c.ID(), To: s.ID(), Kind: Extends})
			g.children[s.ID()] = append(g.children[s.ID()], c.ID())
			g.super[c.ID()] = s.ID()
		}
		for _, i := range c.Interfaces() {
			g.Edges = append(g.Edges, Edge{From: c.ID(), To: i.ID(), Kind: Implements})
		}
	}

	slices.Sort(g.Nodes)
	for id := range g.children {
		slices.Sort(g.children[id])
	}
	return g
}

// Roots returns the classes without a superclass in the graph, sorted.
func (g *Graph) Roots() []string {
	var roots []string
	for _, id := range g.Nodes {
		if _, ok := g.super[id]; !ok {
			roots = append(roots, id)
		}
	}
	return roots
}

// Children returns the direct subclasses of id, sorted.
func (g *Graph) Children(id string) []string {
	return slices.Clone(g.children[id])
}

// Descendants returns every transitive subclass of id in depth-first order.
func (g *Graph) Descendants(id string) []string {
	var result []string
	var walk func(string)
	walk = func(n string) {
		for _, c := range g.children[n] {
			result = append(result, c)
			walk(c)
		}
	}
	walk(id)
	return result
}

// Depth returns the number of superclass links above id; roots have depth 0.
func (g *Graph) Depth(id string) int {
	depth := 0
	for s, ok := g.super[id]; ok; s, ok = g.super[s] {
		depth++
	}
	return depth
}

// EdgesFrom returns the edges leaving id.
func (g *Graph) EdgesFrom(id string) []Edge {
	var result []Edge
	for _, e := range g.Edges {
		if e.From == id {
			result = append(result, e)
		}
	}
	return result
}

// Tree renders the subtree rooted at id with box-drawing connectors. An empty
// id renders every root.
func (g *Graph) Tree(id string) string {
	var b strings.Builder
	roots := []string{id}
	if id == "" {
		roots = g.Roots()
	}
	for _, r := range roots {
		b.WriteString(r + "\n")
		g.writeChildren(&b, r, "")
	}
	return b.String()
}

func (g *Graph) writeChildren(b *strings.Builder, id, prefix string) {
	kids := g.children[id]
	for i, c := range kids {
		connector, next := "├── ", "│   "
		if i == len(kids)-1 {
			connector, next = "└── ", "    "
		}
		b.WriteString(prefix + connector + c + "\n")
		g.writeChildren(b, c, prefix+next)
	}
}
