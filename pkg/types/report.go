// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

// View selects which member set of a class a report covers.
type View string

const (
	ViewOwn        View = "own"        // Members declared on the class
	ViewInherited  View = "inherited"  // Non-private members resolved from ancestors
	ViewOverridden View = "overridden" // Ancestor members replaced by own members
	ViewAll        View = "all"        // Own members plus unshadowed inherited ones
	ViewChain      View = "chain"      // Every declaration on the chain, private ones included
)

// Views lists every view in presentation order.
var Views = []View{ViewOwn, ViewInherited, ViewOverridden, ViewAll, ViewChain}

// Valid reports whether v names a known view.
func (v View) Valid() bool {
	switch v {
	case ViewOwn, ViewInherited, ViewOverridden, ViewAll, ViewChain:
		return true
	}
	return false
}

// MemberRow is the flattened, serializable form of a member in a report.
type MemberRow struct {
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	Visibility string `json:"visibility"`
	Static     bool   `json:"static,omitempty"`
	Type       string `json:"type,omitempty"`
	Signature  string `json:"signature"`
	Origin     string `json:"origin"`              // Id of the declaring class
	Overrides  string `json:"overrides,omitempty"` // Id of the ancestor whose member this one overrides
	Doc        string `json:"doc,omitempty"`
}

// ClassReport holds the resolved view of one class.
type ClassReport struct {
	ClassID             string      `json:"class"`
	SuperClass          string      `json:"superclass,omitempty"`
	Ancestors           []string    `json:"ancestors,omitempty"`
	Interfaces          []string    `json:"interfaces,omitempty"`
	InheritedInterfaces []string    `json:"inheritedInterfaces,omitempty"`
	Abstract            bool        `json:"abstract"`
	View                View        `json:"view"`
	Filter              string      `json:"filter,omitempty"`
	Members             []MemberRow `json:"members"`
	TotalMembers        int         `json:"totalMembers"` // Members in the view before filtering
}

// Declaration is one line of a catalog listing.
type Declaration struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"` // class or interface
	Package  string `json:"package"`
	File     string `json:"file"`
	Abstract bool   `json:"abstract,omitempty"`
}
