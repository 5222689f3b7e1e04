// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package model

import (
	"fmt"
	"slices"
	"strings"

	"github.com/petar-djukic/classmodel/pkg/types"
)

// Class is a node in the inheritance graph. Superclasses and interfaces are
// shared references; a class owns only its member collection.
type Class struct {
	id          string
	name        string
	sourcePath  string
	super       *Class
	constructor *Member
	interfaces  []*Interface
	members     *PropertyCollection
	comment     *Comment
}

// NewClass returns a class with the given qualified id, such as
// "node.http.Server".
func NewClass(id string) *Class {
	c := &Class{members: NewPropertyCollection()}
	c.SetID(id)
	return c
}

// ID returns the qualified class id.
func (c *Class) ID() string { return c.id }

// Name returns the last dot-separated segment of the id.
func (c *Class) Name() string { return c.name }

// SetID replaces the qualified id and recomputes the short name.
func (c *Class) SetID(id string) {
	c.id = id
	c.name = lastSegment(id)
}

// SourcePath returns the opaque source location of the class.
func (c *Class) SourcePath() string { return c.sourcePath }

// SetSourcePath records where the class was declared.
func (c *Class) SetSourcePath(path string) { c.sourcePath = path }

// Comment returns the class doc comment, or nil.
func (c *Class) Comment() *Comment { return c.comment }

// SetComment attaches a doc comment.
func (c *Class) SetComment(comment *Comment) { c.comment = comment }

// SuperClass returns the direct superclass, or nil.
func (c *Class) SuperClass() *Class { return c.super }

// SetSuperClass links c to super. Passing nil clears the link. A link that
// would make c its own ancestor fails with ErrStructuralViolation and leaves
// c unchanged.
func (c *Class) SetSuperClass(super *Class) error {
	for a := super; a != nil; a = a.super {
		if a == c {
			return fmt.Errorf("%w: %q cannot extend %q: inheritance cycle", ErrStructuralViolation, c.id, super.id)
		}
	}
	c.super = super
	return nil
}

// Constructor returns the constructor method, or nil.
func (c *Class) Constructor() *Member { return c.constructor }

// SetConstructor sets the constructor. Passing nil clears it; a member that
// is not a method fails with ErrInvalidArgument.
func (c *Class) SetConstructor(m *Member) error {
	if m != nil && !m.IsMethod() {
		return fmt.Errorf("%w: constructor of %q must be a method, got %s", ErrInvalidArgument, c.id, m.kind)
	}
	c.constructor = m
	return nil
}

// AddInterface declares that c implements i. Declaring the same interface
// twice has no effect.
func (c *Class) AddInterface(i *Interface) error {
	if i == nil {
		return fmt.Errorf("%w: nil interface", ErrInvalidArgument)
	}
	if !slices.Contains(c.interfaces, i) {
		c.interfaces = append(c.interfaces, i)
	}
	return nil
}

// RemoveInterface removes a declared interface. Removing an undeclared
// interface is a no-op.
func (c *Class) RemoveInterface(i *Interface) {
	c.interfaces = slices.DeleteFunc(c.interfaces, func(x *Interface) bool { return x == i })
}

// Interfaces returns the directly declared interfaces in declaration order.
func (c *Class) Interfaces() []*Interface {
	return slices.Clone(c.interfaces)
}

// AddProperty stores m among the class's own members.
func (c *Class) AddProperty(m *Member) error {
	if err := c.members.AddProperty(m); err != nil {
		return fmt.Errorf("class %q: %w", c.id, err)
	}
	return nil
}

// Property returns the own member in the (name, static) slot, or nil.
func (c *Class) Property(name string, static bool) *Member {
	return c.members.Property(name, static)
}

// RemoveProperty removes both own members named name.
func (c *Class) RemoveProperty(name string) { c.members.RemoveProperty(name) }

// RemoveMember removes the own member occupying m's slot.
func (c *Class) RemoveMember(m *Member) { c.members.RemoveMember(m) }

// OwnProperties returns the members declared by c itself. A nil descriptor
// returns all of them.
func (c *Class) OwnProperties(desc *FilterDescriptor) ([]*Member, error) {
	return applyDescriptor(c.members.Properties(), desc)
}

// InheritedProperties returns what a subclass of c's superclass chain would
// inherit: every non-private ancestor member, one per (name, static) slot,
// with closer ancestors replacing farther ones. Own members are excluded.
func (c *Class) InheritedProperties() ([]*Member, error) {
	acc, err := c.inherited()
	if err != nil {
		return nil, err
	}
	return acc.Properties(), nil
}

// OverriddenProperties returns the ancestor members that c's own members
// override, filtered by desc when it is not nil. An own member overrides an
// ancestor member when name, static and abstractness all match; a concrete
// method implementing an abstract declaration is not an override.
func (c *Class) OverriddenProperties(desc *FilterDescriptor) ([]*Member, error) {
	acc, err := c.inherited()
	if err != nil {
		return nil, err
	}
	own := c.members.Properties()
	var result []*Member
	for _, a := range acc.Properties() {
		if slices.ContainsFunc(own, func(m *Member) bool { return overrides(m, a) }) {
			result = append(result, a)
		}
	}
	return applyDescriptor(result, desc)
}

// Declarations returns every member declared along the chain without
// collapsing slots: c's own members, then each ancestor's own members from
// the direct superclass outward. Private ancestor members are included, and a
// member registered on several classes appears once per class.
func (c *Class) Declarations(desc *FilterDescriptor) ([]*Member, error) {
	all := c.members.Properties()
	for _, a := range c.Ancestors() {
		all = append(all, a.members.Properties()...)
	}
	return applyDescriptor(all, desc)
}

// DeclaringClass returns the nearest class on the chain, c first, whose own
// (name, static) slot holds m itself. It returns nil when no class does.
func (c *Class) DeclaringClass(m *Member) *Class {
	for k := c; k != nil; k = k.super {
		if m != nil && k.members.Property(m.Name, m.Static) == m {
			return k
		}
	}
	return nil
}

// AllProperties returns the members c exposes: own members followed by the
// inherited members whose slot no own member occupies, filtered by desc when
// it is not nil.
func (c *Class) AllProperties(desc *FilterDescriptor) ([]*Member, error) {
	acc, err := c.inherited()
	if err != nil {
		return nil, err
	}
	all := c.members.Properties()
	for _, m := range acc.Properties() {
		if c.members.Property(m.Name, m.Static) == nil {
			all = append(all, m)
		}
	}
	return applyDescriptor(all, desc)
}

// InheritedInterfaces returns the interfaces declared by ancestors, visited
// from the root toward the direct superclass, each listed once. An interface
// c declares itself is included only when an ancestor declares it too.
func (c *Class) InheritedInterfaces() []*Interface {
	var result []*Interface
	ancestors := c.Ancestors()
	for i := len(ancestors) - 1; i >= 0; i-- {
		for _, iface := range ancestors[i].interfaces {
			if slices.Contains(result, iface) {
				continue
			}
			result = append(result, iface)
		}
	}
	return result
}

// IsAbstract reports whether any own member is abstract. Inherited abstract
// members do not count.
func (c *Class) IsAbstract() bool {
	return slices.ContainsFunc(c.members.Properties(), (*Member).IsAbstract)
}

// Ancestors returns the superclass chain, direct superclass first.
func (c *Class) Ancestors() []*Class {
	var chain []*Class
	for a := c.super; a != nil; a = a.super {
		chain = append(chain, a)
	}
	return chain
}

// IsSubclassOf reports whether other appears in c's superclass chain.
func (c *Class) IsSubclassOf(other *Class) bool {
	return other != nil && slices.Contains(c.Ancestors(), other)
}

// inherited accumulates the ancestors' members, root first, into a
// collection that drops private members.
func (c *Class) inherited() (*PropertyCollection, error) {
	acc := NewFilteredCollection(NewPropertyFilter(FilterDescriptor{Private: Bool(false)}))
	if err := c.super.collectInto(acc); err != nil {
		return nil, fmt.Errorf("class %q: %w", c.id, err)
	}
	return acc, nil
}

func (c *Class) collectInto(acc *PropertyCollection) error {
	if c == nil {
		return nil
	}
	if err := c.super.collectInto(acc); err != nil {
		return err
	}
	for _, m := range c.members.Properties() {
		if err := acc.AddProperty(m); err != nil {
			return err
		}
	}
	return nil
}

// overrides is the override predicate: same name, same static flag, same
// abstractness.
func overrides(m, ancestor *Member) bool {
	return m.Name == ancestor.Name && m.Static == ancestor.Static && m.IsAbstract() == ancestor.IsAbstract()
}

func applyDescriptor(members []*Member, desc *FilterDescriptor) ([]*Member, error) {
	if desc == nil {
		return members, nil
	}
	return NewPropertyFilter(*desc).ApplyOn(members)
}

func lastSegment(id string) string {
	if i := strings.LastIndexByte(id, '.'); i >= 0 {
		return id[i+1:]
	}
	return id
}

// memberKinds counts own members per kind; used by String.
func (c *Class) memberKinds() map[types.MemberKind]int {
	counts := make(map[types.MemberKind]int)
	for _, m := range c.members.Properties() {
		counts[m.kind]++
	}
	return counts
}

// String renders a one-line summary such as
// "class node.http.Server extends node.net.Server (3 methods, 1 attribute)".
func (c *Class) String() string {
	var b strings.Builder
	b.WriteString("class " + c.id)
	if c.super != nil {
		b.WriteString(" extends " + c.super.id)
	}
	counts := c.memberKinds()
	methods := counts[types.MethodAbstract] + counts[types.MethodConcrete]
	attrs := counts[types.AttributeAbstract] + counts[types.AttributeConcrete]
	fmt.Fprintf(&b, " (%d %s, %d %s)", methods, plural(methods, "method"), attrs, plural(attrs, "attribute"))
	return b.String()
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
