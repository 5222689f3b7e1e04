// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package model

import (
	"fmt"

	"github.com/petar-djukic/classmodel/pkg/types"
)

// Interface is a flat contract of abstract methods. Interfaces do not extend
// each other; classes pick up ancestors' interfaces through
// Class.InheritedInterfaces.
type Interface struct {
	id         string
	name       string
	sourcePath string
	methods    *PropertyCollection
	comment    *Comment
}

// NewInterface returns an empty interface with the given qualified id.
func NewInterface(id string) *Interface {
	return &Interface{id: id, name: lastSegment(id), methods: NewPropertyCollection()}
}

// ID returns the qualified interface id.
func (i *Interface) ID() string { return i.id }

// Name returns the last dot-separated segment of the id.
func (i *Interface) Name() string { return i.name }

// SourcePath returns the opaque source location of the interface.
func (i *Interface) SourcePath() string { return i.sourcePath }

// SetSourcePath records where the interface was declared.
func (i *Interface) SetSourcePath(path string) { i.sourcePath = path }

// Comment returns the interface doc comment, or nil.
func (i *Interface) Comment() *Comment { return i.comment }

// SetComment attaches a doc comment.
func (i *Interface) SetComment(comment *Comment) { i.comment = comment }

// AddMethod stores an abstract method. Attributes and concrete methods fail
// with ErrInvalidArgument; a nameless method fails with ErrMissingName.
func (i *Interface) AddMethod(m *Member) error {
	if m == nil {
		return fmt.Errorf("%w: interface %q: nil member", ErrInvalidArgument, i.id)
	}
	if m.kind != types.MethodAbstract {
		return fmt.Errorf("%w: interface %q accepts abstract methods only, got %s", ErrInvalidArgument, i.id, m.kind)
	}
	if err := i.methods.AddProperty(m); err != nil {
		return fmt.Errorf("interface %q: %w", i.id, err)
	}
	return nil
}

// Method returns the method in the (name, static) slot, or nil.
func (i *Interface) Method(name string, static bool) *Member {
	return i.methods.Property(name, static)
}

// RemoveMethod removes both methods named name.
func (i *Interface) RemoveMethod(name string) { i.methods.RemoveProperty(name) }

// RemoveMember removes the method occupying m's slot.
func (i *Interface) RemoveMember(m *Member) { i.methods.RemoveMember(m) }

// Methods returns the interface methods, filtered by desc when it is not nil.
func (i *Interface) Methods(desc *FilterDescriptor) ([]*Member, error) {
	return applyDescriptor(i.methods.Properties(), desc)
}
