// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package model

import (
	"fmt"
	"strings"

	"github.com/petar-djukic/classmodel/pkg/types"
)

// Member is an attribute or method owned by a class or interface. Its kind
// is fixed by the constructor that created it.
//
// Two members occupy the same slot when Name and Static are equal. A member
// with an empty Name is a draft and cannot be stored in a collection.
type Member struct {
	Name         string           // Member name (empty = draft)
	Type         string           // Declared type; empty = unset, AnyType = unconstrained
	Visibility   types.Visibility // Access level (VisibilityUnset = unknown)
	Static       bool             // True for class-level members
	Comment      *Comment         // Attached doc comment, may be nil
	InitialValue string           // Initial-value source fragment, concrete attributes only

	kind     types.MemberKind
	body     string
	required []*Param
	optional []*Param
}

// NewAttribute returns a concrete public instance attribute.
func NewAttribute(name string) *Member {
	return newMember(name, types.AttributeConcrete)
}

// NewAbstractAttribute returns an abstract public instance attribute
// declaration.
func NewAbstractAttribute(name string) *Member {
	return newMember(name, types.AttributeAbstract)
}

// NewMethod returns a concrete public instance method with no parameters.
func NewMethod(name string) *Member {
	return newMember(name, types.MethodConcrete)
}

// NewAbstractMethod returns an abstract public instance method declaration.
func NewAbstractMethod(name string) *Member {
	return newMember(name, types.MethodAbstract)
}

// NewMember returns a member of the given kind.
func NewMember(name string, kind types.MemberKind) (*Member, error) {
	switch kind {
	case types.AttributeAbstract, types.AttributeConcrete, types.MethodAbstract, types.MethodConcrete:
		return newMember(name, kind), nil
	default:
		return nil, fmt.Errorf("%w: member kind %d", ErrInvalidArgument, int(kind))
	}
}

func newMember(name string, kind types.MemberKind) *Member {
	return &Member{Name: name, Visibility: types.Public, kind: kind}
}

// Kind returns the member kind.
func (m *Member) Kind() types.MemberKind { return m.kind }

// IsAbstract reports whether the member is a declaration without
// implementation.
func (m *Member) IsAbstract() bool { return m.kind.IsAbstract() }

// IsMethod reports whether the member is a method.
func (m *Member) IsMethod() bool { return m.kind.IsMethod() }

// Body returns the implementation fragment of a concrete method.
func (m *Member) Body() string { return m.body }

// SetBody stores the implementation fragment of a concrete method. Any other
// kind fails with ErrStructuralViolation.
func (m *Member) SetBody(body string) error {
	if m.kind != types.MethodConcrete {
		return fmt.Errorf("%w: %s %q has no body", ErrStructuralViolation, m.kind, m.Name)
	}
	m.body = body
	return nil
}

// SetParams replaces both parameter lists. Every required Param must have
// Optional false and every optional Param must have Optional true.
func (m *Member) SetParams(required, optional []*Param) error {
	if err := m.requireMethod(); err != nil {
		return err
	}
	if err := checkParams(required, false); err != nil {
		return err
	}
	if err := checkParams(optional, true); err != nil {
		return err
	}
	m.required = append([]*Param(nil), required...)
	m.optional = append([]*Param(nil), optional...)
	return nil
}

// SetRequiredParam stores p at index in the required list. An index equal to
// the list length appends.
func (m *Member) SetRequiredParam(index int, p *Param) error {
	if err := m.requireMethod(); err != nil {
		return err
	}
	list, err := setParam(m.required, index, p, false)
	if err != nil {
		return err
	}
	m.required = list
	return nil
}

// SetOptionalParam stores p at index in the optional list. An index equal to
// the list length appends.
func (m *Member) SetOptionalParam(index int, p *Param) error {
	if err := m.requireMethod(); err != nil {
		return err
	}
	list, err := setParam(m.optional, index, p, true)
	if err != nil {
		return err
	}
	m.optional = list
	return nil
}

// RemoveRequiredParam deletes the required parameter at index.
func (m *Member) RemoveRequiredParam(index int) error {
	if err := m.requireMethod(); err != nil {
		return err
	}
	list, err := removeParam(m.required, index)
	if err != nil {
		return err
	}
	m.required = list
	return nil
}

// RemoveOptionalParam deletes the optional parameter at index.
func (m *Member) RemoveOptionalParam(index int) error {
	if err := m.requireMethod(); err != nil {
		return err
	}
	list, err := removeParam(m.optional, index)
	if err != nil {
		return err
	}
	m.optional = list
	return nil
}

// RequiredParams returns a copy of the required parameter list.
func (m *Member) RequiredParams() []*Param {
	return append([]*Param(nil), m.required...)
}

// OptionalParams returns a copy of the optional parameter list.
func (m *Member) OptionalParams() []*Param {
	return append([]*Param(nil), m.optional...)
}

// NumRequiredParams returns the number of required parameters.
func (m *Member) NumRequiredParams() int { return len(m.required) }

// NumParams returns the number of required and optional parameters.
func (m *Member) NumParams() int { return len(m.required) + len(m.optional) }

// Signature renders the member on one line, for example
// "public static emit(event: string, [args: *]): bool".
func (m *Member) Signature() string {
	var b strings.Builder
	b.WriteString(m.Visibility.String())
	if m.Static {
		b.WriteString(" static")
	}
	if m.IsAbstract() {
		b.WriteString(" abstract")
	}
	b.WriteByte(' ')
	b.WriteString(m.Name)
	if m.IsMethod() {
		params := make([]string, 0, m.NumParams())
		for _, p := range m.required {
			params = append(params, p.String())
		}
		for _, p := range m.optional {
			params = append(params, p.String())
		}
		b.WriteString("(" + strings.Join(params, ", ") + ")")
	}
	if m.Type != "" {
		b.WriteString(": " + m.Type)
	}
	if m.kind == types.AttributeConcrete && m.InitialValue != "" {
		b.WriteString(" = " + m.InitialValue)
	}
	return b.String()
}

func (m *Member) requireMethod() error {
	if !m.IsMethod() {
		return fmt.Errorf("%w: %s %q has no parameters", ErrStructuralViolation, m.kind, m.Name)
	}
	return nil
}

func checkParams(params []*Param, optional bool) error {
	for i, p := range params {
		if err := checkParam(p, optional); err != nil {
			return fmt.Errorf("param %d: %w", i, err)
		}
	}
	return nil
}

func checkParam(p *Param, optional bool) error {
	if p == nil {
		return fmt.Errorf("%w: nil param", ErrInvalidArgument)
	}
	if p.Optional != optional {
		if optional {
			return fmt.Errorf("%w: required param %q in optional list", ErrStructuralViolation, p.Name)
		}
		return fmt.Errorf("%w: optional param %q in required list", ErrStructuralViolation, p.Name)
	}
	return nil
}

func setParam(list []*Param, index int, p *Param, optional bool) ([]*Param, error) {
	if index < 0 || index > len(list) {
		return nil, fmt.Errorf("%w: param index %d out of range [0, %d]", ErrInvalidArgument, index, len(list))
	}
	if err := checkParam(p, optional); err != nil {
		return nil, err
	}
	if index == len(list) {
		return append(list, p), nil
	}
	list[index] = p
	return list, nil
}

func removeParam(list []*Param, index int) ([]*Param, error) {
	if index < 0 || index >= len(list) {
		return nil, fmt.Errorf("%w: param index %d out of range [0, %d)", ErrInvalidArgument, index, len(list))
	}
	return append(list[:index:index], list[index+1:]...), nil
}
