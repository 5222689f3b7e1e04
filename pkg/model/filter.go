// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package model

import (
	"fmt"
	"strings"

	"github.com/petar-djukic/classmodel/pkg/types"
)

// FilterDescriptor selects members along four axes. A nil field means true,
// so the zero descriptor accepts every member.
type FilterDescriptor struct {
	Static      *bool
	Instance    *bool
	Abstract    *bool
	Implemented *bool
	Attribute   *bool
	Method      *bool
	Public      *bool
	Protected   *bool
	Private     *bool
}

// Bool returns a pointer to v, for building FilterDescriptor values.
func Bool(v bool) *bool {
	return &v
}

// AllFalse returns a descriptor that rejects every member.
func AllFalse() FilterDescriptor {
	f := Bool(false)
	return FilterDescriptor{
		Static: f, Instance: f,
		Abstract: f, Implemented: f,
		Attribute: f, Method: f,
		Public: f, Protected: f, Private: f,
	}
}

// PropertyFilter is a predicate over members built from a FilterDescriptor.
type PropertyFilter struct {
	static, instance        bool
	abstract, implemented   bool
	attribute, method       bool
	public, protected, priv bool
}

// NewPropertyFilter resolves the descriptor defaults and returns the filter.
func NewPropertyFilter(desc FilterDescriptor) *PropertyFilter {
	return &PropertyFilter{
		static:      orTrue(desc.Static),
		instance:    orTrue(desc.Instance),
		abstract:    orTrue(desc.Abstract),
		implemented: orTrue(desc.Implemented),
		attribute:   orTrue(desc.Attribute),
		method:      orTrue(desc.Method),
		public:      orTrue(desc.Public),
		protected:   orTrue(desc.Protected),
		priv:        orTrue(desc.Private),
	}
}

func orTrue(b *bool) bool {
	return b == nil || *b
}

// Test reports whether m passes the filter. A member without visibility
// never passes. The axes are checked in order: visibility, static/instance,
// abstract/implemented, attribute/method.
func (f *PropertyFilter) Test(m *Member) (bool, error) {
	if m == nil {
		return false, fmt.Errorf("%w: nil member", ErrInvalidArgument)
	}

	switch m.Visibility {
	case types.Public:
		if !f.public {
			return false, nil
		}
	case types.Protected:
		if !f.protected {
			return false, nil
		}
	case types.Private:
		if !f.priv {
			return false, nil
		}
	default:
		return false, nil
	}

	if m.Static && !f.static || !m.Static && !f.instance {
		return false, nil
	}
	if m.IsAbstract() && !f.abstract || !m.IsAbstract() && !f.implemented {
		return false, nil
	}
	if m.IsMethod() && !f.method || !m.IsMethod() && !f.attribute {
		return false, nil
	}
	return true, nil
}

// ApplyOn returns a new slice holding the members that pass the filter, in
// input order.
func (f *PropertyFilter) ApplyOn(members []*Member) ([]*Member, error) {
	result := make([]*Member, 0, len(members))
	for _, m := range members {
		ok, err := f.Test(m)
		if err != nil {
			return nil, err
		}
		if ok {
			result = append(result, m)
		}
	}
	return result, nil
}

// filterAxes maps descriptor tokens to their field and the other side of the
// same axis.
var filterAxes = map[string]struct {
	field    func(*FilterDescriptor) **bool
	opposite []string
}{
	"static":      {func(d *FilterDescriptor) **bool { return &d.Static }, []string{"instance"}},
	"instance":    {func(d *FilterDescriptor) **bool { return &d.Instance }, []string{"static"}},
	"abstract":    {func(d *FilterDescriptor) **bool { return &d.Abstract }, []string{"implemented"}},
	"implemented": {func(d *FilterDescriptor) **bool { return &d.Implemented }, []string{"abstract"}},
	"attribute":   {func(d *FilterDescriptor) **bool { return &d.Attribute }, []string{"method"}},
	"method":      {func(d *FilterDescriptor) **bool { return &d.Method }, []string{"attribute"}},
	"public":      {func(d *FilterDescriptor) **bool { return &d.Public }, []string{"protected", "private"}},
	"protected":   {func(d *FilterDescriptor) **bool { return &d.Protected }, []string{"public", "private"}},
	"private":     {func(d *FilterDescriptor) **bool { return &d.Private }, []string{"public", "protected"}},
}

// ParseFilterDescriptor parses a comma separated token list such as
// "public,protected,method,!static".
//
// Naming a token restricts its axis to the named sides: "public" alone
// rejects protected and private members, "public,private" rejects only
// protected ones. A "!" prefix sets the token false without touching the
// rest of its axis. An empty expression yields the zero descriptor.
func ParseFilterDescriptor(expr string) (FilterDescriptor, error) {
	var desc FilterDescriptor
	named := make(map[string]bool)
	var negated []string

	for _, raw := range strings.Split(expr, ",") {
		tok := strings.ToLower(strings.TrimSpace(raw))
		if tok == "" {
			continue
		}
		neg := strings.HasPrefix(tok, "!")
		tok = strings.TrimPrefix(tok, "!")
		if _, ok := filterAxes[tok]; !ok {
			return FilterDescriptor{}, fmt.Errorf("%w: unknown filter token %q", ErrInvalidArgument, raw)
		}
		if neg {
			negated = append(negated, tok)
			continue
		}
		named[tok] = true
	}

	for tok := range named {
		axis := filterAxes[tok]
		*axis.field(&desc) = Bool(true)
		for _, other := range axis.opposite {
			if !named[other] {
				*filterAxes[other].field(&desc) = Bool(false)
			}
		}
	}
	for _, tok := range negated {
		if named[tok] {
			return FilterDescriptor{}, fmt.Errorf("%w: filter token %q both set and negated", ErrInvalidArgument, tok)
		}
		*filterAxes[tok].field(&desc) = Bool(false)
	}
	return desc, nil
}
