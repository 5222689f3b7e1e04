// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package model

import "fmt"

// AnyType is the declared type meaning "no constraint". It is distinct from
// an empty type, which means the type was never set.
const AnyType = "*"

// Param is a method parameter.
type Param struct {
	Name     string // Parameter name
	Type     string // Declared type (AnyType when unconstrained)
	Optional bool   // True for parameters that may be omitted by callers
}

// NewParam returns a required parameter of type AnyType.
func NewParam(name string) *Param {
	return &Param{Name: name, Type: AnyType}
}

// NewOptionalParam returns an optional parameter of type AnyType.
func NewOptionalParam(name string) *Param {
	return &Param{Name: name, Type: AnyType, Optional: true}
}

// WithType sets the declared type and returns p for chaining.
func (p *Param) WithType(typ string) *Param {
	p.Type = typ
	return p
}

// String renders the parameter as "name: type", in brackets when optional.
func (p *Param) String() string {
	typ := p.Type
	if typ == "" {
		typ = AnyType
	}
	s := fmt.Sprintf("%s: %s", p.Name, typ)
	if p.Optional {
		return "[" + s + "]"
	}
	return s
}
