// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import (
	"fmt"
	"strings"
)

// MemberKind identifies the shape of a class member. The kind is fixed when
// the member is created.
type MemberKind int

const (
	AttributeAbstract MemberKind = iota // Attribute declaration without storage
	AttributeConcrete                   // Attribute with storage and an optional initial value
	MethodAbstract                      // Method declaration without a body
	MethodConcrete                      // Method with a body
)

// String returns the human-readable name of the member kind.
func (k MemberKind) String() string {
	switch k {
	case AttributeAbstract:
		return "abstract attribute"
	case AttributeConcrete:
		return "attribute"
	case MethodAbstract:
		return "abstract method"
	case MethodConcrete:
		return "method"
	default:
		return "unknown"
	}
}

// IsMethod reports whether the kind is one of the method kinds.
func (k MemberKind) IsMethod() bool {
	return k == MethodAbstract || k == MethodConcrete
}

// IsAbstract reports whether the kind is a declaration without implementation.
func (k MemberKind) IsAbstract() bool {
	return k == AttributeAbstract || k == MethodAbstract
}

// ParseMemberKind converts the names used in catalog files ("attribute",
// "abstract attribute", "method", "abstract method") to a MemberKind.
func ParseMemberKind(s string) (MemberKind, error) {
	switch strings.Join(strings.Fields(strings.ToLower(s)), " ") {
	case "abstract attribute":
		return AttributeAbstract, nil
	case "attribute":
		return AttributeConcrete, nil
	case "abstract method":
		return MethodAbstract, nil
	case "method":
		return MethodConcrete, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}
