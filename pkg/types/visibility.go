// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package types defines shared enumerations and report types used across
// classmodel packages.
package types

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for parsing enumerations.
var (
	ErrUnknownVisibility = errors.New("unknown visibility")
	ErrUnknownKind       = errors.New("unknown member kind")
)

// Visibility is the access level of a class member.
type Visibility int

const (
	VisibilityUnset Visibility = iota // No visibility information
	Public                            // Visible everywhere
	Protected                         // Visible to the class and its subclasses
	Private                           // Visible to the declaring class only
)

// String returns the lower-case name of the visibility.
func (v Visibility) String() string {
	switch v {
	case Public:
		return "public"
	case Protected:
		return "protected"
	case Private:
		return "private"
	default:
		return "unset"
	}
}

// IsSet reports whether v is one of the three access levels.
func (v Visibility) IsSet() bool {
	return v == Public || v == Protected || v == Private
}

// ParseVisibility converts a visibility name, in any letter case, to its
// Visibility value.
func ParseVisibility(s string) (Visibility, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "public":
		return Public, nil
	case "protected":
		return Protected, nil
	case "private":
		return Private, nil
	default:
		return VisibilityUnset, fmt.Errorf("%w: %q", ErrUnknownVisibility, s)
	}
}
