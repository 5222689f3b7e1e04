// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVisibility(t *testing.T) {
	tests := []struct {
		in   string
		want Visibility
	}{
		{"public", Public},
		{"Protected", Protected},
		{" PRIVATE ", Private},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVisibility(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsSet())
		})
	}

	_, err := ParseVisibility("internal")
	require.ErrorIs(t, err, ErrUnknownVisibility)
	assert.False(t, VisibilityUnset.IsSet())
	assert.Equal(t, "unset", VisibilityUnset.String())
}

func TestMemberKind(t *testing.T) {
	tests := []struct {
		name     string
		kind     MemberKind
		method   bool
		abstract bool
	}{
		{"abstract attribute", AttributeAbstract, false, true},
		{"attribute", AttributeConcrete, false, false},
		{"abstract method", MethodAbstract, true, true},
		{"method", MethodConcrete, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.kind.String())
			assert.Equal(t, tt.method, tt.kind.IsMethod())
			assert.Equal(t, tt.abstract, tt.kind.IsAbstract())

			parsed, err := ParseMemberKind(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, parsed)
		})
	}

	_, err := ParseMemberKind("property")
	require.ErrorIs(t, err, ErrUnknownKind)
	assert.Equal(t, "unknown", MemberKind(9).String())
}
