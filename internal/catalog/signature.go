// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package catalog

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// signature is the grammar for member shorthand:
//
//	[public|protected|private] [static] [abstract] name[(params)][: type][ = value]
//
// A parameter list marks a method. Parameters in brackets are optional.
type signature struct {
	Visibility string       `parser:"@('public' | 'protected' | 'private')?"`
	Static     bool         `parser:"@'static'?"`
	Abstract   bool         `parser:"@'abstract'?"`
	Name       string       `parser:"@Ident"`
	Method     bool         `parser:"( @'('"`
	Params     []*paramSpec `parser:"  ( @@ ( ',' @@ )* )? ')' )?"`
	Type       string       `parser:"( ':' @(Ident | '*') @('[' ']')* )?"`
	Value      string       `parser:"( '=' @Rest )?"`
}

type paramSpec struct {
	Optional *paramDecl `parser:"  '[' @@ ']'"`
	Required *paramDecl `parser:"| @@"`
}

type paramDecl struct {
	Name string `parser:"@Ident"`
	Type string `parser:"( ':' @(Ident | '*') @('[' ']')* )?"`
}

var signatureLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Assign", Pattern: `=`, Action: lexer.Push("Value")},
		{Name: "Ident", Pattern: `[A-Za-z_$][A-Za-z0-9_$.]*`},
		{Name: "Punct", Pattern: `[()\[\]:,*]`},
		{Name: "Whitespace", Pattern: `\s+`},
	},
	"Value": {
		{Name: "Rest", Pattern: `[^\r\n]+`},
	},
})

var signatureParser = participle.MustBuild[signature](
	participle.Lexer(signatureLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// parseSignature parses member shorthand.
func parseSignature(s string) (*signature, error) {
	sig, err := signatureParser.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("%w: signature %q: %v", ErrInvalidCatalog, s, err)
	}
	sig.Value = strings.TrimSpace(sig.Value)
	if len(sig.Params) == 0 {
		sig.Params = nil
	}
	return sig, nil
}

// parseParams parses a bare parameter list such as "port: number, [cb]".
func parseParams(s string) ([]*paramSpec, error) {
	sig, err := parseSignature("params(" + s + ")")
	if err != nil {
		return nil, err
	}
	return sig.Params, nil
}
