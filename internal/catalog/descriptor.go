// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package catalog builds class graphs from YAML catalog files. A catalog file
// declares one package with its classes and interfaces; Build links every
// decoded file into a single graph, resolving superclasses, interfaces and
// package imports by qualified id.
package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Error types for catalog decoding and linking.
var (
	ErrInvalidCatalog = errors.New("invalid catalog")
	ErrUnresolved     = errors.New("unresolved reference")
)

// File is the decoded form of one catalog file.
type File struct {
	Package    string          `yaml:"package"`
	Source     string          `yaml:"source,omitempty"`
	Imports    []string        `yaml:"imports,omitempty"`
	Interfaces []InterfaceSpec `yaml:"interfaces,omitempty"`
	Classes    []ClassSpec     `yaml:"classes,omitempty"`

	Path string `yaml:"-"` // File the descriptor was read from
}

// ClassSpec declares a class.
type ClassSpec struct {
	ID          string       `yaml:"id"`
	Extends     string       `yaml:"extends,omitempty"`
	Implements  []string     `yaml:"implements,omitempty"`
	Doc         string       `yaml:"doc,omitempty"`
	Constructor *MemberSpec  `yaml:"constructor,omitempty"`
	Members     []MemberSpec `yaml:"members,omitempty"`
}

// InterfaceSpec declares an interface. Methods are abstract whether or not
// their signature says so.
type InterfaceSpec struct {
	ID      string       `yaml:"id"`
	Doc     string       `yaml:"doc,omitempty"`
	Methods []MemberSpec `yaml:"methods,omitempty"`
}

// MemberSpec declares a member. It decodes either from a signature string,
// such as "static listen(port: number, [host: string]): Server", or from a
// mapping whose explicit fields override what Sig declares.
type MemberSpec struct {
	Sig        string `yaml:"sig,omitempty"`
	Name       string `yaml:"name,omitempty"`
	Kind       string `yaml:"kind,omitempty"`
	Visibility string `yaml:"visibility,omitempty"`
	Static     bool   `yaml:"static,omitempty"`
	Type       string `yaml:"type,omitempty"`
	Params     string `yaml:"params,omitempty"`
	Value      string `yaml:"value,omitempty"`
	Body       string `yaml:"body,omitempty"`
	Doc        string `yaml:"doc,omitempty"`
}

// UnmarshalYAML accepts a scalar signature or a mapping.
func (m *MemberSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*m = MemberSpec{Sig: node.Value}
		return nil
	}
	type plain MemberSpec
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*m = MemberSpec(p)
	return nil
}

// Decode reads one catalog file. Unknown keys are rejected.
func Decode(r io.Reader, path string) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s: empty file", ErrInvalidCatalog, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidCatalog, path, err)
	}
	if f.Package == "" {
		return nil, fmt.Errorf("%w: %s: missing package name", ErrInvalidCatalog, path)
	}
	f.Path = path
	return &f, nil
}

// DecodeBytes is Decode over an in-memory document.
func DecodeBytes(data []byte, path string) (*File, error) {
	return Decode(bytes.NewReader(data), path)
}
