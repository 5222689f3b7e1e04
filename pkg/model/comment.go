// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package model

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Tag is a named entry of a doc comment, rendered as "@name value".
type Tag struct {
	Name  string
	Value string // May be empty for flag tags such as @deprecated
}

// Comment is a doc comment: free text followed by ordered tags.
type Comment struct {
	Description string
	tags        []Tag
}

// NewComment returns a comment with the given description and no tags.
func NewComment(description string) *Comment {
	return &Comment{Description: description}
}

// SetDescription replaces the description and returns c for chaining.
func (c *Comment) SetDescription(description string) *Comment {
	c.Description = description
	return c
}

// SetTag stores a tag. Re-setting an existing tag replaces its value and
// keeps its position.
func (c *Comment) SetTag(name, value string) error {
	if name == "" {
		return fmt.Errorf("%w: comment tag", ErrMissingName)
	}
	for i := range c.tags {
		if c.tags[i].Name == name {
			c.tags[i].Value = value
			return nil
		}
	}
	c.tags = append(c.tags, Tag{Name: name, Value: value})
	return nil
}

// Tag returns the value of the named tag.
func (c *Comment) Tag(name string) (string, bool) {
	for _, t := range c.tags {
		if t.Name == name {
			return t.Value, true
		}
	}
	return "", false
}

// RemoveTag deletes the named tag. Removing an absent tag is a no-op.
func (c *Comment) RemoveTag(name string) {
	for i, t := range c.tags {
		if t.Name == name {
			c.tags = append(c.tags[:i:i], c.tags[i+1:]...)
			return
		}
	}
}

// Tags returns the tags in insertion order.
func (c *Comment) Tags() []Tag {
	return append([]Tag(nil), c.tags...)
}

// String renders the description, a blank line, then one "@name value" line
// per tag in insertion order. Every rendered line ends with a newline; an
// empty comment renders as "".
func (c *Comment) String() string {
	var b strings.Builder
	if c.Description != "" {
		b.WriteString(c.Description + "\n")
		if len(c.tags) > 0 {
			b.WriteByte('\n')
		}
	}
	for _, t := range c.tags {
		b.WriteString("@" + t.Name)
		if t.Value != "" {
			b.WriteString(" " + t.Value)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// tagBlock is the grammar for the tag section of a comment. Each tag runs
// from "@" to the end of its line.
type tagBlock struct {
	Tags []*tagEntry `parser:"@@*"`
}

type tagEntry struct {
	Name  string `parser:"'@' @Ident"`
	Value string `parser:"@Text?"`
}

var tagLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "At", Pattern: `@`, Action: lexer.Push("Tag")},
		{Name: "Newline", Pattern: `\r?\n`},
		{Name: "Whitespace", Pattern: `[ \t]+`},
	},
	"Tag": {
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_.\-]*`},
		{Name: "Text", Pattern: `[ \t][^\r\n]*`},
		{Name: "EOL", Pattern: `\r?\n`, Action: lexer.Pop()},
	},
})

var tagParser = participle.MustBuild[tagBlock](
	participle.Lexer(tagLexer),
	participle.Elide("Whitespace", "Newline", "EOL"),
)

// ParseComment is the inverse of Comment.String. Lines before the first line
// starting with "@" form the description; the rest must be tag lines.
func ParseComment(text string) (*Comment, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	split := len(lines)
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "@") {
			split = i
			break
		}
	}

	c := &Comment{Description: strings.TrimSpace(strings.Join(lines[:split], "\n"))}
	if split == len(lines) {
		return c, nil
	}

	rest := make([]string, 0, len(lines)-split)
	for _, line := range lines[split:] {
		rest = append(rest, strings.TrimSpace(line))
	}
	block, err := tagParser.ParseString("", strings.Join(rest, "\n"))
	if err != nil {
		return nil, fmt.Errorf("%w: comment tags: %v", ErrInvalidArgument, err)
	}
	for _, t := range block.Tags {
		if err := c.SetTag(t.Name, strings.TrimSpace(t.Value)); err != nil {
			return nil, err
		}
	}
	return c, nil
}
