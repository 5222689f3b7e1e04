// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package report renders class reports, catalog listings and validation
// problems as colored text or JSON.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/petar-djukic/classmodel/pkg/types"
)

const (
	defaultMaxLineLength = 100
	minSignatureLength   = 20
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ErrUnknownFormat is returned for an output format other than text or json.
var ErrUnknownFormat = errors.New("unknown output format")

// Config configures rendering.
type Config struct {
	Format        string // text or json (default text)
	Color         bool   // Emit ANSI colors in text output
	MaxLineLength int    // Truncate text member lines (default 100)
}

// palette holds the color functions for one render call. Colors are enabled
// per call so output does not depend on the global color.NoColor setting.
type palette struct {
	header    func(a ...any) string
	public    func(a ...any) string
	protected func(a ...any) string
	private   func(a ...any) string
	faint     func(a ...any) string
	warn      func(a ...any) string
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return palette{
		header:    mk(color.FgCyan, color.Bold),
		public:    mk(color.FgGreen),
		protected: mk(color.FgYellow),
		private:   mk(color.FgRed),
		faint:     mk(color.FgHiBlack),
		warn:      mk(color.FgYellow, color.Bold),
	}
}

func (p palette) visibility(v string) func(a ...any) string {
	switch v {
	case types.Protected.String():
		return p.protected
	case types.Private.String():
		return p.private
	default:
		return p.public
	}
}

func applyDefaults(cfg Config) Config {
	if cfg.Format == "" {
		cfg.Format = FormatText
	}
	if cfg.MaxLineLength <= 0 {
		cfg.MaxLineLength = defaultMaxLineLength
	}
	return cfg
}

// Class writes r to w in the configured format.
func Class(w io.Writer, r *types.ClassReport, cfg Config) error {
	cfg = applyDefaults(cfg)
	switch cfg.Format {
	case FormatJSON:
		return writeJSON(w, r)
	case FormatText:
		_, err := io.WriteString(w, classText(r, cfg))
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, cfg.Format)
	}
}

func classText(r *types.ClassReport, cfg Config) string {
	p := newPalette(cfg.Color)
	var buf strings.Builder

	header := "class " + r.ClassID
	if r.Abstract {
		header = "abstract " + header
	}
	if r.SuperClass != "" {
		header += " extends " + r.SuperClass
	}
	buf.WriteString(p.header(header))
	fmt.Fprintf(&buf, " (%s: %d/%d members", r.View, len(r.Members), r.TotalMembers)
	if r.Filter != "" {
		fmt.Fprintf(&buf, ", filter %s", r.Filter)
	}
	buf.WriteString(")\n")

	writeList(&buf, p, "ancestors", r.Ancestors)
	writeList(&buf, p, "implements", r.Interfaces)
	writeList(&buf, p, "inherits", r.InheritedInterfaces)

	for _, m := range r.Members {
		buf.WriteString(memberLine(m, p, cfg.MaxLineLength) + "\n")
	}
	return buf.String()
}

func writeList(buf *strings.Builder, p palette, label string, ids []string) {
	if len(ids) == 0 {
		return
	}
	fmt.Fprintf(buf, "  %s %s\n", p.faint(label+":"), strings.Join(ids, ", "))
}

// memberLine renders one member as "  signature  (origin)". The signature is
// shortened so the uncolored line fits maxLen.
func memberLine(m types.MemberRow, p palette, maxLen int) string {
	note := m.Origin
	if m.Overrides != "" {
		note += ", overrides " + m.Overrides
	}
	note = "  (" + note + ")"

	sig := m.Signature
	if sig == "" {
		sig = m.Name
	}
	avail := maxLen - 2 - len(note)
	if avail < minSignatureLength {
		avail = maxLen - 2
		note = ""
	}
	sig = truncate(sig, avail)
	return "  " + p.visibility(m.Visibility)(sig) + p.faint(note)
}

// truncate shortens s to at most n bytes, marking the cut with "...". It
// never splits a multi-byte rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return cutAtRune(s, n)
	}
	return cutAtRune(s, n-3) + "..."
}

// cutAtRune returns the longest prefix of s no longer than n bytes that ends
// on a rune boundary. n must be less than len(s).
func cutAtRune(s string, n int) string {
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// Classes writes a catalog listing to w in the configured format.
func Classes(w io.Writer, rows []types.Declaration, cfg Config) error {
	cfg = applyDefaults(cfg)
	switch cfg.Format {
	case FormatJSON:
		if rows == nil {
			rows = []types.Declaration{}
		}
		return writeJSON(w, rows)
	case FormatText:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, cfg.Format)
	}

	p := newPalette(cfg.Color)
	var buf strings.Builder
	fmt.Fprintf(&buf, "%s\n", p.header(fmt.Sprintf("Catalog (%d declarations)", len(rows))))
	for _, r := range rows {
		kind := r.Kind
		if r.Abstract {
			kind = "abstract " + kind
		}
		line := truncate(fmt.Sprintf("  %-18s %s", kind, r.ID), cfg.MaxLineLength)
		buf.WriteString(line + p.faint("  "+r.File) + "\n")
	}
	_, err := io.WriteString(w, buf.String())
	return err
}

// Problems writes one warning line per error. Joined errors are flattened.
// It returns the number of lines written.
func Problems(w io.Writer, err error, cfg Config) (int, error) {
	errs := Flatten(err)
	cfg = applyDefaults(cfg)
	switch cfg.Format {
	case FormatJSON:
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return len(errs), writeJSON(w, map[string][]string{"problems": msgs})
	case FormatText:
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, cfg.Format)
	}

	p := newPalette(cfg.Color)
	for _, e := range errs {
		if _, werr := fmt.Fprintf(w, "%s%s\n", p.warn("! "), e.Error()); werr != nil {
			return 0, werr
		}
	}
	return len(errs), nil
}

// Flatten expands errors built with errors.Join into their parts.
func Flatten(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var result []error
		for _, e := range joined.Unwrap() {
			result = append(result, Flatten(e)...)
		}
		return result
	}
	return []error{err}
}

func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
