// Package fs provides file-based storage for instruction maps.
package fs

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/fwojciec/instrmap"
)

// ValueFormat selects how a mnemonic's values are laid out in the output file.
type ValueFormat string

// Supported value formats.
const (
	// FormatJoined writes one row per mnemonic with values joined by "; ".
	FormatJoined ValueFormat = "joined"

	// FormatList writes one row per mnemonic with values rendered as a
	// Python-style list literal, e.g. ['a', 'b'].
	FormatList ValueFormat = "list"

	// FormatRows writes one row per (mnemonic, value) pair.
	FormatRows ValueFormat = "rows"
)

// ValueSeparator separates values in FormatJoined.
const ValueSeparator = "; "

// Header is the first record of every file.
var Header = []string{"Key", "Value"}

// ParseValueFormat validates s as a ValueFormat.
func ParseValueFormat(s string) (ValueFormat, error) {
	switch f := ValueFormat(s); f {
	case FormatJoined, FormatList, FormatRows, FormatXML:
		return f, nil
	}
	return "", instrmap.Errorf(instrmap.EINVALID, "unknown value format %q", s)
}

// WriteCSV writes m to w as CSV: the header, then records in key order.
func WriteCSV(w io.Writer, m *instrmap.InstructionMap, format ValueFormat) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}

	for _, key := range m.Keys() {
		values := m.Values(key)
		switch format {
		case FormatRows:
			for _, v := range values {
				if err := cw.Write([]string{key, v}); err != nil {
					return err
				}
			}
		case FormatList:
			if err := cw.Write([]string{key, FormatPythonList(values)}); err != nil {
				return err
			}
		case FormatJoined, "":
			if err := cw.Write([]string{key, strings.Join(values, ValueSeparator)}); err != nil {
				return err
			}
		default:
			return instrmap.Errorf(instrmap.EINVALID, "unknown value format %q", format)
		}
	}

	cw.Flush()
	return cw.Error()
}

// FormatPythonList renders values the way Python prints a list of strings.
func FormatPythonList(values []string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(pythonRepr(v))
	}
	b.WriteByte(']')
	return b.String()
}

// pythonRepr quotes s with single quotes unless it contains a single quote
// and no double quote. Non-printable runes are escaped as \xhh, \uhhhh or
// \Uhhhhhhhh by code point size.
func pythonRepr(s string) string {
	quote := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}

	var b strings.Builder
	b.WriteByte(quote)
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == rune(quote):
			b.WriteByte('\\')
			b.WriteByte(quote)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case unicode.IsPrint(r):
			b.WriteRune(r)
		case r <= 0xff:
			fmt.Fprintf(&b, `\x%02x`, r)
		case r <= 0xffff:
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			fmt.Fprintf(&b, `\U%08x`, r)
		}
	}
	b.WriteByte(quote)
	return b.String()
}
