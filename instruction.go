package instrmap

import (
	"context"
	"strings"
	"unicode"
)

// IntrinsicHeadingMarker identifies headings that introduce intrinsic equivalents.
const IntrinsicHeadingMarker = "Compiler Intrinsic Equivalent"

// AutoGeneratedMarker identifies tool-generated stub lines that are not
// authoritative intrinsic equivalents.
const AutoGeneratedMarker = "Auto-generated from high-level language."

// InstructionMap maps mnemonics to their intrinsic equivalents.
// Keys keep first-seen order and values keep encounter order; duplicate
// values are retained. The zero value is ready to use.
type InstructionMap struct {
	keys   []string
	values map[string][]string
}

// NewInstructionMap returns an empty InstructionMap.
func NewInstructionMap() *InstructionMap {
	return &InstructionMap{values: make(map[string][]string)}
}

// Add appends value to the list for key.
func (m *InstructionMap) Add(key, value string) {
	if m.values == nil {
		m.values = make(map[string][]string)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = append(m.values[key], value)
}

// Keys returns the mnemonics in the order they were first added.
func (m *InstructionMap) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Values returns the intrinsic equivalents for key, or nil if key is absent.
func (m *InstructionMap) Values(key string) []string {
	vals, ok := m.values[key]
	if !ok {
		return nil
	}
	out := make([]string, len(vals))
	copy(out, vals)
	return out
}

// Len returns the number of mnemonics.
func (m *InstructionMap) Len() int {
	return len(m.keys)
}

// MapStore persists an InstructionMap.
type MapStore interface {
	SaveMap(ctx context.Context, m *InstructionMap) error
}

// FilterLines returns lines with every auto-generated stub removed.
func FilterLines(lines []string) []string {
	filtered := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.Contains(line, AutoGeneratedMarker) {
			continue
		}
		filtered = append(filtered, line)
	}
	return filtered
}

// SplitLine splits a line on its first run of whitespace.
// The key is the first token and the value is the trimmed remainder.
// ok is false when the line does not have both parts.
func SplitLine(line string) (key, value string, ok bool) {
	line = strings.TrimLeftFunc(line, unicode.IsSpace)
	idx := strings.IndexFunc(line, unicode.IsSpace)
	if idx < 0 {
		return "", "", false
	}

	key = line[:idx]
	value = strings.TrimSpace(line[idx:])
	if key == "" || value == "" {
		return "", "", false
	}
	return key, value, true
}

// BuildMap folds lines into an InstructionMap.
// Lines that SplitLine rejects are silently dropped.
func BuildMap(lines []string) *InstructionMap {
	m := NewInstructionMap()
	for _, line := range lines {
		key, value, ok := SplitLine(line)
		if !ok {
			continue
		}
		m.Add(key, value)
	}
	return m
}
