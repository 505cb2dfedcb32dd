// Package delim parses delimiter headers and splits payloads into number tokens.
//
// A header starts with "//" and ends at the first newline:
//
//	//;\n1;2;3          single delimiter
//	//ab\n1ab2          multi-character delimiter, no brackets
//	//[***]\n1***2      bracketed delimiter of any length
//	//[*][%]\n1*2%3     several bracketed delimiters
//
// Every delimiter is matched as a literal string.
package delim

import (
	"errors"
	"slices"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// Exported constants.
const (
	// HeaderPrefix marks the start of a custom delimiter header.
	HeaderPrefix = "//"
)

// Exported variables.
var (
	// Default is the delimiter set used when the input carries no header.
	//
	//nolint:gochecknoglobals // read-only default set
	Default = Set{",", "\n"}

	ErrInvalidHeader = errors.New("invalid delimiter header")
)

// Set is an ordered list of literal delimiters active for one input.
type Set []string

// Split cuts payload at every occurrence of any delimiter in the set and returns the
// non-empty pieces in order. At each position the longest matching delimiter wins.
func (s Set) Split(payload string) []string {
	byLength := s.longestFirst()
	tokens := []string{}
	start := 0

	for pos := 0; pos < len(payload); {
		width := byLength.matchAt(payload, pos)
		if width == 0 {
			pos++

			continue
		}

		if pos > start {
			tokens = append(tokens, payload[start:pos])
		}

		pos += width
		start = pos
	}

	if start < len(payload) {
		tokens = append(tokens, payload[start:])
	}

	return tokens
}

// Parse separates input into its active delimiter set and payload. Input without a
// header uses defaults. A header with no terminating newline leaves an empty payload.
func Parse(input string, defaults Set) (Set, string, error) {
	if !strings.HasPrefix(input, HeaderPrefix) {
		return defaults, input, nil
	}

	header, payload, _ := strings.Cut(input, "\n")

	set, err := ParseHeader(header)
	if err != nil {
		return nil, "", err
	}

	return set, payload, nil
}

// ParseHeader parses a header (including "//", excluding the newline) into its delimiters.
func ParseHeader(header string) (Set, error) {
	raw, ok := strings.CutPrefix(header, HeaderPrefix)
	if !ok {
		return nil, pkgerrors.Wrapf(ErrInvalidHeader, "missing %q prefix in %q", HeaderPrefix, header)
	}

	if raw == "" {
		return nil, pkgerrors.Wrapf(ErrInvalidHeader, "empty delimiter in %q", header)
	}

	if !strings.HasPrefix(raw, "[") {
		return Set{raw}, nil
	}

	return parseGroups(raw)
}

// longestFirst returns a copy of the set ordered by descending length. Ties keep
// their declared order.
func (s Set) longestFirst() Set {
	sorted := slices.Clone(s)
	slices.SortStableFunc(sorted, func(a, b string) int {
		return len(b) - len(a)
	})

	return sorted
}

// matchAt returns the width of the first delimiter found at payload[pos:], or 0.
func (s Set) matchAt(payload string, pos int) int {
	rest := payload[pos:]

	for _, d := range s {
		if d != "" && strings.HasPrefix(rest, d) {
			return len(d)
		}
	}

	return 0
}

// parseGroups reads a run of "[content]" groups. Empty groups, unclosed groups and text
// between or after groups are rejected.
func parseGroups(raw string) (Set, error) {
	var set Set

	rest := raw
	for rest != "" {
		if rest[0] != '[' {
			return nil, pkgerrors.Wrapf(ErrInvalidHeader, "unexpected %q outside brackets in %q", rest, raw)
		}

		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return nil, pkgerrors.Wrapf(ErrInvalidHeader, "unclosed bracket in %q", raw)
		}

		if end == 1 {
			return nil, pkgerrors.Wrapf(ErrInvalidHeader, "empty bracket group in %q", raw)
		}

		set = append(set, rest[1:end])
		rest = rest[end+1:]
	}

	return set, nil
}
