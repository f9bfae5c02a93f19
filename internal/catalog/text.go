// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package catalog

import (
	"regexp"
	"strings"
)

// nonWordChar delimits whole words in MatchWord patterns. \b only knows ASCII
// word characters in both RE2 and PCRE.
const nonWordChar = `[^\p{L}\p{M}\p{N}_]`

// MatchMode selects how a TextMatch compares a term with a field value.
type MatchMode int

const (
	// MatchExact requires the whole value to equal a term, ignoring case.
	MatchExact MatchMode = iota
	// MatchWord requires a term to appear as a whole word inside the value.
	// Word characters are Unicode letters, marks, digits and underscore, so
	// labels in non-Latin scripts get the same boundaries as ASCII ones.
	MatchWord
	// MatchContains requires a term to appear anywhere inside the value.
	MatchContains
)

// String returns the mode name used in logs.
func (m MatchMode) String() string {
	switch m {
	case MatchExact:
		return "exact"
	case MatchWord:
		return "word"
	case MatchContains:
		return "contains"
	default:
		return "unknown"
	}
}

// TextMatch is a case-insensitive predicate over a single text field.
// A value matches when it matches any of the terms. No terms matches nothing.
type TextMatch struct {
	Terms []string
	Mode  MatchMode
}

// Exact builds an anchored case-insensitive equality match.
func Exact(terms ...string) *TextMatch {
	return &TextMatch{Terms: terms, Mode: MatchExact}
}

// Word builds a whole-word case-insensitive match.
func Word(terms ...string) *TextMatch {
	return &TextMatch{Terms: terms, Mode: MatchWord}
}

// Contains builds a case-insensitive substring match.
func Contains(terms ...string) *TextMatch {
	return &TextMatch{Terms: terms, Mode: MatchContains}
}

// Empty reports whether the match has no usable terms.
func (m *TextMatch) Empty() bool {
	return m == nil || len(m.Terms) == 0
}

// Pattern returns a regular expression for the match without flags.
// Every term is passed through regexp.QuoteMeta, so reader input can never add
// pattern syntax. The result is valid for both RE2 and PCRE.
func (m *TextMatch) Pattern() string {
	if m.Empty() {
		return ""
	}

	quoted := make([]string, len(m.Terms))
	for i, term := range m.Terms {
		quoted[i] = regexp.QuoteMeta(term)
	}
	alternation := strings.Join(quoted, "|")

	switch m.Mode {
	case MatchExact:
		return "^(?:" + alternation + ")$"
	case MatchWord:
		return "(?:^|" + nonWordChar + ")(?:" + alternation + ")(?:$|" + nonWordChar + ")"
	default:
		return "(?:" + alternation + ")"
	}
}

// Regexp compiles the case-insensitive form of Pattern.
func (m *TextMatch) Regexp() (*regexp.Regexp, error) {
	return regexp.Compile("(?i)" + m.Pattern())
}

// Matches evaluates the match against a value in process.
func (m *TextMatch) Matches(value string) bool {
	if m.Empty() {
		return false
	}

	switch m.Mode {
	case MatchExact:
		for _, term := range m.Terms {
			if strings.EqualFold(value, term) {
				return true
			}
		}
		return false
	case MatchContains:
		lower := strings.ToLower(value)
		for _, term := range m.Terms {
			if strings.Contains(lower, strings.ToLower(term)) {
				return true
			}
		}
		return false
	default:
		re, err := m.Regexp()
		if err != nil {
			return false
		}
		return re.MatchString(value)
	}
}
