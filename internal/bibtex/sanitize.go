package bibtex

import (
	"regexp"
	"strings"
)

var (
	doubleBraceRegex = regexp.MustCompile(`\{\{([^}]*)\}\}`)
	singleBraceRegex = regexp.MustCompile(`\{([^{}]*)\}`)
	styleRegex       = regexp.MustCompile(`\\(?:textbf|emph|textit)\s*\{([^{}]*)\}`)
	citeRegex        = regexp.MustCompile(`\\cite[a-zA-Z]*\s*\{[^{}]*\}`)
	whitespaceRegex  = regexp.MustCompile(`\s+`)
)

// Sanitize turns a raw BibTeX field value into display text.
//
// Steps, in order:
//  1. strip one pair of enclosing matching quotes
//  2. collapse doubled braces {{x}} -> x
//  3. strip single-level braces {x} -> x until nothing changes
//  4. drop stray braces
//  5. unwrap \textbf{x}, \emph{x} and \textit{x}; drop \cite{...}
//  6. ~ -> space
//  7. drop remaining backslashes
//  8. collapse whitespace and trim
//
// Styling commands are also resolved during steps 2-3 while their braces are
// still intact. Unknown commands degrade ("\alpha" -> "alpha") but never fail.
func Sanitize(raw string) string {
	if raw == "" {
		return ""
	}

	s := stripQuotes(raw)

	s = resolveMarkup(s)
	s = doubleBraceRegex.ReplaceAllString(s, "${1}")

	for strings.Contains(s, "{") && strings.Contains(s, "}") {
		before := s
		s = resolveMarkup(s)
		s = singleBraceRegex.ReplaceAllString(s, "${1}")
		if s == before {
			break // Unbalanced braces; no further reduction possible
		}
	}

	s = strings.NewReplacer("{", "", "}", "").Replace(s)
	s = resolveMarkup(s)
	s = strings.ReplaceAll(s, "~", " ")
	s = strings.ReplaceAll(s, `\`, "")
	s = whitespaceRegex.ReplaceAllString(s, " ")

	return strings.TrimSpace(s)
}

// SanitizeOptional sanitizes a field that may be absent.
// Returns nil when the entry has no such field.
func SanitizeOptional(e Entry, name string) *string {
	v, ok := e.Get(name)
	if !ok {
		return nil
	}
	s := Sanitize(v)
	return &s
}

// stripQuotes removes one pair of enclosing quotes when both ends match.
func stripQuotes(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if first == last && (first == '"' || first == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}

// resolveMarkup unwraps styling commands and drops citations whose argument
// contains no braces.
func resolveMarkup(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	s = styleRegex.ReplaceAllString(s, "${1}")
	return citeRegex.ReplaceAllString(s, "")
}
