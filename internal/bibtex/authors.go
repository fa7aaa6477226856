package bibtex

import (
	"regexp"
	"strings"

	"github.com/matsen/folio/internal/publication"
)

// Author role markers used in .bib files. They are annotations for the site
// only and never appear in displayed names or reconstructed citations.
const (
	CorrespondingMarker = "*"
	CoAuthorMarker      = "#"
)

var authorSeparatorRegex = regexp.MustCompile(`\sand\s`)

var markerStripper = strings.NewReplacer(CorrespondingMarker, "", CoAuthorMarker, "")

// ParseAuthors splits a BibTeX author field into display authors.
//
// Authors are separated by " and " (case-sensitive). For each author:
//   - "*" anywhere marks the corresponding author, "#" a co-author
//   - "Last, First" is rewritten to "First Last" (first comma only)
//   - the name is sanitized and matched against owner for highlighting
//
// Authors whose name is empty after cleaning are dropped.
func ParseAuthors(raw string, owner publication.Owner) []publication.Author {
	if strings.TrimSpace(raw) == "" {
		return []publication.Author{}
	}

	authors := []publication.Author{}
	for _, part := range authorSeparatorRegex.Split(raw, -1) {
		name := strings.TrimSpace(part)

		isCorresponding := strings.Contains(name, CorrespondingMarker)
		isCoAuthor := strings.Contains(name, CoAuthorMarker)
		name = markerStripper.Replace(name)

		if strings.Contains(name, ",") {
			parts := strings.Split(name, ",")
			family := strings.TrimSpace(parts[0])
			given := strings.TrimSpace(parts[1])
			name = given + " " + family
		}

		name = Sanitize(name)
		if name == "" {
			continue
		}

		authors = append(authors, publication.Author{
			Name:            name,
			IsHighlighted:   owner.Matches(name),
			IsCorresponding: isCorresponding,
			IsCoAuthor:      isCoAuthor,
		})
	}

	return authors
}

// StripAuthorMarkers removes role markers from a raw author field.
func StripAuthorMarkers(raw string) string {
	return markerStripper.Replace(raw)
}
