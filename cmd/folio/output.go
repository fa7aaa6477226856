package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/matsen/folio/internal/areacolor"
	"github.com/matsen/folio/internal/publication"
)

// Constants for output formatting.
const (
	ListTitleMaxLen = 70 // Used in pubs and cards list output
	AuthorsMaxCount = 3  // Authors shown before "et al."
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...any) {
	fmt.Printf(format, args...)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// truncateString truncates a string to maxLen runes, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen-3]) + "..."
}

// formatAuthorsShort joins author names with "et al." past maxCount.
// The site owner is marked with a leading "*".
func formatAuthorsShort(authors []publication.Author, maxCount int) string {
	if len(authors) == 0 {
		return ""
	}

	var names []string
	for i, a := range authors {
		if i >= maxCount {
			names = append(names, "et al.")
			break
		}
		name := a.Name
		if a.IsHighlighted {
			name = "*" + name
		}
		names = append(names, name)
	}
	return strings.Join(names, ", ")
}

// formatPublicationLine formats a publication for list output.
func formatPublicationLine(p publication.Publication) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s  %d  [%s]\n", p.ID, p.Year, p.Type)
	fmt.Fprintf(&sb, "  %s\n", truncateString(p.Title, ListTitleMaxLen))
	if authors := formatAuthorsShort(p.Authors, AuthorsMaxCount); authors != "" {
		fmt.Fprintf(&sb, "  %s\n", authors)
	}
	if venue := p.VenueName(); venue != "" {
		fmt.Fprintf(&sb, "  %s\n", venue)
	}
	if area := p.Area(); area != "" {
		fmt.Fprintf(&sb, "  %s %s\n", swatch(areacolor.For(area)), publication.AreaLabel(area))
	}
	return sb.String()
}

// swatch renders a small block in the style's colour.
func swatch(s areacolor.Style) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(s.Swatch)).
		Render("  ")
}

// tagChip renders a tag in its style's colour.
func tagChip(tag string) string {
	s := areacolor.For(tag)
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.Swatch)).
		Bold(true).
		Render(tag)
}
