package bibtex

import (
	"fmt"
	"strings"
)

// DisplayOnlyFields are site-specific fields hidden from copyable citations.
var DisplayOnlyFields = []string{"selected", "preview", "description", "keywords", "code"}

// Reconstruct re-serializes an entry as a clean BibTeX block.
//
// Fields keep their source order and spelling. Fields whose lowercased name is
// in excluded are omitted, and role markers are removed from the author
// field. The output is a pure function of the arguments.
func Reconstruct(kind, key string, fields []Field, excluded []string) string {
	skip := make(map[string]bool, len(excluded))
	for _, name := range excluded {
		skip[strings.ToLower(name)] = true
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("@%s{%s,\n", kind, key))

	for _, f := range fields {
		name := strings.ToLower(f.Name)
		if skip[name] {
			continue
		}
		value := f.Value
		if name == "author" {
			value = StripAuthorMarkers(value)
		}
		b.WriteString(fmt.Sprintf("  %s = {%s},\n", f.Name, value))
	}

	// Drop the trailing ",\n" of the last line (or of the header)
	out := b.String()
	return out[:len(out)-2] + "\n}"
}

// ReconstructEntry is Reconstruct applied to a parsed entry.
func ReconstructEntry(e Entry, excluded []string) string {
	return Reconstruct(e.Type, e.Key, e.Fields, excluded)
}
