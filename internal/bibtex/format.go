package bibtex

import (
	"fmt"
	"strings"

	"github.com/matsen/folio/internal/publication"
)

// entryTypes maps display types back to BibTeX entry types.
var entryTypes = map[publication.Type]string{
	publication.TypeJournal:         "article",
	publication.TypeConference:      "inproceedings",
	publication.TypeBook:            "book",
	publication.TypeBookChapter:     "incollection",
	publication.TypeThesis:          "phdthesis",
	publication.TypeTechnicalReport: "techreport",
	publication.TypePreprint:        "misc",
}

// Format renders a publication that has no source BibTeX (e.g. one authored
// in TOML) as a BibTeX entry for copying.
func Format(p publication.Publication) string {
	entryType := determineEntryType(p)
	var b strings.Builder

	b.WriteString(fmt.Sprintf("@%s{%s,\n", entryType, p.ID))

	if len(p.Authors) > 0 {
		b.WriteString(fmt.Sprintf("  author = {%s},\n", formatAuthors(p.Authors)))
	}

	b.WriteString(fmt.Sprintf("  title = {%s},\n", escapeLatex(p.Title)))

	// Venue
	if p.Journal != nil && *p.Journal != "" {
		b.WriteString(fmt.Sprintf("  journal = {%s},\n", escapeLatex(*p.Journal)))
	}
	if p.Conference != nil && *p.Conference != "" {
		b.WriteString(fmt.Sprintf("  booktitle = {%s},\n", escapeLatex(*p.Conference)))
	}
	if p.Publisher != nil && *p.Publisher != "" {
		b.WriteString(fmt.Sprintf("  publisher = {%s},\n", escapeLatex(*p.Publisher)))
	}

	b.WriteString(fmt.Sprintf("  year = {%d},\n", p.Year))

	if p.Month != nil {
		if m, ok := publication.NormalizeMonth(*p.Month); ok {
			b.WriteString(fmt.Sprintf("  month = {%d},\n", m))
		}
	}

	writeOptional(&b, "volume", p.Volume)
	writeOptional(&b, "number", p.Issue)
	writeOptional(&b, "pages", p.Pages)
	writeOptional(&b, "doi", p.DOI)
	writeOptional(&b, "url", p.URL)

	b.WriteString("}\n")

	return b.String()
}

// writeOptional writes a verbatim field if it is set.
func writeOptional(b *strings.Builder, name string, value *string) {
	if value == nil || *value == "" {
		return
	}
	b.WriteString(fmt.Sprintf("  %s = {%s},\n", name, *value))
}

// determineEntryType returns the BibTeX entry type for a publication.
// Display types outside the canonical set (e.g. "Patent") become misc.
func determineEntryType(p publication.Publication) string {
	if t, ok := entryTypes[publication.Type(strings.ToLower(string(p.Type)))]; ok {
		return t
	}
	if p.Type == "" {
		return "article"
	}
	return "misc"
}

// formatAuthors joins display names with " and ".
func formatAuthors(authors []publication.Author) string {
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		names = append(names, escapeLatex(a.Name))
	}
	return strings.Join(names, " and ")
}

// escapeLatex escapes special LaTeX characters.
func escapeLatex(s string) string {
	// Order matters: & must be first (before other escapes that might produce &)
	replacer := strings.NewReplacer(
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}
