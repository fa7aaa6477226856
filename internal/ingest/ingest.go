// Package ingest turns BibTeX and TOML sources into sorted publication lists.
package ingest

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/matsen/folio/internal/bibtex"
	"github.com/matsen/folio/internal/publication"
)

// ErrInvalidYear marks an entry whose year was missing or not a number.
// The entry is still returned with the current year.
var ErrInvalidYear = errors.New("invalid year")

// Options configures ingestion.
type Options struct {
	// Owner is highlighted in author lists
	Owner publication.Owner
	// Now supplies the default year and the fallback id timestamp. Defaults to time.Now.
	Now func() time.Time
}

func (o Options) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// FallbackID returns the id given to an entry with no key or id field.
func FallbackID(now time.Time, index int) string {
	return fmt.Sprintf("pub-%d-%d", now.UnixMilli(), index)
}

// FromBibTeX parses a BibTeX document into publications, most recent first.
//
// Malformed entries are skipped and reported as bibtex.ParseError values.
// Unparseable fields fall back to documented defaults and are reported as
// warnings; the returned slice still contains those entries.
func FromBibTeX(text string, opts Options) ([]publication.Publication, []error) {
	entries, errs := bibtex.Parse(text)
	now := opts.now()

	pubs := make([]publication.Publication, 0, len(entries))
	for i, entry := range entries {
		pub, warn := fromEntry(entry, i, now, opts.Owner)
		if warn != nil {
			errs = append(errs, fmt.Errorf("entry %d (%s): %w", i+1, pub.ID, warn))
		}
		pubs = append(pubs, pub)
	}

	publication.Sort(pubs)
	return pubs, errs
}

// fromEntry maps one parsed entry. index is the entry's position in the file.
func fromEntry(e bibtex.Entry, index int, now time.Time, owner publication.Owner) (publication.Publication, error) {
	var warn error

	year, ok := publication.ParseYear(e.Value("year"))
	if !ok {
		warn = fmt.Errorf("%w %q, using %d", ErrInvalidYear, e.Value("year"), now.Year())
		year = now.Year()
	}

	title := e.Value("title")
	if title == "" {
		title = "Untitled"
	}

	keywords := splitKeywords(e.Value("keywords"))

	pub := publication.Publication{
		ID:      entryID(e, index, now),
		Title:   bibtex.Sanitize(title),
		Authors: bibtex.ParseAuthors(e.Value("author"), owner),
		Year:    year,
		Month:   publication.DisplayMonth(bibtex.Sanitize(e.Value("month"))),
		Type:    publication.NormalizeType(e.Type),
		Status:  publication.String("published"),
		Tags:    keywords,

		Journal:    bibtex.SanitizeOptional(e, "journal"),
		Conference: bibtex.SanitizeOptional(e, "booktitle"),
		Publisher:  bibtex.SanitizeOptional(e, "publisher"),
		Abstract:   bibtex.SanitizeOptional(e, "abstract"),
		Volume:     raw(e, "volume"),
		Issue:      raw(e, "number"),
		Pages:      raw(e, "pages"),
		DOI:        raw(e, "doi"),
		URL:        raw(e, "url"),
		Code:       raw(e, "code"),

		Selected: publication.Bool(e.Value("selected") == "true" || e.Value("selected") == "yes"),
		Bibtex:   publication.String(bibtex.ReconstructEntry(e, bibtex.DisplayOnlyFields)),
	}

	if len(keywords) > 0 {
		pub.Keywords = append([]string(nil), keywords...)
	}

	if area := bibtex.Sanitize(e.Value("researcharea")); area != "" {
		pub.ResearchArea = &area
	}

	if desc := bibtex.SanitizeOptional(e, "description"); desc != nil && *desc != "" {
		pub.Description = desc
	} else if note := bibtex.SanitizeOptional(e, "note"); note != nil {
		pub.Description = note
	} else {
		pub.Description = desc
	}

	if preview, ok := e.Get("preview"); ok {
		pub.Preview = publication.String(strings.NewReplacer("{", "", "}", "").Replace(preview))
	}

	return pub, warn
}

// entryID prefers the citation key, then an explicit id field, then a
// generated id unique within one pass.
func entryID(e bibtex.Entry, index int, now time.Time) string {
	if e.Key != "" {
		return e.Key
	}
	if id := strings.TrimSpace(e.Value("id")); id != "" {
		return id
	}
	return FallbackID(now, index)
}

// raw returns a field verbatim, or nil when absent.
func raw(e bibtex.Entry, name string) *string {
	v, ok := e.Get(name)
	if !ok {
		return nil
	}
	return &v
}

// splitKeywords splits a comma-separated keyword field. Empty pieces are dropped.
func splitKeywords(s string) []string {
	keywords := []string{}
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}

// DuplicateIDs returns ids that occur more than once, in first-seen order.
func DuplicateIDs(pubs []publication.Publication) []string {
	counts := make(map[string]int, len(pubs))
	var order []string
	for _, p := range pubs {
		if counts[p.ID] == 0 {
			order = append(order, p.ID)
		}
		counts[p.ID]++
	}

	var dups []string
	for _, id := range order {
		if counts[id] > 1 {
			dups = append(dups, id)
		}
	}
	return dups
}
