package ingest

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/matsen/folio/internal/publication"
)

// Author markers used in TOML author strings.
const (
	tomlCorrespondingMarker = "*"
	tomlHighlightMarker     = "$"
)

// Document is a TOML publication list with its display metadata.
type Document struct {
	Title        string                    `json:"title,omitempty"`
	Description  string                    `json:"description,omitempty"`
	Publications []publication.Publication `json:"publications"`
}

// FromTOML decodes [[publication]] records, most recent first.
//
// Records are loosely typed: numbers and strings are accepted for text and
// numeric fields alike, and values of the wrong shape are ignored.
func FromTOML(data []byte, opts Options) (Document, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Document{}, fmt.Errorf("parsing TOML: %w", err)
	}

	doc := record(raw)
	out := Document{
		Title:        doc.text("title"),
		Description:  doc.text("description"),
		Publications: []publication.Publication{},
	}

	items, _ := raw["publication"].([]any)
	now := opts.now()
	for i, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out.Publications = append(out.Publications, fromRecord(record(fields), i, now, opts.Owner))
	}

	publication.Sort(out.Publications)
	return out, nil
}

// fromRecord maps one TOML record.
func fromRecord(r record, index int, now time.Time, owner publication.Owner) publication.Publication {
	r.alias("type", "pubType")
	r.alias("researchArea", "researcharea")

	id := r.text("id")
	if id == "" {
		id = FallbackID(now, index)
	}

	year, ok := r.number("year")
	if !ok || year == 0 {
		year = now.Year()
	}

	typ := publication.Type(r.text("type"))
	if typ == "" {
		typ = publication.TypeJournal
	}

	tags := r.list("tags")
	if tags == nil {
		tags = []string{}
	}

	return publication.Publication{
		ID:      id,
		Title:   r.text("title"),
		Authors: r.authors(owner),
		Year:    year,
		Type:    typ,
		Tags:    tags,

		Abstract:      r.optional("abstract"),
		Journal:       r.optional("journal"),
		Conference:    r.optional("conference"),
		Publisher:     r.optional("publisher"),
		PatentNumber:  r.optional("patentNumber"),
		Volume:        r.optional("volume"),
		Issue:         r.optional("issue"),
		Pages:         r.optional("pages"),
		Venue:         r.optional("venue"),
		Location:      r.optional("location"),
		Month:         r.optional("month"),
		PublishedDate: r.optional("publishedDate"),
		DOI:           r.optional("doi"),
		ArxivID:       r.optional("arxivId"),
		PMID:          r.optional("pmid"),
		URL:           r.optional("url"),
		Code:          r.optional("code"),
		Dataset:       r.optional("dataset"),
		PDFURL:        r.optional("pdfUrl"),
		Status:        r.optional("status"),
		ResearchArea:  r.optional("researchArea"),
		Keywords:      r.list("keywords"),
		Citations:     r.optionalInt("citations"),
		ImpactFactor:  r.optionalFloat("impactFactor"),
		Quartile:      r.optional("quartile"),
		Awards:        r.list("awards"),
		Featured:      r.optionalBool("featured"),
		Selected:      r.optionalBool("selected"),
		Preview:       r.optional("preview"),
		Summary:       r.optional("summary"),
		Description:   r.optional("description"),
		AspectRatio:   r.optional("aspectRatio"),
	}
}

// ParseTOMLAuthor parses a plain author string. "*" marks the corresponding
// author and "$" a highlighted one; both are removed from the name. The owner
// is highlighted even without a marker.
func ParseTOMLAuthor(s string, owner publication.Owner) publication.Author {
	name := strings.TrimSpace(strings.NewReplacer(tomlCorrespondingMarker, "", tomlHighlightMarker, "").Replace(s))
	return publication.Author{
		Name:            name,
		IsHighlighted:   strings.Contains(s, tomlHighlightMarker) || owner.Matches(name),
		IsCorresponding: strings.Contains(s, tomlCorrespondingMarker),
	}
}

// record is a decoded TOML table with lenient typed accessors.
type record map[string]any

// alias copies from into to when to is absent.
func (r record) alias(to, from string) {
	if _, ok := r[to]; ok {
		return
	}
	if v, ok := r[from]; ok {
		r[to] = v
	}
}

// text returns a string-like value, or "" when absent.
func (r record) text(key string) string {
	if v := r.optional(key); v != nil {
		return *v
	}
	return ""
}

// optional returns a string-like value, or nil when absent or not scalar.
// TOML integers, floats and dates are rendered as text.
func (r record) optional(key string) *string {
	v, ok := r[key]
	if !ok {
		return nil
	}
	switch v := v.(type) {
	case string:
		return &v
	case int64:
		return publication.String(strconv.FormatInt(v, 10))
	case float64:
		return publication.String(strconv.FormatFloat(v, 'f', -1, 64))
	case bool:
		return publication.String(strconv.FormatBool(v))
	case time.Time:
		return publication.String(v.Format(time.RFC3339))
	case fmt.Stringer:
		return publication.String(v.String())
	default:
		return nil
	}
}

// number returns an integer value; numeric strings are accepted.
func (r record) number(key string) (int, bool) {
	switch v := r[key].(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		return publication.ParseYear(v)
	default:
		return 0, false
	}
}

func (r record) optionalInt(key string) *int {
	switch v := r[key].(type) {
	case int64:
		n := int(v)
		return &n
	case float64:
		n := int(v)
		return &n
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return &n
		}
	}
	return nil
}

func (r record) optionalFloat(key string) *float64 {
	switch v := r[key].(type) {
	case float64:
		return &v
	case int64:
		f := float64(v)
		return &f
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return &f
		}
	}
	return nil
}

func (r record) optionalBool(key string) *bool {
	switch v := r[key].(type) {
	case bool:
		return &v
	case string:
		return publication.Bool(v == "true" || v == "yes")
	}
	return nil
}

// list returns the string elements of an array, or nil when absent.
func (r record) list(key string) []string {
	switch v := r[key].(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return splitKeywords(v)
	default:
		return nil
	}
}

// authors maps string authors through ParseTOMLAuthor and passes tables through.
func (r record) authors(owner publication.Owner) []publication.Author {
	list, ok := r["authors"].([]any)
	if !ok {
		return []publication.Author{}
	}

	authors := make([]publication.Author, 0, len(list))
	for _, item := range list {
		switch v := item.(type) {
		case string:
			authors = append(authors, ParseTOMLAuthor(v, owner))
		case map[string]any:
			a := record(v)
			authors = append(authors, publication.Author{
				Name:            a.text("name"),
				IsHighlighted:   a.flag("isHighlighted"),
				IsCorresponding: a.flag("isCorresponding"),
				IsCoAuthor:      a.flag("isCoAuthor"),
				IsMainAuthor:    a.flag("isMainAuthor"),
				Affiliation:     a.text("affiliation"),
				Email:           a.text("email"),
				ORCID:           a.text("orcid"),
			})
		}
	}
	return authors
}

func (r record) flag(key string) bool {
	b, _ := r[key].(bool)
	return b
}
