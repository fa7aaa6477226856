// Package publication defines the core domain types for portfolio publications.
package publication

import "strings"

// Type is the display category of a publication.
type Type string

// Canonical publication types produced by NormalizeType.
const (
	TypeJournal         Type = "journal"
	TypeConference      Type = "conference"
	TypeBook            Type = "book"
	TypeBookChapter     Type = "book-chapter"
	TypeThesis          Type = "thesis"
	TypeTechnicalReport Type = "technical-report"
	TypePreprint        Type = "preprint"
)

// Publication is a single scholarly work, normalized for display.
//
// Optional fields are pointers: nil means the source did not provide the
// field, which consumers must be able to tell apart from an empty value.
type Publication struct {
	// Identity
	ID string `json:"id"` // Citation key, explicit id, or generated fallback

	// Metadata
	Title    string   `json:"title"`
	Authors  []Author `json:"authors"`
	Abstract *string  `json:"abstract,omitempty"`

	// Venue
	Journal      *string `json:"journal,omitempty"`
	Conference   *string `json:"conference,omitempty"`
	Publisher    *string `json:"publisher,omitempty"`
	PatentNumber *string `json:"patentNumber,omitempty"`
	Volume       *string `json:"volume,omitempty"`
	Issue        *string `json:"issue,omitempty"`
	Pages        *string `json:"pages,omitempty"`
	Venue        *string `json:"venue,omitempty"`
	Location     *string `json:"location,omitempty"`

	// Date
	Year          int     `json:"year"`            // Always set; defaults to the current year
	Month         *string `json:"month,omitempty"` // "1".."12" or free text
	PublishedDate *string `json:"publishedDate,omitempty"`

	// Identifiers and links
	DOI     *string `json:"doi,omitempty"`
	ArxivID *string `json:"arxivId,omitempty"`
	PMID    *string `json:"pmid,omitempty"`
	URL     *string `json:"url,omitempty"`
	Code    *string `json:"code,omitempty"`
	Dataset *string `json:"dataset,omitempty"`
	PDFURL  *string `json:"pdfUrl,omitempty"`

	// Classification
	Type         Type     `json:"type"`
	Status       *string  `json:"status,omitempty"`
	ResearchArea *string  `json:"researchArea,omitempty"`
	Tags         []string `json:"tags"`
	Keywords     []string `json:"keywords,omitempty"`

	// Metrics
	Citations    *int     `json:"citations,omitempty"`
	ImpactFactor *float64 `json:"impactFactor,omitempty"`
	Quartile     *string  `json:"quartile,omitempty"` // Q1..Q4

	// Display
	Bibtex      *string  `json:"bibtex,omitempty"` // Only set for BibTeX sources
	Awards      []string `json:"awards,omitempty"`
	Featured    *bool    `json:"featured,omitempty"`
	Selected    *bool    `json:"selected,omitempty"`
	Preview     *string  `json:"preview,omitempty"`
	Summary     *string  `json:"summary,omitempty"`
	Description *string  `json:"description,omitempty"`
	AspectRatio *string  `json:"aspectRatio,omitempty"`
}

// IsSelected reports whether the publication is flagged for the home page.
func (p Publication) IsSelected() bool {
	return p.Selected != nil && *p.Selected
}

// Area returns the research area, or "" when none is set.
func (p Publication) Area() string {
	if p.ResearchArea == nil {
		return ""
	}
	return *p.ResearchArea
}

// VenueName returns the first venue-like field that is set, in display order.
func (p Publication) VenueName() string {
	for _, v := range []*string{p.Journal, p.Conference, p.Publisher, p.PatentNumber} {
		if v != nil && *v != "" {
			return *v
		}
	}
	return ""
}

// AreaLabel turns a research-area tag into its display label ("machine-learning" -> "machine learning").
func AreaLabel(area string) string {
	return strings.ReplaceAll(area, "-", " ")
}

// String returns a pointer to s. Used to populate optional fields.
func String(s string) *string {
	return &s
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}
