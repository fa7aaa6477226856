// Package filter narrows publication and card lists the way site visitors do.
//
// All filters are in-memory and preserve input order.
package filter

import (
	"sort"
	"strings"

	"github.com/matsen/folio/internal/publication"
)

// PublicationQuery selects publications. Zero-valued fields match everything.
type PublicationQuery struct {
	Text string           // Case-insensitive substring of title, author, journal or conference
	Year int              // Exact year
	Type publication.Type // Exact type
	Area string           // Exact research area
}

// Publications returns the publications matching q.
func Publications(pubs []publication.Publication, q PublicationQuery) []publication.Publication {
	text := strings.ToLower(q.Text)

	out := []publication.Publication{}
	for _, p := range pubs {
		if text != "" && !matchesText(p, text) {
			continue
		}
		if q.Year != 0 && p.Year != q.Year {
			continue
		}
		if q.Type != "" && p.Type != q.Type {
			continue
		}
		if q.Area != "" && p.Area() != q.Area {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesText(p publication.Publication, text string) bool {
	if strings.Contains(strings.ToLower(p.Title), text) {
		return true
	}
	for _, a := range p.Authors {
		if strings.Contains(strings.ToLower(a.Name), text) {
			return true
		}
	}
	for _, v := range []*string{p.Journal, p.Conference} {
		if v != nil && strings.Contains(strings.ToLower(*v), text) {
			return true
		}
	}
	return false
}

// Facets are the distinct filter values present in a publication list.
type Facets struct {
	Years []int              `json:"years"` // Most recent first
	Types []publication.Type `json:"types"`
	Areas []string           `json:"areas"` // Non-empty only
}

// FacetsOf collects the years, types and research areas of pubs.
func FacetsOf(pubs []publication.Publication) Facets {
	years := make(map[int]bool)
	types := make(map[publication.Type]bool)
	areas := make(map[string]bool)
	for _, p := range pubs {
		years[p.Year] = true
		types[p.Type] = true
		if a := p.Area(); a != "" {
			areas[a] = true
		}
	}

	f := Facets{Years: []int{}, Types: []publication.Type{}, Areas: []string{}}
	for y := range years {
		f.Years = append(f.Years, y)
	}
	for t := range types {
		f.Types = append(f.Types, t)
	}
	for a := range areas {
		f.Areas = append(f.Areas, a)
	}

	sort.Sort(sort.Reverse(sort.IntSlice(f.Years)))
	sort.Slice(f.Types, func(i, j int) bool { return f.Types[i] < f.Types[j] })
	sort.Strings(f.Areas)
	return f
}

// Selected returns publications flagged for the home page.
func Selected(pubs []publication.Publication) []publication.Publication {
	out := []publication.Publication{}
	for _, p := range pubs {
		if p.IsSelected() {
			out = append(out, p)
		}
	}
	return out
}

// patentTypes are display types listed under "Patents" rather than "Publications".
var patentTypes = map[string]bool{
	"patent":             true,
	"software copyright": true,
}

// Section is a titled group of publications.
type Section struct {
	Title        string                    `json:"title"`
	Publications []publication.Publication `json:"publications"`
}

// Sections splits pubs into "Publications" and "Patents", dropping empty groups.
// Type comparison ignores case so "Patent" and "patent" group together.
func Sections(pubs []publication.Publication) []Section {
	papers := Section{Title: "Publications", Publications: []publication.Publication{}}
	patents := Section{Title: "Patents", Publications: []publication.Publication{}}

	for _, p := range pubs {
		if patentTypes[strings.ToLower(string(p.Type))] {
			patents.Publications = append(patents.Publications, p)
		} else {
			papers.Publications = append(papers.Publications, p)
		}
	}

	var out []Section
	for _, s := range []Section{papers, patents} {
		if len(s.Publications) > 0 {
			out = append(out, s)
		}
	}
	return out
}
