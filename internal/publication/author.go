package publication

import "strings"

// Author represents a publication author as displayed on the site.
type Author struct {
	Name            string `json:"name"` // "First Last" order
	IsHighlighted   bool   `json:"isHighlighted,omitempty"`
	IsCorresponding bool   `json:"isCorresponding,omitempty"`
	IsCoAuthor      bool   `json:"isCoAuthor,omitempty"`

	// Only set for structured authors in TOML sources.
	IsMainAuthor bool   `json:"isMainAuthor,omitempty"`
	Affiliation  string `json:"affiliation,omitempty"`
	Email        string `json:"email,omitempty"`
	ORCID        string `json:"orcid,omitempty"`
}

// Owner identifies the site owner, whose name is highlighted in author lists.
// The zero value highlights nobody.
type Owner struct {
	Name string
}

// Matches reports whether name contains the owner's name in either word order.
//
// Matching is a case-insensitive substring test, so "Jiale Liu" matches
// "Jiale Liu", "LIU JIALE" and "Dr. Jiale Liu". The reversed order moves the
// last word to the front ("Jiale Ming Liu" -> "Liu Jiale Ming").
func (o Owner) Matches(name string) bool {
	words := strings.Fields(strings.ToLower(o.Name))
	if len(words) == 0 {
		return false
	}

	name = strings.ToLower(name)
	forward := strings.Join(words, " ")
	if strings.Contains(name, forward) {
		return true
	}

	if len(words) == 1 {
		return false
	}
	last := words[len(words)-1]
	reversed := last + " " + strings.Join(words[:len(words)-1], " ")
	return strings.Contains(name, reversed)
}
