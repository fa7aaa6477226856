package bibtex

import "strings"

// Index tracks citation keys and DOIs seen across one or more sources so
// collisions can be reported.
type Index struct {
	// Keys maps citation keys to the number of times they were seen
	Keys map[string]int
	// DOIs maps normalized DOI values to the first key that used them
	DOIs map[string]string
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{
		Keys: make(map[string]int),
		DOIs: make(map[string]string),
	}
}

// Add records a key and optional DOI.
// Returns the key of an earlier entry with the same DOI, if any.
func (idx *Index) Add(key, doi string) (string, bool) {
	idx.Keys[key]++

	doi = NormalizeDOI(doi)
	if doi == "" {
		return "", false
	}
	if existing, ok := idx.DOIs[doi]; ok {
		return existing, true
	}
	idx.DOIs[doi] = key
	return "", false
}

// DuplicateKeys returns keys seen more than once, in no particular order.
func (idx *Index) DuplicateKeys() []string {
	var dups []string
	for key, n := range idx.Keys {
		if n > 1 {
			dups = append(dups, key)
		}
	}
	return dups
}

// NormalizeDOI normalizes a DOI for comparison.
// Removes common prefixes like "https://doi.org/" and lowercases.
func NormalizeDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	doi = strings.TrimPrefix(doi, "https://doi.org/")
	doi = strings.TrimPrefix(doi, "http://doi.org/")
	doi = strings.TrimPrefix(doi, "doi.org/")
	doi = strings.TrimPrefix(doi, "DOI:")
	doi = strings.TrimPrefix(doi, "doi:")
	return strings.ToLower(doi)
}
