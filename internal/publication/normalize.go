package publication

import (
	"strconv"
	"strings"
)

// typeMapping maps BibTeX entry types to display types.
var typeMapping = map[string]Type{
	"article":       TypeJournal,
	"inproceedings": TypeConference,
	"conference":    TypeConference,
	"incollection":  TypeBookChapter,
	"book":          TypeBook,
	"phdthesis":     TypeThesis,
	"mastersthesis": TypeThesis,
	"techreport":    TypeTechnicalReport,
	"unpublished":   TypePreprint,
	"misc":          TypePreprint,
}

// monthMapping maps full and abbreviated month names to 1-12.
var monthMapping = map[string]int{
	"jan": 1, "january": 1,
	"feb": 2, "february": 2,
	"mar": 3, "march": 3,
	"apr": 4, "april": 4,
	"may": 5,
	"jun": 6, "june": 6,
	"jul": 7, "july": 7,
	"aug": 8, "august": 8,
	"sep": 9, "sept": 9, "september": 9,
	"oct": 10, "october": 10,
	"nov": 11, "november": 11,
	"dec": 12, "december": 12,
}

// NormalizeType maps a BibTeX entry type to a display type.
// Unknown entry types fall back to TypeJournal.
func NormalizeType(kind string) Type {
	if t, ok := typeMapping[strings.ToLower(strings.TrimSpace(kind))]; ok {
		return t
	}
	return TypeJournal
}

// NormalizeMonth converts a month name or number to 1-12.
// Returns false when the value is neither a known name nor a number in range.
func NormalizeMonth(raw string) (int, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return 0, false
	}
	if m, ok := monthMapping[s]; ok {
		return m, true
	}
	m, err := strconv.Atoi(s)
	if err != nil || m < 1 || m > 12 {
		return 0, false
	}
	return m, true
}

// DisplayMonth returns the month value to store on a publication.
// Known month names become their numeric string ("mar" -> "3"); anything else
// is kept as written. Empty input yields nil.
func DisplayMonth(raw string) *string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	if m, ok := monthMapping[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return String(strconv.Itoa(m))
	}
	return String(raw)
}

// ParseYear extracts the leading integer of a year field ("2023", " 2023a").
// Returns false for values without a positive leading integer.
func ParseYear(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	year, err := strconv.Atoi(s[:end])
	if err != nil || year == 0 {
		return 0, false
	}
	return year, true
}
