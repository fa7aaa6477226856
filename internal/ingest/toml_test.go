package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matsen/folio/internal/publication"
)

const sampleTOML = `
title = "Patents & Talks"
description = "Things that are not in the .bib file"

[[publication]]
id = "talk-2021"
title = "An Older Talk"
authors = ["Jiale Liu", "Ada Lovelace*"]
year = 2021
pubType = "Talk"
researcharea = "robotics"

[[publication]]
id = "patent-2024"
title = "A Patent"
authors = [
  "$J. Liu*",
  "Charles Babbage",
  { name = "Structured Person", affiliation = "Somewhere University", isMainAuthor = true },
]
year = "2024"
month = 5
type = "Patent"
pubType = "ignored"
researchArea = "systems"
researcharea = "ignored"
patentNumber = "US 1,234,567"
citations = 12
impactFactor = 3.5
selected = true
tags = ["hardware", "sensors"]
awards = ["Best Patent"]

[[publication]]
title = "Missing id and year"
`

func TestFromTOML(t *testing.T) {
	doc, err := FromTOML([]byte(sampleTOML), testOptions())
	require.NoError(t, err)

	assert.Equal(t, "Patents & Talks", doc.Title)
	assert.Equal(t, "Things that are not in the .bib file", doc.Description)
	require.Len(t, doc.Publications, 3)

	// The undated record gets the current year and sorts first
	assert.Equal(t, []string{FallbackID(fixedNow, 2), "patent-2024", "talk-2021"}, ids(doc.Publications))

	missing := doc.Publications[0]
	assert.Equal(t, fixedNow.Year(), missing.Year)
	assert.Equal(t, publication.TypeJournal, missing.Type)
	assert.Equal(t, []publication.Author{}, missing.Authors)
	assert.Equal(t, []string{}, missing.Tags)

	patent := doc.Publications[1]
	assert.Equal(t, 2024, patent.Year)
	assert.Equal(t, publication.Type("Patent"), patent.Type, "canonical type wins over pubType")
	require.NotNil(t, patent.ResearchArea)
	assert.Equal(t, "systems", *patent.ResearchArea, "canonical researchArea wins")
	require.NotNil(t, patent.Month)
	assert.Equal(t, "5", *patent.Month)
	require.NotNil(t, patent.PatentNumber)
	assert.Equal(t, "US 1,234,567", *patent.PatentNumber)
	require.NotNil(t, patent.Citations)
	assert.Equal(t, 12, *patent.Citations)
	require.NotNil(t, patent.ImpactFactor)
	assert.InDelta(t, 3.5, *patent.ImpactFactor, 1e-9)
	assert.True(t, patent.IsSelected())
	assert.Equal(t, []string{"hardware", "sensors"}, patent.Tags)
	assert.Equal(t, []string{"Best Patent"}, patent.Awards)
	assert.Nil(t, patent.Bibtex)

	require.Len(t, patent.Authors, 3)
	assert.Equal(t, publication.Author{Name: "J. Liu", IsHighlighted: true, IsCorresponding: true}, patent.Authors[0])
	assert.Equal(t, publication.Author{Name: "Charles Babbage"}, patent.Authors[1])
	assert.Equal(t, publication.Author{
		Name:         "Structured Person",
		Affiliation:  "Somewhere University",
		IsMainAuthor: true,
	}, patent.Authors[2])

	talk := doc.Publications[2]
	assert.Equal(t, publication.Type("Talk"), talk.Type, "pubType renamed to type")
	require.NotNil(t, talk.ResearchArea)
	assert.Equal(t, "robotics", *talk.ResearchArea, "researcharea renamed to researchArea")
	assert.Nil(t, talk.Selected)
	require.Len(t, talk.Authors, 2)
	assert.True(t, talk.Authors[0].IsHighlighted, "owner is highlighted without a marker")
	assert.Equal(t, publication.Author{Name: "Ada Lovelace", IsCorresponding: true}, talk.Authors[1])
}

func TestFromTOML_NoPublications(t *testing.T) {
	doc, err := FromTOML([]byte(`title = "Empty"`), testOptions())
	require.NoError(t, err)
	assert.Equal(t, "Empty", doc.Title)
	assert.Empty(t, doc.Publications)
	assert.NotNil(t, doc.Publications)
}

func TestFromTOML_InvalidDocument(t *testing.T) {
	_, err := FromTOML([]byte("[[publication]\ntitle = "), testOptions())
	assert.Error(t, err)
}

func TestParseTOMLAuthor(t *testing.T) {
	tests := []struct {
		input string
		want  publication.Author
	}{
		{"Ada Lovelace", publication.Author{Name: "Ada Lovelace"}},
		{"Ada Lovelace*", publication.Author{Name: "Ada Lovelace", IsCorresponding: true}},
		{"$Ada Lovelace", publication.Author{Name: "Ada Lovelace", IsHighlighted: true}},
		{" *$Ada Lovelace ", publication.Author{Name: "Ada Lovelace", IsHighlighted: true, IsCorresponding: true}},
		{"Liu Jiale", publication.Author{Name: "Liu Jiale", IsHighlighted: true}},
	}

	owner := publication.Owner{Name: "Jiale Liu"}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTOMLAuthor(tt.input, owner))
		})
	}
}
