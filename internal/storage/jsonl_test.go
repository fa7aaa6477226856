package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matsen/folio/internal/publication"
)

func TestReadPublications_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "publications.jsonl")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	f.Close()

	pubs, err := ReadPublications(path)
	if err != nil {
		t.Fatalf("ReadPublications() error = %v", err)
	}
	if len(pubs) != 0 {
		t.Errorf("ReadPublications() returned %d publications, want 0", len(pubs))
	}
}

func TestReadPublications_NonExistentFile(t *testing.T) {
	pubs, err := ReadPublications("/nonexistent/path/publications.jsonl")
	if err != nil {
		t.Fatalf("ReadPublications() error = %v (should return nil for nonexistent file)", err)
	}
	if len(pubs) != 0 {
		t.Errorf("ReadPublications() returned %v, want empty", pubs)
	}
}

func TestReadPublications_SkipsEmptyLines(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "publications.jsonl")

	content := `{"id":"A","title":"Paper A","authors":[],"year":2024,"type":"journal","tags":[]}

{"id":"B","title":"Paper B","authors":[],"year":2023,"type":"conference","tags":[]}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	pubs, err := ReadPublications(path)
	if err != nil {
		t.Fatalf("ReadPublications() error = %v", err)
	}
	if len(pubs) != 2 {
		t.Fatalf("ReadPublications() returned %d publications, want 2", len(pubs))
	}
	if pubs[1].Type != publication.TypeConference {
		t.Errorf("pubs[1].Type = %q, want conference", pubs[1].Type)
	}
}

func TestReadPublications_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "publications.jsonl")

	if err := os.WriteFile(path, []byte("{\"id\":\"A\"}\nnot json\n"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	_, err := ReadPublications(path)
	if err == nil {
		t.Fatal("ReadPublications() should fail on invalid JSON")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error = %v, want mention of line 2", err)
	}
}

func TestWritePublications_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "publications.jsonl")

	pubs := []publication.Publication{
		{
			ID:      "liu2023",
			Title:   "Deep Learning for Robotics",
			Authors: []publication.Author{{Name: "Jiale Liu", IsHighlighted: true, IsCorresponding: true}},
			Year:    2023,
			Month:   publication.String("3"),
			Type:    publication.TypeConference,
			Tags:    []string{"robotics"},
			Journal: publication.String(""),
			Bibtex:  publication.String("@inproceedings{liu2023,\n  title = {Deep Learning for Robotics}\n}"),
		},
		{ID: "b", Title: "B", Authors: []publication.Author{}, Year: 2020, Type: "Patent", Tags: []string{}},
	}

	if err := WritePublications(path, pubs); err != nil {
		t.Fatalf("WritePublications() error = %v", err)
	}

	got, err := ReadPublications(path)
	if err != nil {
		t.Fatalf("ReadPublications() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d publications, want 2", len(got))
	}

	p := got[0]
	if p.ID != "liu2023" || p.Year != 2023 || p.Type != publication.TypeConference {
		t.Errorf("first publication = %+v", p)
	}
	if p.Month == nil || *p.Month != "3" {
		t.Errorf("Month = %v, want 3", p.Month)
	}
	if p.Journal == nil || *p.Journal != "" {
		t.Errorf("Journal = %v, want present empty string", p.Journal)
	}
	if p.Conference != nil {
		t.Errorf("Conference = %q, want absent", *p.Conference)
	}
	if p.Bibtex == nil || *p.Bibtex != *pubs[0].Bibtex {
		t.Errorf("Bibtex not preserved: %v", p.Bibtex)
	}
	if len(p.Authors) != 1 || p.Authors[0] != pubs[0].Authors[0] {
		t.Errorf("Authors = %+v", p.Authors)
	}
}

func TestWritePublications_Overwrites(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "publications.jsonl")

	first := []publication.Publication{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	if err := WritePublications(path, first); err != nil {
		t.Fatalf("WritePublications() error = %v", err)
	}
	if err := WritePublications(path, first[:1]); err != nil {
		t.Fatalf("WritePublications() error = %v", err)
	}

	got, err := ReadPublications(path)
	if err != nil {
		t.Fatalf("ReadPublications() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d publications after overwrite, want 1", len(got))
	}
}

func TestWritePublications_OmitsAbsentFields(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "publications.jsonl")

	if err := WritePublications(path, []publication.Publication{{ID: "a", Tags: []string{}}}); err != nil {
		t.Fatalf("WritePublications() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	line := string(data)
	for _, absent := range []string{`"journal"`, `"month"`, `"bibtex"`, `"selected"`} {
		if strings.Contains(line, absent) {
			t.Errorf("output contains %s for an absent field: %s", absent, line)
		}
	}
	if !strings.Contains(line, `"tags":[]`) {
		t.Errorf("output should always contain tags: %s", line)
	}
}

func TestFindByID(t *testing.T) {
	pubs := []publication.Publication{{ID: "a"}, {ID: "b"}}

	if idx, found := FindByID(pubs, "b"); !found || idx != 1 {
		t.Errorf("FindByID(b) = (%d, %v), want (1, true)", idx, found)
	}
	if idx, found := FindByID(pubs, "z"); found || idx != -1 {
		t.Errorf("FindByID(z) = (%d, %v), want (-1, false)", idx, found)
	}
}

func TestFindByDOI(t *testing.T) {
	pubs := []publication.Publication{
		{ID: "a"},
		{ID: "b", DOI: publication.String("10.1234/b")},
	}

	if idx, found := FindByDOI(pubs, "10.1234/b"); !found || idx != 1 {
		t.Errorf("FindByDOI() = (%d, %v), want (1, true)", idx, found)
	}
	if _, found := FindByDOI(pubs, ""); found {
		t.Error("FindByDOI(\"\") should not match")
	}
}
