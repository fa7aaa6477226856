package bibtex

import (
	"testing"

	"github.com/matsen/folio/internal/publication"
)

func TestParseAuthors(t *testing.T) {
	owner := publication.Owner{Name: "Jiale Liu"}

	tests := []struct {
		name  string
		input string
		want  []publication.Author
	}{
		{
			name:  "role markers and last-first order",
			input: "Smith, John* and Doe, Jane#",
			want: []publication.Author{
				{Name: "John Smith", IsCorresponding: true},
				{Name: "Jane Doe", IsCoAuthor: true},
			},
		},
		{
			name:  "first-last order kept",
			input: "Ada Lovelace and Charles Babbage",
			want: []publication.Author{
				{Name: "Ada Lovelace"},
				{Name: "Charles Babbage"},
			},
		},
		{
			name:  "owner highlighted in either order",
			input: "Liu, Jiale*# and Jiale Liu",
			want: []publication.Author{
				{Name: "Jiale Liu", IsHighlighted: true, IsCorresponding: true, IsCoAuthor: true},
				{Name: "Jiale Liu", IsHighlighted: true},
			},
		},
		{
			name:  "marker position does not matter",
			input: "*Alice Brown and Bob# Jones",
			want: []publication.Author{
				{Name: "Alice Brown", IsCorresponding: true},
				{Name: "Bob Jones", IsCoAuthor: true},
			},
		},
		{
			name:  "braces and accents sanitized",
			input: `M{\"u}ller, Hans and {van der Berg}, Anna`,
			want: []publication.Author{
				{Name: `Hans M"uller`},
				{Name: "Anna van der Berg"},
			},
		},
		{
			name:  "trailing separator dropped",
			input: "Alice Brown and ",
			want: []publication.Author{
				{Name: "Alice Brown"},
			},
		},
		{
			name:  "empty names dropped",
			input: "Alice Brown and * and Bob Jones",
			want: []publication.Author{
				{Name: "Alice Brown"},
				{Name: "Bob Jones"},
			},
		},
		{
			name:  "uppercase AND is not a separator",
			input: "Alice Brown AND Bob Jones",
			want: []publication.Author{
				{Name: "Alice Brown AND Bob Jones"},
			},
		},
		{
			name:  "comma without given name",
			input: "Consortium,",
			want: []publication.Author{
				{Name: "Consortium"},
			},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAuthors(tt.input, owner)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseAuthors(%q) returned %d authors %+v, want %d", tt.input, len(got), got, len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("author %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseAuthors_EmptyIsNotNil(t *testing.T) {
	for _, in := range []string{"", "   "} {
		if got := ParseAuthors(in, publication.Owner{}); got == nil || len(got) != 0 {
			t.Errorf("ParseAuthors(%q) = %#v, want empty non-nil slice", in, got)
		}
	}
}

func TestParseAuthors_NoOwner(t *testing.T) {
	got := ParseAuthors("Liu, Jiale", publication.Owner{})
	if len(got) != 1 || got[0].IsHighlighted {
		t.Errorf("ParseAuthors() with zero owner = %+v, want no highlight", got)
	}
}

func TestStripAuthorMarkers(t *testing.T) {
	if got := StripAuthorMarkers("Smith, John* and Doe, Jane#"); got != "Smith, John and Doe, Jane" {
		t.Errorf("StripAuthorMarkers() = %q", got)
	}
}
