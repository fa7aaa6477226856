package areacolor

import (
	"math"
	"testing"
)

func TestIndex_KnownValues(t *testing.T) {
	tests := []struct {
		tag  string
		want int
	}{
		{"", 0},   // h = 0
		{"a", 7},  // h = 97
		{"ai", 2}, // h = 97*31 + 105 = 3112
		{"AI", 8}, // h = 65*31 + 73 = 2088
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			if got := Index(tt.tag); got != tt.want {
				t.Errorf("Index(%q) = %d, want %d", tt.tag, got, tt.want)
			}
		})
	}
}

func TestFor(t *testing.T) {
	if got := For("ai"); got.Name != "pink" || got.Light != "bg-pink-50" || got.DarkText != "dark:text-pink-400" {
		t.Errorf("For(%q) = %+v, want pink style", "ai", got)
	}
	if got := For(""); got != Palette[0] {
		t.Errorf("For(\"\") = %+v, want %+v", got, Palette[0])
	}
}

func TestFor_DeterministicAndTotal(t *testing.T) {
	tags := []string{
		"",
		"machine-learning",
		"Machine Learning",
		"robotics",
		"计算机视觉",
		"Ünïcödé",
		"emoji 🚀 tag",
		string([]byte{0xff, 0xfe}),
		"a very long tag that overflows the thirty-two bit hash several times over",
	}

	for _, tag := range tags {
		first := For(tag)
		for i := 0; i < 5; i++ {
			if got := For(tag); got != first {
				t.Fatalf("For(%q) not deterministic: %+v vs %+v", tag, got, first)
			}
		}
		idx := Index(tag)
		if idx < 0 || idx >= len(Palette) {
			t.Errorf("Index(%q) = %d, out of palette range", tag, idx)
		}
		if first != Palette[idx] {
			t.Errorf("For(%q) is not Palette[%d]", tag, idx)
		}
	}
}

func TestIndex_MinInt32(t *testing.T) {
	// "polygenelubricants" hashes to exactly math.MinInt32
	var h int32
	for _, c := range "polygenelubricants" {
		h = h*31 + int32(c)
	}
	if h != math.MinInt32 {
		t.Skipf("fixture no longer hashes to MinInt32 (got %d)", h)
	}
	if got := Index("polygenelubricants"); got != 8 {
		t.Errorf("Index(MinInt32 tag) = %d, want 8", got)
	}
}

func TestPalette_Distinct(t *testing.T) {
	seen := make(map[string]bool)
	for _, s := range Palette {
		if seen[s.Name] {
			t.Errorf("duplicate palette entry %q", s.Name)
		}
		seen[s.Name] = true
		if s.Swatch == "" {
			t.Errorf("palette entry %q has no swatch", s.Name)
		}
	}
}
