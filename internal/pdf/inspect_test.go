package pdf

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFindDOI(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain", "Available at 10.1234/abcd.5678 online", "10.1234/abcd.5678"},
		{"trailing punctuation", "See doi 10.1000/xyz123.", "10.1000/xyz123"},
		{"url form", "https://doi.org/10.48550/arXiv.2301.00001)", "10.48550/arXiv.2301.00001"},
		{"too few registrant digits", "10.12/abc", ""},
		{"none", "no identifiers here", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := findDOI(tt.text); got != tt.want {
				t.Errorf("findDOI(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestFindTitle(t *testing.T) {
	text := "Journal of Robotics Research, Volume 3\nshort\n  Deep Learning for Robotics Applications  \nAbstract"
	if got := findTitle(text); got != "Deep Learning for Robotics Applications" {
		t.Errorf("findTitle() = %q", got)
	}
	if got := findTitle("tiny\nlines"); got != "" {
		t.Errorf("findTitle() = %q, want empty", got)
	}
}

func TestIsHeaderLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"Copyright 2024 the authors", true},
		{"Volume 3, Issue 2", true},
		{"Article first published online", true},
		{"A Study of Things", false},
	}
	for _, tt := range tests {
		if got := isHeaderLine(tt.line); got != tt.want {
			t.Errorf("isHeaderLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestResolvePath(t *testing.T) {
	publicDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(publicDir, "papers"), 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	want := filepath.Join(publicDir, "papers", "cv.pdf")
	if err := os.WriteFile(want, []byte("%PDF-1.4"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	for _, ref := range []string{"/papers/cv.pdf", "papers/cv.pdf"} {
		got, err := ResolvePath(publicDir, ref)
		if err != nil {
			t.Fatalf("ResolvePath(%q) error = %v", ref, err)
		}
		if got != want {
			t.Errorf("ResolvePath(%q) = %q, want %q", ref, got, want)
		}
	}

	if _, err := ResolvePath(publicDir, "/missing.pdf"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ResolvePath(missing) error = %v, want ErrNotFound", err)
	}
	if _, err := ResolvePath(publicDir, ""); err == nil {
		t.Error("ResolvePath(\"\") should fail")
	}
}

func TestInspect_NotAPDF(t *testing.T) {
	publicDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(publicDir, "fake.pdf"), []byte("not a pdf"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := Inspect(publicDir, "/fake.pdf"); err == nil {
		t.Error("Inspect() should fail for a file that is not a PDF")
	}
}
