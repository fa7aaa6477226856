// Package pdf inspects PDF attachments of text pages.
package pdf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNotFound is returned when an attachment does not exist.
var ErrNotFound = errors.New("PDF not found")

// DOI pattern: 10.XXXX/... where XXXX is 4-9 digits
var doiPattern = regexp.MustCompile(`10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)

// Info is what the export records about an attachment.
type Info struct {
	Path  string `json:"path"` // As written in the page config
	Pages int    `json:"pages"`
	DOI   string `json:"doi,omitempty"`
	Title string `json:"title,omitempty"`
	Size  int64  `json:"size"`
}

// maxDOIPages is how many leading pages are searched for a DOI.
const maxDOIPages = 3

// ResolvePath resolves an attachment path against the public directory.
// Paths are site URLs, so a leading "/" is relative to publicDir.
func ResolvePath(publicDir, ref string) (string, error) {
	if ref == "" {
		return "", fmt.Errorf("no PDF path specified")
	}

	fullPath := filepath.Join(publicDir, filepath.FromSlash(strings.TrimPrefix(ref, "/")))

	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, fullPath)
		}
		return "", fmt.Errorf("checking PDF: %w", err)
	}

	return fullPath, nil
}

// Inspect resolves ref against publicDir and reads its page count, DOI and title.
func Inspect(publicDir, ref string) (info Info, err error) {
	fullPath, err := ResolvePath(publicDir, ref)
	if err != nil {
		return Info{}, err
	}

	// The PDF reader panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			info, err = Info{}, fmt.Errorf("reading %s: %v", ref, r)
		}
	}()

	f, r, err := pdf.Open(fullPath)
	if err != nil {
		return Info{}, fmt.Errorf("opening %s: %w", ref, err)
	}
	defer f.Close()

	info = Info{Path: ref, Pages: r.NumPage()}
	if stat, err := f.Stat(); err == nil {
		info.Size = stat.Size()
	}

	for i := 1; i <= min(maxDOIPages, info.Pages); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		if i == 1 {
			info.Title = findTitle(text)
		}
		if info.DOI == "" {
			info.DOI = findDOI(text)
		}
	}

	return info, nil
}

// findTitle returns the first substantial line of first-page text.
func findTitle(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) > 20 && !isHeaderLine(line) {
			return line
		}
	}
	return ""
}

// findDOI finds a DOI in text.
func findDOI(text string) string {
	for _, match := range doiPattern.FindAllString(text, -1) {
		match = strings.TrimRight(match, ".,;:)")
		if isValidDOI(match) {
			return match
		}
	}
	return ""
}

// isValidDOI performs basic validation on a DOI.
func isValidDOI(doi string) bool {
	if len(doi) < 10 || !strings.HasPrefix(doi, "10.") {
		return false
	}
	slashIdx := strings.Index(doi, "/")
	return slashIdx != -1 && slashIdx < len(doi)-1
}

// isHeaderLine checks if a line is likely a running header or footer.
func isHeaderLine(line string) bool {
	lower := strings.ToLower(line)
	switch {
	case strings.Contains(lower, "journal"),
		strings.Contains(lower, "copyright"),
		strings.Contains(lower, "volume") && strings.Contains(lower, "issue"),
		strings.Contains(lower, "article") && strings.Contains(lower, "published"):
		return true
	}
	return false
}
