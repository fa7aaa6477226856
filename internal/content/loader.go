// Package content loads site content files: Markdown, BibTeX and TOML pages.
//
// Loading never fails outright. A missing or malformed file is logged and
// yields an empty result, so one bad file cannot break a whole build.
package content

import (
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pelletier/go-toml/v2"

	"github.com/matsen/folio/internal/ingest"
	"github.com/matsen/folio/internal/publication"
)

// Loader reads content files relative to Dir.
type Loader struct {
	Dir     string
	Logger  *slog.Logger
	Options ingest.Options
}

// NewLoader creates a loader for dir. A nil logger uses slog.Default.
func NewLoader(dir string, logger *slog.Logger, opts ingest.Options) *Loader {
	return &Loader{Dir: dir, Logger: logger, Options: opts}
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.Default()
	}
	return l.Logger
}

// read returns the bytes of a content file, logging failures.
func (l *Loader) read(name, kind string) ([]byte, bool) {
	data, err := os.ReadFile(filepath.Join(l.Dir, filepath.FromSlash(name)))
	if err != nil {
		l.logger().Error("loading content", "kind", kind, "file", name, "error", err)
		return nil, false
	}
	return data, true
}

// Markdown returns the text of a Markdown file, or "" on failure.
func (l *Loader) Markdown(name string) string {
	data, _ := l.read(name, "markdown")
	return string(data)
}

// BibTeX returns the text of a BibTeX file, or "" on failure.
func (l *Loader) BibTeX(name string) string {
	data, _ := l.read(name, "bibtex")
	return string(data)
}

// DecodeTOML decodes a TOML file into v. Returns false on failure.
func (l *Loader) DecodeTOML(name string, v any) bool {
	data, ok := l.read(name, "toml")
	if !ok {
		return false
	}
	if err := toml.Unmarshal(data, v); err != nil {
		l.logger().Error("parsing TOML", "file", name, "error", err)
		return false
	}
	return true
}

// Source is a loaded publication source.
type Source struct {
	Name         string
	Title        string
	Description  string
	Publications []publication.Publication
	Warnings     []error
}

// LoadSource loads publications from a .bib or .toml file.
// Warnings are logged and returned; a failed read yields an empty source.
func (l *Loader) LoadSource(name string) Source {
	src := Source{Name: name, Publications: []publication.Publication{}}

	switch strings.ToLower(path.Ext(name)) {
	case ".bib":
		data, ok := l.read(name, "bibtex")
		if !ok {
			return src
		}
		pubs, warnings := ingest.FromBibTeX(string(data), l.Options)
		src.Publications = pubs
		src.Warnings = warnings
	case ".toml":
		data, ok := l.read(name, "toml")
		if !ok {
			return src
		}
		doc, err := ingest.FromTOML(data, l.Options)
		if err != nil {
			l.logger().Error("parsing TOML", "file", name, "error", err)
			src.Warnings = append(src.Warnings, err)
			return src
		}
		src.Title = doc.Title
		src.Description = doc.Description
		src.Publications = doc.Publications
	default:
		l.logger().Error("unsupported publication source", "file", name)
		return src
	}

	for _, w := range src.Warnings {
		l.logger().Warn("publication source", "file", name, "warning", w)
	}
	for _, id := range ingest.DuplicateIDs(src.Publications) {
		l.logger().Warn("duplicate publication id", "file", name, "id", id)
	}
	l.logger().Debug("loaded publications", "file", name, "count", len(src.Publications))

	return src
}

// Publications loads a publication source, dispatching on its extension.
func (l *Loader) Publications(name string) []publication.Publication {
	return l.LoadSource(name).Publications
}

// Pages returns the names of all page configs under Dir, sorted.
// A page is a .toml file with a recognized top-level type; names are
// slash-separated paths without the extension.
func (l *Loader) Pages() ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(l.Dir), "**/*.toml")
	if err != nil {
		return nil, err
	}

	var names []string
	for _, m := range matches {
		name := strings.TrimSuffix(m, ".toml")
		if _, ok := l.PageType(name); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}
