// Package site resolves content pages into the static JSON export.
package site

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/matsen/folio/internal/areacolor"
	"github.com/matsen/folio/internal/content"
	"github.com/matsen/folio/internal/filter"
	"github.com/matsen/folio/internal/ingest"
	"github.com/matsen/folio/internal/pdf"
	"github.com/matsen/folio/internal/publication"
	"github.com/matsen/folio/internal/storage"
)

// Export file names, relative to the output directory.
const (
	PublicationsFile = "publications.jsonl"
	AreasFile        = "areas.json"
	PagesDir         = "pages"
)

// Page is the resolved export of one page config.
type Page struct {
	Name        string           `json:"name"`
	Type        content.PageType `json:"type"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`

	// Publication pages
	Source       string                    `json:"source,omitempty"`
	Publications []publication.Publication `json:"publications,omitempty"`
	Sections     []filter.Section          `json:"sections,omitempty"`
	Facets       *filter.Facets            `json:"facets,omitempty"`

	// Text and about pages
	Markdown string    `json:"markdown,omitempty"`
	PDF      *pdf.Info `json:"pdf,omitempty"`

	// Card pages
	Items      []content.CardItem `json:"items,omitempty"`
	Categories []string           `json:"categories,omitempty"`
	Groups     []filter.CardGroup `json:"groups,omitempty"`
	Tags       []string           `json:"tags,omitempty"`
}

// Result summarizes a build.
type Result struct {
	Pages        []string `json:"pages"`
	Publications int      `json:"publications"`
	Areas        int      `json:"areas"`
	Warnings     []string `json:"warnings,omitempty"`
}

// Builder writes the export for one site.
type Builder struct {
	Loader    *content.Loader
	PublicDir string
	OutputDir string
	Logger    *slog.Logger
}

// NewBuilder creates a builder. A nil logger uses slog.Default.
func NewBuilder(loader *content.Loader, publicDir, outputDir string, logger *slog.Logger) *Builder {
	return &Builder{Loader: loader, PublicDir: publicDir, OutputDir: outputDir, Logger: logger}
}

func (b *Builder) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.Default()
	}
	return b.Logger
}

// Build resolves every page and writes the export. A page that fails to
// resolve is skipped with a warning; only write failures abort the build.
func (b *Builder) Build(ctx context.Context) (Result, error) {
	names, err := b.Loader.Pages()
	if err != nil {
		return Result{}, fmt.Errorf("discovering pages: %w", err)
	}

	result := Result{Pages: []string{}}
	var all []publication.Publication
	areas := make(map[string]bool)
	exported := make(map[string]bool)

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		page, warnings, ok := b.resolve(name)
		result.Warnings = append(result.Warnings, warnings...)
		if !ok {
			continue
		}

		for _, p := range page.Publications {
			if a := p.Area(); a != "" {
				areas[a] = true
			}
		}
		for _, tag := range page.Tags {
			areas[tag] = true
		}
		if page.Type == content.PagePublication {
			// Pages sharing a source export its publications once
			key := filepath.Clean(filepath.FromSlash(page.Source))
			if !exported[key] {
				exported[key] = true
				all = append(all, page.Publications...)
			}
		}

		path := filepath.Join(b.OutputDir, PagesDir, filepath.FromSlash(name)+".json")
		if err := storage.WriteJSON(path, page); err != nil {
			return result, fmt.Errorf("writing page %s: %w", name, err)
		}
		result.Pages = append(result.Pages, name)
	}

	publication.Sort(all)
	for _, id := range ingest.DuplicateIDs(all) {
		msg := fmt.Sprintf("publication id %q appears in more than one source", id)
		b.logger().Warn("duplicate publication id", "id", id)
		result.Warnings = append(result.Warnings, msg)
	}
	if err := storage.WritePublications(filepath.Join(b.OutputDir, PublicationsFile), all); err != nil {
		return result, err
	}
	result.Publications = len(all)

	styles := AreaStyles(areas)
	if err := storage.WriteJSON(filepath.Join(b.OutputDir, AreasFile), styles); err != nil {
		return result, err
	}
	result.Areas = len(styles)

	b.logger().Info("site built",
		"pages", len(result.Pages),
		"publications", result.Publications,
		"output", b.OutputDir)

	return result, nil
}

// AreaStyles maps each tag to its color style.
func AreaStyles(tags map[string]bool) map[string]areacolor.Style {
	styles := make(map[string]areacolor.Style, len(tags))
	for tag := range tags {
		styles[tag] = areacolor.For(tag)
	}
	return styles
}

// resolve loads one page config and everything it references.
func (b *Builder) resolve(name string) (*Page, []string, bool) {
	typ, ok := b.Loader.PageType(name)
	if !ok {
		return nil, []string{fmt.Sprintf("page %s: unreadable or unknown type", name)}, false
	}

	switch typ {
	case content.PageAbout:
		base, ok := b.Loader.AboutPage(name)
		if !ok {
			return nil, []string{fmt.Sprintf("page %s: invalid about page", name)}, false
		}
		page := newPage(name, *base)
		if b.exists(name + ".md") {
			page.Markdown = b.Loader.Markdown(name + ".md")
		}
		return page, nil, true

	case content.PagePublication:
		cfg, ok := b.Loader.PublicationPage(name)
		if !ok {
			return nil, []string{fmt.Sprintf("page %s: invalid publication page", name)}, false
		}
		return b.resolvePublications(name, cfg)

	case content.PageText:
		cfg, ok := b.Loader.TextPage(name)
		if !ok {
			return nil, []string{fmt.Sprintf("page %s: invalid text page", name)}, false
		}
		return b.resolveText(name, cfg)

	case content.PageCard:
		cfg, ok := b.Loader.CardPage(name)
		if !ok {
			return nil, []string{fmt.Sprintf("page %s: invalid card page", name)}, false
		}
		page := newPage(name, cfg.BasePage)
		page.Items = cfg.Items
		page.Categories = cfg.Categories
		page.Groups = filter.GroupByCategory(cfg.Items, cfg.Categories)
		page.Tags = filter.CardTags(cfg.Items)
		return page, nil, true
	}

	return nil, []string{fmt.Sprintf("page %s: unknown type %q", name, typ)}, false
}

func (b *Builder) resolvePublications(name string, cfg *content.PublicationPage) (*Page, []string, bool) {
	page := newPage(name, cfg.BasePage)
	page.Source = cfg.Source

	var warnings []string
	if !b.exists(cfg.Source) {
		warnings = append(warnings, fmt.Sprintf("page %s: source %s not found", name, cfg.Source))
	}

	src := b.Loader.LoadSource(cfg.Source)
	for _, w := range src.Warnings {
		warnings = append(warnings, fmt.Sprintf("%s: %v", cfg.Source, w))
	}

	page.Publications = src.Publications
	page.Sections = filter.Sections(src.Publications)
	facets := filter.FacetsOf(src.Publications)
	page.Facets = &facets
	return page, warnings, true
}

func (b *Builder) resolveText(name string, cfg *content.TextPage) (*Page, []string, bool) {
	page := newPage(name, cfg.BasePage)
	page.Source = cfg.Source
	page.Markdown = b.Loader.Markdown(cfg.Source)

	var warnings []string
	if cfg.PDF != "" {
		info, err := pdf.Inspect(b.PublicDir, cfg.PDF)
		if err != nil {
			b.logger().Warn("inspecting PDF", "page", name, "pdf", cfg.PDF, "error", err)
			warnings = append(warnings, fmt.Sprintf("page %s: %v", name, err))
			info = pdf.Info{Path: cfg.PDF}
		}
		page.PDF = &info
	}
	return page, warnings, true
}

func (b *Builder) exists(name string) bool {
	_, err := os.Stat(filepath.Join(b.Loader.Dir, filepath.FromSlash(name)))
	return err == nil
}

func newPage(name string, base content.BasePage) *Page {
	return &Page{
		Name:        name,
		Type:        base.Type,
		Title:       base.Title,
		Description: base.Description,
	}
}
