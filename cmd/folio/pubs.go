package main

import (
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matsen/folio/internal/content"
	"github.com/matsen/folio/internal/filter"
	"github.com/matsen/folio/internal/publication"
	"github.com/matsen/folio/internal/site"
)

var (
	pubsQuery    string
	pubsYear     int
	pubsType     string
	pubsArea     string
	pubsSelected bool
	pubsFacets   bool
	pubsBuilt    bool
)

func init() {
	pubsCmd.Flags().StringVarP(&pubsQuery, "query", "q", "", "Match title, author, journal or conference")
	pubsCmd.Flags().IntVar(&pubsYear, "year", 0, "Only publications from this year")
	pubsCmd.Flags().StringVar(&pubsType, "type", "", "Only publications of this type")
	pubsCmd.Flags().StringVar(&pubsArea, "area", "", "Only publications in this research area")
	pubsCmd.Flags().BoolVar(&pubsSelected, "selected", false, "Only publications selected for the home page")
	pubsCmd.Flags().BoolVar(&pubsFacets, "facets", false, "List available years, types and areas instead")
	pubsCmd.Flags().BoolVar(&pubsBuilt, "built", false, "Read the last build's export instead of the sources")
	rootCmd.AddCommand(pubsCmd)
}

var pubsCmd = &cobra.Command{
	Use:   "pubs [SOURCE]",
	Short: "List publications",
	Long: `List publications from one source file, or from every publication page
when no source is given. Sources are .bib or .toml files relative to the
content directory.

With --built, list the publications of the last 'folio build' export.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPubs,
}

// PubsResponse is the response for the pubs command.
type PubsResponse struct {
	Count        int                       `json:"count"`
	Publications []publication.Publication `json:"publications"`
}

func runPubs(cmd *cobra.Command, args []string) error {
	var pubs []publication.Publication
	if pubsBuilt {
		if len(args) == 1 {
			exitWithError(ExitError, "--built reads the whole export; drop the source argument")
		}
		root := mustFindSite()
		cfg := mustLoadConfig(root)
		pubs = loadExportedPublications(cfg.OutputPath(root))
	} else {
		_, _, loader := mustOpenSite()
		source := ""
		if len(args) == 1 {
			source = args[0]
		}
		pubs = loadPublications(loader, source)
	}

	if pubsFacets {
		facets := filter.FacetsOf(pubs)
		if !humanOutput {
			return outputJSON(facets)
		}
		outputHuman("Years: %v\nTypes: %v\n", facets.Years, facets.Types)
		for _, a := range facets.Areas {
			outputHuman("  %s\n", tagChip(a))
		}
		return nil
	}

	if pubsSelected {
		pubs = filter.Selected(pubs)
	}
	pubs = filter.Publications(pubs, filter.PublicationQuery{
		Text: pubsQuery,
		Year: pubsYear,
		Type: publication.Type(pubsType),
		Area: pubsArea,
	})

	if !humanOutput {
		return outputJSON(PubsResponse{Count: len(pubs), Publications: pubs})
	}

	if len(pubs) == 0 {
		outputHuman("No publications found\n")
		return nil
	}
	for _, section := range filter.Sections(pubs) {
		outputHuman("%s (%d)\n\n", section.Title, len(section.Publications))
		for _, p := range section.Publications {
			outputHuman("%s\n", formatPublicationLine(p))
		}
	}
	return nil
}

// loadPublications loads one source, or every publication page's source
// merged and sorted when source is empty.
func loadPublications(loader *content.Loader, source string) []publication.Publication {
	if source != "" {
		return loader.Publications(source)
	}

	pages, err := loader.Pages()
	if err != nil {
		exitWithError(ExitError, "discovering pages: %v", err)
	}

	var all []publication.Publication
	loaded := make(map[string]bool)
	for _, name := range pages {
		if typ, _ := loader.PageType(name); typ != content.PagePublication {
			continue
		}
		page, ok := loader.PublicationPage(name)
		if !ok {
			continue
		}
		key := filepath.Clean(filepath.FromSlash(page.Source))
		if loaded[key] {
			continue
		}
		loaded[key] = true
		all = append(all, loader.Publications(page.Source)...)
	}
	publication.Sort(all)
	return all
}

// loadExportedPublications reads the publications written by the last build.
func loadExportedPublications(outputDir string) []publication.Publication {
	pubs, err := site.ReadPublications(outputDir)
	if errors.Is(err, site.ErrNoExport) {
		exitWithError(ExitNotFound, "%v\n\nRun 'folio build' first.", err)
	}
	if err != nil {
		exitWithError(ExitError, "reading export: %v", err)
	}
	return pubs
}
