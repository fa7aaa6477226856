package main

import (
	"errors"
	"sort"

	"github.com/spf13/cobra"

	"github.com/matsen/folio/internal/areacolor"
	"github.com/matsen/folio/internal/publication"
	"github.com/matsen/folio/internal/site"
)

var colorBuilt bool

func init() {
	colorCmd.Flags().BoolVar(&colorBuilt, "built", false, "Show the research areas of the last build's export")
	rootCmd.AddCommand(colorCmd)
}

var colorCmd = &cobra.Command{
	Use:   "color TAG...",
	Short: "Show the colour style assigned to tags",
	Long: `Show the colour style assigned to research areas or card tags.

The mapping is a fixed hash, so a tag always gets the same colour.
With --built, show every research area of the last 'folio build' export.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if colorBuilt {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.MinimumNArgs(1)(cmd, args)
	},
	RunE: runColor,
}

// ColorResult is one entry of the color command's response.
type ColorResult struct {
	Tag   string          `json:"tag"`
	Label string          `json:"label"`
	Index int             `json:"index"`
	Style areacolor.Style `json:"style"`
}

func colorResults(tags []string) []ColorResult {
	results := make([]ColorResult, 0, len(tags))
	for _, tag := range tags {
		results = append(results, ColorResult{
			Tag:   tag,
			Label: publication.AreaLabel(tag),
			Index: areacolor.Index(tag),
			Style: areacolor.For(tag),
		})
	}
	return results
}

// exportedColorResults lists exported area styles sorted by tag.
func exportedColorResults(styles map[string]areacolor.Style) []ColorResult {
	tags := make([]string, 0, len(styles))
	for tag := range styles {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	results := make([]ColorResult, 0, len(tags))
	for _, tag := range tags {
		results = append(results, ColorResult{
			Tag:   tag,
			Label: publication.AreaLabel(tag),
			Index: areacolor.Index(tag),
			Style: styles[tag],
		})
	}
	return results
}

func runColor(cmd *cobra.Command, args []string) error {
	var results []ColorResult
	if colorBuilt {
		root := mustFindSite()
		cfg := mustLoadConfig(root)
		styles, err := site.ReadAreas(cfg.OutputPath(root))
		if errors.Is(err, site.ErrNoExport) {
			exitWithError(ExitNotFound, "%v\n\nRun 'folio build' first.", err)
		}
		if err != nil {
			exitWithError(ExitError, "reading export: %v", err)
		}
		results = exportedColorResults(styles)
	} else {
		results = colorResults(args)
	}

	if !humanOutput {
		return outputJSON(results)
	}
	for _, r := range results {
		outputHuman("%s %-8s %s\n", swatch(r.Style), r.Style.Name, r.Label)
	}
	return nil
}
