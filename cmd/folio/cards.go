package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/folio/internal/filter"
)

var (
	cardsQuery    string
	cardsCategory string
	cardsTag      string
)

func init() {
	cardsCmd.Flags().StringVarP(&cardsQuery, "query", "q", "", "Match title, subtitle or content")
	cardsCmd.Flags().StringVar(&cardsCategory, "category", "", "Only items in this category")
	cardsCmd.Flags().StringVar(&cardsTag, "tag", "", "Only items with this tag")
	rootCmd.AddCommand(cardsCmd)
}

var cardsCmd = &cobra.Command{
	Use:   "cards PAGE",
	Short: "List the items of a card page",
	Long: `List the items of a card page, grouped by category.

PAGE is the page config name without .toml, relative to the content directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runCards,
}

// CardsResponse is the response for the cards command.
type CardsResponse struct {
	Page   string             `json:"page"`
	Title  string             `json:"title"`
	Count  int                `json:"count"`
	Tags   []string           `json:"tags"`
	Groups []filter.CardGroup `json:"groups"`
}

func runCards(cmd *cobra.Command, args []string) error {
	_, _, loader := mustOpenSite()

	name := strings.TrimSuffix(args[0], ".toml")
	page, ok := loader.CardPage(name)
	if !ok {
		exitWithError(ExitNotFound, "card page not found: %s", name)
	}

	items := filter.Cards(page.Items, filter.CardQuery{
		Text:     cardsQuery,
		Category: cardsCategory,
		Tag:      cardsTag,
	})
	groups := filter.GroupByCategory(items, page.Categories)

	if !humanOutput {
		if groups == nil {
			groups = []filter.CardGroup{}
		}
		return outputJSON(CardsResponse{
			Page:   name,
			Title:  page.Title,
			Count:  len(items),
			Tags:   filter.CardTags(page.Items),
			Groups: groups,
		})
	}

	if len(items) == 0 {
		outputHuman("No items found\n")
		return nil
	}
	for _, g := range groups {
		category := g.Category
		if category == "" {
			category = "Other"
		}
		outputHuman("%s (%d)\n", category, len(g.Items))
		for _, item := range g.Items {
			outputHuman("  %s", truncateString(item.Title, ListTitleMaxLen))
			if item.Date != "" {
				outputHuman("  %s", item.Date)
			}
			outputHuman("\n")
			if item.Subtitle != "" {
				outputHuman("    %s\n", item.Subtitle)
			}
			if len(item.Tags) > 0 {
				chips := make([]string, len(item.Tags))
				for i, tag := range item.Tags {
					chips[i] = tagChip(tag)
				}
				outputHuman("    %s\n", strings.Join(chips, " "))
			}
		}
		outputHuman("\n")
	}
	return nil
}
