package filter

import (
	"slices"
	"sort"
	"strings"

	"github.com/matsen/folio/internal/content"
)

// CardQuery selects card items. Zero-valued fields match everything.
type CardQuery struct {
	Text     string // Case-insensitive substring of title, subtitle or content
	Category string // Exact category
	Tag      string // Exact tag
}

// Cards returns the items matching q.
func Cards(items []content.CardItem, q CardQuery) []content.CardItem {
	text := strings.ToLower(q.Text)

	out := []content.CardItem{}
	for _, item := range items {
		if text != "" &&
			!strings.Contains(strings.ToLower(item.Title), text) &&
			!strings.Contains(strings.ToLower(item.Subtitle), text) &&
			!strings.Contains(strings.ToLower(item.Content), text) {
			continue
		}
		if q.Category != "" && item.Category != q.Category {
			continue
		}
		if q.Tag != "" && !slices.Contains(item.Tags, q.Tag) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// CardTags returns the distinct tags of items, sorted.
func CardTags(items []content.CardItem) []string {
	seen := make(map[string]bool)
	tags := []string{}
	for _, item := range items {
		for _, tag := range item.Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	sort.Strings(tags)
	return tags
}

// CardGroup is the items of one category. The uncategorized group has an
// empty Category.
type CardGroup struct {
	Category string             `json:"category"`
	Items    []content.CardItem `json:"items"`
}

// GroupByCategory groups items in the order of categories, skipping empty
// groups. Items with no category, or one not listed, go in a trailing
// uncategorized group. With no categories, all items form that one group.
// A category listed more than once keeps its first position.
func GroupByCategory(items []content.CardItem, categories []string) []CardGroup {
	var groups []CardGroup
	emitted := make(map[string]bool, len(categories))
	for _, category := range categories {
		if category == "" || emitted[category] {
			continue
		}
		emitted[category] = true
		group := CardGroup{Category: category}
		for _, item := range items {
			if item.Category == category {
				group.Items = append(group.Items, item)
			}
		}
		if len(group.Items) > 0 {
			groups = append(groups, group)
		}
	}

	rest := CardGroup{}
	for _, item := range items {
		if item.Category == "" || !slices.Contains(categories, item.Category) {
			rest.Items = append(rest.Items, item)
		}
	}
	if len(rest.Items) > 0 {
		groups = append(groups, rest)
	}
	return groups
}
