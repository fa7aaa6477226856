package publication

import "sort"

// sortMonth returns the month used for ordering. Missing or unparseable
// months count as January so undated entries land at the end of their year.
func sortMonth(p Publication) int {
	if p.Month == nil {
		return 1
	}
	if m, ok := NormalizeMonth(*p.Month); ok {
		return m
	}
	return 1
}

// Sort orders publications most recent first: year descending, then month
// descending. The sort is stable, so entries with equal dates keep source order.
func Sort(pubs []Publication) {
	sort.SliceStable(pubs, func(i, j int) bool {
		if pubs[i].Year != pubs[j].Year {
			return pubs[i].Year > pubs[j].Year
		}
		return sortMonth(pubs[i]) > sortMonth(pubs[j])
	})
}
