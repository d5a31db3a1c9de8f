package search

import (
	"sort"
	"strings"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/gallery/internal/domain"
	"github.com/sahilm/fuzzy"
)

// FilterPage returns the indexes of the page records matching query,
// in page order. An empty query matches everything.
func FilterPage(query string, records []domain.Artwork) []int {
	query = strings.TrimSpace(query)
	if query == "" {
		return allIndexes(len(records))
	}

	texts := make([]string, len(records))
	for i, rec := range records {
		texts[i] = strings.ToLower(rec.SearchText())
	}

	matches := fuzzy.Find(strings.ToLower(query), texts)
	out := make([]int, len(matches))
	for i, match := range matches {
		out[i] = match.Index
	}
	sort.Ints(out)
	return out
}

// FilterSelection returns the indexes of selected records whose artist or
// department contains the query characters in order, keeping insertion order.
func FilterSelection(query string, records []domain.Artwork) []int {
	query = strings.TrimSpace(query)
	if query == "" {
		return allIndexes(len(records))
	}

	texts := make([]string, len(records))
	for i, rec := range records {
		texts[i] = rec.Artist + " " + rec.Department
	}

	ranks := lfuzzy.RankFindFold(query, texts)
	out := make([]int, len(ranks))
	for i, r := range ranks {
		out[i] = r.OriginalIndex
	}
	sort.Ints(out)
	return out
}

func allIndexes(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
