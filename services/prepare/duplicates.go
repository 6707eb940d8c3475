package prepare

import (
	"context"
	"log/slog"

	"github.com/antzucaro/matchr"
)

const duplicateThreshold = 0.96

// TitlePair is two distinct textbook titles similar enough to be the
// same book entered twice.
type TitlePair struct {
	A, B       string
	Similarity float64
}

// FindNearDuplicateTitles compares every pair of distinct textbook
// titles with JaroWinkler similarity.
func FindNearDuplicateTitles(rows []Row) []TitlePair {
	var titles []string
	seen := map[string]bool{}
	for _, row := range rows {
		if row.TextbookTitle == "" || seen[row.TextbookTitle] {
			continue
		}
		seen[row.TextbookTitle] = true
		titles = append(titles, row.TextbookTitle)
	}

	var pairs []TitlePair
	for i := 0; i < len(titles); i++ {
		for j := i + 1; j < len(titles); j++ {
			similarity := matchr.JaroWinkler(titles[i], titles[j], false)
			if similarity >= duplicateThreshold {
				pairs = append(pairs, TitlePair{
					A:          titles[i],
					B:          titles[j],
					Similarity: similarity,
				})
			}
		}
	}
	return pairs
}

// WarnNearDuplicates logs suspected duplicate titles so they can be
// fixed in the source data before import.
func WarnNearDuplicates(ctx context.Context, rows []Row) {
	for _, pair := range FindNearDuplicateTitles(rows) {
		slog.WarnContext(ctx, "textbook titles look like duplicates",
			"a", pair.A, "b", pair.B, "similarity", pair.Similarity)
	}
}
