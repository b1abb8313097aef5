package ranking

import (
	"time"

	"github.com/ahmednasr/gitscout/internal/models"
)

// BuildView ranks the snapshot and decorates each row for display.
func BuildView(snap models.SearchSnapshot, bookmarks models.BookmarkSet, opts Options, now time.Time) models.RankedView {
	ranked := Rank(snap.Issues, snap.Analyses, bookmarks, opts)

	items := make([]models.IssueView, 0, len(ranked))
	for _, issue := range ranked {
		row := models.IssueView{
			Issue:      issue,
			Bookmarked: bookmarks.Contains(issue.ID),
			Freshness:  FreshnessScore(issue.UpdatedAt, now),
			UpdatedAgo: RelativeTime(issue.UpdatedAt, now),
		}
		if a, ok := snap.Analyses.Lookup(issue.ID); ok {
			row.Analysis = &a
		}
		items = append(items, row)
	}

	return models.RankedView{
		Generation: snap.Generation,
		TotalCount: snap.TotalCount,
		Analyzing:  snap.Analyzing,
		Bookmarks:  len(bookmarks),
		Sort:       string(opts.Sort),
		Complexity: string(opts.Complexity),
		Items:      items,
	}
}
