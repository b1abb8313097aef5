// Package ranking merges issues with their optional analyses and bookmarks into
// the filtered, ordered view shown to the user. Everything here is pure.
package ranking

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ahmednasr/gitscout/internal/models"
)

// SortKey selects the ordering of the ranked view.
type SortKey string

// Sort keys.
const (
	SortMatch      SortKey = "match"
	SortFreshness  SortKey = "freshness"
	SortComplexity SortKey = "complexity"
	SortStars      SortKey = "stars"
)

// Tier is a coarse complexity bucket.
type Tier string

// Complexity tiers.
const (
	TierAll    Tier = "all"
	TierEasy   Tier = "easy"
	TierMedium Tier = "medium"
	TierHard   Tier = "hard"
)

// neutralComplexity is where un-analysed issues land in a complexity sort,
// so they cluster at neither end.
const neutralComplexity = 3

// Options is the user's current sort and filter selection.
type Options struct {
	Sort          SortKey // zero value sorts by match
	Complexity    Tier
	BookmarksOnly bool
}

// ParseSort validates a sort key; empty selects SortMatch.
func ParseSort(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return SortMatch, nil
	case SortMatch, SortFreshness, SortComplexity, SortStars:
		return k, nil
	default:
		return "", fmt.Errorf("unknown sort %q: want match, freshness, complexity or stars", s)
	}
}

// ParseTier validates a complexity tier; empty selects TierAll.
func ParseTier(s string) (Tier, error) {
	switch t := Tier(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return TierAll, nil
	case TierAll, TierEasy, TierMedium, TierHard:
		return t, nil
	default:
		return "", fmt.Errorf("unknown complexity %q: want all, easy, medium or hard", s)
	}
}

// Contains reports whether a 1–5 complexity score falls in the tier.
func (t Tier) Contains(complexity int) bool {
	switch t {
	case TierEasy:
		return complexity <= 2
	case TierMedium:
		return complexity == 3
	case TierHard:
		return complexity >= 4
	default:
		return true
	}
}

// Rank filters and orders issues. Inputs are not modified; the returned slice is new.
// Issues without an analysis are never hidden by the complexity filter, since
// their complexity is unknown rather than out of band.
func Rank(issues []models.Issue, analyses models.AnalysisMap, bookmarks models.BookmarkSet, opts Options) []models.Issue {
	out := make([]models.Issue, 0, len(issues))
	for _, issue := range issues {
		if opts.BookmarksOnly && !bookmarks.Contains(issue.ID) {
			continue
		}
		if a, ok := analyses.Lookup(issue.ID); ok && !opts.Complexity.Contains(a.Complexity) {
			continue
		}
		out = append(out, issue)
	}

	if less := lessFunc(out, analyses, opts.Sort); less != nil {
		sort.SliceStable(out, less)
	}
	return out
}

func lessFunc(issues []models.Issue, analyses models.AnalysisMap, key SortKey) func(i, j int) bool {
	switch key {
	case SortMatch, "":
		return func(i, j int) bool {
			return skillMatch(analyses, issues[i].ID) > skillMatch(analyses, issues[j].ID)
		}
	case SortFreshness:
		return func(i, j int) bool {
			return issues[i].UpdatedAt.After(issues[j].UpdatedAt)
		}
	case SortComplexity:
		return func(i, j int) bool {
			return complexity(analyses, issues[i].ID) < complexity(analyses, issues[j].ID)
		}
	case SortStars:
		return func(i, j int) bool {
			return issues[i].Stars() > issues[j].Stars()
		}
	default:
		return nil
	}
}

func skillMatch(analyses models.AnalysisMap, id int64) int {
	if a, ok := analyses.Lookup(id); ok {
		return a.SkillMatch
	}
	return 0
}

func complexity(analyses models.AnalysisMap, id int64) int {
	if a, ok := analyses.Lookup(id); ok {
		return a.Complexity
	}
	return neutralComplexity
}
