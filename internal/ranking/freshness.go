package ranking

import (
	"fmt"
	"time"
)

// FreshnessScore buckets the age of the last update into 5 (under a day) … 1 (three weeks or more).
func FreshnessScore(updatedAt, now time.Time) int {
	days := now.Sub(updatedAt).Hours() / 24
	switch {
	case days < 1:
		return 5
	case days < 3:
		return 4
	case days < 7:
		return 3
	case days < 21:
		return 2
	default:
		return 1
	}
}

// RelativeTime renders the age of t as "45m ago", "5h ago", "3d ago", "2w ago" or "4mo ago".
func RelativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	minutes := int(diff.Minutes())
	hours := int(diff.Hours())
	days := hours / 24

	switch {
	case minutes < 60:
		return fmt.Sprintf("%dm ago", minutes)
	case hours < 24:
		return fmt.Sprintf("%dh ago", hours)
	case days < 7:
		return fmt.Sprintf("%dd ago", days)
	case days/7 < 4:
		return fmt.Sprintf("%dw ago", days/7)
	default:
		return fmt.Sprintf("%dmo ago", days/30)
	}
}
