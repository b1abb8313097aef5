package github

import (
	"strings"

	"github.com/ahmednasr/gitscout/internal/skills"
)

const baseQuery = `label:"good first issue" is:open is:issue`

// BuildQuery composes the search query for the given skills. Only the first
// normalized token becomes a language filter: the search grammar has no OR for
// language:, and one precise language beats a diluted result set.
func BuildQuery(skillList []string) string {
	langs := skills.Normalize(skillList)
	if len(langs) == 0 {
		return baseQuery
	}
	var b strings.Builder
	b.WriteString(baseQuery)
	b.WriteString(" language:")
	b.WriteString(langs[0])
	return b.String()
}
