package ai

import (
	"fmt"
	"strings"

	"github.com/ahmednasr/gitscout/internal/models"
)

// BuildPrompt renders the scoring prompt for one batch. Callers cap the batch first.
func BuildPrompt(batch []models.Issue, skills []string) string {
	blocks := make([]string, len(batch))
	for i, issue := range batch {
		body := strings.TrimSpace(issue.Body)
		if body == "" {
			body = "No description"
		}
		blocks[i] = fmt.Sprintf("Issue %d (ID: %d):\nTitle: %s\nRepo: %s\nLabels: %s\nComments: %d\nBody: %s",
			i+1,
			issue.ID,
			issue.Title,
			issue.RepoName(),
			strings.Join(issue.LabelNames(), ", "),
			issue.Comments,
			truncate(body, BodyExcerpt),
		)
	}

	return fmt.Sprintf(`You are analyzing GitHub "good first issue" issues for a developer with these skills: %s.

For each issue below, provide a JSON analysis. Be honest about complexity: some "good first issues" are actually hard.

%s

Respond with a JSON object {"analyses": [...]} where each element has:
- id: the issue ID number
- complexity: 1-5 (1=trivial, 2=easy, 3=medium, 4=hard, 5=expert)
- skillMatch: 0-100 (how well does this match the user's listed skills)
- summary: one-sentence plain english description of what needs to be done
- requiredSkills: array of specific tech skills needed
- estimatedHours: estimated time like "1-2 hours" or "4-8 hours"
- beginnerFriendly: true/false (is this genuinely approachable for someone learning?)`,
		strings.Join(skills, ", "),
		strings.Join(blocks, "\n\n---\n\n"),
	)
}
