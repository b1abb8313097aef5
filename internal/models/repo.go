package models

import "time"

// RepositoryInfo is the repository metadata attached to an issue after enrichment.
type RepositoryInfo struct {
	FullName    string    `json:"full_name"`
	Description string    `json:"description"`
	Stars       int       `json:"stargazers_count"`
	Language    string    `json:"language"`
	UpdatedAt   time.Time `json:"updated_at"`
	OpenIssues  int       `json:"open_issues_count"`
	HTMLURL     string    `json:"html_url"`
	Topics      []string  `json:"topics"`
	HasWiki     bool      `json:"has_wiki"`
	License     string    `json:"license,omitempty"` // license name; empty when the repo has none
}
