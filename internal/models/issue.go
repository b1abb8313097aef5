package models

import (
	"strings"
	"time"
)

// Label is an issue label as returned by the search API.
type Label struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// User is the issue author.
type User struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
}

// Issue captures the fields we care about from a search result item.
// Repo stays nil until enrichment succeeds for the issue.
type Issue struct {
	ID            int64           `json:"id"`
	Number        int             `json:"number"`
	Title         string          `json:"title"`
	Body          string          `json:"body"`
	HTMLURL       string          `json:"html_url"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Labels        []Label         `json:"labels"`
	User          *User           `json:"user,omitempty"`
	Comments      int             `json:"comments"`
	RepositoryURL string          `json:"repository_url"`
	Repo          *RepositoryInfo `json:"repo,omitempty"`
}

// RepoName returns "owner/name" taken from RepositoryURL, or "unknown".
func (i Issue) RepoName() string {
	if _, name, ok := strings.Cut(i.RepositoryURL, "/repos/"); ok && name != "" {
		return name
	}
	return "unknown"
}

// LabelNames returns the label names in API order.
func (i Issue) LabelNames() []string {
	names := make([]string, len(i.Labels))
	for n, l := range i.Labels {
		names[n] = l.Name
	}
	return names
}

// Stars returns the repository star count, 0 when the issue is not enriched.
func (i Issue) Stars() int {
	if i.Repo == nil {
		return 0
	}
	return i.Repo.Stars
}
