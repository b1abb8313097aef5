package models

import "time"

// SearchRequest is the payload for POST /search. Zero values fall back to configured defaults.
type SearchRequest struct {
	Sort    string `json:"sort"     query:"sort"`     // created | updated | comments
	PerPage int    `json:"per_page" query:"per_page"` // 1–100
	Page    int    `json:"page"     query:"page"`
}

// ViewRequest carries the ranking selection for GET /issues.
type ViewRequest struct {
	Sort          string `query:"sort"`       // match | freshness | complexity | stars
	Complexity    string `query:"complexity"` // all | easy | medium | hard
	BookmarksOnly bool   `query:"bookmarks"`
}

// SkillsRequest is the payload for PUT /skills.
type SkillsRequest struct {
	Skills []string `json:"skills"`
}

// SettingsRequest is the payload for PUT /settings. Nil fields are left unchanged;
// an empty string clears a credential.
type SettingsRequest struct {
	GitHubToken   *string `json:"github_token"`
	OpenRouterKey *string `json:"openrouter_key"`
	Theme         *string `json:"theme"`
}

// Settings is what GET /settings reports. Credentials are never echoed back.
type Settings struct {
	GitHubTokenSet   bool   `json:"github_token_set"`
	OpenRouterKeySet bool   `json:"openrouter_key_set"`
	Theme            string `json:"theme"`
}

// SearchSnapshot is the result set of the latest search generation.
type SearchSnapshot struct {
	Generation uint64      `json:"generation"`
	Skills     []string    `json:"skills"`
	TotalCount int         `json:"total_count"`
	Issues     []Issue     `json:"-"`
	Analyses   AnalysisMap `json:"-"`
	Analyzing  bool        `json:"analyzing"`
	SearchedAt time.Time   `json:"searched_at"`
}

// IssueView is one row of the ranked view returned to the UI.
type IssueView struct {
	Issue
	Analysis   *IssueAnalysis `json:"analysis,omitempty"`
	Bookmarked bool           `json:"bookmarked"`
	Freshness  int            `json:"freshness"`   // 1 (stale) – 5 (updated today)
	UpdatedAgo string         `json:"updated_ago"` // e.g. "3d ago"
}

// RankedView is the response body for GET /issues and POST /search.
type RankedView struct {
	Generation uint64      `json:"generation"`
	TotalCount int         `json:"total_count"`
	Analyzing  bool        `json:"analyzing"`
	Bookmarks  int         `json:"bookmarks"`
	Sort       string      `json:"sort"`
	Complexity string      `json:"complexity"`
	Items      []IssueView `json:"items"`
}
