// Package repository persists user preferences as independent key/value entries.
package repository

import (
	"context"
	"errors"
)

// Preference keys.
const (
	KeySkills        = "gitscout_skills"
	KeyGitHubToken   = "gitscout_github_token"
	KeyOpenRouterKey = "gitscout_openrouter_key"
	KeyBookmarks     = "gitscout_bookmarks"
	KeyTheme         = "gitscout_theme"
)

// ErrNotFound is returned by Load when a key has never been saved.
var ErrNotFound = errors.New("preference not found")

// PreferenceStore loads and saves one value per key. Every key is independent:
// a failure on one never affects another.
type PreferenceStore interface {
	Load(ctx context.Context, key string) (string, error)
	Save(ctx context.Context, key, value string) error
	Ping(ctx context.Context) error
	Close() error
}
