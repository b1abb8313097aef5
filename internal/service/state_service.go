package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/ahmednasr/gitscout/internal/logging"
	"github.com/ahmednasr/gitscout/internal/models"
	"github.com/ahmednasr/gitscout/internal/repository"
	"github.com/ahmednasr/gitscout/internal/skills"
)

// Themes.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// ErrInvalidTheme is returned when a settings update names an unknown theme.
var ErrInvalidTheme = errors.New("theme must be dark or light")

// Credentials are the server-wide fallbacks used while the user has not saved
// their own.
type Credentials struct {
	GitHubToken   string
	OpenRouterKey string
}

// State is the user's persisted selection: skills, credentials, bookmarks and
// theme. Every mutation is written through to the store under its own key.
type State struct {
	store    repository.PreferenceStore
	defaults Credentials

	mu            sync.RWMutex
	skills        []string
	githubToken   string
	openRouterKey string
	bookmarks     models.BookmarkSet
	theme         string
}

// LoadState reads every key independently. A missing or unreadable key falls
// back to its neutral value and never blocks startup.
func LoadState(ctx context.Context, store repository.PreferenceStore, defaults Credentials) *State {
	s := &State{
		store:     store,
		defaults:  defaults,
		skills:    []string{},
		bookmarks: models.BookmarkSet{},
		theme:     ThemeDark,
	}

	var saved []string
	if loadJSON(ctx, store, repository.KeySkills, &saved) {
		s.skills = skills.Dedupe(saved)
	}
	var ids []int64
	if loadJSON(ctx, store, repository.KeyBookmarks, &ids) {
		s.bookmarks = models.NewBookmarkSet(ids)
	}
	s.githubToken = loadString(ctx, store, repository.KeyGitHubToken)
	s.openRouterKey = loadString(ctx, store, repository.KeyOpenRouterKey)
	if theme := loadString(ctx, store, repository.KeyTheme); theme == ThemeLight {
		s.theme = ThemeLight
	}

	logging.Info("preferences loaded",
		"skills", len(s.skills),
		"bookmarks", len(s.bookmarks),
		"theme", s.theme,
	)
	return s
}

func loadJSON(ctx context.Context, store repository.PreferenceStore, key string, v any) bool {
	raw := loadString(ctx, store, key)
	if raw == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		logging.Warn("discarding unreadable preference", "key", key, "error", err)
		return false
	}
	return true
}

func loadString(ctx context.Context, store repository.PreferenceStore, key string) string {
	v, err := store.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			logging.Warn("failed to load preference", "key", key, "error", err)
		}
		return ""
	}
	return v
}

// Skills returns a copy of the selected skills.
func (s *State) Skills() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.skills...)
}

// SetSkills replaces the selection (trimmed, de-duplicated) and persists it.
func (s *State) SetSkills(ctx context.Context, selected []string) ([]string, error) {
	clean := skills.Dedupe(selected)
	raw, err := json.Marshal(clean)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Save(ctx, repository.KeySkills, string(raw)); err != nil {
		return nil, fmt.Errorf("save skills: %w", err)
	}
	s.skills = clean
	return append([]string(nil), clean...), nil
}

// GitHubToken returns the saved token, or the server default.
func (s *State) GitHubToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.githubToken != "" {
		return s.githubToken
	}
	return s.defaults.GitHubToken
}

// OpenRouterKey returns the saved AI credential, or the server default.
func (s *State) OpenRouterKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.openRouterKey != "" {
		return s.openRouterKey
	}
	return s.defaults.OpenRouterKey
}

// Bookmarks returns the current bookmark set. The slice is never mutated in place.
func (s *State) Bookmarks() models.BookmarkSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bookmarks
}

// ToggleBookmark flips id and persists the new set. It reports whether id is
// bookmarked afterwards.
func (s *State) ToggleBookmark(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.bookmarks.Toggle(id)
	raw, err := json.Marshal(next)
	if err != nil {
		return false, err
	}
	if err := s.store.Save(ctx, repository.KeyBookmarks, string(raw)); err != nil {
		return false, fmt.Errorf("save bookmarks: %w", err)
	}
	s.bookmarks = next
	return next.Contains(id), nil
}

// Settings reports the current settings without exposing credentials.
func (s *State) Settings() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.Settings{
		GitHubTokenSet:   s.githubToken != "" || s.defaults.GitHubToken != "",
		OpenRouterKeySet: s.openRouterKey != "" || s.defaults.OpenRouterKey != "",
		Theme:            s.theme,
	}
}

// UpdateSettings applies the non-nil fields of req, saving each changed key.
func (s *State) UpdateSettings(ctx context.Context, req models.SettingsRequest) (models.Settings, error) {
	if req.Theme != nil && *req.Theme != ThemeDark && *req.Theme != ThemeLight {
		return models.Settings{}, ErrInvalidTheme
	}

	s.mu.Lock()
	if req.GitHubToken != nil {
		if err := s.store.Save(ctx, repository.KeyGitHubToken, *req.GitHubToken); err != nil {
			s.mu.Unlock()
			return models.Settings{}, fmt.Errorf("save github token: %w", err)
		}
		s.githubToken = *req.GitHubToken
	}
	if req.OpenRouterKey != nil {
		if err := s.store.Save(ctx, repository.KeyOpenRouterKey, *req.OpenRouterKey); err != nil {
			s.mu.Unlock()
			return models.Settings{}, fmt.Errorf("save openrouter key: %w", err)
		}
		s.openRouterKey = *req.OpenRouterKey
	}
	if req.Theme != nil {
		if err := s.store.Save(ctx, repository.KeyTheme, *req.Theme); err != nil {
			s.mu.Unlock()
			return models.Settings{}, fmt.Errorf("save theme: %w", err)
		}
		s.theme = *req.Theme
	}
	s.mu.Unlock()

	return s.Settings(), nil
}
