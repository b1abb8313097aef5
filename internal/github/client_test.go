package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockGitHubServer starts a fake API and a Client pointed at it.
func mockGitHubServer(t *testing.T, handler http.Handler) (*httptest.Server, *Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, 2*time.Second, 0)
	require.NoError(t, err)
	return server, client
}

const searchBody = `{
	"total_count": 1234,
	"incomplete_results": false,
	"items": [
		{
			"id": 101,
			"number": 7,
			"title": "Fix typo in README",
			"body": "There is a typo.",
			"html_url": "https://github.com/acme/widgets/issues/7",
			"created_at": "2024-01-02T03:04:05Z",
			"updated_at": "2024-02-03T04:05:06Z",
			"labels": [{"name": "good first issue", "color": "7057ff"}],
			"user": {"login": "octocat", "avatar_url": "https://avatars.example/octocat"},
			"comments": 3,
			"repository_url": "%s/repos/acme/widgets"
		},
		{
			"id": 102,
			"title": "No body, no user",
			"body": null,
			"user": null,
			"labels": [],
			"comments": 0,
			"created_at": "2024-01-01T00:00:00Z",
			"updated_at": "2024-01-01T00:00:00Z",
			"repository_url": "%s/repos/acme/gadgets"
		}
	]
}`

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name   string
		skills []string
		want   string
	}{
		{"first token only", []string{"JavaScript", "Python"}, `label:"good first issue" is:open is:issue language:javascript`},
		{"framework mapped", []string{"Django"}, `label:"good first issue" is:open is:issue language:python`},
		{"empty means no filter", nil, `label:"good first issue" is:open is:issue`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildQuery(tt.skills)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, strings.Count(got, "language:"), 1)
		})
	}
}

func TestSearchIssues(t *testing.T) {
	var gotQuery, gotAuth string
	mux := http.NewServeMux()
	server, client := mockGitHubServer(t, mux)
	mux.HandleFunc("/search/issues", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		q := r.URL.Query()
		gotQuery = q.Get("q")
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "comments", q.Get("sort"))
		assert.Equal(t, "desc", q.Get("order"))
		assert.Equal(t, "50", q.Get("per_page"))
		assert.Equal(t, "2", q.Get("page"))
		fmt.Fprintf(w, searchBody, server.URL, server.URL)
	})

	res, err := client.SearchIssues(context.Background(), []string{"React", "Python"}, SearchOptions{
		Token:   "ghp_test",
		Sort:    "comments",
		PerPage: 50,
		Page:    2,
	})
	require.NoError(t, err)

	assert.Equal(t, `label:"good first issue" is:open is:issue language:javascript`, gotQuery)
	assert.Equal(t, "Bearer ghp_test", gotAuth)
	assert.Equal(t, 1234, res.TotalCount)
	require.Len(t, res.Issues, 2)

	first := res.Issues[0]
	assert.EqualValues(t, 101, first.ID)
	assert.Equal(t, "Fix typo in README", first.Title)
	assert.Equal(t, []string{"good first issue"}, first.LabelNames())
	assert.Equal(t, "7057ff", first.Labels[0].Color)
	require.NotNil(t, first.User)
	assert.Equal(t, "octocat", first.User.Login)
	assert.Equal(t, 3, first.Comments)
	assert.Equal(t, time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC), first.UpdatedAt.UTC())
	assert.Equal(t, "acme/widgets", first.RepoName())
	assert.Nil(t, first.Repo)

	second := res.Issues[1]
	assert.Empty(t, second.Body)
	assert.Nil(t, second.User)
}

func TestSearchIssuesDefaults(t *testing.T) {
	mux := http.NewServeMux()
	_, client := mockGitHubServer(t, mux)
	mux.HandleFunc("/search/issues", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "updated", q.Get("sort"))
		assert.Equal(t, "30", q.Get("per_page"))
		assert.Equal(t, "1", q.Get("page"))
		assert.Empty(t, r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"total_count": 0, "items": []}`)
	})

	res, err := client.SearchIssues(context.Background(), []string{"Go"}, SearchOptions{Sort: "stars"})
	require.NoError(t, err)
	assert.Zero(t, res.TotalCount)
	assert.Empty(t, res.Issues)
}

func TestSearchIssuesErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"forbidden is rate limit", http.StatusForbidden, ErrRateLimited},
		{"server error is generic", http.StatusInternalServerError, ErrSearchFailed},
		{"unprocessable is generic", http.StatusUnprocessableEntity, ErrSearchFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			_, client := mockGitHubServer(t, mux)
			mux.HandleFunc("/search/issues", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, `{"message": "nope"}`)
			})

			_, err := client.SearchIssues(context.Background(), []string{"Go"}, SearchOptions{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestSearchIssuesNetworkFailure(t *testing.T) {
	client, err := NewClient("http://127.0.0.1:1/", time.Second, 0)
	require.NoError(t, err)

	_, err = client.SearchIssues(context.Background(), []string{"Go"}, SearchOptions{})
	assert.ErrorIs(t, err, ErrSearchFailed)
}

func TestGetRepository(t *testing.T) {
	mux := http.NewServeMux()
	server, client := mockGitHubServer(t, mux)
	mux.HandleFunc("/repos/acme/widgets", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"full_name": "acme/widgets",
			"description": "Widgets for everyone",
			"stargazers_count": 512,
			"language": "Go",
			"updated_at": "2024-03-01T00:00:00Z",
			"open_issues_count": 12,
			"html_url": "https://github.com/acme/widgets",
			"topics": ["cli", "widgets"],
			"has_wiki": true,
			"license": {"name": "MIT License"}
		}`)
	})

	repo, err := client.GetRepository(context.Background(), server.URL+"/repos/acme/widgets", "")
	require.NoError(t, err)
	assert.Equal(t, "acme/widgets", repo.FullName)
	assert.Equal(t, 512, repo.Stars)
	assert.Equal(t, "Go", repo.Language)
	assert.Equal(t, 12, repo.OpenIssues)
	assert.Equal(t, []string{"cli", "widgets"}, repo.Topics)
	assert.True(t, repo.HasWiki)
	assert.Equal(t, "MIT License", repo.License)
}

func TestGetRepositoryFailure(t *testing.T) {
	mux := http.NewServeMux()
	server, client := mockGitHubServer(t, mux)
	mux.HandleFunc("/repos/acme/missing", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
	})

	_, err := client.GetRepository(context.Background(), server.URL+"/repos/acme/missing", "")
	assert.ErrorIs(t, err, ErrRepoFailed)
}
