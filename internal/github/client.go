package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v45/github"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/ahmednasr/gitscout/internal/models"
)

// Search defaults.
const (
	DefaultSort    = "updated"
	DefaultPerPage = 30
	MaxPerPage     = 100
)

// Client is a thin wrapper around the two GitHub REST endpoints the pipeline needs:
// issue search and repository lookup by URL.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	timeout time.Duration
	limiter *rate.Limiter
}

// NewClient returns a ready-to-use GitHub API client.
//
//	baseURL – API root, normally "https://api.github.com/"
//	timeout – per-request bound; expiry is reported like any network failure
//	rps     – outbound request rate; 0 disables limiting
func NewClient(baseURL string, timeout time.Duration, rps float64) (*Client, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("github: invalid base url %q: %w", baseURL, err)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
		timeout: timeout,
	}
	if rps > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(rps), max(1, int(rps)))
	}
	return c, nil
}

// SearchOptions tunes a single search call. Token may be empty, but you will be
// subject to very low rate‑limits.
type SearchOptions struct {
	Token   string
	Sort    string // created | updated | comments
	PerPage int
	Page    int
}

// SearchResult is one page of search hits. TotalCount may exceed len(Issues).
type SearchResult struct {
	TotalCount int
	Issues     []models.Issue
}

// SearchIssues runs the "good first issue" query for skills. Callers must not pass
// an empty skill list.
func (c *Client) SearchIssues(ctx context.Context, skillList []string, opts SearchOptions) (SearchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.wait(ctx); err != nil {
		return SearchResult{}, fmt.Errorf("%w: %w", ErrSearchFailed, err)
	}

	query := BuildQuery(skillList)
	res, resp, err := c.api(ctx, opts.Token).Search.Issues(ctx, query, &gh.SearchOptions{
		Sort:  searchSort(opts.Sort),
		Order: "desc",
		ListOptions: gh.ListOptions{
			Page:    max(1, opts.Page),
			PerPage: perPage(opts.PerPage),
		},
	})
	if err != nil {
		if isRateLimited(resp, err) {
			return SearchResult{}, ErrRateLimited
		}
		return SearchResult{}, fmt.Errorf("%w: %w", ErrSearchFailed, err)
	}

	out := SearchResult{
		TotalCount: res.GetTotal(),
		Issues:     make([]models.Issue, 0, len(res.Issues)),
	}
	for _, it := range res.Issues {
		out.Issues = append(out.Issues, toIssue(it))
	}
	return out, nil
}

// GetRepository fetches the repository an issue points at via its repository_url.
func (c *Client) GetRepository(ctx context.Context, repoURL, token string) (models.RepositoryInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.wait(ctx); err != nil {
		return models.RepositoryInfo{}, fmt.Errorf("%w: %w", ErrRepoFailed, err)
	}

	api := c.api(ctx, token)
	req, err := api.NewRequest(http.MethodGet, repoURL, nil)
	if err != nil {
		return models.RepositoryInfo{}, fmt.Errorf("%w: %w", ErrRepoFailed, err)
	}

	var repo gh.Repository
	if _, err := api.Do(ctx, req, &repo); err != nil {
		return models.RepositoryInfo{}, fmt.Errorf("%w: %w", ErrRepoFailed, err)
	}
	return toRepositoryInfo(&repo), nil
}

// api builds a go-github client for one call. Authenticated calls go through an
// oauth2 static token source, which sends "Authorization: Bearer <token>".
func (c *Client) api(ctx context.Context, token string) *gh.Client {
	hc := c.http
	if token != "" {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)
		hc = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	}
	client := gh.NewClient(hc)
	client.BaseURL = c.baseURL
	client.UserAgent = "gitscout"
	return client
}

func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

func searchSort(s string) string {
	switch s {
	case "created", "updated", "comments":
		return s
	default:
		return DefaultSort
	}
}

func perPage(n int) int {
	switch {
	case n <= 0:
		return DefaultPerPage
	case n > MaxPerPage:
		return MaxPerPage
	default:
		return n
	}
}

func toIssue(it *gh.Issue) models.Issue {
	issue := models.Issue{
		ID:            it.GetID(),
		Number:        it.GetNumber(),
		Title:         it.GetTitle(),
		Body:          it.GetBody(),
		HTMLURL:       it.GetHTMLURL(),
		CreatedAt:     it.GetCreatedAt(),
		UpdatedAt:     it.GetUpdatedAt(),
		Comments:      it.GetComments(),
		RepositoryURL: it.GetRepositoryURL(),
		Labels:        make([]models.Label, 0, len(it.Labels)),
	}
	for _, l := range it.Labels {
		issue.Labels = append(issue.Labels, models.Label{Name: l.GetName(), Color: l.GetColor()})
	}
	if it.User != nil {
		issue.User = &models.User{Login: it.User.GetLogin(), AvatarURL: it.User.GetAvatarURL()}
	}
	return issue
}

func toRepositoryInfo(r *gh.Repository) models.RepositoryInfo {
	return models.RepositoryInfo{
		FullName:    r.GetFullName(),
		Description: r.GetDescription(),
		Stars:       r.GetStargazersCount(),
		Language:    r.GetLanguage(),
		UpdatedAt:   r.GetUpdatedAt().Time,
		OpenIssues:  r.GetOpenIssuesCount(),
		HTMLURL:     r.GetHTMLURL(),
		Topics:      r.Topics,
		HasWiki:     r.GetHasWiki(),
		License:     r.GetLicense().GetName(),
	}
}
