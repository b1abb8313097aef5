package github

import (
	"errors"
	"net/http"

	gh "github.com/google/go-github/v45/github"
)

// Search failure kinds. Only these reach the user as blocking errors.
var (
	ErrRateLimited  = errors.New("GitHub API rate limit exceeded. Add a GitHub token for higher limits")
	ErrSearchFailed = errors.New("github search failed")
)

// ErrRepoFailed marks a repository enrichment failure.
var ErrRepoFailed = errors.New("failed to fetch repo info")

// isRateLimited treats every 403 from the search endpoint as rate-limit exhaustion,
// along with go-github's primary and secondary rate-limit errors.
func isRateLimited(resp *gh.Response, err error) bool {
	var rle *gh.RateLimitError
	if errors.As(err, &rle) {
		return true
	}
	var abuse *gh.AbuseRateLimitError
	if errors.As(err, &abuse) {
		return true
	}
	return resp != nil && resp.StatusCode == http.StatusForbidden
}
