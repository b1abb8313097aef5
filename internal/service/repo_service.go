package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/ahmednasr/gitscout/internal/logging"
	"github.com/ahmednasr/gitscout/internal/models"
)

// ---- Client contract -------------------------------------------------------

// RepoFetcher loads the repository an issue belongs to.
type RepoFetcher interface {
	GetRepository(ctx context.Context, repoURL, token string) (models.RepositoryInfo, error)
}

// ---- Return DTO ------------------------------------------------------------

// EnrichResult is the outcome of one repository fetch. Exactly one of Repo and
// Err is set.
type EnrichResult struct {
	Index int
	Repo  *models.RepositoryInfo
	Err   error
}

// ---- Service interface + implementation ------------------------------------

// RepoService attaches repository metadata to search results.
type RepoService interface {
	// Enrich returns a copy of issues where the first limit entries carry Repo
	// when their fetch succeeded. Failures never fail the call.
	Enrich(ctx context.Context, issues []models.Issue, token string) []models.Issue
}

type repoService struct {
	gh    RepoFetcher
	limit int
}

// NewRepoService returns a concrete implementation. limit bounds how many issues
// are enriched per search.
func NewRepoService(gh RepoFetcher, limit int) RepoService {
	return &repoService{gh: gh, limit: limit}
}

func (s *repoService) Enrich(ctx context.Context, issues []models.Issue, token string) []models.Issue {
	out := make([]models.Issue, len(issues))
	copy(out, issues)

	results := s.fetchAll(ctx, out[:min(len(out), s.limit)], token)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			logging.Debug("repository enrichment failed",
				"repository_url", out[r.Index].RepositoryURL,
				"error", r.Err,
			)
			continue
		}
		out[r.Index].Repo = r.Repo
	}
	if failed > 0 {
		logging.Warn("some repositories could not be enriched", "failed", failed, "attempted", len(results))
	}
	return out
}

// fetchAll launches every fetch at once and waits for all of them to settle.
func (s *repoService) fetchAll(ctx context.Context, issues []models.Issue, token string) []EnrichResult {
	results := make([]EnrichResult, len(issues))
	var g errgroup.Group
	for i, issue := range issues {
		g.Go(func() error {
			repo, err := s.gh.GetRepository(ctx, issue.RepositoryURL, token)
			if err != nil {
				results[i] = EnrichResult{Index: i, Err: err}
				return nil
			}
			results[i] = EnrichResult{Index: i, Repo: &repo}
			return nil
		})
	}
	_ = g.Wait()
	return results
}
