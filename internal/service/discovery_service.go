package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ahmednasr/gitscout/internal/github"
	"github.com/ahmednasr/gitscout/internal/logging"
	"github.com/ahmednasr/gitscout/internal/models"
	"github.com/ahmednasr/gitscout/internal/ranking"
)

var (
	// ErrNoSkills is returned before any network call when no skill is selected.
	ErrNoSkills = errors.New("Select at least one skill to search")
	// ErrSuperseded is returned when a newer search started before this one finished.
	ErrSuperseded = errors.New("search superseded by a newer search")
)

// ---- Client contracts ------------------------------------------------------

// IssueSearcher runs the "good first issue" search.
type IssueSearcher interface {
	SearchIssues(ctx context.Context, skills []string, opts github.SearchOptions) (github.SearchResult, error)
}

// IssueAnalyzer scores a batch of issues. It never fails; an empty map means
// no analysis is available.
type IssueAnalyzer interface {
	Analyze(ctx context.Context, issues []models.Issue, skills []string, credential string) models.AnalysisMap
}

// ---- Service interface + implementation ------------------------------------

// DiscoveryService runs the search → enrich → analyse pipeline and serves ranked
// views of the latest result set.
type DiscoveryService interface {
	// Search runs a new generation with the stored skills. Analysis, when a
	// credential is available, continues in the background after Search returns.
	Search(ctx context.Context, req models.SearchRequest) (models.SearchSnapshot, error)
	// View ranks the latest snapshot with the current bookmarks.
	View(opts ranking.Options) models.RankedView
	// Snapshot returns the latest committed snapshot.
	Snapshot() models.SearchSnapshot
	// Wait blocks until background analysis has finished.
	Wait()
	// Close cancels in-flight work and waits for it.
	Close()
}

// DiscoveryOptions are the search defaults applied when a request leaves them unset.
type DiscoveryOptions struct {
	Sort    string
	PerPage int
}

type discoveryService struct {
	searcher IssueSearcher
	repos    RepoService
	analyzer IssueAnalyzer
	state    *State
	opts     DiscoveryOptions
	now      func() time.Time

	base     context.Context
	stopBase context.CancelFunc
	wg       sync.WaitGroup

	mu     sync.RWMutex
	gen    uint64
	cancel context.CancelFunc
	snap   models.SearchSnapshot
}

// NewDiscoveryService wires the pipeline. analyzer may be nil to disable scoring.
func NewDiscoveryService(searcher IssueSearcher, repos RepoService, analyzer IssueAnalyzer, state *State, opts DiscoveryOptions) DiscoveryService {
	base, stop := context.WithCancel(context.Background())
	return &discoveryService{
		searcher: searcher,
		repos:    repos,
		analyzer: analyzer,
		state:    state,
		opts:     opts,
		now:      time.Now,
		base:     base,
		stopBase: stop,
		snap:     models.SearchSnapshot{Analyses: models.AnalysisMap{}},
	}
}

func (s *discoveryService) Search(ctx context.Context, req models.SearchRequest) (models.SearchSnapshot, error) {
	selected := s.state.Skills()
	if len(selected) == 0 {
		return models.SearchSnapshot{}, ErrNoSkills
	}

	gen, genCtx := s.begin()

	// The request context ends early when a newer generation starts.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(genCtx, cancel)
	defer stop()

	start := s.now()
	res, err := s.searcher.SearchIssues(ctx, selected, github.SearchOptions{
		Token:   s.state.GitHubToken(),
		Sort:    firstNonEmpty(req.Sort, s.opts.Sort),
		PerPage: firstPositive(req.PerPage, s.opts.PerPage),
		Page:    req.Page,
	})
	if err != nil {
		if !s.fail(gen) {
			return models.SearchSnapshot{}, ErrSuperseded
		}
		return models.SearchSnapshot{}, err
	}

	issues := s.repos.Enrich(ctx, res.Issues, s.state.GitHubToken())
	credential := s.state.OpenRouterKey()
	analyzing := s.analyzer != nil && credential != "" && len(issues) > 0

	snap := models.SearchSnapshot{
		Generation: gen,
		Skills:     selected,
		TotalCount: res.TotalCount,
		Issues:     issues,
		Analyses:   models.AnalysisMap{},
		Analyzing:  analyzing,
		SearchedAt: s.now(),
	}

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		logging.Debug("discarding stale search results", "generation", gen)
		return models.SearchSnapshot{}, ErrSuperseded
	}
	s.snap = snap
	if analyzing {
		s.wg.Add(1)
		go s.analyze(genCtx, gen, issues, selected)
	}
	s.mu.Unlock()

	logging.Info("search complete",
		"generation", gen,
		"skills", len(selected),
		"total", res.TotalCount,
		"issues", len(issues),
		"analyzing", analyzing,
		"duration", s.now().Sub(start),
	)
	return snap, nil
}

// begin starts a new generation and cancels the previous one.
func (s *discoveryService) begin() (uint64, context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	ctx, cancel := context.WithCancel(s.base)
	s.cancel = cancel
	return s.gen, ctx
}

// fail settles a generation whose search failed. The visible snapshot stays,
// but its analysis was cancelled by begin and will never land. Reports false
// when a newer generation already owns the snapshot.
func (s *discoveryService) fail(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return false
	}
	s.snap.Analyzing = false
	return true
}

func (s *discoveryService) analyze(ctx context.Context, gen uint64, issues []models.Issue, selected []string) {
	defer s.wg.Done()

	analyses := s.analyzer.Analyze(ctx, issues, selected, s.state.OpenRouterKey())

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		logging.Debug("discarding stale analysis", "generation", gen)
		return
	}
	s.snap.Analyses = analyses
	s.snap.Analyzing = false
}

func (s *discoveryService) View(opts ranking.Options) models.RankedView {
	return ranking.BuildView(s.Snapshot(), s.state.Bookmarks(), opts, s.now())
}

func (s *discoveryService) Snapshot() models.SearchSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

func (s *discoveryService) Wait() { s.wg.Wait() }

func (s *discoveryService) Close() {
	s.stopBase()
	s.wg.Wait()
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstPositive(vals ...int) int {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}
