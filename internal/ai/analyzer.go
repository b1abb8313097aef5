// Package ai scores discovered issues against the user's skills with a single
// structured-output model call per batch.
package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/ahmednasr/gitscout/internal/logging"
	"github.com/ahmednasr/gitscout/internal/models"
)

const (
	// BatchCap is the maximum number of issues sent in one scoring request.
	BatchCap = 10
	// BodyExcerpt bounds the issue body, in runes, embedded in the prompt.
	BodyExcerpt = 500

	schemaName  = "issue_analysis"
	temperature = 0.3
)

// Scorer sends one prompt to a scoring model and returns the raw structured
// content it produced. Implementations must constrain output to the
// issue_analysis schema.
type Scorer interface {
	Name() string
	Score(ctx context.Context, credential, prompt string) (string, error)
}

// Analyzer turns a Scorer's raw output into an AnalysisMap.
type Analyzer struct {
	scorer  Scorer
	timeout time.Duration
}

// NewAnalyzer wraps scorer. A non-positive timeout disables the per-call bound.
func NewAnalyzer(scorer Scorer, timeout time.Duration) *Analyzer {
	return &Analyzer{scorer: scorer, timeout: timeout}
}

// Analyze scores the first BatchCap issues. It never fails: any provider, transport
// or decode problem is logged and yields an empty map.
func (a *Analyzer) Analyze(ctx context.Context, issues []models.Issue, skills []string, credential string) models.AnalysisMap {
	out := models.AnalysisMap{}
	if credential == "" || len(issues) == 0 {
		return out
	}

	batch := issues[:min(len(issues), BatchCap)]
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	start := time.Now()
	analyses, err := a.analyze(ctx, batch, skills, credential)
	if err != nil {
		logging.Warn("issue analysis unavailable",
			"provider", a.scorer.Name(),
			"batch", len(batch),
			"error", err,
		)
		return out
	}

	logging.Debug("issue analysis complete",
		"provider", a.scorer.Name(),
		"batch", len(batch),
		"analysed", len(analyses),
		"duration", time.Since(start),
	)
	return analyses
}

func (a *Analyzer) analyze(ctx context.Context, batch []models.Issue, skills []string, credential string) (models.AnalysisMap, error) {
	content, err := a.scorer.Score(ctx, credential, BuildPrompt(batch, skills))
	if err != nil {
		return nil, fmt.Errorf("score: %w", err)
	}

	records, err := decodeAnalyses(content)
	if err != nil {
		return nil, err
	}

	inBatch := make(map[int64]bool, len(batch))
	for _, issue := range batch {
		inBatch[issue.ID] = true
	}

	out := models.AnalysisMap{}
	for _, r := range records {
		id, _ := r.id()
		if !inBatch[id] {
			continue
		}
		if _, dup := out[id]; dup {
			continue
		}
		out[id] = r.toAnalysis()
	}
	return out, nil
}
