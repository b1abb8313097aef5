package ai

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/ahmednasr/gitscout/internal/models"
)

var errMalformed = errors.New("malformed analysis response")

// analysisRecord is one element of the model's answer. Every field is required;
// pointers let the decoder tell "missing" from a zero value.
type analysisRecord struct {
	ID               *json.Number `json:"id"`
	Complexity       *float64     `json:"complexity"`
	SkillMatch       *float64     `json:"skillMatch"`
	Summary          *string      `json:"summary"`
	RequiredSkills   *[]string    `json:"requiredSkills"`
	EstimatedHours   *string      `json:"estimatedHours"`
	BeginnerFriendly *bool        `json:"beginnerFriendly"`
}

// wrappedRecords is the object shape: {"analyses": [...]}.
type wrappedRecords struct {
	Analyses *[]analysisRecord `json:"analyses"`
}

// decodeAnalyses is the single decode step for model output. The content is either
// a bare array of records or an object whose only field is "analyses" holding that
// array. Unknown fields, missing fields, trailing data or any other shape reject
// the whole response.
func decodeAnalyses(content string) ([]analysisRecord, error) {
	raw := bytes.TrimSpace([]byte(content))
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty content", errMalformed)
	}

	var records []analysisRecord
	switch raw[0] {
	case '[':
		if err := strictUnmarshal(raw, &records); err != nil {
			return nil, err
		}
	case '{':
		var w wrappedRecords
		if err := strictUnmarshal(raw, &w); err != nil {
			return nil, err
		}
		if w.Analyses == nil {
			return nil, fmt.Errorf("%w: object without analyses", errMalformed)
		}
		records = *w.Analyses
	default:
		return nil, fmt.Errorf("%w: unexpected content %q", errMalformed, truncate(string(raw), 40))
	}

	for i, r := range records {
		if missing := r.missingFields(); len(missing) > 0 {
			return nil, fmt.Errorf("%w: record %d missing %s", errMalformed, i, strings.Join(missing, ", "))
		}
		if _, err := r.id(); err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", errMalformed, i, err)
		}
	}
	return records, nil
}

func strictUnmarshal(raw []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", errMalformed, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("%w: trailing data", errMalformed)
	}
	return nil
}

func (r analysisRecord) missingFields() []string {
	var missing []string
	if r.ID == nil {
		missing = append(missing, "id")
	}
	if r.Complexity == nil {
		missing = append(missing, "complexity")
	}
	if r.SkillMatch == nil {
		missing = append(missing, "skillMatch")
	}
	if r.Summary == nil {
		missing = append(missing, "summary")
	}
	if r.RequiredSkills == nil {
		missing = append(missing, "requiredSkills")
	}
	if r.EstimatedHours == nil {
		missing = append(missing, "estimatedHours")
	}
	if r.BeginnerFriendly == nil {
		missing = append(missing, "beginnerFriendly")
	}
	return missing
}

// id accepts integral numbers only; "101" and 101.0 are both issue 101.
func (r analysisRecord) id() (int64, error) {
	if n, err := r.ID.Int64(); err == nil {
		return n, nil
	}
	f, err := r.ID.Float64()
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("invalid id %q", r.ID.String())
	}
	return int64(f), nil
}

// toAnalysis converts a validated record, clamping both scores into range.
func (r analysisRecord) toAnalysis() models.IssueAnalysis {
	return models.IssueAnalysis{
		Complexity:       clamp(*r.Complexity, models.MinComplexity, models.MaxComplexity),
		SkillMatch:       clamp(*r.SkillMatch, models.MinSkillMatch, models.MaxSkillMatch),
		Summary:          *r.Summary,
		RequiredSkills:   *r.RequiredSkills,
		EstimatedHours:   *r.EstimatedHours,
		BeginnerFriendly: *r.BeginnerFriendly,
	}
}

func clamp(v float64, lo, hi int) int {
	n := math.Round(v)
	if n < float64(lo) {
		return lo
	}
	if n > float64(hi) {
		return hi
	}
	return int(n)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
