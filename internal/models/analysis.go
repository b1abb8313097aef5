package models

// Score bounds for IssueAnalysis.
const (
	MinComplexity = 1
	MaxComplexity = 5
	MinSkillMatch = 0
	MaxSkillMatch = 100
)

// IssueAnalysis is the model's assessment of a single issue.
// Complexity and SkillMatch are always within their bounds once stored.
type IssueAnalysis struct {
	Complexity       int      `json:"complexity"`
	SkillMatch       int      `json:"skill_match"`
	Summary          string   `json:"summary"`
	RequiredSkills   []string `json:"required_skills"`
	EstimatedHours   string   `json:"estimated_hours"`
	BeginnerFriendly bool     `json:"beginner_friendly"`
}

// AnalysisMap holds at most one analysis per issue ID.
// A missing key means the issue has not been analysed.
type AnalysisMap map[int64]IssueAnalysis

// Lookup returns the analysis for id and whether one exists.
func (m AnalysisMap) Lookup(id int64) (IssueAnalysis, bool) {
	a, ok := m[id]
	return a, ok
}
