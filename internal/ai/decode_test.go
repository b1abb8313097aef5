package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const record101 = `{"id": 101, "complexity": 2, "skillMatch": 80, "summary": "Fix a typo",
	"requiredSkills": ["markdown"], "estimatedHours": "1-2 hours", "beginnerFriendly": true}`

func TestDecodeAnalysesShapes(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bare array", `[` + record101 + `]`},
		{"wrapped object", `{"analyses": [` + record101 + `]}`},
		{"surrounding whitespace", "\n  {\"analyses\": [" + record101 + "]}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := decodeAnalyses(tt.content)
			require.NoError(t, err)
			require.Len(t, records, 1)

			id, err := records[0].id()
			require.NoError(t, err)
			assert.EqualValues(t, 101, id)

			a := records[0].toAnalysis()
			assert.Equal(t, 2, a.Complexity)
			assert.Equal(t, 80, a.SkillMatch)
			assert.Equal(t, "Fix a typo", a.Summary)
			assert.Equal(t, []string{"markdown"}, a.RequiredSkills)
			assert.Equal(t, "1-2 hours", a.EstimatedHours)
			assert.True(t, a.BeginnerFriendly)
		})
	}
}

func TestDecodeAnalysesRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"plain text", "Here is your analysis"},
		{"number", "42"},
		{"object without analyses", `{"results": []}`},
		{"unknown record field", `[{"id": 1, "complexity": 2, "skillMatch": 3, "summary": "", "requiredSkills": [],
			"estimatedHours": "", "beginnerFriendly": false, "confidence": 0.9}]`},
		{"missing record field", `[{"id": 1, "complexity": 2, "skillMatch": 3, "summary": "", "requiredSkills": [],
			"beginnerFriendly": false}]`},
		{"extra wrapper field", `{"analyses": [], "note": "hi"}`},
		{"fractional id", `[{"id": 1.5, "complexity": 2, "skillMatch": 3, "summary": "", "requiredSkills": [],
			"estimatedHours": "", "beginnerFriendly": false}]`},
		{"wrong type", `[{"id": 1, "complexity": "easy", "skillMatch": 3, "summary": "", "requiredSkills": [],
			"estimatedHours": "", "beginnerFriendly": false}]`},
		{"trailing data", `[]` + ` []`},
		{"markdown fence", "```json\n[]\n```"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeAnalyses(tt.content)
			assert.ErrorIs(t, err, errMalformed)
		})
	}
}

func TestDecodeAnalysesEmptyArray(t *testing.T) {
	records, err := decodeAnalyses(`{"analyses": []}`)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestToAnalysisClamps(t *testing.T) {
	records, err := decodeAnalyses(`[
		{"id": 1, "complexity": 7, "skillMatch": -10, "summary": "", "requiredSkills": [], "estimatedHours": "", "beginnerFriendly": false},
		{"id": 2, "complexity": 0, "skillMatch": 250, "summary": "", "requiredSkills": [], "estimatedHours": "", "beginnerFriendly": false},
		{"id": 3, "complexity": 2.6, "skillMatch": 49.4, "summary": "", "requiredSkills": [], "estimatedHours": "", "beginnerFriendly": false}
	]`)
	require.NoError(t, err)
	require.Len(t, records, 3)

	a := records[0].toAnalysis()
	assert.Equal(t, 5, a.Complexity)
	assert.Equal(t, 0, a.SkillMatch)

	b := records[1].toAnalysis()
	assert.Equal(t, 1, b.Complexity)
	assert.Equal(t, 100, b.SkillMatch)

	c := records[2].toAnalysis()
	assert.Equal(t, 3, c.Complexity)
	assert.Equal(t, 49, c.SkillMatch)
}

func TestRecordIDForms(t *testing.T) {
	records, err := decodeAnalyses(`[
		{"id": 101.0, "complexity": 1, "skillMatch": 1, "summary": "", "requiredSkills": [], "estimatedHours": "", "beginnerFriendly": true}
	]`)
	require.NoError(t, err)
	id, err := records[0].id()
	require.NoError(t, err)
	assert.EqualValues(t, 101, id)
}
