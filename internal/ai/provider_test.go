package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRouterRequestShape(t *testing.T) {
	var body map[string]any
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		content, _ := json.Marshal(`{"analyses": [` + record(1, 3, 70) + `]}`)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id": "gen-1", "object": "chat.completion", "created": 1, "model": "m",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": %s}, "finish_reason": "stop"}]}`, content)
	}))
	t.Cleanup(server.Close)

	a := NewAnalyzer(NewOpenRouterScorer(server.URL, ""), 5*time.Second)
	got := a.Analyze(context.Background(), makeIssues(1), []string{"Go"}, "sk-or-test")

	require.Len(t, got, 1)
	assert.Equal(t, 3, got[1].Complexity)
	assert.Equal(t, 70, got[1].SkillMatch)

	assert.Equal(t, "Bearer sk-or-test", auth)
	assert.Equal(t, defaultOpenRouterModel, body["model"])
	assert.InDelta(t, 0.3, body["temperature"], 0.001)

	messages := body["messages"].([]any)
	require.Len(t, messages, 1)
	assert.Equal(t, "user", messages[0].(map[string]any)["role"])

	format := body["response_format"].(map[string]any)
	assert.Equal(t, "json_schema", format["type"])
	js := format["json_schema"].(map[string]any)
	assert.Equal(t, "issue_analysis", js["name"])
	assert.Equal(t, true, js["strict"])

	schema := js["schema"].(map[string]any)
	assert.Equal(t, false, schema["additionalProperties"])
	items := schema["properties"].(map[string]any)["analyses"].(map[string]any)["items"].(map[string]any)
	assert.ElementsMatch(t, recordFields, items["required"])
	assert.Equal(t, false, items["additionalProperties"])
}

func TestOpenRouterServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "upstream exploded"}}`, http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	a := NewAnalyzer(NewOpenRouterScorer(server.URL, ""), 5*time.Second)
	got := a.Analyze(context.Background(), makeIssues(3), []string{"Go"}, "sk-or-test")

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAnthropicForcedTool(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-ant-test", r.Header.Get("X-Api-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id": "msg_1", "type": "message", "role": "assistant", "model": "m",
			"content": [{"type": "tool_use", "id": "toolu_1", "name": %q, "input": {"analyses": [%s]}}],
			"stop_reason": "tool_use", "stop_sequence": null,
			"usage": {"input_tokens": 10, "output_tokens": 20}}`, analysisTool, record(2, 1, 95))
	}))
	t.Cleanup(server.Close)

	a := NewAnalyzer(NewAnthropicScorer(server.URL, ""), 5*time.Second)
	got := a.Analyze(context.Background(), makeIssues(2), []string{"Go"}, "sk-ant-test")

	require.Len(t, got, 1)
	assert.Equal(t, 1, got[2].Complexity)
	assert.Equal(t, 95, got[2].SkillMatch)

	assert.InDelta(t, 0.3, body["temperature"], 0.001)
	choice := body["tool_choice"].(map[string]any)
	assert.Equal(t, "tool", choice["type"])
	assert.Equal(t, analysisTool, choice["name"])

	tools := body["tools"].([]any)
	require.Len(t, tools, 1)
	tool := tools[0].(map[string]any)
	assert.Equal(t, analysisTool, tool["name"])

	schema := tool["input_schema"].(map[string]any)
	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, false, schema["additionalProperties"])
	assert.Equal(t, []any{"analyses"}, schema["required"])
	items := schema["properties"].(map[string]any)["analyses"].(map[string]any)["items"].(map[string]any)
	assert.ElementsMatch(t, recordFields, items["required"])
	assert.Equal(t, false, items["additionalProperties"])
}
