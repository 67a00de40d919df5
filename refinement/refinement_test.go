package refinement_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/require"

	"go-crisiswatch/refinement"
	"go-crisiswatch/types"
)

// chatServer fakes the OpenAI chat completions endpoint, answering every
// request with the given message content.
func chatServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		resp := fmt.Sprintf(`{
			"id": "chatcmpl-test",
			"object": "chat.completion",
			"model": "gpt-4o-mini",
			"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": %q}}]
		}`, content)
		w.Write([]byte(resp))
	}))
}

func newTestClient(serverURL string) *refinement.Client {
	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = serverURL + "/v1"
	return refinement.NewClient(openai.NewClientWithConfig(cfg), "gpt-4o-mini")
}

func TestRefineParsesAnalysis(t *testing.T) {
	server := chatServer(t, `{"severity":{"overall":0.7,"dimensions":{"displacement":0.6}},"type_classification":{"type":"flood"},"location":{"name":"Assam"},"urgency":{"level":"high"}}`)
	defer server.Close()

	client := newTestClient(server.URL)
	analysis, err := client.Refine(context.Background(), "severe flooding", &types.ClassificationResult{IsCrisis: true})
	require.NoError(t, err)
	require.Equal(t, 0.7, analysis.Severity.Overall)
	require.Equal(t, 0.6, analysis.Severity.Dimensions["displacement"])
	require.Equal(t, "flood", analysis.TypeClassification.Type)
	require.Equal(t, "high", analysis.Urgency.Level)
}

func TestRefineMalformedJSONIsError(t *testing.T) {
	server := chatServer(t, "not a json object")
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Refine(context.Background(), "text", &types.ClassificationResult{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "malformed")
}

func TestCheckUpdateParsesVerdict(t *testing.T) {
	server := chatServer(t, `{"has_updates":true,"updated_analysis":{"severity":{"overall":0.85},"type_classification":{"type":"flood"},"location":{"name":"Assam"},"urgency":{"level":"critical"}}}`)
	defer server.Close()

	client := newTestClient(server.URL)
	issue := &types.Issue{
		ID:          "issue-1",
		Title:       "Crisis Alert: flood in Assam",
		Description: "severe flooding in Guwahati",
		Severity:    0.7,
	}
	result, err := client.CheckUpdate(context.Background(), "waters rising", &types.ClassificationResult{IsCrisis: true}, issue)
	require.NoError(t, err)
	require.True(t, result.HasUpdates)
	require.NotNil(t, result.UpdatedAnalysis)
	require.Equal(t, 0.85, result.UpdatedAnalysis.Severity.Overall)
}

func TestCheckUpdateNoUpdates(t *testing.T) {
	server := chatServer(t, `{"has_updates":false}`)
	defer server.Close()

	client := newTestClient(server.URL)
	result, err := client.CheckUpdate(context.Background(), "same news again", &types.ClassificationResult{}, &types.Issue{ID: "issue-1"})
	require.NoError(t, err)
	require.False(t, result.HasUpdates)
	require.Nil(t, result.UpdatedAnalysis)
}
