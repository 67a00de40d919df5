package refinement

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"go-crisiswatch/types"
)

const maxIssueContextLength = 6000 // Rough character limit for the existing-issue excerpt

// Client wraps the OpenAI-backed refinement and update-check
// collaborators.
type Client struct {
	OpenAI *openai.Client
	Model  string
}

func NewClient(openaiClient *openai.Client, model string) *Client {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &Client{OpenAI: openaiClient, Model: model}
}

const refineSystemPrompt = "You are an assistant that produces structured crisis assessments. " +
	"Respond with a single JSON object of the shape " +
	`{"severity":{"overall":0.0,"dimensions":{}},"type_classification":{"type":""},"location":{"name":""},"urgency":{"level":""}}. ` +
	"All severity values are between 0 and 1. Urgency level is one of low, medium, high, critical."

// Refine produces the second-pass analysis for a report. It is invoked
// for every crisis creation and, depending on configuration, for
// non-crisis reports as an informational result.
func (c *Client) Refine(ctx context.Context, text string, cls *types.ClassificationResult) (*types.RefinedAnalysis, error) {
	clsJSON, err := json.Marshal(cls)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf("Assess the following crisis report. A first-pass classification is attached.\n\nReport:\n%s\n\nClassification:\n%s", text, clsJSON)

	raw, err := c.completeJSON(ctx, refineSystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("refinement call failed: %w", err)
	}

	var analysis types.RefinedAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		return nil, fmt.Errorf("refinement returned malformed JSON: %w", err)
	}
	return &analysis, nil
}

const updateCheckSystemPrompt = "You compare a new crisis report against an already-tracked issue and decide " +
	"whether the report carries material new information. Respond with a single JSON object of the shape " +
	`{"has_updates":false,"updated_analysis":{"severity":{"overall":0.0,"dimensions":{}},"type_classification":{"type":""},"location":{"name":""},"urgency":{"level":""}}}. ` +
	"Only set has_updates to true when the report changes the situation described by the issue; " +
	"when true, updated_analysis must merge the issue's existing analysis with the new information."

// CheckUpdate asks the model whether the new report materially updates
// the existing issue, and if so for a merged analysis.
func (c *Client) CheckUpdate(ctx context.Context, text string, cls *types.ClassificationResult, issue *types.Issue) (*types.UpdateCheckResult, error) {
	clsJSON, err := json.Marshal(cls)
	if err != nil {
		return nil, err
	}

	existing := issue.Description
	if len(existing) > maxIssueContextLength {
		existing = existing[:maxIssueContextLength]
	}
	analysisJSON, err := json.Marshal(issue.AIAnalysis)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(
		"New report:\n%s\n\nClassification of the new report:\n%s\n\nTracked issue %q (severity %.2f):\n%s\n\nCurrent analysis:\n%s",
		text, clsJSON, issue.Title, issue.Severity, existing, analysisJSON)

	raw, err := c.completeJSON(ctx, updateCheckSystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("update check call failed: %w", err)
	}

	var result types.UpdateCheckResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("update check returned malformed JSON: %w", err)
	}
	return &result, nil
}

func (c *Client) completeJSON(ctx context.Context, system, prompt string) (string, error) {
	resp, err := c.OpenAI.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.Model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: system,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
			Temperature: 0.2, // Low temperature; assessments should be stable
		},
	)
	if err != nil {
		return "", fmt.Errorf("openai chat completion error: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai returned empty response or choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
