package mlmodel

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go-crisiswatch/types"
)

// Client calls the crisis classification model service.
type Client struct {
	URL        string
	HTTPClient *http.Client
}

func NewClient(url string) *Client {
	return &Client{
		URL:        url,
		HTTPClient: http.DefaultClient,
	}
}

type classifyRequest struct {
	Text         string `json:"text"`
	Source       string `json:"source"`
	LocationHint string `json:"location_hint,omitempty"`
}

// Classify sends a raw report to the model service and returns its
// first-pass judgment. A nil result with a nil error means the model
// answered with an empty judgment; callers treat that as a fatal
// analysis failure.
func (c *Client) Classify(ctx context.Context, text, source, locationHint string) (*types.ClassificationResult, error) {
	payloadBytes, err := json.Marshal(classifyRequest{
		Text:         text,
		Source:       source,
		LocationHint: locationHint,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("classification model returned status: " + resp.Status)
	}

	// Decoding through a pointer keeps a literal `null` body nil instead
	// of a zero-valued result that would read as non-crisis.
	var result *types.ClassificationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return result, nil
}
