// Package ner talks to an external named-entity recognition service. The
// service is a black box: it takes raw text and returns labeled spans, and
// only the person and organization labels matter here.
package ner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Labels emitted by the recognizer that the pipeline consumes.
const (
	LabelPerson = "PERSON"
	LabelOrg    = "ORG"
)

// Entity is a labeled text span returned by the recognizer.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Recognizer extracts labeled entities from raw text.
type Recognizer interface {
	Recognize(ctx context.Context, text string) ([]Entity, error)
}

// Client calls an entity recognition service over HTTP.
type Client struct {
	endpoint string
	client   *http.Client
}

// NewClient creates a Client for the given endpoint.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type recognizeRequest struct {
	Text string `json:"text"`
}

type recognizeResponse struct {
	Entities []Entity `json:"entities"`
	Error    string   `json:"error"`
}

// Recognize posts the text to the service and returns its entities in
// service order.
func (c *Client) Recognize(ctx context.Context, text string) ([]Entity, error) {
	body, err := json.Marshal(recognizeRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("recognizer request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("recognizer returned status %d", resp.StatusCode)
	}

	var decoded recognizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("could not decode recognizer response: %w", err)
	}
	if decoded.Error != "" {
		return nil, fmt.Errorf("recognizer error: %s", decoded.Error)
	}
	return decoded.Entities, nil
}

var _ Recognizer = (*Client)(nil)
