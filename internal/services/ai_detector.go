package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultAIScore is substituted when the detection service is unreachable.
// Detector failure must never block recipe creation.
const DefaultAIScore = 0.0

// AiTextDetector scores how likely a piece of text is machine-generated.
// Implementations talk to an external service; callers decide how to
// degrade when Detect fails.
type AiTextDetector interface {
	Detect(ctx context.Context, text string) (float64, error)
}

// SaplingDetector calls a Sapling-style AI detection endpoint.
type SaplingDetector struct {
	client *resty.Client
	apiKey string
}

type saplingRequest struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

type saplingResponse struct {
	Score float64 `json:"score"`
}

// NewSaplingDetector creates a detector for the given endpoint URL and API key
func NewSaplingDetector(url, apiKey string) *SaplingDetector {
	client := resty.New().
		SetBaseURL(url).
		SetTimeout(10 * time.Second).
		SetRetryCount(1)

	return &SaplingDetector{client: client, apiKey: apiKey}
}

// Detect posts the text to the detection endpoint and returns the confidence
// score rounded to two decimal places.
func (d *SaplingDetector) Detect(ctx context.Context, text string) (float64, error) {
	var result saplingResponse

	resp, err := d.client.R().
		SetContext(ctx).
		SetBody(saplingRequest{Key: d.apiKey, Text: text}).
		SetResult(&result).
		Post("")
	if err != nil {
		return DefaultAIScore, fmt.Errorf("ai detection request failed: %w", err)
	}
	if resp.IsError() {
		return DefaultAIScore, fmt.Errorf("ai detection service returned status %d", resp.StatusCode())
	}

	return math.Round(result.Score*100) / 100, nil
}
