package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/careloop/visitprep/internal/domain/entities"
	"github.com/careloop/visitprep/pkg/config"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Client calls the OpenAI Responses API for patient-facing content
// generation: gist, anomaly alerts, strategic questions and recaps.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new OpenAI client
func NewClient(cfg *config.OpenAIConfig) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("openai api key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &Client{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

type responseContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type responseOutput struct {
	Content []responseContent `json:"content"`
}

type responseEnvelope struct {
	Output []responseOutput `json:"output"`
}

// GenerateGist translates clinical text into a cause/location/goal summary
func (c *Client) GenerateGist(ctx context.Context, clinicalInput string) (*entities.Gist, error) {
	text, err := c.complete(ctx, gistSystemPrompt, buildGistUserPrompt(clinicalInput), 600)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Cause    string `json:"cause"`
		Location string `json:"location"`
		Goal     string `json:"goal"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse gist payload: %w", err)
	}
	return &entities.Gist{Cause: payload.Cause, Location: payload.Location, Goal: payload.Goal}, nil
}

// DetectAnomalies flags physiological outliers in synced metrics
func (c *Client) DetectAnomalies(ctx context.Context, metrics []entities.HealthMetric) ([]entities.AnomalyAlert, error) {
	text, err := c.complete(ctx, anomalySystemPrompt, buildAnomalyUserPrompt(metrics), 800)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Anomalies []entities.AnomalyAlert `json:"anomalies"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse anomaly payload: %w", err)
	}
	return payload.Anomalies, nil
}

// GenerateQuestions produces prioritized consultation questions
func (c *Client) GenerateQuestions(ctx context.Context, input entities.QuestionInput) ([]entities.StrategicQuestion, error) {
	text, err := c.complete(ctx, questionSystemPrompt, buildQuestionUserPrompt(input), 900)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Questions []entities.StrategicQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse question payload: %w", err)
	}
	return payload.Questions, nil
}

// GenerateRecap summarizes a visit transcript into instructions, action
// items and follow-ups
func (c *Client) GenerateRecap(ctx context.Context, transcript string) (*entities.Recap, error) {
	text, err := c.complete(ctx, recapSystemPrompt, buildRecapUserPrompt(transcript), 700)
	if err != nil {
		return nil, err
	}

	var payload entities.Recap
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse recap payload: %w", err)
	}
	return &payload, nil
}

// complete performs one Responses API call and returns the output text with
// Markdown fences stripped
func (c *Client) complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int) (string, error) {
	payload := map[string]interface{}{
		"model": c.model,
		"input": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": userPrompt},
		},
		"temperature":       0.2,
		"max_output_tokens": maxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/responses", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("openai request failed with status %d", resp.StatusCode)
	}

	var envelope responseEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return "", err
	}

	var text string
	for _, out := range envelope.Output {
		for _, content := range out.Content {
			if content.Type == "output_text" && content.Text != "" {
				text = content.Text
				break
			}
		}
		if text != "" {
			break
		}
	}

	if text == "" {
		return "", errors.New("openai response missing output text")
	}

	// Clean Markdown code blocks if present
	cleaned := text
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimSuffix(cleaned, "```")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
	}
	return strings.TrimSpace(cleaned), nil
}
