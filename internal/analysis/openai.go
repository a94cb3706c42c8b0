package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Domikas122/ITSM-System-VIKO/internal/pkg/ctxlog"
)

const systemPrompt = `You are an IT security incident analyst. Given an incident title and description, respond with a JSON object containing:
- "tags": up to 5 short lowercase keyword tags
- "analysis": a 2-3 sentence assessment of the likely cause and recommended next steps
- "suggestedCategory": either "it" or "cyber"
- "suggestedSeverity": one of "critical", "high", "medium", "low"`

// OpenAIConfig holds settings for the LLM analyzer.
type OpenAIConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// OpenAIAnalyzer calls an OpenAI-compatible chat completions endpoint.
type OpenAIAnalyzer struct {
	config OpenAIConfig
	client *http.Client
}

// NewOpenAIAnalyzer creates the LLM analyzer. Returns nil when no API key is
// configured so the chain skips it.
func NewOpenAIAnalyzer(cfg OpenAIConfig) *OpenAIAnalyzer {
	if cfg.APIKey == "" {
		return nil
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &OpenAIAnalyzer{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
	Temperature    float64        `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Analyze sends the incident text to the model and parses its JSON reply.
func (a *OpenAIAnalyzer) Analyze(ctx context.Context, title, description string) (*Result, error) {
	reqBody := chatRequest{
		Model: a.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf("Title: %s\n\nDescription: %s", title, description)},
		},
		ResponseFormat: responseFormat{Type: "json_object"},
		Temperature:    0.2,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		a.config.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.config.APIKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call analysis api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		ctxlog.FromContext(ctx).Warn("analysis api returned non-200",
			"status", resp.StatusCode)
		return nil, fmt.Errorf("analysis api status %d", resp.StatusCode)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("analysis api returned no choices")
	}

	var result Result
	if err := json.Unmarshal([]byte(chatResp.Choices[0].Message.Content), &result); err != nil {
		return nil, fmt.Errorf("decode model output: %w", err)
	}

	if len(result.Tags) > maxTags {
		result.Tags = result.Tags[:maxTags]
	}
	if result.SuggestedCategory != "" && !result.SuggestedCategory.IsValid() {
		result.SuggestedCategory = ""
	}
	if result.SuggestedSeverity != "" && !result.SuggestedSeverity.IsValid() {
		result.SuggestedSeverity = ""
	}

	return &result, nil
}
