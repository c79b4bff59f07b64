package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Rrens/shoplist/internal/extract"
)

// Provider implements extract.Provider for OpenAI
type Provider struct {
	apiKey       string
	defaultModel string
	client       *http.Client
	baseURL      string
}

// NewProvider creates a new OpenAI provider
func NewProvider(apiKey, defaultModel string) extract.Provider {
	if defaultModel == "" {
		defaultModel = "gpt-4o-mini"
	}
	return &Provider{
		apiKey:       apiKey,
		defaultModel: defaultModel,
		client:       &http.Client{Timeout: 60 * time.Second},
		baseURL:      "https://api.openai.com/v1",
	}
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return "openai"
}

// IsConfigured checks if provider has valid credentials
func (p *Provider) IsConfigured() bool {
	return p.apiKey != ""
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ExtractItems parses the text into shopping list items
func (p *Provider) ExtractItems(ctx context.Context, text string) ([]string, error) {
	chatReq := chatRequest{
		Model: p.defaultModel,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: "You extract shopping list items from text. Respond with ONLY a JSON object {\"items\": [...]}, no explanations or markdown formatting.",
			},
			{
				Role:    "user",
				Content: extract.BuildPrompt(text),
			},
		},
		Temperature: 0,
		MaxTokens:   1024,
	}

	body, err := json.Marshal(chatReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openai returned status %d", resp.StatusCode)
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	return extract.ParseItems(chatResp.Choices[0].Message.Content)
}
