package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const systemPrompt = `You are a broadcast revenue intelligence analyst for a television station group.
You analyze WideOrbit WO Traffic data to provide insights on:
- Revenue trends by daypart (early morning, daytime, early fringe, early news, prime access, prime, late news, late fringe)
- Average Unit Rate (AUR) analysis and pricing recommendations
- Advertiser concentration and revenue risk assessment
- Sell-out rates and inventory pacing vs. prior year
- Makegood exposure and preemption impact

You are advisory only — all recommendations require human approval before action.
You speak in the language of broadcast TV sales: dayparts, AUR, sell-out rates, pacing, makegoods.
Be specific with numbers when data is available. Flag data gaps honestly.
Never fabricate data points — if you don't have the data, say so.`

// Message is one turn of chat history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client answers revenue intelligence questions.
type Client interface {
	Chat(ctx context.Context, history []Message, message string) (string, error)
}

// Config holds client settings.
type Config struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

// NewClient creates a live client when an API key is configured and a mock
// client otherwise, so the service always starts.
func NewClient(config Config) Client {
	if config.APIKey == "" {
		return &MockClient{}
	}
	baseURL := strings.TrimSpace(config.BaseURL)
	if baseURL == "" {
		baseURL = "https://api.anthropic.com/v1"
	}
	return &AnthropicClient{
		APIKey:    config.APIKey,
		BaseURL:   baseURL,
		Model:     config.Model,
		MaxTokens: config.MaxTokens,
		Timeout:   config.Timeout,
	}
}

// MockClient is the no-key fallback, also used in tests.
type MockClient struct {
	Response string // Set this for testing
	Error    error  // Set this to simulate errors
}

func (m *MockClient) Chat(ctx context.Context, history []Message, message string) (string, error) {
	if m.Error != nil {
		return "", m.Error
	}
	if m.Response != "" {
		return m.Response, nil
	}
	return fmt.Sprintf("[MOCK] Received: '%s'\n\n"+
		"The AI service is not configured. Set ANTHROPIC_API_KEY to enable.\n"+
		"Running in mock mode — no WideOrbit data analysis available.", message), nil
}

// AnthropicClient implements Client against the Messages API.
type AnthropicClient struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

func (c *AnthropicClient) Chat(ctx context.Context, history []Message, message string) (string, error) {
	if strings.TrimSpace(c.Model) == "" {
		return "", fmt.Errorf("missing model")
	}
	maxTokens := c.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	messages := make([]Message, 0, len(history)+1)
	messages = append(messages, history...)
	messages = append(messages, Message{Role: "user", Content: message})

	type reqBody struct {
		Model     string    `json:"model"`
		MaxTokens int       `json:"max_tokens"`
		System    string    `json:"system"`
		Messages  []Message `json:"messages"`
	}
	raw, err := json.Marshal(reqBody{
		Model:     c.Model,
		MaxTokens: maxTokens,
		System:    systemPrompt,
		Messages:  messages,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	client := &http.Client{Timeout: c.Timeout}
	url := strings.TrimRight(c.BaseURL, "/") + "/messages"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("x-api-key", c.APIKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("anthropic request failed: %w", err)
	}
	defer resp.Body.Close()

	respRaw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("anthropic http %d: %s", resp.StatusCode, string(respRaw))
	}

	type block struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	type respBody struct {
		Content []block `json:"content"`
	}
	var decoded respBody
	if err := json.Unmarshal(respRaw, &decoded); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	for _, b := range decoded.Content {
		if b.Type == "text" {
			return b.Text, nil
		}
	}
	return "", fmt.Errorf("anthropic response missing text content")
}
