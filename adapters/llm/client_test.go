package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNewClient_FallsBackToMock(t *testing.T) {
	if _, ok := NewClient(Config{}).(*MockClient); !ok {
		t.Fatal("expected mock client without an API key")
	}
	if _, ok := NewClient(Config{APIKey: "sk-test"}).(*AnthropicClient); !ok {
		t.Fatal("expected live client with an API key")
	}
}

func TestMockClient_DefaultResponse(t *testing.T) {
	m := &MockClient{}
	resp, err := m.Chat(context.Background(), nil, "how is prime pacing?")
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if !strings.Contains(resp, "[MOCK]") || !strings.Contains(resp, "how is prime pacing?") {
		t.Errorf("unexpected mock response: %s", resp)
	}
}

func TestAnthropicClient_Chat(t *testing.T) {
	var captured struct {
		Model     string `json:"model"`
		MaxTokens int    `json:"max_tokens"`
		System    string `json:"system"`
		Messages  []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/messages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "sk-test" {
			t.Errorf("missing api key header")
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Errorf("missing version header")
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{{"type": "text", "text": "prime is pacing ahead"}},
		})
	}))
	defer server.Close()

	c := &AnthropicClient{
		APIKey:    "sk-test",
		BaseURL:   server.URL,
		Model:     "test-model",
		MaxTokens: 512,
		Timeout:   5 * time.Second,
	}

	history := []Message{{Role: "user", Content: "hi"}, {Role: "assistant", Content: "hello"}}
	resp, err := c.Chat(context.Background(), history, "how is prime pacing?")
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if resp != "prime is pacing ahead" {
		t.Errorf("response = %q", resp)
	}

	if captured.Model != "test-model" || captured.MaxTokens != 512 {
		t.Errorf("request %+v", captured)
	}
	if !strings.Contains(captured.System, "broadcast revenue intelligence") {
		t.Errorf("system prompt missing: %q", captured.System)
	}
	if len(captured.Messages) != 3 || captured.Messages[2].Content != "how is prime pacing?" {
		t.Errorf("messages = %+v", captured.Messages)
	}
}

func TestAnthropicClient_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"overloaded"}`, http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := &AnthropicClient{APIKey: "sk-test", BaseURL: server.URL, Model: "test-model", Timeout: 5 * time.Second}
	if _, err := c.Chat(context.Background(), nil, "hi"); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}
