package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAIScorer_Score(t *testing.T) {
	var got struct {
		Model     string `json:"model"`
		MaxTokens int    `json:"max_tokens"`
		Messages  []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" || r.Header.Get("Authorization") != "Bearer ok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"chatcmpl-1","object":"chat.completion","created":1,"model":"gpt-3.5-turbo",
			"choices":[{"index":0,"message":{"role":"assistant","content":" 7\n"},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	scorer, err := NewOpenAIScorer("ok", server.URL+"/v1", server.Client(), testLogger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	reply, err := scorer.Score(context.Background(), "Score this lead")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "7" {
		t.Fatalf("expected trimmed reply 7, got %q", reply)
	}
	if got.Model != "gpt-3.5-turbo" || got.MaxTokens != 10 {
		t.Fatalf("unexpected request: %+v", got)
	}
	if len(got.Messages) != 1 || got.Messages[0].Role != "user" || got.Messages[0].Content != "Score this lead" {
		t.Fatalf("unexpected messages: %+v", got.Messages)
	}
}

func TestOpenAIScorer_Errors(t *testing.T) {
	if _, err := NewOpenAIScorer(" ", "", nil, testLogger); err == nil {
		t.Fatalf("expected error for empty key")
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"chatcmpl-1","object":"chat.completion","choices":[]}`))
	}))
	defer server.Close()

	scorer, err := NewOpenAIScorer("ok", server.URL+"/v1", server.Client(), testLogger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := scorer.Score(context.Background(), "prompt"); err == nil {
		t.Fatalf("expected error when no choices are returned")
	}
}
