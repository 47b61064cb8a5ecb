package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	cb "github.com/sony/gobreaker"
)

const scoringMaxTokens = 10

// OpenAIScorer asks a chat model for a lead score.
type OpenAIScorer struct {
	client  *openai.Client
	breaker *cb.CircuitBreaker
}

// NewOpenAIScorer builds a scorer. httpClient and baseURL may be empty to use
// the public API.
func NewOpenAIScorer(apiKey, baseURL string, httpClient *http.Client, log zerolog.Logger) (*OpenAIScorer, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("openai api key must not be empty")
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	return &OpenAIScorer{
		client:  openai.NewClientWithConfig(cfg),
		breaker: newBreaker("openai", log),
	}, nil
}

// Score sends prompt as a single user message and returns the first choice.
func (s *OpenAIScorer) Score(ctx context.Context, prompt string) (string, error) {
	out, err := s.breaker.Execute(func() (interface{}, error) {
		resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: openai.GPT3Dot5Turbo,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
			MaxTokens: scoringMaxTokens,
		})
		if err != nil {
			return nil, fmt.Errorf("chat completion: %w", err)
		}
		if len(resp.Choices) == 0 {
			return nil, errors.New("chat completion returned no choices")
		}
		return strings.TrimSpace(resp.Choices[0].Message.Content), nil
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}
