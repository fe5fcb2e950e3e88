// Package llm wraps the Groq chat-completion endpoint behind a small gateway
// with an ordered primary/fallback model list.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/teamcbatch1/conceptclarity/server/utils/logging"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// completionTimeout bounds each completion attempt. The hosted SDK has no
// default deadline, and the chi request timeout is 60s; 30s keeps one
// primary+fallback round under it.
const completionTimeout = 30 * time.Second

var ErrNotConfigured = errors.New("llm: GROQ_API_KEY not configured")

type Client struct {
	api    *openai.Client
	models []string
	logger *zap.Logger
}

// NewClient builds the gateway. The model list is tried in order on any
// completion error; both models run with identical parameters.
func NewClient(apiKey string) *Client {
	var api *openai.Client
	if apiKey != "" {
		cfg := openai.DefaultConfig(apiKey)
		cfg.BaseURL = groqBaseURL
		api = openai.NewClientWithConfig(cfg)
	}
	return &Client{
		api:    api,
		models: []string{"llama-3.1-8b-instant", "gemma2-9b-it"},
		logger: logging.AppLogger,
	}
}

// Complete runs one chat completion, walking the model list until a model
// answers. It returns an error only after every model has failed; it never
// panics, so callers can treat any error as "no text".
func (c *Client) Complete(ctx context.Context, systemPrompt, prompt string, maxTokens int) (string, error) {
	defer logging.LogDuration(ctx, "llm_complete")()

	if c.api == nil {
		return "", ErrNotConfigured
	}
	if systemPrompt == "" {
		systemPrompt = "You are a helpful assistant."
	}

	var lastErr error
	for _, model := range c.models {
		text, err := c.complete(ctx, model, systemPrompt, prompt, maxTokens)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if c.logger != nil {
			c.logger.Warn("llm model failed, trying next",
				zap.String("model", model), zap.Error(err))
		}
	}
	return "", fmt.Errorf("all models failed: %w", lastErr)
}

func (c *Client) complete(ctx context.Context, model, systemPrompt, prompt string, maxTokens int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   maxTokens,
		TopP:        1,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices returned")
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("empty completion")
	}
	return text, nil
}
