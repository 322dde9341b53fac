package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

var ErrEmptyCompletion = errors.New("completion returned no choices")

// Message is one chat turn in the OpenAI-compatible format.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completer turns a conversation into the next assistant reply.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

type chatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// Client talks to an OpenAI-compatible chat completion endpoint such as Groq.
type Client struct {
	http        *resty.Client
	model       string
	temperature float64
	maxTokens   int
}

func NewClient(baseURL, apiKey, model string, temperature float64, maxTokens int) *Client {
	http := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second)

	return &Client{
		http:        http,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	var out chatCompletionResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(chatCompletionRequest{
			Model:       c.model,
			Messages:    messages,
			Temperature: c.temperature,
			MaxTokens:   c.maxTokens,
		}).
		SetResult(&out).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("completion API returned status %d: %s", resp.StatusCode(), resp.String())
	}
	if len(out.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
