package openai

import (
	"context"
	"time"

	httpClient "github.com/Solmidey/base-gas-coach/internal/client/http"

	"github.com/pkg/errors"
)

const (
	defaultBaseURL = "https://api.openai.com"
	defaultModel   = "gpt-4o-mini"
)

// Client talks to an OpenAI-compatible chat completions endpoint. Requests
// are deliberately single-attempt: the caller treats any failure as a
// skip, so retrying would only add latency to a degraded path.
type Client struct {
	httpClient *httpClient.HTTPClient
	apiKey     string
	model      string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.httpClient = newHTTPClient(baseURL)
	}
}

// WithModel overrides the completion model.
func WithModel(model string) Option {
	return func(c *Client) {
		c.model = model
	}
}

func newHTTPClient(baseURL string) *httpClient.HTTPClient {
	return httpClient.NewHTTPClient(
		httpClient.WithBaseURL(baseURL),
		httpClient.WithTimeout(30*time.Second),
		httpClient.WithRetryConfig(nil),
	)
}

// NewClient creates a chat client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: newHTTPClient(defaultBaseURL),
		apiKey:     apiKey,
		model:      defaultModel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ChatMessage is one turn of a chat completion request.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []ChatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// CompleteJSON sends a system instruction plus user messages and returns
// the first choice's content. The request demands a JSON object response.
func (c *Client) CompleteJSON(ctx context.Context, system string, userMessages ...string) (string, error) {
	messages := make([]ChatMessage, 0, len(userMessages)+1)
	messages = append(messages, ChatMessage{Role: "system", Content: system})
	for _, m := range userMessages {
		messages = append(messages, ChatMessage{Role: "user", Content: m})
	}

	resp, err := c.httpClient.Post(
		ctx,
		"/v1/chat/completions",
		chatRequest{
			Model:          c.model,
			Messages:       messages,
			Temperature:    0.4,
			ResponseFormat: &responseFormat{Type: "json_object"},
		},
		httpClient.WithBearerToken(c.apiKey),
	)
	if err != nil {
		return "", errors.Wrap(err, "chat completion request failed")
	}

	var completion chatResponse
	if err := c.httpClient.ProcessJSONResponse(resp, &completion); err != nil {
		return "", errors.Wrap(err, "failed to decode chat completion")
	}

	if len(completion.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	return completion.Choices[0].Message.Content, nil
}
