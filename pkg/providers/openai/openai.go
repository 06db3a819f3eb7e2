// Package openai provides a Sender for the OpenAI Chat Completions API.
package openai

import (
	"context"
	"fmt"

	"github.com/germanamz/pagecraft/pkg/chats/chat"
	"github.com/germanamz/pagecraft/pkg/chats/role"
	"github.com/germanamz/pagecraft/pkg/modeladapter"
)

const (
	completionsPath = "/v1/chat/completions"

	// DefaultBaseURL is the public OpenAI endpoint.
	DefaultBaseURL = "https://api.openai.com"

	// NoReply is returned when the API answers without any content.
	NoReply = "Brak odpowiedzi z API"
)

var _ modeladapter.Sender = (*Adapter)(nil)

// Adapter implements modeladapter.Sender for the OpenAI Chat Completions API.
type Adapter struct {
	modeladapter.ModelAdapter
}

// New creates an Adapter configured for the OpenAI API.
// An empty baseURL selects DefaultBaseURL.
func New(baseURL, apiKey, model string) *Adapter {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	a := &Adapter{ModelAdapter: modeladapter.New(baseURL, modeladapter.Auth{Key: apiKey}, nil)}
	a.Name = model
	a.Temperature = 0.7
	a.MaxTokens = 2000

	return a
}

// Send posts the conversation, prefixed with the shared system instruction,
// and returns the content of the first choice.
func (a *Adapter) Send(ctx context.Context, c *chat.Chat) (string, error) {
	req := a.buildRequest(c)

	var resp apiResponse
	if err := a.PostJSON(ctx, completionsPath, req, &resp); err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == nil || *resp.Choices[0].Message.Content == "" {
		return NoReply, nil
	}

	return *resp.Choices[0].Message.Content, nil
}

// --- request types ---

type apiRequest struct {
	Model       string       `json:"model"`
	Messages    []apiMessage `json:"messages"`
	MaxTokens   int          `json:"max_tokens,omitempty"`
	Temperature *float64     `json:"temperature,omitempty"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// --- response types ---

type apiResponse struct {
	Choices []apiChoice `json:"choices"`
}

type apiChoice struct {
	Message      apiRespMessage `json:"message"`
	FinishReason string         `json:"finish_reason"`
}

type apiRespMessage struct {
	Role    string  `json:"role"`
	Content *string `json:"content"`
}

// --- conversion helpers ---

func (a *Adapter) buildRequest(c *chat.Chat) apiRequest {
	req := apiRequest{
		Model:     a.Name,
		MaxTokens: a.MaxTokens,
		Messages:  make([]apiMessage, 0, c.Len()+1),
	}

	if a.Temperature != 0 {
		t := a.Temperature
		req.Temperature = &t
	}

	req.Messages = append(req.Messages, apiMessage{Role: role.System.String(), Content: modeladapter.SystemInstruction})
	for _, m := range c.Messages() {
		req.Messages = append(req.Messages, apiMessage{Role: m.Role.String(), Content: m.Content})
	}

	return req
}
