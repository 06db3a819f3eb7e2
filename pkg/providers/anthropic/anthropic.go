// Package anthropic provides a Sender for the Anthropic Messages API.
package anthropic

import (
	"context"
	"fmt"

	"github.com/germanamz/pagecraft/pkg/chats/chat"
	"github.com/germanamz/pagecraft/pkg/chats/role"
	"github.com/germanamz/pagecraft/pkg/modeladapter"
)

const (
	messagesPath = "/v1/messages"

	// DefaultBaseURL is the public Anthropic endpoint.
	DefaultBaseURL = "https://api.anthropic.com"

	// APIVersion is sent in the anthropic-version header.
	APIVersion = "2023-06-01"

	// NoReply is returned when the API answers without a text block.
	NoReply = "Brak odpowiedzi z API"
)

var _ modeladapter.Sender = (*Adapter)(nil)

// Adapter implements modeladapter.Sender for the Anthropic Messages API.
type Adapter struct {
	modeladapter.ModelAdapter
}

// New creates an Adapter configured for the Anthropic API.
// An empty baseURL selects DefaultBaseURL.
func New(baseURL, apiKey, model string) *Adapter {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	a := &Adapter{ModelAdapter: modeladapter.New(baseURL, modeladapter.Auth{
		Key:    apiKey,
		Header: "x-api-key",
	}, nil)}
	a.Name = model
	a.MaxTokens = 2000
	a.Headers = map[string]string{
		"anthropic-version": APIVersion,
	}

	return a
}

// Send posts the conversation with the shared instruction in the dedicated
// system field and returns the first text block of the reply.
func (a *Adapter) Send(ctx context.Context, c *chat.Chat) (string, error) {
	req := a.buildRequest(c)

	var resp apiResponse
	if err := a.PostJSON(ctx, messagesPath, req, &resp); err != nil {
		return "", fmt.Errorf("anthropic: %w", err)
	}

	for _, block := range resp.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text, nil
		}
	}

	return NoReply, nil
}

// --- request types ---

type apiRequest struct {
	Model       string       `json:"model"`
	MaxTokens   int          `json:"max_tokens"`
	System      string       `json:"system,omitempty"`
	Messages    []apiMessage `json:"messages"`
	Temperature *float64     `json:"temperature,omitempty"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// --- response types ---

type apiResponse struct {
	Content    []apiContent `json:"content"`
	StopReason string       `json:"stop_reason"`
}

type apiContent struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// --- conversion helpers ---

func (a *Adapter) buildRequest(c *chat.Chat) apiRequest {
	req := apiRequest{
		Model:     a.Name,
		MaxTokens: a.MaxTokens,
		System:    modeladapter.SystemInstruction,
	}

	if a.Temperature != 0 {
		t := a.Temperature
		req.Temperature = &t
	}

	// System-role messages never reach the message list; the API takes the
	// instruction only through the system field.
	msgs := c.Without(role.System)
	req.Messages = make([]apiMessage, 0, len(msgs))
	for _, m := range msgs {
		req.Messages = append(req.Messages, apiMessage{Role: m.Role.String(), Content: m.Content})
	}

	return req
}
