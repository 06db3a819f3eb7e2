// Package ollama provides a Sender for a local Ollama daemon's generate API.
package ollama

import (
	"context"
	"fmt"
	"strings"

	"github.com/germanamz/pagecraft/pkg/chats/chat"
	"github.com/germanamz/pagecraft/pkg/modeladapter"
)

const (
	generatePath = "/api/generate"

	// DefaultBaseURL is where `ollama serve` listens by default.
	DefaultBaseURL = "http://localhost:11434"

	// NoReply is returned when the daemon answers with an empty response.
	NoReply = "Brak odpowiedzi z Ollama"

	preamble = "Jesteś ekspertem od tworzenia stron internetowych. " +
		"Generujesz kompletny, funkcjonalny kod HTML z CSS i JavaScript. " +
		"Odpowiadaj w języku polskim."
)

var _ modeladapter.Sender = (*Adapter)(nil)

// Adapter implements modeladapter.Sender for the Ollama generate endpoint.
// The daemon needs no authentication.
type Adapter struct {
	modeladapter.ModelAdapter
}

// New creates an Adapter for the daemon at baseURL.
func New(baseURL, model string) *Adapter {
	a := &Adapter{ModelAdapter: modeladapter.New(baseURL, modeladapter.Auth{}, nil)}
	a.Name = model

	return a
}

// Send flattens the conversation into a single prompt and returns the
// daemon's response text. Connection failures carry a hint on how to start
// the daemon and pull the model.
func (a *Adapter) Send(ctx context.Context, c *chat.Chat) (string, error) {
	req := apiRequest{
		Model:  a.Name,
		Prompt: Prompt(c),
		Stream: false,
	}

	var resp apiResponse
	if err := a.PostJSON(ctx, generatePath, req, &resp); err != nil {
		return "", fmt.Errorf("ollama: %w", a.explain(err))
	}

	if resp.Response == "" {
		return NoReply, nil
	}

	return resp.Response, nil
}

// Prompt renders the conversation as "{role}: {content}" lines separated by
// blank lines, prefixed with the instruction preamble.
func Prompt(c *chat.Chat) string {
	msgs := c.Messages()
	lines := make([]string, len(msgs))
	for i, m := range msgs {
		lines[i] = m.Line()
	}

	return preamble + "\n\n" + strings.Join(lines, "\n\n")
}

func (a *Adapter) explain(err error) error {
	pe, ok := modeladapter.AsProviderError(err)
	if !ok || pe.Status != 0 {
		return err
	}

	model := a.Name
	if model == "" {
		model = "llama3.2:3b"
	}

	return &modeladapter.ProviderError{
		Detail: fmt.Sprintf(
			"Błąd połączenia z Ollama: %s. Sprawdź czy Ollama jest uruchomiona (ollama serve) i czy masz model (ollama pull %s)",
			pe.Detail, model,
		),
		Err: pe.Err,
	}
}

type apiRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type apiResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}
