package engine

import (
	"fmt"

	"github.com/germanamz/pagecraft/pkg/modeladapter"
	"github.com/germanamz/pagecraft/pkg/providers/anthropic"
	"github.com/germanamz/pagecraft/pkg/providers/catalog"
	"github.com/germanamz/pagecraft/pkg/providers/ollama"
	"github.com/germanamz/pagecraft/pkg/providers/openai"
	"github.com/germanamz/pagecraft/pkg/settings"
)

// Factory creates the Sender for a settings snapshot.
type Factory func(s settings.Settings) (modeladapter.Sender, error)

// Adapters holds one factory per provider.
type Adapters struct {
	OpenAI      Factory
	Anthropic   Factory
	Ollama      Factory
	HuggingFace Factory
}

// merge returns a with nil fields filled from defaults.
func (a Adapters) merge(defaults Adapters) Adapters {
	if a.OpenAI == nil {
		a.OpenAI = defaults.OpenAI
	}
	if a.Anthropic == nil {
		a.Anthropic = defaults.Anthropic
	}
	if a.Ollama == nil {
		a.Ollama = defaults.Ollama
	}
	if a.HuggingFace == nil {
		a.HuggingFace = defaults.HuggingFace
	}
	return a
}

// factory selects the provider's factory.
func (a Adapters) factory(id catalog.ID) (Factory, error) {
	switch id {
	case catalog.OpenAI:
		return a.OpenAI, nil
	case catalog.Anthropic:
		return a.Anthropic, nil
	case catalog.Ollama:
		return a.Ollama, nil
	case catalog.HuggingFace:
		return a.HuggingFace, nil
	default:
		return nil, &ConfigError{Provider: id, Reason: fmt.Sprintf(reasonUnsupported, id)}
	}
}

func (e *Engine) builtinAdapters() Adapters {
	return Adapters{
		OpenAI:      e.newOpenAI,
		Anthropic:   e.newAnthropic,
		Ollama:      e.newOllama,
		HuggingFace: e.newHuggingFace,
	}
}

func (e *Engine) newOpenAI(s settings.Settings) (modeladapter.Sender, error) {
	a := openai.New(s.BaseURL, s.APIKey, s.ModelOrDefault())
	a.Client = e.client

	return a, nil
}

func (e *Engine) newAnthropic(s settings.Settings) (modeladapter.Sender, error) {
	a := anthropic.New(s.BaseURL, s.APIKey, s.ModelOrDefault())
	a.Client = e.client

	return a, nil
}

func (e *Engine) newOllama(s settings.Settings) (modeladapter.Sender, error) {
	a := ollama.New(s.BaseURL, s.ModelOrDefault())
	a.Client = e.client

	return a, nil
}

// newHuggingFace binds the engine's long-lived adapter so the memoized
// pipeline survives across calls.
func (e *Engine) newHuggingFace(s settings.Settings) (modeladapter.Sender, error) {
	return e.hf.Bind(s.ModelOrDefault(), s.APIKey), nil
}
