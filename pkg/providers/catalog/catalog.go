// Package catalog holds the closed set of provider descriptors the engine
// knows how to talk to. It is pure data used for validation and display.
package catalog

import "slices"

// ID identifies a provider.
type ID string

const (
	OpenAI      ID = "openai"
	Anthropic   ID = "anthropic"
	Ollama      ID = "ollama"
	HuggingFace ID = "huggingface"
)

// Descriptor describes a provider. Descriptors are defined once in this
// package and never mutated.
type Descriptor struct {
	ID                 ID       `json:"id"`
	DisplayName        string   `json:"displayName"`
	CredentialLabel    string   `json:"credentialLabel"`
	BaseURLLabel       string   `json:"baseUrlLabel,omitempty"`
	DefaultBaseURL     string   `json:"defaultBaseUrl,omitempty"`
	SupportedModels    []string `json:"supportedModels"`
	DefaultModel       string   `json:"defaultModel"`
	RequiresBaseURL    bool     `json:"requiresBaseUrl"`
	RequiresCredential bool     `json:"requiresCredential"`
}

// Supports reports whether model is one of the descriptor's supported models.
func (d Descriptor) Supports(model string) bool {
	return slices.Contains(d.SupportedModels, model)
}

// NotConfiguredName is displayed when no provider has been selected.
const NotConfiguredName = "Brak konfiguracji"

var descriptors = []Descriptor{
	{
		ID:                 OpenAI,
		DisplayName:        "OpenAI",
		CredentialLabel:    "Klucz API OpenAI",
		DefaultBaseURL:     "https://api.openai.com",
		SupportedModels:    []string{"gpt-4o", "gpt-4o-mini", "gpt-4-turbo", "gpt-3.5-turbo"},
		DefaultModel:       "gpt-4o-mini",
		RequiresCredential: true,
	},
	{
		ID:                 Anthropic,
		DisplayName:        "Anthropic Claude",
		CredentialLabel:    "Klucz API Anthropic",
		DefaultBaseURL:     "https://api.anthropic.com",
		SupportedModels:    []string{"claude-3-5-sonnet-20241022", "claude-3-5-haiku-20241022", "claude-3-opus-20240229"},
		DefaultModel:       "claude-3-5-sonnet-20241022",
		RequiresCredential: true,
	},
	{
		ID:              Ollama,
		DisplayName:     "Ollama (Lokalny)",
		CredentialLabel: "Klucz API (opcjonalny)",
		BaseURLLabel:    "Adres serwera Ollama",
		DefaultBaseURL:  "http://localhost:11434",
		SupportedModels: []string{"llama3.2:3b", "llama3.1:8b", "codellama:7b", "qwen2.5-coder:7b"},
		DefaultModel:    "llama3.2:3b",
		RequiresBaseURL: true,
	},
	{
		ID:              HuggingFace,
		DisplayName:     "Hugging Face",
		CredentialLabel: "Token Hugging Face (opcjonalny)",
		SupportedModels: []string{"microsoft/DialoGPT-medium", "Xenova/gpt2", "Xenova/distilgpt2"},
		DefaultModel:    "microsoft/DialoGPT-medium",
	},
}

// All returns every known descriptor in catalog order.
func All() []Descriptor {
	out := make([]Descriptor, len(descriptors))
	copy(out, descriptors)
	return out
}

// Lookup returns the descriptor for id.
func Lookup(id ID) (Descriptor, bool) {
	for _, d := range descriptors {
		if d.ID == id {
			return d, true
		}
	}
	return Descriptor{}, false
}

// DisplayName returns the human-readable name for id. An empty id yields
// NotConfiguredName and an unknown id is returned as-is.
func DisplayName(id ID) string {
	if id == "" {
		return NotConfiguredName
	}
	if d, ok := Lookup(id); ok {
		return d.DisplayName
	}
	return string(id)
}
