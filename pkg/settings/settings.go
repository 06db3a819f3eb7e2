// Package settings holds the single provider configuration record the engine
// reads before every generation. The engine never mutates settings; it pulls a
// fresh snapshot from a Source on each call so that configuration edits made
// elsewhere take effect on the next request without any event plumbing.
package settings

import (
	"github.com/germanamz/pagecraft/pkg/providers/catalog"
)

// Settings is the persisted provider configuration.
type Settings struct {
	Provider catalog.ID `yaml:"provider" json:"provider"`
	APIKey   string     `yaml:"apiKey" json:"apiKey"` //nolint:gosec // configuration field, not a hardcoded secret
	BaseURL  string     `yaml:"baseUrl,omitempty" json:"baseUrl,omitempty"`
	Model    string     `yaml:"model" json:"model"`
}

// Descriptor returns the catalog entry for the configured provider.
func (s Settings) Descriptor() (catalog.Descriptor, bool) {
	return catalog.Lookup(s.Provider)
}

// ModelOrDefault returns the configured model, or the provider's default
// model when none is set. Unknown models are returned verbatim.
func (s Settings) ModelOrDefault() string {
	if s.Model != "" {
		return s.Model
	}
	if d, ok := s.Descriptor(); ok {
		return d.DefaultModel
	}
	return ""
}

// IsConfigured reports whether s carries enough to attempt a generation:
// the in-process provider always is, the local daemon needs a base URL and
// every other known provider needs a credential. It is advisory; callers use
// it to short-circuit before spending a round trip.
func IsConfigured(s Settings) bool {
	switch s.Provider {
	case catalog.HuggingFace:
		return true
	case catalog.Ollama:
		return s.BaseURL != ""
	case catalog.OpenAI, catalog.Anthropic:
		return s.APIKey != ""
	default:
		return false
	}
}

// Source provides settings snapshots.
type Source interface {
	Snapshot() (Settings, error)
}

// SourceFunc adapts a plain function to the Source interface.
type SourceFunc func() (Settings, error)

// Snapshot calls the underlying function.
func (f SourceFunc) Snapshot() (Settings, error) { return f() }

// Static returns a Source that always yields s.
func Static(s Settings) Source {
	return SourceFunc(func() (Settings, error) { return s, nil })
}
