package engine

import (
	"errors"
	"fmt"

	"github.com/germanamz/pagecraft/pkg/modeladapter"
	"github.com/germanamz/pagecraft/pkg/providers/catalog"
	"github.com/germanamz/pagecraft/pkg/providers/huggingface"
	"github.com/germanamz/pagecraft/pkg/settings"
)

// Reasons reported by ConfigError.
const (
	ReasonNotConfigured  = "AI nie jest skonfigurowane. Ustaw klucz API w ustawieniach."
	ReasonMissingBaseURL = "AI nie jest skonfigurowane. Ustaw adres URL w ustawieniach."
	reasonUnsupported    = "Nieobsługiwany dostawca: %s"
)

// ConfigError reports settings that cannot drive a generation: an unknown
// provider or a missing credential or base URL.
type ConfigError struct {
	Provider catalog.ID
	Reason   string
}

func (e *ConfigError) Error() string { return e.Reason }

// validate mirrors settings.IsConfigured but says what is missing.
func validate(s settings.Settings) error {
	d, ok := s.Descriptor()
	switch {
	case s.Provider == "":
		return &ConfigError{Reason: ReasonNotConfigured}
	case !ok:
		return &ConfigError{Provider: s.Provider, Reason: fmt.Sprintf(reasonUnsupported, s.Provider)}
	case d.RequiresBaseURL && s.BaseURL == "":
		return &ConfigError{Provider: s.Provider, Reason: ReasonMissingBaseURL}
	case d.RequiresCredential && s.APIKey == "":
		return &ConfigError{Provider: s.Provider, Reason: ReasonNotConfigured}
	}

	return nil
}

// detail returns the user-facing text for err, without package prefixes.
func detail(err error) string {
	var (
		ce *ConfigError
		pe *modeladapter.ProviderError
		le *huggingface.LoadError
	)

	switch {
	case errors.As(err, &ce):
		return ce.Error()
	case errors.As(err, &pe):
		return pe.Error()
	case errors.As(err, &le):
		if le.Busy {
			return le.Error()
		}
		return le.Err.Error()
	default:
		return err.Error()
	}
}
