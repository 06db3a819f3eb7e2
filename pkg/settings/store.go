package settings

import (
	"errors"
	"fmt"
	"os"

	"github.com/germanamz/pagecraft/pkg/providers/catalog"
	"gopkg.in/yaml.v3"
)

// FileStore reads settings from a YAML or JSON file (the persisted
// {provider, apiKey, baseUrl, model} record) on every Snapshot.
// Environment variables referenced as ${VAR} or $VAR are expanded before
// parsing, so credentials can live in the environment. A missing file yields
// zero Settings, which are reported as not configured.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore for path. No I/O is performed.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the file the store reads from.
func (f *FileStore) Path() string { return f.path }

// Snapshot reads and parses the settings file.
func (f *FileStore) Snapshot() (Settings, error) {
	if f.path == "" {
		return Settings{}, nil
	}

	data, err := os.ReadFile(f.path) //nolint:gosec // path is caller-provided configuration, not user input
	if errors.Is(err, os.ErrNotExist) {
		return Settings{}, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("settings: read %s: %w", f.path, err)
	}

	return Parse(data)
}

// Parse decodes a settings record. YAML is a superset of JSON so both
// encodings are accepted.
func Parse(data []byte) (Settings, error) {
	expanded := os.ExpandEnv(string(data))

	var s Settings
	if err := yaml.Unmarshal([]byte(expanded), &s); err != nil {
		return Settings{}, fmt.Errorf("settings: parse: %w", err)
	}

	return s, nil
}

// Environment variable names consulted by WithEnv.
const (
	EnvProvider = "PAGECRAFT_PROVIDER"
	EnvAPIKey   = "PAGECRAFT_API_KEY" //nolint:gosec // variable name, not a secret
	EnvBaseURL  = "PAGECRAFT_BASE_URL"
	EnvModel    = "PAGECRAFT_MODEL"
)

// WithEnv wraps src so that non-empty PAGECRAFT_* environment variables
// override the corresponding fields of every snapshot.
func WithEnv(src Source) Source {
	return SourceFunc(func() (Settings, error) {
		s, err := src.Snapshot()
		if err != nil {
			return Settings{}, err
		}

		return overlayEnv(s), nil
	})
}

func overlayEnv(s Settings) Settings {
	if v := os.Getenv(EnvProvider); v != "" {
		s.Provider = catalog.ID(v)
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		s.APIKey = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		s.BaseURL = v
	}
	if v := os.Getenv(EnvModel); v != "" {
		s.Model = v
	}
	return s
}
