package engine

import (
	"net/http"
	"time"

	"github.com/germanamz/pagecraft/pkg/providers/huggingface"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithHTTPClient sets the client shared by the HTTP adapters.
func WithHTTPClient(c *http.Client) Option {
	return func(e *Engine) { e.client = c }
}

// WithTracer sets the tracer used for engine and adapter spans.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) { e.tracer = t }
}

// WithAdapters overrides the factories for individual providers. Nil fields
// keep the built-in factory.
func WithAdapters(a Adapters) Option {
	return func(e *Engine) { e.overrides = a }
}

// WithPipelineLoader sets the loader used by the huggingface adapter.
func WithPipelineLoader(l huggingface.Loader) Option {
	return func(e *Engine) { e.loader = l }
}

// WithPipelineOptions configures the huggingface adapter's device selection
// and generation parameters.
func WithPipelineOptions(o huggingface.Options) Option {
	return func(e *Engine) { e.hfOpts = o }
}

// WithTimeout bounds each adapter call. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) { e.timeout = d }
}
